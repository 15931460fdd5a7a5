package temperature

import "errors"

const (
	celsiusToFahrenheitRatio  float32 = 1.8
	celsiusToFahrenheitOffset float32 = 32
	celsiusToKelvinOffset     float32 = 273.15
)

// Convert returns t expressed in unit to. Converting to the unit t already
// has returns t itself. Pairs without a direct formula are composed through
// Celsius. If no rule exists the error is a *ConversionError.
func Convert(t Temperature, to Unit) (Temperature, error) {
	if t.Unit == to {
		return t, nil
	}
	v := t.Value
	switch t.Unit {
	case Celsius:
		switch to {
		case Fahrenheit:
			// The explicit conversion keeps the product rounded to float32.
			return New(float32(v*celsiusToFahrenheitRatio)+celsiusToFahrenheitOffset, to), nil
		case Kelvin:
			return New(v+celsiusToKelvinOffset, to), nil
		}
	case Fahrenheit:
		switch to {
		case Celsius:
			return New((v-celsiusToFahrenheitOffset)/celsiusToFahrenheitRatio, to), nil
		case Kelvin:
			return via(t, Celsius, to)
		}
	case Kelvin:
		switch to {
		case Celsius:
			return New(v-celsiusToKelvinOffset, to), nil
		case Fahrenheit:
			return via(t, Celsius, to)
		}
	}
	return Temperature{}, &ConversionError{From: t.Unit, To: to}
}

func via(t Temperature, pivot, to Unit) (Temperature, error) {
	p, err := Convert(t, pivot)
	if err != nil {
		return Temperature{}, err
	}
	return Convert(p, to)
}

// ConvertAll converts t to every other unit in the order of [Units].
func ConvertAll(t Temperature) ([]Temperature, error) {
	return ConvertTo(t, Units()...)
}

// ConvertTo converts t to each of the given units, skipping the unit of t.
// Units that t cannot be converted to are left out of the result; any other
// error aborts the whole conversion.
func ConvertTo(t Temperature, to ...Unit) ([]Temperature, error) {
	out := make([]Temperature, 0, len(to))
	for _, u := range to {
		if u == t.Unit {
			continue
		}
		c, err := Convert(t, u)
		if errors.Is(err, ErrNotSupported) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
