// Package temperature parses, converts and formats temperatures in the
// Celsius, Fahrenheit and Kelvin scales.
//
// A temperature literal is a decimal number with an optional sign, either
// "-" or the Unicode minus sign "−", optionally followed by a single space
// and a unit symbol:
//
//	36.9C   36.9 °C   −40°F   0K   98.6 f
//
// Formatted temperatures always use the canonical symbol of their unit.
package temperature

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Temperature is a value in a particular unit. Temperatures are plain values;
// conversions return new ones.
type Temperature struct {
	Value float32
	Unit  Unit
}

// New returns the temperature v in unit u.
func New(v float32, u Unit) Temperature {
	return Temperature{Value: v, Unit: u}
}

// String formats t as "{value} {symbol}", e.g. "36.9 °C".
func (t Temperature) String() string {
	return FormatValue(t.Value) + " " + t.Unit.Symbol()
}

// FormatValue returns the shortest decimal representation of v that
// round-trips through float32, without an exponent.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// MarshalText implements [encoding.TextMarshaler] using [Temperature.String].
func (t Temperature) MarshalText() ([]byte, error) {
	if _, err := t.Unit.MarshalText(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [Parse].
func (t *Temperature) UnmarshalText(b []byte) (err error) {
	*t, err = Parse(string(b))
	return
}

const unicodeMinus = "−"

var literal = sync.OnceValue(func() *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)^(?P<value>(?:-|` + unicodeMinus + `)?\d+(?:\.\d+)?)\s?(?P<unit>`)
	for i, u := range Units() {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(u.Pattern())
	}
	b.WriteString(`)$`)
	return regexp.MustCompile(b.String())
})

// Parse parses a temperature literal. The caller is expected to have trimmed
// surrounding whitespace.
//
// The returned error is always a *ParseError wrapping [ErrEmpty],
// [ErrInvalid] or a *[NumberError].
func Parse(s string) (Temperature, error) {
	if s == "" {
		return Temperature{}, &ParseError{s, ErrEmpty}
	}
	re := literal()
	m := re.FindStringSubmatch(s)
	if m == nil {
		return Temperature{}, &ParseError{s, ErrInvalid}
	}
	raw := m[re.SubexpIndex("value")]
	v, err := strconv.ParseFloat(strings.Replace(raw, unicodeMinus, "-", 1), 32)
	if err != nil {
		return Temperature{}, &ParseError{s, &NumberError{raw, err}}
	}
	sym := m[re.SubexpIndex("unit")]
	for _, u := range Units() {
		if u.Matches(sym) {
			return Temperature{Value: float32(v), Unit: u}, nil
		}
	}
	// Unreachable while the composite pattern is built from the unit patterns.
	return Temperature{}, &ParseError{s, ErrInvalid}
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) Temperature {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
