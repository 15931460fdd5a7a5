package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-faerie/tempconv/temperature"
)

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	in := temperature.MustParse("36.9C")
	out, err := temperature.ConvertAll(in)
	require.NoError(t, err)

	require.NoError(t, p.Prompt("36.9C"))
	require.NoError(t, p.Input(in))
	require.NoError(t, p.Results(out))

	assert.Equal(t, "Temperature [36.9C]:\n36.9 °C\n= 98.42 °F\n= 310.05 K\n", buf.String())
}

func TestPrinterStyledKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	require.NoError(t, p.Input(temperature.New(0, temperature.Kelvin)))
	assert.Contains(t, buf.String(), "0")
	assert.Contains(t, buf.String(), "K")
}

func TestPrinterUnits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Units(temperature.Units()))

	want := "°C \tCelsius   \t°?C\n" +
		"°F \tFahrenheit\t°?F\n" +
		"K  \tKelvin    \tK\n"
	assert.Equal(t, want, buf.String())
}
