package temperature

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func TestParse(t *testing.T) {
	var tests = []struct {
		in   string
		want Temperature
	}{
		{"36.9C", Temperature{36.9, Celsius}},
		{"36.9 C", Temperature{36.9, Celsius}},
		{"36.9°C", Temperature{36.9, Celsius}},
		{"36.9 °c", Temperature{36.9, Celsius}},
		{"98.6F", Temperature{98.6, Fahrenheit}},
		{"98.6 °F", Temperature{98.6, Fahrenheit}},
		{"98.6f", Temperature{98.6, Fahrenheit}},
		{"0K", Temperature{0, Kelvin}},
		{"0 k", Temperature{0, Kelvin}},
		{"-40C", Temperature{-40, Celsius}},
		{"−40C", Temperature{-40, Celsius}},
		{"−459.67 °F", Temperature{-459.67, Fahrenheit}},
		{"100\tK", Temperature{100, Kelvin}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMinusSigns(t *testing.T) {
	ascii, err := Parse("-40C")
	require.NoError(t, err)
	unicode, err := Parse("−40C")
	require.NoError(t, err)
	assert.Equal(t, ascii, unicode)
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"abc", ErrInvalid},
		{"100X", ErrInvalid},
		{"°C", ErrInvalid},
		{"°K", ErrInvalid},
		{"36.9", ErrInvalid},
		{"36.C", ErrInvalid},
		{".5C", ErrInvalid},
		{"+5C", ErrInvalid},
		{"36.9  C", ErrInvalid},
		{" 36.9C", ErrInvalid},
		{"36.9C ", ErrInvalid},
		{"36.9CC", ErrInvalid},
		{"36,9C", ErrInvalid},
		{"--40C", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.in, perr.Input)
			assert.Contains(t, err.Error(), strconv.Quote(tt.in))
		})
	}
}

func TestParseEmptyIsNotInvalid(t *testing.T) {
	_, err := Parse("")
	assert.False(t, errors.Is(err, ErrInvalid))

	_, err = Parse("abc")
	assert.False(t, errors.Is(err, ErrEmpty))
}

func TestParseNumberError(t *testing.T) {
	raw := "1" + strings.Repeat("0", 40)
	_, err := Parse(raw + "C")
	require.Error(t, err)

	var nerr *NumberError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, raw, nerr.Value)
	assert.ErrorIs(t, err, strconv.ErrRange)
	assert.NotErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "invalid temperature value: "+raw)
}

func TestParseNumberErrorKeepsUnicodeMinus(t *testing.T) {
	raw := "−1" + strings.Repeat("0", 40)
	_, err := Parse(raw + "F")

	var nerr *NumberError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, raw, nerr.Value)
}

func TestString(t *testing.T) {
	var tests = []struct {
		in   Temperature
		want string
	}{
		{Temperature{36.9, Celsius}, "36.9 °C"},
		{Temperature{98.42, Fahrenheit}, "98.42 °F"},
		{Temperature{0, Kelvin}, "0 K"},
		{Temperature{-273.15, Celsius}, "-273.15 °C"},
		{Temperature{1e10, Kelvin}, "10000000000 K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}

func TestFormatParseInverse(t *testing.T) {
	for _, u := range Units() {
		for _, v := range []float32{0, 36.9, -40, 98.6, 310.15, -459.67, 0.001} {
			want := New(v, u)
			got, err := Parse(want.String())
			require.NoError(t, err, want.String())
			assert.Equal(t, want.Unit, got.Unit)
			assert.InDelta(t, want.Value, got.Value, tolerance)
		}
	}
}

func TestParseBareSymbolRendersCanonical(t *testing.T) {
	got, err := Parse("36.9C")
	require.NoError(t, err)
	assert.Equal(t, "36.9 °C", got.String())
}

func TestTextMarshaling(t *testing.T) {
	want := New(-12.5, Fahrenheit)
	b, err := want.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "-12.5 °F", string(b))

	var got Temperature
	require.NoError(t, got.UnmarshalText(b))
	assert.Equal(t, want, got)

	_, err = New(1, Unit(42)).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, New(0, Kelvin), MustParse("0K"))
	assert.Panics(t, func() { MustParse("nope") })
}
