package temperature

import (
	"errors"
	"strconv"
)

var (
	ErrEmpty   = errors.New("cannot parse temperature from empty string")
	ErrInvalid = errors.New("invalid temperature literal")
)

var (
	ErrNotSupported = errors.New("not supported")
	ErrUnknownUnit  = errors.New("unknown temperature unit")
)

// ParseError records a failed call to [Parse].
type ParseError struct {
	Input string
	Err   error // ErrEmpty, ErrInvalid or a *NumberError
}

func (e *ParseError) Error() string {
	return "parsing temperature " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NumberError is returned when a literal matches the grammar but its numeric
// part cannot be represented as a float32.
type NumberError struct {
	Value string
	Err   error
}

func (e *NumberError) Error() string {
	return "invalid temperature value: " + e.Value
}

func (e *NumberError) Unwrap() error {
	return e.Err
}

// ConversionError is returned when no rule, direct or composed, converts
// between From and To.
type ConversionError struct {
	From, To Unit
}

func (e *ConversionError) Error() string {
	return "conversion from " + e.From.String() + " to " + e.To.String() + " is " + ErrNotSupported.Error()
}

func (e *ConversionError) Unwrap() error {
	return ErrNotSupported
}
