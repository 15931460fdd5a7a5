package temperature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit is a temperature scale.
type Unit byte

// Units are declared in the order used for parsing and for converting
// to "all other units".
const (
	Celsius Unit = iota
	Fahrenheit
	Kelvin

	numUnits
)

type unitInfo struct {
	symbol  string
	name    string
	pattern string
	match   *regexp.Regexp
}

func newUnitInfo(symbol, name, pattern string) unitInfo {
	return unitInfo{
		symbol:  symbol,
		name:    name,
		pattern: pattern,
		match:   regexp.MustCompile(`(?i)^(?:` + pattern + `)$`),
	}
}

// The recognition patterns must not overlap; the first match wins.
var units = [numUnits]unitInfo{
	Celsius:    newUnitInfo("°C", "celsius", `°?C`),
	Fahrenheit: newUnitInfo("°F", "fahrenheit", `°?F`),
	Kelvin:     newUnitInfo("K", "kelvin", `K`),
}

// Units returns every supported unit in declared order.
func Units() []Unit {
	u := make([]Unit, numUnits)
	for i := range u {
		u[i] = Unit(i)
	}
	return u
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	return u < numUnits
}

// Symbol returns the canonical display symbol of u, e.g. "°C".
func (u Unit) Symbol() string {
	if !u.Valid() {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return units[u].symbol
}

// Name returns the lowercase name of u, e.g. "celsius".
func (u Unit) Name() string {
	if !u.Valid() {
		return "unit" + strconv.Itoa(int(u))
	}
	return units[u].name
}

// Pattern returns the regular expression used to recognize u when parsing.
func (u Unit) Pattern() string {
	if !u.Valid() {
		return ""
	}
	return units[u].pattern
}

// Matches reports whether s, in its entirety, denotes u. Matching is
// case-insensitive and tolerates an optional degree sign where the unit
// allows one.
func (u Unit) Matches(s string) bool {
	if !u.Valid() {
		return false
	}
	return units[u].match.MatchString(s)
}

func (u Unit) String() string {
	return u.Symbol()
}

// ParseUnit returns the unit denoted by s, which may be anything accepted
// by [Unit.Matches] or a unit name.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	for _, u := range Units() {
		if u.Matches(s) || strings.EqualFold(s, u.Name()) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownUnit)
}

// MarshalText implements [encoding.TextMarshaler] by returning the symbol.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%s: %w", u, ErrUnknownUnit)
	}
	return []byte(u.Symbol()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [ParseUnit].
func (u *Unit) UnmarshalText(b []byte) (err error) {
	*u, err = ParseUnit(string(b))
	return
}

func (u *Unit) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return u.UnmarshalText([]byte(s))
}

func (u Unit) MarshalYAML() (any, error) {
	b, err := u.MarshalText()
	return string(b), err
}
