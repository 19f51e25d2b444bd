package temporal

import (
	"fmt"
	"strings"
)

// A Unit names one component of a Duration.
type Unit int

const (
	Years Unit = iota
	Months
	Weeks
	Days
	Hours
	Minutes
	Seconds
	Milliseconds
)

var unitNames = [...]string{
	Years:        "years",
	Months:       "months",
	Weeks:        "weeks",
	Days:         "days",
	Hours:        "hours",
	Minutes:      "minutes",
	Seconds:      "seconds",
	Milliseconds: "milliseconds",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit accepts the plural unit names and their singular forms,
// case-insensitively.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(s)
	for u, n := range unitNames {
		if name == n || name == strings.TrimSuffix(n, "s") {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownUnit, s)
}

// A Field names one wall-clock or calendar field, for use with With.
type Field int

const (
	Year Field = iota
	Month
	Day
	Hour
	Minute
	Second
	Millisecond
)

var fieldNames = [...]string{
	Year:        "year",
	Month:       "month",
	Day:         "day",
	Hour:        "hour",
	Minute:      "minute",
	Second:      "second",
	Millisecond: "millisecond",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps a field name such as "day" to its Field.
func ParseField(s string) (Field, error) {
	for f, n := range fieldNames {
		if s == n {
			return Field(f), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownField, s)
}

// Fields is a partial record of field overrides. Fields absent from the
// map keep their current value.
type Fields map[Field]int

func (fs Fields) apply(f Field, cur int) int {
	if v, ok := fs[f]; ok {
		return v
	}
	return cur
}

// only fails if fs names a field outside allowed.
func (fs Fields) only(typ string, allowed ...Field) error {
	for f := range fs {
		ok := false
		for _, a := range allowed {
			if f == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w %s for %s", ErrUnknownField, f, typ)
		}
	}
	return nil
}
