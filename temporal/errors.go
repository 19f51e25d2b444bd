package temporal

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *ParseError.
	ErrSyntax = errors.New("invalid syntax")

	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time")
	ErrUnknownZone   = errors.New("unknown time zone")
	ErrCalendarUnits = errors.New("calendar units have no fixed length")
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrUnknownField  = errors.New("unknown field")

	// ErrAmbiguousTime and ErrSkippedTime are returned under the Reject
	// disambiguation policy for local times inside a DST overlap or gap.
	ErrAmbiguousTime = errors.New("ambiguous local time")
	ErrSkippedTime   = errors.New("local time skipped by zone transition")
)

// A ParseError describes a string that does not match the grammar of the
// type it was parsed as.
type ParseError struct {
	Type   string // e.g. "duration", "plain date"
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("temporal: cannot parse %q as %s", e.Input, e.Type)
	}
	return fmt.Sprintf("temporal: cannot parse %q as %s: %s", e.Input, e.Type, e.Reason)
}

// Is reports ErrSyntax as a match so callers need not type-assert.
func (e *ParseError) Is(target error) bool { return target == ErrSyntax }

func parseErr(typ, input, reason string) error {
	return &ParseError{Type: typ, Input: input, Reason: reason}
}

func invalidDate(year, month, day int) error {
	return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
}

func invalidTime(hour, minute, second, ms int) error {
	return fmt.Errorf("%w: %02d:%02d:%02d.%03d", ErrInvalidTime, hour, minute, second, ms)
}

func unknownZone(zone string) error {
	return fmt.Errorf("%w %q", ErrUnknownZone, zone)
}
