/*
Package temporal defines a small calculus of time values.

  types:
    Instant         an absolute point in time, in epoch milliseconds
    Duration        a signed bag of years..milliseconds, never renormalized
    PlainTime       a wall-clock time of day with no date or zone
    PlainDate       a Gregorian calendar date with no time or zone
    PlainDateTime   a PlainDate and a PlainTime with no zone
    ZonedDateTime   an Instant paired with a zone identifier

  conversions:
    Instant.ToZonedDateTime(zone) ZonedDateTime
    ZonedDateTime.ToInstant() Instant
    ZonedDateTime.ToPlainDateTime() PlainDateTime
    PlainDateTime.ToPlainDate() PlainDate
    PlainDateTime.ToPlainTime() PlainTime
    PlainDate.ToPlainDateTime(PlainTime) PlainDateTime
    PlainDateTime.ToZonedDateTime(zone, Disambiguation) ZonedDateTime

  operators (as methods):
    x.Add(Duration) x
    x.Subtract(Duration) x
    x.Until(x) Duration
    x.Since(x) Duration
    x.Compare(x) int
    x.Equal(x) bool

All values are immutable; every operation returns a new value and values
may be shared freely between goroutines.

Wall-clock fields of a ZonedDateTime are never stored. They are asked of a
ZoneProvider on every access, so a ZonedDateTime cannot carry a wall time
that disagrees with its instant.

Month and year lengths vary, so Duration.Total reports them with fixed
approximations (a month is 30 days, a year 365 days). Use PlainDate.Add and
PlainDate.Until for calendar-exact month arithmetic.
*/
package temporal
