package temporal

import (
	"fmt"
	"math"
	"time"
)

// NowFunc is the clock read by Now. Intentionally exported so that it can
// be overridden, for example by tests that require a fixed time.
var NowFunc = time.Now

// Instant is an absolute point in time, counted in milliseconds since
// 1970-01-01T00:00:00Z. It has no calendar; use ToZonedDateTime for one.
type Instant struct {
	ms int64
}

// InstantFromEpochMilliseconds returns the Instant ms milliseconds after
// the Unix epoch.
func InstantFromEpochMilliseconds(ms int64) Instant { return Instant{ms: ms} }

// InstantOf returns the Instant of t, truncated to the millisecond.
func InstantOf(t time.Time) Instant { return Instant{ms: t.UnixMilli()} }

// Now returns the current Instant according to NowFunc.
func Now() Instant { return InstantOf(NowFunc()) }

func (i Instant) EpochMilliseconds() int64 { return i.ms }

// Time returns i as a time.Time in UTC.
func (i Instant) Time() time.Time { return time.UnixMilli(i.ms).UTC() }

func (i Instant) Compare(j Instant) int { return threeway(i.ms, j.ms) }
func (i Instant) Equal(j Instant) bool  { return i.ms == j.ms }

// Add returns i shifted by d. Only fixed-length components are accepted;
// a duration with years or months fails with ErrCalendarUnits because an
// Instant has no calendar to measure them against.
func (i Instant) Add(d Duration) (Instant, error) {
	ms, err := d.FixedMilliseconds()
	if err != nil {
		return Instant{}, err
	}
	return Instant{ms: i.ms + ms}, nil
}

// Subtract is Add(d.Negated()).
func (i Instant) Subtract(d Duration) (Instant, error) { return i.Add(d.Negated()) }

// Until returns the elapsed time from i to j as milliseconds only.
func (i Instant) Until(j Instant) Duration { return Duration{Milliseconds: j.ms - i.ms} }

// Since returns the elapsed time from j to i as milliseconds only.
func (i Instant) Since(j Instant) Duration { return Duration{Milliseconds: i.ms - j.ms} }

// ToZonedDateTime pairs i with zone using DefaultZoneProvider.
func (i Instant) ToZonedDateTime(zone string) (ZonedDateTime, error) {
	return NewZonedDateTime(i, zone)
}

// ToZonedDateTimeIn pairs i with zone resolved by p.
func (i Instant) ToZonedDateTimeIn(zone string, p ZoneProvider) (ZonedDateTime, error) {
	return NewZonedDateTimeIn(i, zone, p)
}

// String returns the UTC form "2006-01-02T15:04:05.000Z".
func (i Instant) String() string {
	days := floorDiv(i.ms, msPerDay)
	y, m, d := civil(days)
	return formatDate(y, m, d) + "T" + formatClock(int(floorMod(i.ms, msPerDay)), true) + "Z"
}

// ParseInstant parses an RFC 3339 timestamp with a "Z" or numeric offset.
// Digits beyond the millisecond are truncated.
func ParseInstant(s string) (Instant, error) {
	const typ = "instant"
	dt, rest, err := scanDateTime(s)
	if err != nil {
		return Instant{}, parseErr(typ, s, err.Error())
	}
	off, rest, err := scanOffset(rest)
	if err != nil {
		return Instant{}, parseErr(typ, s, err.Error())
	}
	if rest != "" {
		return Instant{}, parseErr(typ, s, fmt.Sprintf("trailing %q", rest))
	}
	i, ok := instantAt(dt, off)
	if !ok {
		return Instant{}, parseErr(typ, s, "out of range")
	}
	return i, nil
}

var (
	minInstantDays = floorDiv(math.MinInt64, msPerDay)
	maxInstantDays = floorDiv(math.MaxInt64, msPerDay)
)

// instantAt returns the instant at which a zone with the given offset
// shows dt, and false if that instant does not fit in an int64.
func instantAt(dt PlainDateTime, offsetMinutes int) (Instant, bool) {
	lo := int64(dt.time.ms) - int64(offsetMinutes)*msPerMinute
	days := dt.date.days + floorDiv(lo, msPerDay)
	lo = floorMod(lo, msPerDay)
	switch {
	case days < minInstantDays || days > maxInstantDays:
		return Instant{}, false
	case days == minInstantDays && lo < floorMod(math.MinInt64, msPerDay):
		return Instant{}, false
	case days == maxInstantDays && lo > floorMod(math.MaxInt64, msPerDay):
		return Instant{}, false
	}
	// days*msPerDay may wrap at the lower bound; adding lo wraps back.
	return Instant{ms: days*msPerDay + lo}, true
}

// MustParseInstant is like ParseInstant but panics on error.
func MustParseInstant(s string) Instant {
	i, err := ParseInstant(s)
	if err != nil {
		panic(err)
	}
	return i
}

func (i Instant) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Instant) UnmarshalText(b []byte) error {
	v, err := ParseInstant(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
