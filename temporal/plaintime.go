package temporal

import (
	"fmt"
	"time"
)

// PlainTime is a wall-clock time of day with millisecond precision. It has
// no date and no zone, and its arithmetic wraps around midnight.
// The zero value is midnight.
type PlainTime struct {
	ms int // milliseconds since midnight, in [0, msPerDay)
}

// MidnightTime is 00:00:00.
var MidnightTime = PlainTime{}

// NewPlainTime returns the given time of day, or ErrInvalidTime if a field
// is out of range.
func NewPlainTime(hour, minute, second, millisecond int) (PlainTime, error) {
	if hour < 0 || hour > 23 ||
		minute < 0 || minute > 59 ||
		second < 0 || second > 59 ||
		millisecond < 0 || millisecond > 999 {
		return PlainTime{}, invalidTime(hour, minute, second, millisecond)
	}
	return PlainTime{ms: hour*msPerHour + minute*msPerMinute + second*msPerSecond + millisecond}, nil
}

// MustPlainTime is like NewPlainTime but panics on error.
func MustPlainTime(hour, minute, second, millisecond int) PlainTime {
	t, err := NewPlainTime(hour, minute, second, millisecond)
	if err != nil {
		panic(err)
	}
	return t
}

// PlainTimeOf returns the wall-clock time of t in t's location.
func PlainTimeOf(t time.Time) PlainTime {
	return MustPlainTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

func plainTimeFromMilliseconds(ms int64) PlainTime {
	return PlainTime{ms: int(floorMod(ms, msPerDay))}
}

func (t PlainTime) Hour() int        { return t.ms / msPerHour }
func (t PlainTime) Minute() int      { return t.ms % msPerHour / msPerMinute }
func (t PlainTime) Second() int      { return t.ms % msPerMinute / msPerSecond }
func (t PlainTime) Millisecond() int { return t.ms % msPerSecond }

// MillisecondOfDay returns the milliseconds elapsed since midnight.
func (t PlainTime) MillisecondOfDay() int { return t.ms }

func (t PlainTime) Compare(u PlainTime) int { return threeway(t.ms, u.ms) }
func (t PlainTime) Equal(u PlainTime) bool  { return t.ms == u.ms }

// Add returns t moved forward by the clock components of d, wrapping
// around midnight. No day carry is reported: 23:00 plus three hours is
// 02:00. Years, months, weeks and days are whole days and leave t
// unchanged.
func (t PlainTime) Add(d Duration) PlainTime {
	return plainTimeFromMilliseconds(int64(t.ms) + floorMod(d.clockMilliseconds(), msPerDay))
}

// Subtract is Add(d.Negated()).
func (t PlainTime) Subtract(d Duration) PlainTime { return t.Add(d.Negated()) }

// Until returns the signed clock difference u-t, in hours through
// milliseconds.
func (t PlainTime) Until(u PlainTime) Duration { return splitClock(int64(u.ms - t.ms)) }

// Since returns the signed clock difference t-u.
func (t PlainTime) Since(u PlainTime) Duration { return splitClock(int64(t.ms - u.ms)) }

// With returns t with the named fields replaced. Only Hour, Minute, Second
// and Millisecond may be named.
func (t PlainTime) With(fs Fields) (PlainTime, error) {
	if err := fs.only("plain time", Hour, Minute, Second, Millisecond); err != nil {
		return PlainTime{}, err
	}
	return NewPlainTime(
		fs.apply(Hour, t.Hour()),
		fs.apply(Minute, t.Minute()),
		fs.apply(Second, t.Second()),
		fs.apply(Millisecond, t.Millisecond()),
	)
}

// String returns "15:04:05", or "15:04:05.000" when milliseconds are set.
func (t PlainTime) String() string { return formatClock(t.ms, false) }

// ParsePlainTime parses HH:MM, HH:MM:SS or HH:MM:SS.fff.
func ParsePlainTime(s string) (PlainTime, error) {
	t, rest, err := scanTime(s)
	if err != nil {
		return PlainTime{}, parseErr("plain time", s, err.Error())
	}
	if rest != "" {
		return PlainTime{}, parseErr("plain time", s, fmt.Sprintf("trailing %q", rest))
	}
	return t, nil
}

func (t PlainTime) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *PlainTime) UnmarshalText(b []byte) error {
	v, err := ParsePlainTime(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// splitClock decomposes a signed millisecond count into hours, minutes,
// seconds and milliseconds that all share its sign.
func splitClock(ms int64) Duration {
	return Duration{
		Hours:        ms / msPerHour,
		Minutes:      ms % msPerHour / msPerMinute,
		Seconds:      ms % msPerMinute / msPerSecond,
		Milliseconds: ms % msPerSecond,
	}
}

// splitDays is splitClock with whole days split off first.
func splitDays(ms int64) Duration {
	d := splitClock(ms % msPerDay)
	d.Days = ms / msPerDay
	return d
}
