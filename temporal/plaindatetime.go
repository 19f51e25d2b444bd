package temporal

import (
	"fmt"
	"time"
)

// PlainDateTime is a PlainDate with a PlainTime, and no zone. Unlike a
// lone PlainTime, its clock arithmetic carries into the date.
// The zero value is 1970-01-01T00:00:00.
type PlainDateTime struct {
	date PlainDate
	time PlainTime
}

// NewPlainDateTime validates each field as NewPlainDate and NewPlainTime do.
func NewPlainDateTime(year, month, day, hour, minute, second, millisecond int) (PlainDateTime, error) {
	d, err := NewPlainDate(year, month, day)
	if err != nil {
		return PlainDateTime{}, err
	}
	t, err := NewPlainTime(hour, minute, second, millisecond)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: d, time: t}, nil
}

// MustPlainDateTime is like NewPlainDateTime but panics on error.
func MustPlainDateTime(year, month, day, hour, minute, second, millisecond int) PlainDateTime {
	dt, err := NewPlainDateTime(year, month, day, hour, minute, second, millisecond)
	if err != nil {
		panic(err)
	}
	return dt
}

// PlainDateTimeOf returns the wall-clock date and time of t in t's location.
func PlainDateTimeOf(t time.Time) PlainDateTime {
	return PlainDateTime{date: PlainDateOf(t), time: PlainTimeOf(t)}
}

// plainDateTimeFromLocal is the inverse of localMilliseconds.
func plainDateTimeFromLocal(ms int64) PlainDateTime {
	return PlainDateTime{
		date: PlainDate{days: floorDiv(ms, msPerDay)},
		time: plainTimeFromMilliseconds(ms),
	}
}

// localMilliseconds reads the wall clock as if it were UTC.
func (dt PlainDateTime) localMilliseconds() int64 {
	return dt.date.days*msPerDay + int64(dt.time.ms)
}

func (dt PlainDateTime) Year() int        { return dt.date.Year() }
func (dt PlainDateTime) Month() int       { return dt.date.Month() }
func (dt PlainDateTime) Day() int         { return dt.date.Day() }
func (dt PlainDateTime) Hour() int        { return dt.time.Hour() }
func (dt PlainDateTime) Minute() int      { return dt.time.Minute() }
func (dt PlainDateTime) Second() int      { return dt.time.Second() }
func (dt PlainDateTime) Millisecond() int { return dt.time.Millisecond() }

func (dt PlainDateTime) ToPlainDate() PlainDate { return dt.date }
func (dt PlainDateTime) ToPlainTime() PlainTime { return dt.time }

func (dt PlainDateTime) Compare(o PlainDateTime) int {
	return threeway(dt.localMilliseconds(), o.localMilliseconds())
}

func (dt PlainDateTime) Equal(o PlainDateTime) bool { return dt == o }

// Add applies the years and months of d to the date with the same
// rollover as PlainDate.Add, then adds the remaining components as clock
// time, carrying past midnight into the date: 23:00 plus three hours is
// 02:00 on the following day.
func (dt PlainDateTime) Add(d Duration) PlainDateTime {
	date := dt.date.Add(Duration{Years: d.Years, Months: d.Months})
	local := date.days*msPerDay + int64(dt.time.ms) + d.clockMilliseconds()
	return plainDateTimeFromLocal(local)
}

// Subtract is Add(d.Negated()).
func (dt PlainDateTime) Subtract(d Duration) PlainDateTime { return dt.Add(d.Negated()) }

// Until returns the difference o-dt broken into days, hours, minutes,
// seconds and milliseconds, all with the same sign. It never produces
// months or years; a day is always 24 hours here.
func (dt PlainDateTime) Until(o PlainDateTime) Duration {
	return splitDays(o.localMilliseconds() - dt.localMilliseconds())
}

// Since returns the difference dt-o, decomposed as Until.
func (dt PlainDateTime) Since(o PlainDateTime) Duration {
	return splitDays(dt.localMilliseconds() - o.localMilliseconds())
}

// With returns dt with the named fields replaced. Any date or time Field
// may be named and the result must be valid.
func (dt PlainDateTime) With(fs Fields) (PlainDateTime, error) {
	if err := fs.only("plain date-time", Year, Month, Day, Hour, Minute, Second, Millisecond); err != nil {
		return PlainDateTime{}, err
	}
	return NewPlainDateTime(
		fs.apply(Year, dt.Year()),
		fs.apply(Month, dt.Month()),
		fs.apply(Day, dt.Day()),
		fs.apply(Hour, dt.Hour()),
		fs.apply(Minute, dt.Minute()),
		fs.apply(Second, dt.Second()),
		fs.apply(Millisecond, dt.Millisecond()),
	)
}

// WithPlainTime replaces the time of day.
func (dt PlainDateTime) WithPlainTime(t PlainTime) PlainDateTime {
	return PlainDateTime{date: dt.date, time: t}
}

// ToZonedDateTime interprets dt as a wall-clock time in zone using
// DefaultZoneProvider. dis decides the outcome when the zone skips or
// repeats that wall-clock time.
func (dt PlainDateTime) ToZonedDateTime(zone string, dis Disambiguation) (ZonedDateTime, error) {
	return dt.ToZonedDateTimeIn(zone, dis, DefaultZoneProvider)
}

// ToZonedDateTimeIn is like ToZonedDateTime with an explicit provider.
func (dt PlainDateTime) ToZonedDateTimeIn(zone string, dis Disambiguation, p ZoneProvider) (ZonedDateTime, error) {
	ms, err := disambiguate(p, zone, dt.localMilliseconds(), dis)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{ms: ms, zone: zone, provider: p}, nil
}

// In returns dt as a time.Time in loc. The time package normalizes wall
// times that loc skips or repeats.
func (dt PlainDateTime) In(loc *time.Location) time.Time {
	return time.Date(dt.Year(), time.Month(dt.Month()), dt.Day(),
		dt.Hour(), dt.Minute(), dt.Second(), dt.Millisecond()*int(time.Millisecond), loc)
}

// String returns "<date>T<time>".
func (dt PlainDateTime) String() string { return dt.date.String() + "T" + dt.time.String() }

// ParsePlainDateTime parses the form produced by String.
func ParsePlainDateTime(s string) (PlainDateTime, error) {
	dt, rest, err := scanDateTime(s)
	if err != nil {
		return PlainDateTime{}, parseErr("plain date-time", s, err.Error())
	}
	if rest != "" {
		return PlainDateTime{}, parseErr("plain date-time", s, fmt.Sprintf("trailing %q", rest))
	}
	return dt, nil
}

func (dt PlainDateTime) MarshalText() ([]byte, error) { return []byte(dt.String()), nil }

func (dt *PlainDateTime) UnmarshalText(b []byte) error {
	v, err := ParsePlainDateTime(string(b))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}
