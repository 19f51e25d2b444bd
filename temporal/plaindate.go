package temporal

import (
	"fmt"
	"time"
)

// PlainDate is a date in the proleptic Gregorian calendar, with no time of
// day and no zone. The zero value is 1970-01-01.
type PlainDate struct {
	days int64 // since 1970-01-01
}

// NewPlainDate returns the date year-month-day. Out-of-range fields are
// rejected with ErrInvalidDate rather than rolled over, so
// NewPlainDate(2023, 2, 29) is an error and not March 1st.
func NewPlainDate(year, month, day int) (PlainDate, error) {
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, month) {
		return PlainDate{}, invalidDate(year, month, day)
	}
	return PlainDate{days: epochDays(year, month, day)}, nil
}

// MustPlainDate is like NewPlainDate but panics on error.
func MustPlainDate(year, month, day int) PlainDate {
	d, err := NewPlainDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// PlainDateOf returns the calendar date of t in t's location.
func PlainDateOf(t time.Time) PlainDate {
	y, m, d := t.Date()
	return PlainDate{days: epochDays(y, int(m), d)}
}

func (d PlainDate) fields() (year, month, day int) { return civil(d.days) }

func (d PlainDate) Year() int {
	y, _, _ := d.fields()
	return y
}

// Month returns the month of the year, 1 to 12.
func (d PlainDate) Month() int {
	_, m, _ := d.fields()
	return m
}

func (d PlainDate) Day() int {
	_, _, day := d.fields()
	return day
}

// DayOfWeek returns the ISO weekday, 1 for Monday through 7 for Sunday.
func (d PlainDate) DayOfWeek() int { return isoWeekday(d.days) }

func (d PlainDate) DayOfYear() int { return dayOfYear(d.fields()) }

// WeekOfYear returns the ISO 8601 week number, 1 to 53. Early January
// days may belong to the last week of the previous year.
func (d PlainDate) WeekOfYear() int { return isoWeek(d.fields()) }

func (d PlainDate) DaysInMonth() int {
	y, m, _ := d.fields()
	return daysIn(y, m)
}

func (d PlainDate) DaysInYear() int { return daysInYear(d.Year()) }
func (d PlainDate) InLeapYear() bool { return isLeap(d.Year()) }

// EpochDays returns the number of days since 1970-01-01.
func (d PlainDate) EpochDays() int64 { return d.days }

func (d PlainDate) Compare(e PlainDate) int { return threeway(d.days, e.days) }
func (d PlainDate) Equal(e PlainDate) bool  { return d.days == e.days }

// Add returns d moved by dur. Years and months are applied first, keeping
// the day of the month; a day past the end of the target month rolls over
// into the next month, so January 31st plus one month is March 2nd or 3rd.
// Weeks and days follow. Hours and smaller units are balanced into whole
// days (24 hours to the day) and any remainder is dropped.
func (d PlainDate) Add(dur Duration) PlainDate { return d.add(dur, false) }

// AddConstrained is like Add but clamps the day of the month to the length
// of the target month, so January 31st plus one month is February 28th or
// 29th.
func (d PlainDate) AddConstrained(dur Duration) PlainDate { return d.add(dur, true) }

// Subtract is Add(dur.Negated()).
func (d PlainDate) Subtract(dur Duration) PlainDate { return d.Add(dur.Negated()) }

func (d PlainDate) add(dur Duration, constrain bool) PlainDate {
	days := d.days
	if n := dur.Years*12 + dur.Months; n != 0 {
		y, m, day := d.fields()
		y, m = addMonths(y, m, n)
		if constrain && day > daysIn(y, m) {
			day = daysIn(y, m)
		}
		days = epochDays(y, m, 1) + int64(day-1)
	}
	clock := dur.Hours*msPerHour + dur.Minutes*msPerMinute + dur.Seconds*msPerSecond + dur.Milliseconds
	days += dur.Weeks*7 + dur.Days + clock/msPerDay
	return PlainDate{days: days}
}

// Until returns the number of whole days from d to e as Duration{Days: n}.
// It is not broken down into months or years.
func (d PlainDate) Until(e PlainDate) Duration { return Duration{Days: e.days - d.days} }

// Since returns the number of whole days from e to d.
func (d PlainDate) Since(e PlainDate) Duration { return Duration{Days: d.days - e.days} }

// With returns d with the named fields replaced. Only Year, Month and Day
// may be named and the result must be a valid date.
func (d PlainDate) With(fs Fields) (PlainDate, error) {
	if err := fs.only("plain date", Year, Month, Day); err != nil {
		return PlainDate{}, err
	}
	y, m, day := d.fields()
	return NewPlainDate(fs.apply(Year, y), fs.apply(Month, m), fs.apply(Day, day))
}

// ToPlainDateTime combines d with the time of day t.
func (d PlainDate) ToPlainDateTime(t PlainTime) PlainDateTime {
	return PlainDateTime{date: d, time: t}
}

// ToZonedDateTime interprets d at time of day t in zone.
func (d PlainDate) ToZonedDateTime(zone string, t PlainTime, dis Disambiguation) (ZonedDateTime, error) {
	return d.ToPlainDateTime(t).ToZonedDateTime(zone, dis)
}

// In returns midnight at the start of d in loc.
func (d PlainDate) In(loc *time.Location) time.Time {
	y, m, day := d.fields()
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, loc)
}

// String returns "YYYY-MM-DD". Years outside 0..9999 are written with a
// sign and six digits.
func (d PlainDate) String() string { return formatDate(d.fields()) }

// ParsePlainDate parses the form produced by String.
func ParsePlainDate(s string) (PlainDate, error) {
	d, rest, err := scanDate(s)
	if err != nil {
		return PlainDate{}, parseErr("plain date", s, err.Error())
	}
	if rest != "" {
		return PlainDate{}, parseErr("plain date", s, fmt.Sprintf("trailing %q", rest))
	}
	return d, nil
}

func (d PlainDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *PlainDate) UnmarshalText(b []byte) error {
	v, err := ParsePlainDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
