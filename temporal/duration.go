package temporal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Duration is a signed bag of calendar and clock components. The
// components are independent and are never folded into one another: a
// month is not a number of days, so Duration{Months: 1} and
// Duration{Days: 30} are different values.
//
// A struct literal is the constructor; omitted components are zero.
//
// Component arithmetic (Add, Negated, Abs) wraps like int64 arithmetic, so
// values are expected to stay well inside the int64 range. Sign is exact
// for any components.
type Duration struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
}

// DurationOf decomposes d into hours, minutes, seconds and milliseconds.
// Sub-millisecond precision is truncated.
func DurationOf(d time.Duration) Duration { return splitClock(d.Milliseconds()) }

func (d Duration) components() [8]int64 {
	return [8]int64{d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds}
}

func durationFrom(c [8]int64) Duration {
	return Duration{c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7]}
}

// Get returns the component named by u.
func (d Duration) Get(u Unit) int64 {
	if u < Years || u > Milliseconds {
		return 0
	}
	return d.components()[u]
}

// Sign returns the sign (-1, 0, +1) of the sum of all components. The sum
// is exact for any component values.
func (d Duration) Sign() int {
	// Sum the high and low 32-bit halves separately; neither can overflow.
	var hi, lo int64
	for _, c := range d.components() {
		hi += c >> 32
		lo += c & 0xffffffff
	}
	hi += lo >> 32
	lo &= 0xffffffff
	if hi != 0 {
		return threeway(hi, 0)
	}
	return threeway(lo, 0)
}

// Blank reports whether every component is zero.
func (d Duration) Blank() bool { return d == Duration{} }

// Negated returns d with every component negated.
func (d Duration) Negated() Duration {
	c := d.components()
	for i := range c {
		c[i] = -c[i]
	}
	return durationFrom(c)
}

// Abs returns d with every component replaced by its absolute value.
func (d Duration) Abs() Duration {
	c := d.components()
	for i := range c {
		if c[i] < 0 {
			c[i] = -c[i]
		}
	}
	return durationFrom(c)
}

// Add returns the component-wise sum d+e.
func (d Duration) Add(e Duration) Duration {
	x, y := d.components(), e.components()
	for i := range x {
		x[i] += y[i]
	}
	return durationFrom(x)
}

// Subtract returns the component-wise difference d-e.
func (d Duration) Subtract(e Duration) Duration { return d.Add(e.Negated()) }

// unitMilliseconds is the fixed (or, for months and years, approximate)
// length of one unit.
func unitMilliseconds(u Unit) (float64, error) {
	switch u {
	case Years:
		return daysPerApproxYear * msPerDay, nil
	case Months:
		return daysPerApproxMonth * msPerDay, nil
	case Weeks:
		return msPerWeek, nil
	case Days:
		return msPerDay, nil
	case Hours:
		return msPerHour, nil
	case Minutes:
		return msPerMinute, nil
	case Seconds:
		return msPerSecond, nil
	case Milliseconds:
		return 1, nil
	}
	return 0, fmt.Errorf("%w %s", ErrUnknownUnit, u)
}

// Total expresses d as a single number of unit.
//
// Total is not calendar-exact: a month counts as 30 days and a year as
// 365 days whatever the month or year. Callers needing exact calendar
// months should use PlainDate.Add and PlainDate.Until instead.
func (d Duration) Total(unit Unit) (float64, error) {
	per, err := unitMilliseconds(unit)
	if err != nil {
		return 0, err
	}
	var ms float64
	for u, c := range d.components() {
		l, _ := unitMilliseconds(Unit(u))
		ms += float64(c) * l
	}
	return ms / per, nil
}

// FixedMilliseconds returns the exact length of d. It fails with
// ErrCalendarUnits if d has years or months, which have no fixed length.
func (d Duration) FixedMilliseconds() (int64, error) {
	if d.Years != 0 || d.Months != 0 {
		return 0, fmt.Errorf("%w: %s", ErrCalendarUnits, d)
	}
	return d.clockMilliseconds(), nil
}

// clockMilliseconds sums weeks through milliseconds, ignoring years and months.
func (d Duration) clockMilliseconds() int64 {
	return d.Weeks*msPerWeek +
		d.Days*msPerDay +
		d.Hours*msPerHour +
		d.Minutes*msPerMinute +
		d.Seconds*msPerSecond +
		d.Milliseconds
}

// String returns the ISO 8601 form, e.g. "P1Y2M3DT4H5M6.007S", with a
// leading "-" when the overall sign is negative and "PT0S" when blank.
func (d Duration) String() string {
	if d.Blank() {
		return "PT0S"
	}
	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	a := d.Abs()
	b.WriteByte('P')
	put := func(v int64, unit byte) {
		if v != 0 {
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte(unit)
		}
	}
	put(a.Years, 'Y')
	put(a.Months, 'M')
	put(a.Weeks, 'W')
	put(a.Days, 'D')
	if a.Hours != 0 || a.Minutes != 0 || a.Seconds != 0 || a.Milliseconds != 0 {
		b.WriteByte('T')
		put(a.Hours, 'H')
		put(a.Minutes, 'M')
		secs, frac := a.Seconds+a.Milliseconds/msPerSecond, a.Milliseconds%msPerSecond
		switch {
		case frac != 0:
			fmt.Fprintf(&b, "%d.%03dS", secs, frac)
		case secs != 0:
			put(secs, 'S')
		}
	}
	return b.String()
}

var durationPattern = regexp.MustCompile(
	`^([+-])?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?` +
		`(T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:[.,](\d+))?S)?)?$`)

// ParseDuration parses the ISO 8601 duration grammar produced by
// Duration.String. A leading sign applies to every component and a
// fractional second is rounded to the nearest millisecond.
func ParseDuration(s string) (Duration, error) {
	const typ = "duration"
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, parseErr(typ, s, "")
	}
	// m[6] is the whole time designator, present only with a 'T'.
	if m[6] == "T" {
		return Duration{}, parseErr(typ, s, "time designator without components")
	}
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" && m[6] == "" {
		return Duration{}, parseErr(typ, s, "no components")
	}

	var c [8]int64
	for i, g := range []string{m[2], m[3], m[4], m[5], m[7], m[8], m[9]} {
		if g == "" {
			continue
		}
		v, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return Duration{}, parseErr(typ, s, "component out of range")
		}
		c[i] = v
	}
	if m[10] != "" {
		f, err := strconv.ParseFloat("0."+m[10], 64)
		if err != nil {
			return Duration{}, parseErr(typ, s, "bad fraction")
		}
		ms := int64(math.Round(f * msPerSecond))
		if ms == msPerSecond {
			c[Seconds]++
			ms = 0
		}
		c[Milliseconds] = ms
	}
	if m[1] == "-" {
		for i := range c {
			c[i] = -c[i]
		}
	}
	return durationFrom(c), nil
}

// MustParseDuration is like ParseDuration but panics on error.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
