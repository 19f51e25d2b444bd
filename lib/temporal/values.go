package temporal

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/calclock/calclock/temporal"
)

// Instant is a starlark representation of an absolute point in time.
type Instant temporal.Instant

// PlainTime is a starlark representation of a wall-clock time.
type PlainTime temporal.PlainTime

// PlainDate is a starlark representation of a calendar date.
type PlainDate temporal.PlainDate

// PlainDateTime is a starlark representation of a date and wall-clock time
// without a zone.
type PlainDateTime temporal.PlainDateTime

// ZonedDateTime is a starlark representation of an instant in a named zone.
type ZonedDateTime temporal.ZonedDateTime

var (
	_ starlark.HasAttrs   = Instant{}
	_ starlark.HasBinary  = Instant{}
	_ starlark.Comparable = Instant{}
	_ starlark.HasAttrs   = PlainTime{}
	_ starlark.HasBinary  = PlainTime{}
	_ starlark.Comparable = PlainTime{}
	_ starlark.HasAttrs   = PlainDate{}
	_ starlark.HasBinary  = PlainDate{}
	_ starlark.Comparable = PlainDate{}
	_ starlark.HasAttrs   = PlainDateTime{}
	_ starlark.HasBinary  = PlainDateTime{}
	_ starlark.Comparable = PlainDateTime{}
	_ starlark.HasAttrs   = ZonedDateTime{}
	_ starlark.HasBinary  = ZonedDateTime{}
	_ starlark.Comparable = ZonedDateTime{}
	_ starlark.HasAttrs   = Duration{}
	_ starlark.HasBinary  = Duration{}
	_ starlark.HasUnary   = Duration{}
	_ starlark.Comparable = Duration{}
)

// shift adds d to a point value, or returns nil, nil if v is not one.
func shift(v starlark.Value, d temporal.Duration) (starlark.Value, error) {
	switch x := v.(type) {
	case Instant:
		i, err := temporal.Instant(x).Add(d)
		if err != nil {
			return nil, err
		}
		return Instant(i), nil
	case PlainTime:
		return PlainTime(temporal.PlainTime(x).Add(d)), nil
	case PlainDate:
		return PlainDate(temporal.PlainDate(x).Add(d)), nil
	case PlainDateTime:
		return PlainDateTime(temporal.PlainDateTime(x).Add(d)), nil
	case ZonedDateTime:
		z, err := temporal.ZonedDateTime(x).Add(d)
		if err != nil {
			return nil, err
		}
		return ZonedDateTime(z), nil
	}
	return nil, nil
}

// between returns the duration from x to y, two values of the same point
// type.
func between(x, y starlark.Value) Duration {
	switch x := x.(type) {
	case Instant:
		return Duration(temporal.Instant(x).Until(temporal.Instant(y.(Instant))))
	case PlainTime:
		return Duration(temporal.PlainTime(x).Until(temporal.PlainTime(y.(PlainTime))))
	case PlainDate:
		return Duration(temporal.PlainDate(x).Until(temporal.PlainDate(y.(PlainDate))))
	case PlainDateTime:
		return Duration(temporal.PlainDateTime(x).Until(temporal.PlainDateTime(y.(PlainDateTime))))
	case ZonedDateTime:
		return Duration(temporal.ZonedDateTime(x).Until(temporal.ZonedDateTime(y.(ZonedDateTime))))
	}
	panic(x)
}

// pointBinary implements the operators shared by the point types:
//
//	x + duration = x
//	x - duration = x
//	x - x = duration
func pointBinary(x starlark.Value, op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		if y, ok := yV.(Duration); ok {
			return shift(x, temporal.Duration(y))
		}
	case syntax.MINUS:
		if y, ok := yV.(Duration); ok && side == starlark.Left {
			return shift(x, temporal.Duration(y).Negated())
		}
		if yV.Type() == x.Type() {
			if side == starlark.Left {
				return between(yV, x), nil
			}
			return between(x, yV), nil
		}
	}
	return nil, nil
}

// pointMethods are the methods shared by the point types.
var pointMethods = map[string]builtinMethod{
	"add":      pointAdd,
	"subtract": pointSubtract,
	"until":    pointUntil,
	"since":    pointSince,
}

func withMethods(extra map[string]builtinMethod) map[string]builtinMethod {
	m := make(map[string]builtinMethod, len(pointMethods)+len(extra))
	for k, v := range pointMethods {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func pointAdd(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return shift(recV, temporal.Duration(d))
}

func pointSubtract(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return shift(recV, temporal.Duration(d).Negated())
}

func otherPoint(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other starlark.Value
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	if other.Type() != recV.Type() {
		return nil, fmt.Errorf("%s: got %s, want %s", fnname, other.Type(), recV.Type())
	}
	return other, nil
}

func pointUntil(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	other, err := otherPoint(fnname, recV, args, kwargs)
	if err != nil {
		return nil, err
	}
	return between(recV, other), nil
}

func pointSince(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	other, err := otherPoint(fnname, recV, args, kwargs)
	if err != nil {
		return nil, err
	}
	return between(other, recV), nil
}

func noArgs(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) error {
	return starlark.UnpackPositionalArgs(fnname, args, kwargs, 0)
}

// Instant

func (i Instant) String() string        { return temporal.Instant(i).String() }
func (i Instant) Type() string          { return "temporal.instant" }
func (i Instant) Freeze()               {}
func (i Instant) Hash() (uint32, error) { return hashInt64(temporal.Instant(i).EpochMilliseconds()), nil }
func (i Instant) Truth() starlark.Bool  { return true }

func (i Instant) Attr(name string) (starlark.Value, error) {
	switch name {
	case "epoch_milliseconds":
		return starlark.MakeInt64(temporal.Instant(i).EpochMilliseconds()), nil
	}
	return builtinAttr(i, name, instantMethods)
}

func (i Instant) AttrNames() []string {
	return builtinAttrNames(instantMethods, "epoch_milliseconds")
}

func (i Instant) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.Instant(i).Compare(temporal.Instant(yV.(Instant)))), nil
}

func (i Instant) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return pointBinary(i, op, y, side)
}

var instantMethods = withMethods(map[string]builtinMethod{
	"to_zoned_date_time": instantToZoned,
})

func instantToZoned(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone string
	if err := starlark.UnpackArgs(fnname, args, kwargs, "zone", &zone); err != nil {
		return nil, err
	}
	z, err := temporal.Instant(recV.(Instant)).ToZonedDateTimeIn(zone, zoneProvider(thread))
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}

// PlainTime

func (t PlainTime) String() string { return temporal.PlainTime(t).String() }
func (t PlainTime) Type() string   { return "temporal.plain_time" }
func (t PlainTime) Freeze()        {}
func (t PlainTime) Hash() (uint32, error) {
	return uint32(temporal.PlainTime(t).MillisecondOfDay()), nil
}
func (t PlainTime) Truth() starlark.Bool { return true }

var plainTimeFields = []string{"hour", "minute", "second", "millisecond"}

func (t PlainTime) Attr(name string) (starlark.Value, error) {
	x := temporal.PlainTime(t)
	switch name {
	case "hour":
		return starlark.MakeInt(x.Hour()), nil
	case "minute":
		return starlark.MakeInt(x.Minute()), nil
	case "second":
		return starlark.MakeInt(x.Second()), nil
	case "millisecond":
		return starlark.MakeInt(x.Millisecond()), nil
	}
	return builtinAttr(t, name, plainTimeMethods)
}

func (t PlainTime) AttrNames() []string { return builtinAttrNames(plainTimeMethods, plainTimeFields...) }

func (t PlainTime) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.PlainTime(t).Compare(temporal.PlainTime(yV.(PlainTime)))), nil
}

func (t PlainTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return pointBinary(t, op, y, side)
}

var plainTimeMethods = withMethods(map[string]builtinMethod{
	"replace": plainTimeReplace,
})

func plainTimeReplace(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fs, err := fieldsArg(fnname, args, kwargs)
	if err != nil {
		return nil, err
	}
	t, err := temporal.PlainTime(recV.(PlainTime)).With(fs)
	if err != nil {
		return nil, err
	}
	return PlainTime(t), nil
}

// PlainDate

func (d PlainDate) String() string        { return temporal.PlainDate(d).String() }
func (d PlainDate) Type() string          { return "temporal.plain_date" }
func (d PlainDate) Freeze()               {}
func (d PlainDate) Hash() (uint32, error) { return hashInt64(temporal.PlainDate(d).EpochDays()), nil }
func (d PlainDate) Truth() starlark.Bool  { return true }

var plainDateFields = []string{
	"year", "month", "day",
	"day_of_week", "day_of_year", "week_of_year",
	"days_in_month", "days_in_year", "in_leap_year",
}

func (d PlainDate) Attr(name string) (starlark.Value, error) {
	x := temporal.PlainDate(d)
	switch name {
	case "year":
		return starlark.MakeInt(x.Year()), nil
	case "month":
		return starlark.MakeInt(x.Month()), nil
	case "day":
		return starlark.MakeInt(x.Day()), nil
	case "day_of_week":
		return starlark.MakeInt(x.DayOfWeek()), nil
	case "day_of_year":
		return starlark.MakeInt(x.DayOfYear()), nil
	case "week_of_year":
		return starlark.MakeInt(x.WeekOfYear()), nil
	case "days_in_month":
		return starlark.MakeInt(x.DaysInMonth()), nil
	case "days_in_year":
		return starlark.MakeInt(x.DaysInYear()), nil
	case "in_leap_year":
		return starlark.Bool(x.InLeapYear()), nil
	}
	return builtinAttr(d, name, plainDateMethods)
}

func (d PlainDate) AttrNames() []string { return builtinAttrNames(plainDateMethods, plainDateFields...) }

func (d PlainDate) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.PlainDate(d).Compare(temporal.PlainDate(yV.(PlainDate)))), nil
}

func (d PlainDate) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return pointBinary(d, op, y, side)
}

var plainDateMethods = withMethods(map[string]builtinMethod{
	"add_constrained":    plainDateAddConstrained,
	"replace":            plainDateReplace,
	"to_plain_date_time": plainDateToPlainDateTime,
	"to_zoned_date_time": plainDateToZoned,
})

func plainDateAddConstrained(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dur Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &dur); err != nil {
		return nil, err
	}
	return PlainDate(temporal.PlainDate(recV.(PlainDate)).AddConstrained(temporal.Duration(dur))), nil
}

func plainDateReplace(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fs, err := fieldsArg(fnname, args, kwargs)
	if err != nil {
		return nil, err
	}
	d, err := temporal.PlainDate(recV.(PlainDate)).With(fs)
	if err != nil {
		return nil, err
	}
	return PlainDate(d), nil
}

func plainDateToPlainDateTime(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	t := PlainTime(temporal.MidnightTime)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "time?", &t); err != nil {
		return nil, err
	}
	return PlainDateTime(temporal.PlainDate(recV.(PlainDate)).ToPlainDateTime(temporal.PlainTime(t))), nil
}

func plainDateToZoned(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		zone string
		t    = PlainTime(temporal.MidnightTime)
		dis  disambiguationArg
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "zone", &zone, "time?", &t, "disambiguation?", &dis); err != nil {
		return nil, err
	}
	dt := temporal.PlainDate(recV.(PlainDate)).ToPlainDateTime(temporal.PlainTime(t))
	z, err := dt.ToZonedDateTimeIn(zone, temporal.Disambiguation(dis), zoneProvider(thread))
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}

// PlainDateTime

func (dt PlainDateTime) String() string { return temporal.PlainDateTime(dt).String() }
func (dt PlainDateTime) Type() string   { return "temporal.plain_date_time" }
func (dt PlainDateTime) Freeze()        {}
func (dt PlainDateTime) Hash() (uint32, error) {
	x := temporal.PlainDateTime(dt)
	return hashInt64(x.ToPlainDate().EpochDays())*31 + uint32(x.ToPlainTime().MillisecondOfDay()), nil
}
func (dt PlainDateTime) Truth() starlark.Bool { return true }

func (dt PlainDateTime) Attr(name string) (starlark.Value, error) {
	x := temporal.PlainDateTime(dt)
	switch name {
	case "year", "month", "day":
		return PlainDate(x.ToPlainDate()).Attr(name)
	case "hour", "minute", "second", "millisecond":
		return PlainTime(x.ToPlainTime()).Attr(name)
	}
	return builtinAttr(dt, name, plainDateTimeMethods)
}

func (dt PlainDateTime) AttrNames() []string {
	return builtinAttrNames(plainDateTimeMethods, append([]string{"year", "month", "day"}, plainTimeFields...)...)
}

func (dt PlainDateTime) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.PlainDateTime(dt).Compare(temporal.PlainDateTime(yV.(PlainDateTime)))), nil
}

func (dt PlainDateTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return pointBinary(dt, op, y, side)
}

var plainDateTimeMethods = withMethods(map[string]builtinMethod{
	"replace":            plainDateTimeReplace,
	"to_plain_date":      plainDateTimeToPlainDate,
	"to_plain_time":      plainDateTimeToPlainTime,
	"to_zoned_date_time": plainDateTimeToZoned,
})

func plainDateTimeReplace(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fs, err := fieldsArg(fnname, args, kwargs)
	if err != nil {
		return nil, err
	}
	dt, err := temporal.PlainDateTime(recV.(PlainDateTime)).With(fs)
	if err != nil {
		return nil, err
	}
	return PlainDateTime(dt), nil
}

func plainDateTimeToPlainDate(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fnname, args, kwargs); err != nil {
		return nil, err
	}
	return PlainDate(temporal.PlainDateTime(recV.(PlainDateTime)).ToPlainDate()), nil
}

func plainDateTimeToPlainTime(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fnname, args, kwargs); err != nil {
		return nil, err
	}
	return PlainTime(temporal.PlainDateTime(recV.(PlainDateTime)).ToPlainTime()), nil
}

func plainDateTimeToZoned(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		zone string
		dis  disambiguationArg
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "zone", &zone, "disambiguation?", &dis); err != nil {
		return nil, err
	}
	z, err := temporal.PlainDateTime(recV.(PlainDateTime)).ToZonedDateTimeIn(zone, temporal.Disambiguation(dis), zoneProvider(thread))
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}

// ZonedDateTime

func (z ZonedDateTime) String() string { return temporal.ZonedDateTime(z).String() }
func (z ZonedDateTime) Type() string   { return "temporal.zoned_date_time" }
func (z ZonedDateTime) Freeze()        {}
func (z ZonedDateTime) Hash() (uint32, error) {
	x := temporal.ZonedDateTime(z)
	h, err := starlark.String(x.Zone()).Hash()
	return hashInt64(x.EpochMilliseconds()) ^ h, err
}
func (z ZonedDateTime) Truth() starlark.Bool { return true }

var zonedFields = []string{
	"year", "month", "day", "hour", "minute", "second", "millisecond",
	"offset", "offset_minutes", "zone", "epoch_milliseconds",
}

func (z ZonedDateTime) Attr(name string) (starlark.Value, error) {
	x := temporal.ZonedDateTime(z)
	switch name {
	case "year", "month", "day", "hour", "minute", "second", "millisecond":
		return PlainDateTime(x.ToPlainDateTime()).Attr(name)
	case "offset":
		return starlark.String(x.Offset()), nil
	case "offset_minutes":
		return starlark.MakeInt(x.OffsetMinutes()), nil
	case "zone":
		return starlark.String(x.Zone()), nil
	case "epoch_milliseconds":
		return starlark.MakeInt64(x.EpochMilliseconds()), nil
	}
	return builtinAttr(z, name, zonedMethods)
}

func (z ZonedDateTime) AttrNames() []string { return builtinAttrNames(zonedMethods, zonedFields...) }

func (z ZonedDateTime) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.ZonedDateTime(z).Compare(temporal.ZonedDateTime(yV.(ZonedDateTime)))), nil
}

func (z ZonedDateTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	return pointBinary(z, op, y, side)
}

var zonedMethods = withMethods(map[string]builtinMethod{
	"add":                zonedAdd,
	"subtract":           zonedSubtract,
	"to_instant":         zonedToInstant,
	"to_plain_date_time": zonedToPlainDateTime,
	"to_plain_date":      zonedToPlainDate,
	"to_plain_time":      zonedToPlainTime,
	"with_zone":          zonedWithZone,
})

func zonedShift(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple, sign int64) (starlark.Value, error) {
	var (
		d   Duration
		dis disambiguationArg
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs, "duration", &d, "disambiguation?", &dis); err != nil {
		return nil, err
	}
	dur := temporal.Duration(d)
	if sign < 0 {
		dur = dur.Negated()
	}
	z, err := temporal.ZonedDateTime(recV.(ZonedDateTime)).AddWith(dur, temporal.Disambiguation(dis))
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}

func zonedAdd(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return zonedShift(fnname, recV, args, kwargs, +1)
}

func zonedSubtract(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return zonedShift(fnname, recV, args, kwargs, -1)
}

func zonedToInstant(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fnname, args, kwargs); err != nil {
		return nil, err
	}
	return Instant(temporal.ZonedDateTime(recV.(ZonedDateTime)).ToInstant()), nil
}

func zonedToPlainDateTime(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fnname, args, kwargs); err != nil {
		return nil, err
	}
	return PlainDateTime(temporal.ZonedDateTime(recV.(ZonedDateTime)).ToPlainDateTime()), nil
}

func zonedToPlainDate(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fnname, args, kwargs); err != nil {
		return nil, err
	}
	return PlainDate(temporal.ZonedDateTime(recV.(ZonedDateTime)).ToPlainDate()), nil
}

func zonedToPlainTime(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fnname, args, kwargs); err != nil {
		return nil, err
	}
	return PlainTime(temporal.ZonedDateTime(recV.(ZonedDateTime)).ToPlainTime()), nil
}

func zonedWithZone(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var zone string
	if err := starlark.UnpackArgs(fnname, args, kwargs, "zone", &zone); err != nil {
		return nil, err
	}
	z, err := temporal.ZonedDateTime(recV.(ZonedDateTime)).WithZone(zone)
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}
