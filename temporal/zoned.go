package temporal

import (
	"fmt"
	"time"
)

// ZonedDateTime is an Instant paired with a time zone identifier.
//
// Only the instant and the zone name are stored. Every wall-clock field
// and the UTC offset are asked of the ZoneProvider on each access, so the
// calendar view always agrees with the instant, including after the
// zone's rules change between accesses.
type ZonedDateTime struct {
	ms       int64
	zone     string
	provider ZoneProvider
}

// NewZonedDateTime pairs i with zone using DefaultZoneProvider. It fails
// with ErrUnknownZone if the provider does not know zone.
func NewZonedDateTime(i Instant, zone string) (ZonedDateTime, error) {
	return NewZonedDateTimeIn(i, zone, DefaultZoneProvider)
}

// NewZonedDateTimeIn is like NewZonedDateTime with an explicit provider.
func NewZonedDateTimeIn(i Instant, zone string, p ZoneProvider) (ZonedDateTime, error) {
	if p == nil {
		p = DefaultZoneProvider
	}
	if _, err := p.Resolve(i.ms, zone); err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{ms: i.ms, zone: zone, provider: p}, nil
}

// ZonedDateTimeOf pairs the instant of t with zone. The location of t is
// not consulted.
func ZonedDateTimeOf(t time.Time, zone string) (ZonedDateTime, error) {
	return NewZonedDateTime(InstantOf(t), zone)
}

func (z ZonedDateTime) zones() ZoneProvider {
	if z.provider == nil {
		return DefaultZoneProvider
	}
	return z.provider
}

// Fields resolves the wall clock of z.
func (z ZonedDateTime) Fields() (ZoneFields, error) {
	return z.zones().Resolve(z.ms, z.zone)
}

// fields backs the individual getters. A value whose zone no longer
// resolves, such as the zero ZonedDateTime, reports zero fields; Fields
// returns the reason.
func (z ZonedDateTime) fields() ZoneFields {
	f, err := z.Fields()
	if err != nil {
		return ZoneFields{}
	}
	return f
}

func (z ZonedDateTime) Year() int          { return z.fields().Year }
func (z ZonedDateTime) Month() int         { return z.fields().Month }
func (z ZonedDateTime) Day() int           { return z.fields().Day }
func (z ZonedDateTime) Hour() int          { return z.fields().Hour }
func (z ZonedDateTime) Minute() int        { return z.fields().Minute }
func (z ZonedDateTime) Second() int        { return z.fields().Second }
func (z ZonedDateTime) Millisecond() int   { return int(floorMod(z.ms, msPerSecond)) }
func (z ZonedDateTime) OffsetMinutes() int { return z.fields().OffsetMinutes }

// Offset returns the UTC offset as "±HH:MM".
func (z ZonedDateTime) Offset() string { return formatOffset(z.OffsetMinutes()) }

func (z ZonedDateTime) Zone() string             { return z.zone }
func (z ZonedDateTime) EpochMilliseconds() int64 { return z.ms }

func (z ZonedDateTime) ToInstant() Instant { return Instant{ms: z.ms} }

func (z ZonedDateTime) ToPlainDateTime() PlainDateTime {
	f := z.fields()
	return PlainDateTime{
		date: PlainDate{days: epochDays(f.Year, f.Month, f.Day)},
		time: PlainTime{ms: f.Hour*msPerHour + f.Minute*msPerMinute + f.Second*msPerSecond + z.Millisecond()},
	}
}

func (z ZonedDateTime) ToPlainDate() PlainDate { return z.ToPlainDateTime().ToPlainDate() }
func (z ZonedDateTime) ToPlainTime() PlainTime { return z.ToPlainDateTime().ToPlainTime() }

// WithZone returns the same instant viewed from zone.
func (z ZonedDateTime) WithZone(zone string) (ZonedDateTime, error) {
	return NewZonedDateTimeIn(z.ToInstant(), zone, z.zones())
}

// Time returns z as a time.Time. With a LocationProvider the zone's
// *time.Location is attached; otherwise a fixed zone with the current
// offset.
func (z ZonedDateTime) Time() time.Time {
	t := time.UnixMilli(z.ms)
	if lp, ok := z.zones().(*LocationProvider); ok {
		if loc, err := lp.Location(z.zone); err == nil {
			return t.In(loc)
		}
	}
	return t.In(time.FixedZone(z.zone, z.OffsetMinutes()*60))
}

// Compare orders by instant and then by zone name, so that Compare
// returns 0 exactly when Equal holds.
func (z ZonedDateTime) Compare(o ZonedDateTime) int {
	if c := threeway(z.ms, o.ms); c != 0 {
		return c
	}
	return threeway(z.zone, o.zone)
}

// Equal reports whether z and o denote the same instant in the same zone.
// The same instant in two zones is not Equal.
func (z ZonedDateTime) Equal(o ZonedDateTime) bool { return z.ms == o.ms && z.zone == o.zone }

// Add is AddWith(d, Compatible).
func (z ZonedDateTime) Add(d Duration) (ZonedDateTime, error) { return z.AddWith(d, Compatible) }

// AddWith projects z to its wall clock, adds d there as PlainDateTime.Add
// does, and reinterprets the result in the same zone, at whatever offset
// applies then. dis settles results that fall in a gap or an overlap.
func (z ZonedDateTime) AddWith(d Duration, dis Disambiguation) (ZonedDateTime, error) {
	local := z.ToPlainDateTime().Add(d).localMilliseconds()
	ms, err := disambiguate(z.zones(), z.zone, local, dis)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{ms: ms, zone: z.zone, provider: z.provider}, nil
}

// Subtract is Add(d.Negated()).
func (z ZonedDateTime) Subtract(d Duration) (ZonedDateTime, error) { return z.Add(d.Negated()) }

// SubtractWith is AddWith(d.Negated(), dis).
func (z ZonedDateTime) SubtractWith(d Duration, dis Disambiguation) (ZonedDateTime, error) {
	return z.AddWith(d.Negated(), dis)
}

// Until returns the elapsed time from z to o as days of 24 hours, hours,
// minutes, seconds and milliseconds.
func (z ZonedDateTime) Until(o ZonedDateTime) Duration { return splitDays(o.ms - z.ms) }

// Since returns the elapsed time from o to z.
func (z ZonedDateTime) Since(o ZonedDateTime) Duration { return splitDays(z.ms - o.ms) }

// String returns "<date>T<time>±HH:MM[zone]".
// A value whose zone does not resolve is rendered as its instant and zone
// followed by the resolution error.
func (z ZonedDateTime) String() string {
	if _, err := z.Fields(); err != nil {
		return fmt.Sprintf("%s[%s] (%v)", z.ToInstant(), z.zone, err)
	}
	return z.ToPlainDateTime().String() + z.Offset() + "[" + z.zone + "]"
}

// ParseZonedDateTime parses the form produced by String using
// DefaultZoneProvider.
func ParseZonedDateTime(s string) (ZonedDateTime, error) {
	return ParseZonedDateTimeIn(s, DefaultZoneProvider)
}

// ParseZonedDateTimeIn parses "<date>T<time>[±HH:MM][zone]". With an
// offset, it must match the zone's offset at that instant. Without one,
// the wall time is placed in the zone with Compatible disambiguation.
func ParseZonedDateTimeIn(s string, p ZoneProvider) (ZonedDateTime, error) {
	const typ = "zoned date-time"
	dt, rest, err := scanDateTime(s)
	if err != nil {
		return ZonedDateTime{}, parseErr(typ, s, err.Error())
	}
	hasOffset := len(rest) > 0 && rest[0] != '['
	var off int
	if hasOffset {
		if off, rest, err = scanOffset(rest); err != nil {
			return ZonedDateTime{}, parseErr(typ, s, err.Error())
		}
	}
	zone, rest, err := scanZone(rest)
	if err != nil {
		return ZonedDateTime{}, parseErr(typ, s, err.Error())
	}
	if rest != "" {
		return ZonedDateTime{}, parseErr(typ, s, fmt.Sprintf("trailing %q", rest))
	}
	if !hasOffset {
		return dt.ToZonedDateTimeIn(zone, Compatible, p)
	}
	i, ok := instantAt(dt, off)
	if !ok {
		return ZonedDateTime{}, parseErr(typ, s, "out of range")
	}
	z, err := NewZonedDateTimeIn(i, zone, p)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if got := z.OffsetMinutes(); got != off {
		return ZonedDateTime{}, parseErr(typ, s,
			fmt.Sprintf("offset %s does not match zone offset %s", formatOffset(off), formatOffset(got)))
	}
	return z, nil
}

// MarshalText fails when the zone does not resolve.
func (z ZonedDateTime) MarshalText() ([]byte, error) {
	if _, err := z.Fields(); err != nil {
		return nil, err
	}
	return []byte(z.String()), nil
}

// UnmarshalText parses with DefaultZoneProvider.
func (z *ZonedDateTime) UnmarshalText(b []byte) error {
	v, err := ParseZonedDateTime(string(b))
	if err != nil {
		return err
	}
	*z = v
	return nil
}
