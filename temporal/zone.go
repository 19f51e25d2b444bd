package temporal

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ZoneFields is the wall-clock reading of an instant in a zone.
type ZoneFields struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	OffsetMinutes        int // east of UTC
}

// A ZoneProvider knows the offset rules of named time zones. Resolve
// reports the wall clock and UTC offset at an instant, and must fail with
// an error wrapping ErrUnknownZone for zones it does not know.
//
// Providers are read-only collaborators and must be safe for concurrent
// use.
type ZoneProvider interface {
	Resolve(epochMilliseconds int64, zone string) (ZoneFields, error)
}

// DefaultZoneProvider is used by every constructor that does not take an
// explicit provider. Intentionally exported so that applications and tests
// can substitute a fixed or synthetic zone table; it should be set once,
// before use.
var DefaultZoneProvider ZoneProvider = SystemZones

// SystemZones resolves zones with the platform time zone database through
// time.LoadLocation.
var SystemZones = &LocationProvider{}

// FieldsAt computes the wall clock at epoch milliseconds ms for a zone
// whose offset there is offsetMinutes. It is a helper for providers that
// know offsets but not calendars.
func FieldsAt(ms int64, offsetMinutes int) ZoneFields {
	dt := plainDateTimeFromLocal(ms + int64(offsetMinutes)*msPerMinute)
	return ZoneFields{
		Year:          dt.Year(),
		Month:         dt.Month(),
		Day:           dt.Day(),
		Hour:          dt.Hour(),
		Minute:        dt.Minute(),
		Second:        dt.Second(),
		OffsetMinutes: offsetMinutes,
	}
}

// ParseOffset parses "Z", "±HH:MM" or "±HHMM" into minutes east of UTC.
func ParseOffset(s string) (int, error) {
	off, rest, err := scanOffset(s)
	if err == nil && rest != "" {
		err = fmt.Errorf("trailing %q", rest)
	}
	if err != nil {
		return 0, parseErr("UTC offset", s, err.Error())
	}
	return off, nil
}

// FormatOffset renders minutes east of UTC as "±HH:MM".
func FormatOffset(minutes int) string { return formatOffset(minutes) }

// LocationProvider is a ZoneProvider backed by *time.Location values.
// Besides IANA names it accepts "UTC", "Z" and fixed offsets such as
// "+05:30". Loaded locations are memoized.
type LocationProvider struct {
	locs sync.Map // zone -> *time.Location
}

// Location returns the *time.Location for zone.
func (p *LocationProvider) Location(zone string) (*time.Location, error) {
	if v, ok := p.locs.Load(zone); ok {
		return v.(*time.Location), nil
	}
	loc, err := loadLocation(zone)
	if err != nil {
		return nil, err
	}
	v, _ := p.locs.LoadOrStore(zone, loc)
	return v.(*time.Location), nil
}

func loadLocation(zone string) (*time.Location, error) {
	switch {
	case zone == "":
		return nil, unknownZone(zone)
	case zone == "UTC" || zone == "Z":
		return time.UTC, nil
	case strings.HasPrefix(zone, "+") || strings.HasPrefix(zone, "-"):
		off, err := ParseOffset(zone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", unknownZone(zone), err)
		}
		return time.FixedZone(zone, off*60), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", unknownZone(zone), err)
	}
	return loc, nil
}

func (p *LocationProvider) Resolve(ms int64, zone string) (ZoneFields, error) {
	loc, err := p.Location(zone)
	if err != nil {
		return ZoneFields{}, err
	}
	t := time.UnixMilli(ms).In(loc)
	_, off := t.Zone()
	return ZoneFields{
		Year:          t.Year(),
		Month:         int(t.Month()),
		Day:           t.Day(),
		Hour:          t.Hour(),
		Minute:        t.Minute(),
		Second:        t.Second(),
		OffsetMinutes: off / 60,
	}, nil
}

// Disambiguation chooses an instant for a wall-clock time that a zone
// repeats (an overlap, when clocks fall back) or skips (a gap, when clocks
// spring forward).
type Disambiguation int

const (
	// Compatible takes the earlier instant in an overlap and, in a gap,
	// moves the wall time forward by the length of the gap.
	Compatible Disambiguation = iota
	// Earlier takes the earlier instant in an overlap and, in a gap, moves
	// the wall time backward by the length of the gap.
	Earlier
	// Later takes the later instant in an overlap and, in a gap, moves the
	// wall time forward by the length of the gap.
	Later
	// Reject fails with ErrAmbiguousTime or ErrSkippedTime.
	Reject
)

func (d Disambiguation) String() string {
	switch d {
	case Compatible:
		return "compatible"
	case Earlier:
		return "earlier"
	case Later:
		return "later"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("Disambiguation(%d)", int(d))
}

// ParseDisambiguation maps "compatible", "earlier", "later" or "reject"
// to its policy.
func ParseDisambiguation(s string) (Disambiguation, error) {
	for d := Compatible; d <= Reject; d++ {
		if s == d.String() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown disambiguation %q", s)
}

// disambiguate finds the epoch milliseconds at which zone reads the wall
// clock local (expressed as milliseconds with the wall clock read as UTC).
// The candidate offsets are the zone's offsets a day either side, which
// covers every real-world transition.
func disambiguate(p ZoneProvider, zone string, local int64, dis Disambiguation) (int64, error) {
	before, err := p.Resolve(local-msPerDay, zone)
	if err != nil {
		return 0, err
	}
	after, err := p.Resolve(local+msPerDay, zone)
	if err != nil {
		return 0, err
	}
	offsets := []int{before.OffsetMinutes}
	if after.OffsetMinutes != before.OffsetMinutes {
		offsets = append(offsets, after.OffsetMinutes)
	}

	var candidates []int64
	for _, off := range offsets {
		ms := local - int64(off)*msPerMinute
		f, err := p.Resolve(ms, zone)
		if err != nil {
			return 0, err
		}
		if f.OffsetMinutes == off {
			candidates = append(candidates, ms)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		wall := plainDateTimeFromLocal(local)
		switch dis {
		case Reject:
			return 0, fmt.Errorf("%w: %s in %s", ErrSkippedTime, wall, zone)
		case Earlier:
			return local - int64(after.OffsetMinutes)*msPerMinute, nil
		default:
			return local - int64(before.OffsetMinutes)*msPerMinute, nil
		}
	default:
		switch dis {
		case Reject:
			return 0, fmt.Errorf("%w: %s in %s", ErrAmbiguousTime, plainDateTimeFromLocal(local), zone)
		case Later:
			return candidates[len(candidates)-1], nil
		default:
			return candidates[0], nil
		}
	}
}
