// Package temporalpb converts temporal values to and from the protocol
// buffer well-known types google.protobuf.Timestamp and
// google.protobuf.Duration.
//
// Both well-known types have nanosecond resolution. Conversions into the
// temporal package drop the sub-millisecond part.
package temporalpb

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/calclock/calclock/temporal"
)

// FromInstant returns i as a Timestamp.
func FromInstant(i temporal.Instant) *timestamppb.Timestamp {
	return timestamppb.New(i.Time())
}

// ToInstant returns the Instant of ts. It fails if ts is nil or outside
// the range the Timestamp message permits.
func ToInstant(ts *timestamppb.Timestamp) (temporal.Instant, error) {
	if err := ts.CheckValid(); err != nil {
		return temporal.Instant{}, err
	}
	return temporal.InstantOf(ts.AsTime()), nil
}

// FromDuration returns the fixed length of d as a Duration message. A
// duration with years or months fails with temporal.ErrCalendarUnits, since
// the message has no calendar units.
func FromDuration(d temporal.Duration) (*durationpb.Duration, error) {
	ms, err := d.FixedMilliseconds()
	if err != nil {
		return nil, err
	}
	const maxMs = int64(1<<63-1) / int64(time.Millisecond)
	if ms > maxMs || ms < -maxMs {
		return nil, fmt.Errorf("duration %s out of range", d)
	}
	return durationpb.New(time.Duration(ms) * time.Millisecond), nil
}

// ToDuration returns pb as hours, minutes, seconds and milliseconds.
// Durations beyond the range of time.Duration, about 292 years, saturate.
func ToDuration(pb *durationpb.Duration) (temporal.Duration, error) {
	if err := pb.CheckValid(); err != nil {
		return temporal.Duration{}, err
	}
	return temporal.DurationOf(pb.AsDuration()), nil
}

// FromZonedDateTime returns the instant of z as a Timestamp together with
// its zone name; the Timestamp message has no room for the zone.
func FromZonedDateTime(z temporal.ZonedDateTime) (*timestamppb.Timestamp, string) {
	return FromInstant(z.ToInstant()), z.Zone()
}

// ToZonedDateTime pairs the instant of ts with zone, resolved by p. A nil
// p means temporal.DefaultZoneProvider.
func ToZonedDateTime(ts *timestamppb.Timestamp, zone string, p temporal.ZoneProvider) (temporal.ZonedDateTime, error) {
	i, err := ToInstant(ts)
	if err != nil {
		return temporal.ZonedDateTime{}, err
	}
	return temporal.NewZonedDateTimeIn(i, zone, p)
}
