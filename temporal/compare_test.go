package temporal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompareAgreesWithEqual(t *testing.T) {
	dates := []PlainDate{
		MustPlainDate(2024, 3, 25),
		MustPlainDate(2024, 3, 25),
		MustPlainDate(1999, 12, 31),
		MustPlainDate(-5, 1, 1),
	}
	for _, a := range dates {
		for _, b := range dates {
			if (a.Compare(b) == 0) != a.Equal(b) {
				t.Errorf("%s vs %s: Compare = %d, Equal = %t", a, b, a.Compare(b), a.Equal(b))
			}
			if a.Compare(b) != -b.Compare(a) {
				t.Errorf("%s vs %s: Compare is not antisymmetric", a, b)
			}
		}
	}
}

func TestSortEarliestLatest(t *testing.T) {
	times := []PlainTime{
		MustPlainTime(12, 0, 0, 0),
		MustPlainTime(0, 0, 0, 1),
		MustPlainTime(23, 59, 0, 0),
		MidnightTime,
	}
	if got, want := Earliest(times...), MidnightTime; !got.Equal(want) {
		t.Errorf("Earliest = %s, want %s", got, want)
	}
	if got, want := Latest(times...), MustPlainTime(23, 59, 0, 0); !got.Equal(want) {
		t.Errorf("Latest = %s, want %s", got, want)
	}

	Sort(times)
	var got []string
	for _, tm := range times {
		got = append(got, tm.String())
	}
	want := []string{"00:00:00", "00:00:00.001", "12:00:00", "23:59:00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort (-want +got):\n%s", diff)
	}

	if got := Earliest[Instant](); !got.Equal(Instant{}) {
		t.Errorf("Earliest() = %s, want the zero Instant", got)
	}
}

func TestSortZonedByInstantThenZone(t *testing.T) {
	i := MustParseInstant("2024-03-25T18:00:00Z")
	zoned := func(i Instant, zone string) ZonedDateTime {
		z, err := NewZonedDateTimeIn(i, zone, SystemZones)
		if err != nil {
			t.Fatal(err)
		}
		return z
	}
	earlier, _ := i.Subtract(Duration{Milliseconds: 1})
	xs := []ZonedDateTime{zoned(i, "UTC"), zoned(i, "+01:00"), zoned(earlier, "UTC")}
	Sort(xs)
	var got []string
	for _, z := range xs {
		got = append(got, z.ToInstant().String()+" "+z.Zone())
	}
	want := []string{
		"2024-03-25T17:59:59.999Z UTC",
		"2024-03-25T18:00:00.000Z +01:00",
		"2024-03-25T18:00:00.000Z UTC",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort (-want +got):\n%s", diff)
	}
}
