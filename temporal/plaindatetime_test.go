package temporal

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPlainDateTimeCarriesIntoDate(t *testing.T) {
	got := MustPlainDateTime(2024, 3, 25, 23, 0, 0, 0).Add(Duration{Hours: 3})
	if want := MustPlainDateTime(2024, 3, 26, 2, 0, 0, 0); !got.Equal(want) {
		t.Fatalf("23:00 + 3h = %s, want %s", got, want)
	}
	got = MustPlainDateTime(2024, 1, 1, 0, 0, 0, 0).Subtract(Duration{Milliseconds: 1})
	if want := MustPlainDateTime(2023, 12, 31, 23, 59, 59, 999); !got.Equal(want) {
		t.Errorf("midnight - 1ms = %s, want %s", got, want)
	}
}

func TestPlainDateTimeAddCalendarFirst(t *testing.T) {
	got := MustPlainDateTime(2024, 1, 31, 12, 0, 0, 0).Add(Duration{Months: 1, Hours: 13})
	// Jan 31 + 1 month rolls over to Mar 2, then 13 hours crosses midnight.
	if want := MustPlainDateTime(2024, 3, 3, 1, 0, 0, 0); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPlainDateTimeUntil(t *testing.T) {
	a := MustPlainDateTime(2024, 3, 25, 10, 0, 0, 0)
	b := MustPlainDateTime(2024, 3, 27, 12, 30, 15, 250)
	want := Duration{Days: 2, Hours: 2, Minutes: 30, Seconds: 15, Milliseconds: 250}
	if diff := cmp.Diff(want, a.Until(b)); diff != "" {
		t.Errorf("Until (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Negated(), a.Since(b)); diff != "" {
		t.Errorf("Since (-want +got):\n%s", diff)
	}
	// Never months or years.
	long := MustPlainDateTime(2020, 1, 1, 0, 0, 0, 0).Until(MustPlainDateTime(2021, 1, 1, 0, 0, 0, 0))
	if diff := cmp.Diff(Duration{Days: 366}, long); diff != "" {
		t.Errorf("year-long Until (-want +got):\n%s", diff)
	}
	if got := a.Add(a.Until(b)); !got.Equal(b) {
		t.Errorf("a + a.Until(b) = %s, want %s", got, b)
	}
}

func TestPlainDateTimeText(t *testing.T) {
	dt := MustPlainDateTime(2024, 3, 5, 7, 8, 9, 10)
	if got, want := dt.String(), "2024-03-05T07:08:09.010"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back, err := ParsePlainDateTime(dt.String())
	if err != nil || !back.Equal(dt) {
		t.Errorf("ParsePlainDateTime = %s, %v", back, err)
	}
	for _, in := range []string{"2024-03-05", "2024-03-05T", "2024-03-05T25:00", "2024-03-05T10:00Z"} {
		if _, err := ParsePlainDateTime(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("ParsePlainDateTime(%q) error = %v", in, err)
		}
	}
}

func TestPlainDateTimeWith(t *testing.T) {
	dt := MustPlainDateTime(2024, 3, 5, 7, 8, 9, 10)
	got, err := dt.With(Fields{Day: 1, Hour: 0, Millisecond: 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := MustPlainDateTime(2024, 3, 1, 0, 8, 9, 0); !got.Equal(want) {
		t.Errorf("With = %s, want %s", got, want)
	}
	if _, err := dt.With(Fields{Minute: 61}); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("With(minute 61) error = %v", err)
	}
	if got, err := dt.With(Fields{Field(99): 3}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("With(Field(99)) = %s, %v; want ErrUnknownField", got, err)
	}
}

func TestPlainDateTimeCompare(t *testing.T) {
	a := MustPlainDateTime(2024, 3, 5, 23, 59, 59, 999)
	b := MustPlainDateTime(2024, 3, 6, 0, 0, 0, 0)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare(%s, %s) inconsistent", a, b)
	}
}

func TestPlainDateTimeOf(t *testing.T) {
	tm := time.Date(2024, 7, 4, 9, 30, 1, 2_000_000, time.FixedZone("x", -5*3600))
	dt := PlainDateTimeOf(tm)
	if want := MustPlainDateTime(2024, 7, 4, 9, 30, 1, 2); !dt.Equal(want) {
		t.Errorf("PlainDateTimeOf = %s, want %s", dt, want)
	}
	if got := dt.In(tm.Location()); !got.Equal(tm) {
		t.Errorf("In = %v, want %v", got, tm)
	}
}
