package temporal

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPlainDateMonthRollover(t *testing.T) {
	got := MustPlainDate(2024, 3, 25).Add(Duration{Days: 7})
	if got.Year() != 2024 || got.Month() != 4 || got.Day() != 1 {
		t.Fatalf("2024-03-25 + 7 days = %s, want 2024-04-01", got)
	}
}

func TestPlainDateAdd(t *testing.T) {
	for _, test := range []struct {
		from        PlainDate
		d           Duration
		want        string
		constrained string
	}{
		{MustPlainDate(2023, 1, 31), Duration{Months: 1}, "2023-03-03", "2023-02-28"},
		{MustPlainDate(2024, 1, 31), Duration{Months: 1}, "2024-03-02", "2024-02-29"},
		{MustPlainDate(2024, 2, 29), Duration{Years: 1}, "2025-03-01", "2025-02-28"},
		{MustPlainDate(2024, 3, 31), Duration{Months: -1}, "2024-03-02", "2024-02-29"},
		{MustPlainDate(2024, 5, 15), Duration{Years: 1, Months: 8, Weeks: 1, Days: 1}, "2026-01-23", "2026-01-23"},
		{MustPlainDate(2024, 1, 1), Duration{Hours: 49, Minutes: 59}, "2024-01-03", "2024-01-03"},
		{MustPlainDate(2024, 1, 1), Duration{Days: -1}, "2023-12-31", "2023-12-31"},
	} {
		if got := test.from.Add(test.d).String(); got != test.want {
			t.Errorf("%s + %s = %s, want %s", test.from, test.d, got, test.want)
		}
		if got := test.from.AddConstrained(test.d).String(); got != test.constrained {
			t.Errorf("%s + %s (constrained) = %s, want %s", test.from, test.d, got, test.constrained)
		}
	}
}

func TestPlainDateSubtract(t *testing.T) {
	d := MustPlainDate(2024, 4, 1)
	if got := d.Subtract(Duration{Days: 7}); !got.Equal(MustPlainDate(2024, 3, 25)) {
		t.Errorf("Subtract = %s", got)
	}
}

func TestNewPlainDateValidates(t *testing.T) {
	for _, f := range [][3]int{
		{2024, 13, 1},
		{2024, 0, 1},
		{2024, 1, 32},
		{2024, 4, 31},
		{2023, 2, 29},
		{1900, 2, 29},
		{2024, 1, 0},
	} {
		if d, err := NewPlainDate(f[0], f[1], f[2]); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("NewPlainDate%v = %s, %v, want ErrInvalidDate", f, d, err)
		}
	}
	if _, err := NewPlainDate(2000, 2, 29); err != nil {
		t.Errorf("2000-02-29: %v", err)
	}
}

func TestPlainDateDerivedFields(t *testing.T) {
	for _, test := range []struct {
		d                         PlainDate
		dow, doy, woy, dim, diy   int
		leap                      bool
	}{
		{MustPlainDate(2024, 3, 25), 1, 85, 13, 31, 366, true},
		{MustPlainDate(2021, 1, 3), 7, 3, 53, 31, 365, false},
		{MustPlainDate(2024, 12, 30), 1, 365, 1, 31, 366, true},
		{MustPlainDate(2023, 2, 14), 2, 45, 7, 28, 365, false},
		{MustPlainDate(1970, 1, 1), 4, 1, 1, 31, 365, false},
	} {
		got := []int{test.d.DayOfWeek(), test.d.DayOfYear(), test.d.WeekOfYear(), test.d.DaysInMonth(), test.d.DaysInYear()}
		want := []int{test.dow, test.doy, test.woy, test.dim, test.diy}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s derived fields (-want +got):\n%s", test.d, diff)
		}
		if test.d.InLeapYear() != test.leap {
			t.Errorf("%s.InLeapYear() = %t", test.d, !test.leap)
		}
	}
}

func TestPlainDateUntilSince(t *testing.T) {
	a, b := MustPlainDate(2024, 1, 1), MustPlainDate(2024, 3, 1)
	if diff := cmp.Diff(Duration{Days: 60}, a.Until(b)); diff != "" {
		t.Errorf("Until (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Duration{Days: -60}, a.Since(b)); diff != "" {
		t.Errorf("Since (-want +got):\n%s", diff)
	}
	if got := a.Add(a.Until(b)); !got.Equal(b) {
		t.Errorf("a + a.Until(b) = %s, want %s", got, b)
	}
}

func TestPlainDateFormatRoundTrip(t *testing.T) {
	for y := -2; y <= 10001; y += 97 {
		for m := 1; m <= 12; m++ {
			for _, day := range []int{1, 15, daysIn(y, m)} {
				d := MustPlainDate(y, m, day)
				back, err := ParsePlainDate(d.String())
				if err != nil {
					t.Fatalf("ParsePlainDate(%q): %v", d, err)
				}
				if !back.Equal(d) {
					t.Fatalf("round trip of %s gave %s", d, back)
				}
			}
		}
	}
}

func TestPlainDateString(t *testing.T) {
	for _, test := range []struct {
		d    PlainDate
		want string
	}{
		{MustPlainDate(2024, 3, 5), "2024-03-05"},
		{MustPlainDate(12, 1, 1), "0012-01-01"},
		{MustPlainDate(-1, 6, 1), "-000001-06-01"},
		{MustPlainDate(12345, 1, 1), "+012345-01-01"},
		{PlainDate{}, "1970-01-01"},
	} {
		if got := test.d.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestParsePlainDateErrors(t *testing.T) {
	for _, in := range []string{"", "2024-3-05", "2024-02-30", "2024-13-01", "20240305", "2024-03-05T00:00", "-000000-01-01"} {
		if _, err := ParsePlainDate(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("ParsePlainDate(%q) error = %v, want ErrSyntax", in, err)
		}
	}
}

func TestPlainDateWith(t *testing.T) {
	d := MustPlainDate(2024, 1, 31)
	got, err := d.With(Fields{Month: 3})
	if err != nil || !got.Equal(MustPlainDate(2024, 3, 31)) {
		t.Errorf("With(month 3) = %s, %v", got, err)
	}
	if _, err := d.With(Fields{Month: 2}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("With(month 2) on the 31st: err = %v, want ErrInvalidDate", err)
	}
	if _, err := d.With(Fields{Hour: 1}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("With(hour) err = %v", err)
	}
}

func TestPlainDateConversions(t *testing.T) {
	loc := time.FixedZone("east", 14*3600)
	tm := time.Date(2024, 3, 25, 23, 0, 0, 0, loc)
	d := PlainDateOf(tm)
	if !d.Equal(MustPlainDate(2024, 3, 25)) {
		t.Errorf("PlainDateOf uses the time's own location, got %s", d)
	}
	if got := d.In(loc); !got.Equal(time.Date(2024, 3, 25, 0, 0, 0, 0, loc)) {
		t.Errorf("In = %v", got)
	}
	dt := d.ToPlainDateTime(MustPlainTime(6, 0, 0, 0))
	if !dt.ToPlainDate().Equal(d) || dt.ToPlainTime() != MustPlainTime(6, 0, 0, 0) {
		t.Errorf("ToPlainDateTime lost information: %s", dt)
	}
}
