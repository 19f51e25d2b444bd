package temporal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.starlark.net/starlark"

	"github.com/calclock/calclock/temporal"
	"github.com/calclock/calclock/tz"
)

const pacific = `
zones:
  Test/Pacific:
    offset: "-08:00"
    transitions:
      - {at: "2024-03-10T10:00:00Z", offset: "-07:00"}
      - {at: "2024-11-03T09:00:00Z", offset: "-08:00"}
`

func newThread(t *testing.T) *starlark.Thread {
	t.Helper()
	table, err := tz.ParseTable([]byte(pacific))
	if err != nil {
		t.Fatal(err)
	}
	th := &starlark.Thread{Name: t.Name()}
	SetZoneProvider(th, table)
	return th
}

// exec runs src as the body of a function, where control flow is allowed.
func exec(t *testing.T, src string) error {
	t.Helper()
	var body strings.Builder
	body.WriteString("def main():\n")
	for _, line := range strings.Split(strings.TrimSpace(src), "\n") {
		body.WriteString("    " + line + "\n")
	}
	body.WriteString("main()\n")
	_, err := starlark.ExecFile(newThread(t), t.Name()+".star", body.String(), starlark.StringDict{ModuleName: Module})
	return err
}

func TestScripts(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
	}{
		{"date rollover", `
d = temporal.plain_date(2024, 3, 25) + temporal.duration(days = 7)
if (d.year, d.month, d.day) != (2024, 4, 1): fail(d)
if str(d) != "2024-04-01": fail(str(d))
`},
		{"time wraps", `
t = temporal.plain_time(23) + temporal.parse_duration("PT3H")
if t != temporal.plain_time(2): fail(t)
if t.add("P1D") != t: fail("days moved a plain time")
`},
		{"duration", `
d = temporal.parse_duration("P1DT12H")
if d.total("hours") != 36.0: fail(d.total("hours"))
if (d.days, d.hours, d.sign) != (1, 12, 1): fail(d)
if str(-d) != "-P1DT12H": fail(str(-d))
if d * 2 != temporal.duration(days = 2, hours = 24): fail(d * 2)
if d - d: fail("d - d is not blank")
if not d: fail("d is blank")
if d.abs() != d.negated().abs(): fail("abs")
if temporal.duration(): fail("blank duration is true")
if not bool(temporal.duration(days = 1)): fail("bool")
if bool(temporal.parse_duration("PT0S")): fail("PT0S is true")
`},
		{"differences", `
a = temporal.plain_date_time(2024, 3, 25, 10)
b = temporal.plain_date_time(2024, 3, 27, 12, 30, 15, 250)
want = temporal.duration(days = 2, hours = 2, minutes = 30, seconds = 15, milliseconds = 250)
if b - a != want: fail(b - a)
if a.until(b) != want: fail(a.until(b))
if a.since(b) != -want: fail(a.since(b))
if a + (b - a) != b: fail("a + (b - a)")
if not a < b: fail("ordering")
`},
		{"month rollover", `
d = temporal.parse_plain_date("2023-01-31")
if str(d + temporal.duration(months = 1)) != "2023-03-03": fail(d + temporal.duration(months = 1))
if str(d.add_constrained("P1M")) != "2023-02-28": fail(d.add_constrained("P1M"))
`},
		{"replace", `
d = temporal.plain_date(2024, 1, 31).replace(month = 3)
if d != temporal.plain_date(2024, 3, 31): fail(d)
dt = temporal.parse_plain_date_time("2024-03-05T07:08:09.010").replace(hour = 0, millisecond = 0)
if str(dt) != "2024-03-05T00:08:09": fail(str(dt))
`},
		{"zoned", `
z = temporal.instant(0).to_zoned_date_time("Test/Pacific")
if (z.hour, z.offset) != (16, "-08:00"): fail(z)
s = temporal.parse_instant("2024-03-25T18:00:00Z").to_zoned_date_time("Test/Pacific")
if (s.hour, s.offset_minutes) != (11, -420): fail(s)
if str(s) != "2024-03-25T11:00:00-07:00[Test/Pacific]": fail(str(s))
if temporal.parse_zoned_date_time(str(s)) != s: fail("round trip")
gap = temporal.plain_date_time(2024, 3, 10, 2, 30)
if gap.to_zoned_date_time("Test/Pacific").hour != 3: fail("compatible")
if gap.to_zoned_date_time("Test/Pacific", disambiguation = "earlier").hour != 1: fail("earlier")
day = temporal.parse_zoned_date_time("2024-03-09T03:30[Test/Pacific]")
next = day + temporal.duration(days = 1)
if next - day != temporal.duration(hours = 23): fail(next - day)
if next.to_plain_time() != temporal.plain_time(3, 30): fail(next)
if temporal.zoned_date_time(s.to_instant(), "Test/Pacific") != s: fail("constructor")
`},
		{"hashable", `
d = {temporal.plain_date(2024, 1, 1): "a", temporal.instant(5): "b", temporal.duration(days = 1): "c"}
if d[temporal.parse_plain_date("2024-01-01")] != "a": fail(d)
if d[temporal.parse_duration("P1D")] != "c": fail(d)
`},
		{"sorting", `
xs = sorted([temporal.plain_time(12), temporal.midnight, temporal.plain_time(6)])
if [str(x) for x in xs] != ["00:00:00", "06:00:00", "12:00:00"]: fail(xs)
`},
	} {
		t.Run(test.name, func(t *testing.T) {
			if err := exec(t, test.src); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestScriptErrors(t *testing.T) {
	for _, test := range []struct {
		src, want string
	}{
		{`temporal.plain_date(2023, 2, 29)`, "invalid date"},
		{`temporal.plain_time(24)`, "invalid time"},
		{`temporal.parse_duration("P1.5D")`, "cannot parse"},
		{`temporal.instant(0) + temporal.duration(months = 1)`, "calendar units"},
		{`temporal.instant(0).to_zoned_date_time("Mars/Olympus")`, "unknown time zone"},
		{`temporal.plain_date_time(2024, 3, 10, 2, 30).to_zoned_date_time("Test/Pacific", disambiguation = "reject")`, "skipped"},
		{`temporal.plain_date(2024, 1, 1).replace(hour = 1)`, "unknown field"},
		{`temporal.duration(days = 1) < temporal.duration(days = 2)`, "not supported"},
		{`temporal.plain_date(2024, 1, 1) - temporal.plain_time(1)`, "unknown binary op"},
		{`temporal.plain_date(2024, 1, 1).until(temporal.instant(0))`, "want temporal.plain_date"},
	} {
		err := exec(t, test.src)
		if err == nil {
			t.Errorf("%s: no error", test.src)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: error %q does not mention %q", test.src, err, test.want)
		}
	}
}

func TestPerThreadNowReturnsCorrectInstant(t *testing.T) {
	th := &starlark.Thread{}
	date := temporal.InstantOf(time.Date(2001, 2, 3, 4, 5, 6, 7_000_000, time.UTC))
	SetNow(th, func() (temporal.Instant, error) {
		return date, nil
	})

	res, err := starlark.Call(th, Module.Members["now"], nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := temporal.Instant(res.(Instant)); !got.Equal(date) {
		t.Fatal("Expected instant to be equal", got, date)
	}
}

func TestPerThreadNowReturnsError(t *testing.T) {
	th := &starlark.Thread{}
	e := errors.New("no time")
	SetNow(th, func() (temporal.Instant, error) {
		return temporal.Instant{}, e
	})

	_, err := starlark.Call(th, Module.Members["now"], nil, nil)
	if !errors.Is(err, e) {
		t.Fatal("Expected equal error", e, err)
	}
}

func TestGlobalNowReturnsCorrectInstant(t *testing.T) {
	th := &starlark.Thread{}

	oldNow := NowFunc
	defer func() {
		NowFunc = oldNow
	}()

	date := temporal.InstantFromEpochMilliseconds(981_173_106_007)
	NowFunc = func() temporal.Instant {
		return date
	}

	res, err := starlark.Call(th, Module.Members["now"], nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := temporal.Instant(res.(Instant)); !got.Equal(date) {
		t.Fatal("Expected instant to be equal", got, date)
	}
}

func TestGlobalNowReturnsErrorWhenNil(t *testing.T) {
	th := &starlark.Thread{}

	oldNow := NowFunc
	defer func() {
		NowFunc = oldNow
	}()

	NowFunc = nil

	_, err := starlark.Call(th, Module.Members["now"], nil, nil)
	if err == nil {
		t.Fatal("Expected to get an error")
	}
}
