package temporal

import (
	"errors"
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/calclock/calclock/temporal"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "temporal"

// Module temporal is a Starlark module of calendar and clock values.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"instant":         starlark.NewBuiltin("instant", newInstant),
		"duration":        starlark.NewBuiltin("duration", newDuration),
		"plain_time":      starlark.NewBuiltin("plain_time", newPlainTime),
		"plain_date":      starlark.NewBuiltin("plain_date", newPlainDate),
		"plain_date_time": starlark.NewBuiltin("plain_date_time", newPlainDateTime),
		"zoned_date_time": starlark.NewBuiltin("zoned_date_time", newZonedDateTime),

		"parse_instant":         starlark.NewBuiltin("parse_instant", parseInstant),
		"parse_duration":        starlark.NewBuiltin("parse_duration", parseDuration),
		"parse_plain_time":      starlark.NewBuiltin("parse_plain_time", parsePlainTime),
		"parse_plain_date":      starlark.NewBuiltin("parse_plain_date", parsePlainDate),
		"parse_plain_date_time": starlark.NewBuiltin("parse_plain_date_time", parsePlainDateTime),
		"parse_zoned_date_time": starlark.NewBuiltin("parse_zoned_date_time", parseZonedDateTime),

		"now": starlark.NewBuiltin("now", now),

		"midnight": PlainTime(temporal.MidnightTime),
		"epoch":    Instant{},
	},
}

// LoadModule loads the temporal module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// NowFunc is a function that generates the current instant. Intentionally
// exported so that it can be overridden, for example by applications that
// require their Starlark scripts to be fully deterministic.
var NowFunc = temporal.Now

const (
	nowKey   = "calclock.temporal.now"
	zonesKey = "calclock.temporal.zones"
)

// SetNow sets the clock read by now() in scripts run by thread, taking
// precedence over NowFunc.
func SetNow(thread *starlark.Thread, nowFunc func() (temporal.Instant, error)) {
	thread.SetLocal(nowKey, nowFunc)
}

// SetZoneProvider sets the provider that resolves zones for values created
// by scripts run by thread. The default is temporal.DefaultZoneProvider.
func SetZoneProvider(thread *starlark.Thread, p temporal.ZoneProvider) {
	thread.SetLocal(zonesKey, p)
}

func zoneProvider(thread *starlark.Thread) temporal.ZoneProvider {
	if thread != nil {
		if p, ok := thread.Local(zonesKey).(temporal.ZoneProvider); ok {
			return p
		}
	}
	return temporal.DefaultZoneProvider
}

func now(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs("now", args, kwargs, 0); err != nil {
		return nil, err
	}
	if f, ok := thread.Local(nowKey).(func() (temporal.Instant, error)); ok {
		i, err := f()
		if err != nil {
			return nil, err
		}
		return Instant(i), nil
	}
	if NowFunc == nil {
		return nil, errors.New("NowFunc cannot be nil")
	}
	return Instant(NowFunc()), nil
}

// intArg unpacks a Starlark int that fits in 64 bits.
type intArg int64

func (i *intArg) Unpack(v starlark.Value) error {
	var x int64
	if err := starlark.AsInt(v, &x); err != nil {
		return err
	}
	*i = intArg(x)
	return nil
}

// disambiguationArg unpacks a disambiguation policy name.
type disambiguationArg temporal.Disambiguation

func (d *disambiguationArg) Unpack(v starlark.Value) error {
	s, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("got %s, want string", v.Type())
	}
	dis, err := temporal.ParseDisambiguation(s)
	if err != nil {
		return err
	}
	*d = disambiguationArg(dis)
	return nil
}

var (
	_ starlark.Unpacker = (*intArg)(nil)
	_ starlark.Unpacker = (*disambiguationArg)(nil)
)

func newInstant(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ms intArg
	if err := starlark.UnpackArgs("instant", args, kwargs, "epoch_ms", &ms); err != nil {
		return nil, err
	}
	return Instant(temporal.InstantFromEpochMilliseconds(int64(ms))), nil
}

func newDuration(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y, mo, w, d, h, mi, s, ms intArg
	if err := starlark.UnpackArgs("duration", args, kwargs,
		"years?", &y, "months?", &mo, "weeks?", &w, "days?", &d,
		"hours?", &h, "minutes?", &mi, "seconds?", &s, "milliseconds?", &ms); err != nil {
		return nil, err
	}
	return Duration(temporal.Duration{
		Years: int64(y), Months: int64(mo), Weeks: int64(w), Days: int64(d),
		Hours: int64(h), Minutes: int64(mi), Seconds: int64(s), Milliseconds: int64(ms),
	}), nil
}

func newPlainTime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var hour, minute, second, millisecond int
	if err := starlark.UnpackArgs("plain_time", args, kwargs,
		"hour?", &hour, "minute?", &minute, "second?", &second, "millisecond?", &millisecond); err != nil {
		return nil, err
	}
	t, err := temporal.NewPlainTime(hour, minute, second, millisecond)
	if err != nil {
		return nil, err
	}
	return PlainTime(t), nil
}

func newPlainDate(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var year, month, day int
	if err := starlark.UnpackArgs("plain_date", args, kwargs, "year", &year, "month", &month, "day", &day); err != nil {
		return nil, err
	}
	d, err := temporal.NewPlainDate(year, month, day)
	if err != nil {
		return nil, err
	}
	return PlainDate(d), nil
}

func newPlainDateTime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var year, month, day, hour, minute, second, millisecond int
	if err := starlark.UnpackArgs("plain_date_time", args, kwargs,
		"year", &year, "month", &month, "day", &day,
		"hour?", &hour, "minute?", &minute, "second?", &second, "millisecond?", &millisecond); err != nil {
		return nil, err
	}
	dt, err := temporal.NewPlainDateTime(year, month, day, hour, minute, second, millisecond)
	if err != nil {
		return nil, err
	}
	return PlainDateTime(dt), nil
}

func newZonedDateTime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		i    Instant
		zone string
	)
	if err := starlark.UnpackArgs("zoned_date_time", args, kwargs, "instant", &i, "zone", &zone); err != nil {
		return nil, err
	}
	z, err := temporal.NewZonedDateTimeIn(temporal.Instant(i), zone, zoneProvider(thread))
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}

func parseInstant(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs("parse_instant", args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	i, err := temporal.ParseInstant(s)
	if err != nil {
		return nil, err
	}
	return Instant(i), nil
}

func parseDuration(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Duration
	err := starlark.UnpackPositionalArgs("parse_duration", args, kwargs, 1, &d)
	return d, err
}

func parsePlainTime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs("parse_plain_time", args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	t, err := temporal.ParsePlainTime(s)
	if err != nil {
		return nil, err
	}
	return PlainTime(t), nil
}

func parsePlainDate(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs("parse_plain_date", args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	d, err := temporal.ParsePlainDate(s)
	if err != nil {
		return nil, err
	}
	return PlainDate(d), nil
}

func parsePlainDateTime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs("parse_plain_date_time", args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	dt, err := temporal.ParsePlainDateTime(s)
	if err != nil {
		return nil, err
	}
	return PlainDateTime(dt), nil
}

func parseZonedDateTime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs("parse_zoned_date_time", args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	z, err := temporal.ParseZonedDateTimeIn(s, zoneProvider(thread))
	if err != nil {
		return nil, err
	}
	return ZonedDateTime(z), nil
}

type builtinMethod func(thread *starlark.Thread, fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(thread, b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod, fields ...string) []string {
	names := make([]string, 0, len(methods)+len(fields))
	for name := range methods {
		names = append(names, name)
	}
	names = append(names, fields...)
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}

// fieldsArg converts the keyword arguments of replace() to Fields.
func fieldsArg(fnname string, args starlark.Tuple, kwargs []starlark.Tuple) (temporal.Fields, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%s: unexpected positional arguments", fnname)
	}
	fs := make(temporal.Fields, len(kwargs))
	for _, kv := range kwargs {
		name := string(kv[0].(starlark.String))
		f, err := temporal.ParseField(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", fnname, err)
		}
		n, err := starlark.AsInt32(kv[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %v", fnname, name, err)
		}
		fs[f] = n
	}
	return fs, nil
}
