package temporal

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/calclock/calclock/temporal"
)

// Duration is a Starlark representation of a calendar duration.
type Duration temporal.Duration

// assert at compile time that Duration implements Unpacker.
var _ starlark.Unpacker = (*Duration)(nil)

// Unpack is a custom argument unpacker accepting a duration or its ISO
// 8601 text.
func (d *Duration) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Duration:
		*d = x
		return nil
	case starlark.String:
		dur, err := temporal.ParseDuration(string(x))
		if err != nil {
			return err
		}
		*d = Duration(dur)
		return nil
	}
	return fmt.Errorf("cannot convert %s to %s", v.Type(), d.Type())
}

// String implements the Stringer interface.
func (d Duration) String() string { return temporal.Duration(d).String() }

// Type returns a short string describing the value's type.
func (d Duration) Type() string { return "temporal.duration" }

// Freeze renders Duration immutable. required by starlark.Value interface
// because duration is already immutable this is a no-op.
func (d Duration) Freeze() {}

// Hash returns a function of x such that Equals(x, y) => Hash(x) == Hash(y)
// required by starlark.Value interface.
func (d Duration) Hash() (uint32, error) {
	var h uint32
	for u := temporal.Years; u <= temporal.Milliseconds; u++ {
		h = h*31 + hashInt64(temporal.Duration(d).Get(u))
	}
	return h, nil
}

// Truth reports whether any component is non-zero.
func (d Duration) Truth() starlark.Bool { return starlark.Bool(!temporal.Duration(d).Blank()) }

var durationFields = []string{
	"years", "months", "weeks", "days",
	"hours", "minutes", "seconds", "milliseconds",
	"sign", "blank",
}

// Attr gets a value for a string attribute, implementing dot expression support
// in starklark. required by starlark.HasAttrs interface.
func (d Duration) Attr(name string) (starlark.Value, error) {
	x := temporal.Duration(d)
	switch name {
	case "sign":
		return starlark.MakeInt(x.Sign()), nil
	case "blank":
		return starlark.Bool(x.Blank()), nil
	}
	if u, err := temporal.ParseUnit(name); err == nil && name == u.String() {
		return starlark.MakeInt64(x.Get(u)), nil
	}
	return builtinAttr(d, name, durationMethods)
}

// AttrNames lists available dot expression strings. required by
// starlark.HasAttrs interface.
func (d Duration) AttrNames() []string { return builtinAttrNames(durationMethods, durationFields...) }

// CompareSameType supports == and != only; durations with calendar units
// have no total order.
func (d Duration) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	eq := d == yV.(Duration)
	switch op {
	case syntax.EQL:
		return eq, nil
	case syntax.NEQ:
		return !eq, nil
	}
	return false, fmt.Errorf("%s %s %s not supported", d.Type(), op, yV.Type())
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface. operators:
//
//	duration + duration = duration
//	duration - duration = duration
//	duration * int = duration
//	duration + <point> = <point>
func (d Duration) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.Duration(d)

	switch op {
	case syntax.PLUS:
		switch y := yV.(type) {
		case Duration:
			return Duration(x.Add(temporal.Duration(y))), nil
		default:
			return shift(yV, x)
		}

	case syntax.MINUS:
		if y, ok := yV.(Duration); ok {
			if side == starlark.Left {
				return Duration(x.Subtract(temporal.Duration(y))), nil
			}
			return Duration(temporal.Duration(y).Subtract(x)), nil
		}

	case syntax.STAR:
		if y, ok := yV.(starlark.Int); ok {
			n, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("int value out of range (want signed 64-bit value)")
			}
			return Duration(scale(x, n)), nil
		}
	}

	return nil, nil
}

// Unary implements -duration and +duration.
func (d Duration) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.MINUS:
		return Duration(temporal.Duration(d).Negated()), nil
	case syntax.PLUS:
		return d, nil
	}
	return nil, nil
}

func scale(d temporal.Duration, n int64) temporal.Duration {
	return temporal.Duration{
		Years: d.Years * n, Months: d.Months * n, Weeks: d.Weeks * n, Days: d.Days * n,
		Hours: d.Hours * n, Minutes: d.Minutes * n, Seconds: d.Seconds * n, Milliseconds: d.Milliseconds * n,
	}
}

var durationMethods = map[string]builtinMethod{
	"total":    durationTotal,
	"negated":  durationNegated,
	"abs":      durationAbs,
	"add":      durationAdd,
	"subtract": durationSubtract,
}

func durationTotal(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var unit string
	if err := starlark.UnpackArgs(fnname, args, kwargs, "unit", &unit); err != nil {
		return nil, err
	}
	u, err := temporal.ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	total, err := temporal.Duration(recV.(Duration)).Total(u)
	if err != nil {
		return nil, err
	}
	return starlark.Float(total), nil
}

func durationNegated(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Duration(temporal.Duration(recV.(Duration)).Negated()), nil
}

func durationAbs(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Duration(temporal.Duration(recV.(Duration)).Abs()), nil
}

func durationAdd(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return Duration(temporal.Duration(recV.(Duration)).Add(temporal.Duration(y))), nil
}

func durationSubtract(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y Duration
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	return Duration(temporal.Duration(recV.(Duration)).Subtract(temporal.Duration(y))), nil
}

func hashInt64(x int64) uint32 { return uint32(x) ^ uint32(x>>32) }
