package temporal

import (
	"encoding"
	"sort"
)

// Comparable is implemented by every point-in-time type of this package.
// x.Compare(y) < 0 implies !x.Equal(y).
type Comparable[T any] interface {
	Compare(T) int
	Equal(T) bool
}

// Temporal is implemented by all six value types.
type Temporal interface {
	String() string
	encoding.TextMarshaler
}

var (
	_ Comparable[Instant]       = Instant{}
	_ Comparable[PlainTime]     = PlainTime{}
	_ Comparable[PlainDate]     = PlainDate{}
	_ Comparable[PlainDateTime] = PlainDateTime{}
	_ Comparable[ZonedDateTime] = ZonedDateTime{}

	_ Temporal = Instant{}
	_ Temporal = Duration{}
	_ Temporal = PlainTime{}
	_ Temporal = PlainDate{}
	_ Temporal = PlainDateTime{}
	_ Temporal = ZonedDateTime{}
)

// Earliest returns the smallest of xs, or the zero value if xs is empty.
func Earliest[T Comparable[T]](xs ...T) T {
	var min T
	for i, x := range xs {
		if i == 0 || x.Compare(min) < 0 {
			min = x
		}
	}
	return min
}

// Latest returns the largest of xs, or the zero value if xs is empty.
func Latest[T Comparable[T]](xs ...T) T {
	var max T
	for i, x := range xs {
		if i == 0 || x.Compare(max) > 0 {
			max = x
		}
	}
	return max
}

// Sort orders xs chronologically. The sort is stable.
func Sort[T Comparable[T]](xs []T) {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].Compare(xs[j]) < 0 })
}

// threeway reduces an ordered pair to -1, 0 or +1.
func threeway[T int | int64 | string](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return +1
	}
	return 0
}
