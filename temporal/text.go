package temporal

import (
	"errors"
	"fmt"
	"strconv"
)

// Formatting and scanning of the ISO 8601 extended forms. The scanners
// consume a prefix of their input and return the remainder so that the
// composite forms can be assembled from the simple ones.

// formatDate writes years outside 0..9999 with a sign and at least six
// digits. scanDate reads back up to nine, which covers every Instant.
func formatDate(year, month, day int) string {
	var ys string
	if year >= 0 && year <= 9999 {
		ys = fmt.Sprintf("%04d", year)
	} else if year < 0 {
		ys = fmt.Sprintf("-%06d", -year)
	} else {
		ys = fmt.Sprintf("+%06d", year)
	}
	return fmt.Sprintf("%s-%02d-%02d", ys, month, day)
}

// formatClock renders a millisecond-of-day. The fraction is written when
// non-zero, or always if millis is set.
func formatClock(msOfDay int, millis bool) string {
	h := msOfDay / msPerHour
	m := msOfDay % msPerHour / msPerMinute
	s := msOfDay % msPerMinute / msPerSecond
	ms := msOfDay % msPerSecond
	if millis || ms != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// digits reads exactly n decimal digits from the front of s.
func digits(s string, n int) (int, string, error) {
	if len(s) < n {
		return 0, s, errors.New("unexpected end of input")
	}
	v := 0
	for i := 0; i < n; i++ {
		if !isDigit(s[i]) {
			return 0, s, fmt.Errorf("expected digit at %q", s[i:])
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, s[n:], nil
}

func expect(s string, c byte) (string, error) {
	if len(s) == 0 || s[0] != c {
		return s, fmt.Errorf("expected %q", c)
	}
	return s[1:], nil
}

const maxYearDigits = 9

// scanDate reads YYYY-MM-DD or ±YYYYYY-MM-DD, where the signed form may
// carry up to maxYearDigits digits.
func scanDate(s string) (PlainDate, string, error) {
	var (
		year int
		err  error
		rest = s
	)
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		neg := rest[0] == '-'
		if year, rest, err = digits(rest[1:], 6); err != nil {
			return PlainDate{}, s, err
		}
		for n := 6; n < maxYearDigits && len(rest) > 0 && isDigit(rest[0]); n++ {
			year = year*10 + int(rest[0]-'0')
			rest = rest[1:]
		}
		if neg {
			if year == 0 {
				return PlainDate{}, s, errors.New("negative zero year")
			}
			year = -year
		}
	} else if year, rest, err = digits(rest, 4); err != nil {
		return PlainDate{}, s, err
	}
	var month, day int
	if rest, err = expect(rest, '-'); err != nil {
		return PlainDate{}, s, err
	}
	if month, rest, err = digits(rest, 2); err != nil {
		return PlainDate{}, s, err
	}
	if rest, err = expect(rest, '-'); err != nil {
		return PlainDate{}, s, err
	}
	if day, rest, err = digits(rest, 2); err != nil {
		return PlainDate{}, s, err
	}
	d, err := NewPlainDate(year, month, day)
	if err != nil {
		return PlainDate{}, s, err
	}
	return d, rest, nil
}

// scanTime reads HH:MM[:SS[.fraction]]. Fraction digits past the
// millisecond are truncated.
func scanTime(s string) (PlainTime, string, error) {
	var (
		hour, minute, second, ms int
		err                      error
		rest                     = s
	)
	if hour, rest, err = digits(rest, 2); err != nil {
		return PlainTime{}, s, err
	}
	if rest, err = expect(rest, ':'); err != nil {
		return PlainTime{}, s, err
	}
	if minute, rest, err = digits(rest, 2); err != nil {
		return PlainTime{}, s, err
	}
	if len(rest) > 0 && rest[0] == ':' {
		if second, rest, err = digits(rest[1:], 2); err != nil {
			return PlainTime{}, s, err
		}
		if len(rest) > 0 && (rest[0] == '.' || rest[0] == ',') {
			rest = rest[1:]
			n := 0
			for n < len(rest) && isDigit(rest[n]) {
				n++
			}
			if n == 0 || n > 9 {
				return PlainTime{}, s, errors.New("fraction must have 1 to 9 digits")
			}
			frac := rest[:n]
			for len(frac) < 3 {
				frac += "0"
			}
			v, _ := strconv.Atoi(frac[:3])
			ms = v
			rest = rest[n:]
		}
	}
	t, err := NewPlainTime(hour, minute, second, ms)
	if err != nil {
		return PlainTime{}, s, err
	}
	return t, rest, nil
}

// scanDateTime reads <date>T<time>. A lowercase 't' or a space is also
// accepted as the separator.
func scanDateTime(s string) (PlainDateTime, string, error) {
	d, rest, err := scanDate(s)
	if err != nil {
		return PlainDateTime{}, s, err
	}
	if len(rest) == 0 || (rest[0] != 'T' && rest[0] != 't' && rest[0] != ' ') {
		return PlainDateTime{}, s, errors.New("expected 'T' separator")
	}
	t, rest, err := scanTime(rest[1:])
	if err != nil {
		return PlainDateTime{}, s, err
	}
	return PlainDateTime{date: d, time: t}, rest, nil
}

// scanOffset reads Z or ±HH:MM (or ±HHMM) and returns minutes east of UTC.
func scanOffset(s string) (int, string, error) {
	if len(s) == 0 {
		return 0, s, errors.New("missing UTC offset")
	}
	if s[0] == 'Z' || s[0] == 'z' {
		return 0, s[1:], nil
	}
	if s[0] != '+' && s[0] != '-' {
		return 0, s, fmt.Errorf("expected UTC offset at %q", s)
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	h, rest, err := digits(s[1:], 2)
	if err != nil {
		return 0, s, err
	}
	if len(rest) > 0 && rest[0] == ':' {
		rest = rest[1:]
	}
	m, rest, err := digits(rest, 2)
	if err != nil {
		return 0, s, err
	}
	if h > 23 || m > 59 {
		return 0, s, errors.New("UTC offset out of range")
	}
	return sign * (h*60 + m), rest, nil
}

// scanZone reads a bracketed zone annotation such as [Europe/Paris].
func scanZone(s string) (string, string, error) {
	rest, err := expect(s, '[')
	if err != nil {
		return "", s, err
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] == ']' {
			if i == 0 {
				return "", s, errors.New("empty zone annotation")
			}
			return rest[:i], rest[i+1:], nil
		}
	}
	return "", s, errors.New("unterminated zone annotation")
}
