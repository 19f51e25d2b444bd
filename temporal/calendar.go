package temporal

// Proleptic Gregorian day arithmetic. Days are counted from 1970-01-01.

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay

	// Fixed approximations used only by Duration.Total.
	daysPerApproxMonth = 30
	daysPerApproxYear  = 365
)

// daysBefore[m] counts the days in a non-leap year before month m+1 begins.
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return daysBefore[month] - daysBefore[month-1]
}

func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

// dayOfYear is 1-based.
func dayOfYear(year, month, day int) int {
	n := daysBefore[month-1] + day
	if month > 2 && isLeap(year) {
		n++
	}
	return n
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// epochDays returns the number of days from 1970-01-01 to the given date.
// The date must be valid.
func epochDays(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	m := int64(month)
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civil is the inverse of epochDays.
func civil(days int64) (year, month, day int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

// isoWeekday maps a day count to 1=Monday..7=Sunday.
// 1970-01-01 was a Thursday.
func isoWeekday(days int64) int {
	return int(floorMod(days+3, 7)) + 1
}

// isoWeek returns the ISO 8601 week number of the given date.
func isoWeek(year, month, day int) int {
	days := epochDays(year, month, day)
	wd := isoWeekday(days)
	// The Thursday of the same week decides the week-numbering year.
	thursday := days - int64(wd) + 4
	ty, _, _ := civil(thursday)
	jan1 := epochDays(ty, 1, 1)
	return int((thursday-jan1)/7) + 1
}

// addMonths shifts (year, month) by n months without touching the day.
func addMonths(year, month int, n int64) (int, int) {
	total := int64(year)*12 + int64(month-1) + n
	return int(floorDiv(total, 12)), int(floorMod(total, 12)) + 1
}
