package timex

import (
	"regexp"
	"strconv"
	"time"
)

// ExpandTwoDigitYear maps a year below 100 into the 1900s when it is at or
// above pivot, otherwise into the 2000s. Larger years pass through.
func ExpandTwoDigitYear(year, pivot int) int {
	if year < 0 || year >= 100 {
		return year
	}
	if year >= pivot {
		return 1900 + year
	}
	return 2000 + year
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidDate reports whether year-month-day names a real calendar day.
func IsValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= DaysInMonth(year, month)
}

// Date builds midnight of a calendar day in loc without normalizing
// overflow. ok is false for days such as Feb 30.
func Date(year, month, day int, loc *time.Location) (time.Time, bool) {
	if !IsValidDate(year, month, day) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

// ClipDate builds the closest real day to year-month-day by clamping the day
// into the month. It is the lossy fallback for impossible dates.
func ClipDate(year, month, day int, loc *time.Location) time.Time {
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	d := DayStart(t)
	return d.AddDate(0, 0, 1-IsoWeekday(d.Weekday()))
}

// ThisWeekday returns wd within the Monday-based week of ref.
func ThisWeekday(ref time.Time, wd time.Weekday) time.Time {
	return DayStart(ref).AddDate(0, 0, IsoWeekday(wd)-IsoWeekday(ref.Weekday()))
}

// NextWeekday returns wd of the week after ref's week.
func NextWeekday(ref time.Time, wd time.Weekday) time.Time {
	return ThisWeekday(ref, wd).AddDate(0, 0, 7)
}

// LastWeekday returns wd of the week before ref's week.
func LastWeekday(ref time.Time, wd time.Weekday) time.Time {
	return ThisWeekday(ref, wd).AddDate(0, 0, -7)
}

// UpcomingWeekday returns the nearest day on or after ref falling on wd.
func UpcomingWeekday(ref time.Time, wd time.Weekday) time.Time {
	d := DayStart(ref)
	diff := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, diff)
}

// PreviousWeekday returns the nearest day strictly before ref falling on wd.
func PreviousWeekday(ref time.Time, wd time.Weekday) time.Time {
	d := DayStart(ref)
	diff := (int(d.Weekday()) - int(wd) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return d.AddDate(0, 0, -diff)
}

// NthWeekdayOfMonth returns the n-th wd of a month. The first matching day
// on or after the 1st is advanced by whole weeks; a result spilling into the
// following month falls back one week, which gives n=5 its "last" meaning.
func NthWeekdayOfMonth(year, month int, wd time.Weekday, n int, loc *time.Location) time.Time {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	d := UpcomingWeekday(first, wd).AddDate(0, 0, 7*(n-1))
	for int(d.Month()) != month {
		d = d.AddDate(0, 0, -7)
	}
	return d
}

// LastWeekdayOfMonth returns the final wd of a month.
func LastWeekdayOfMonth(year, month int, wd time.Weekday, loc *time.Location) time.Time {
	return NthWeekdayOfMonth(year, month, wd, 5, loc)
}

// Easter returns Easter Sunday of year (anonymous Gregorian computus).
func Easter(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// Shift moves t by amount units. Fractional amounts are honoured for
// units of a day or finer; coarser units round to whole steps.
func Shift(t time.Time, unit string, amount float64) time.Time {
	whole := int(amount)
	switch unit {
	case UnitYear:
		return t.AddDate(whole, 0, 0)
	case UnitMonth:
		return t.AddDate(0, whole, 0)
	case UnitWeek:
		return t.AddDate(0, 0, 7*whole)
	case UnitDay:
		t = t.AddDate(0, 0, whole)
		if frac := amount - float64(whole); frac != 0 {
			t = t.Add(time.Duration(frac * float64(24*time.Hour)))
		}
		return t
	}
	if s, ok := UnitSeconds[unit]; ok {
		return t.Add(time.Duration(amount * s * float64(time.Second)))
	}
	return t
}

var dateTimexPattern = regexp.MustCompile(`^(XXXX|\d{4})-(XX|\d{2})-(XX|\d{2})`)

// ParseDate decodes the date part of a TIMEX string; unknown components
// are returned as -1.
func ParseDate(s string) (year, month, day int, ok bool) {
	m := dateTimexPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	conv := func(v string) int {
		n, err := strconv.Atoi(v)
		if err != nil {
			return -1
		}
		return n
	}
	return conv(m[1]), conv(m[2]), conv(m[3]), true
}
