// Package timex formats and decodes TIMEX3-style strings and provides the
// calendar arithmetic shared by the date/time parsers.
//
// Formats produced here are the canonical interchange format of the
// recognizer and must stay bit-exact:
//
//	date        2016-05-03, XXXX-05-03, XXXX-XX-03
//	time        T15, T15:30, T15:30:20
//	datetime    2016-05-03T15:30
//	range       (2016-01-01,2017-01-01,P1Y)
//	duration    P3D, PT1H30M, P1DT2H
//	weekday     XXXX-WXX-2
//	nth weekday XXXX-11-WXX-4-#3
package timex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Special references.
const (
	PresentRef = "PRESENT_REF"
	PastRef    = "PAST_REF"
	FutureRef  = "FUTURE_REF"
)

// Parts of the day.
const (
	Morning   = "TMO"
	Afternoon = "TAF"
	Evening   = "TEV"
	Night     = "TNI"
	Daytime   = "TDT"
	Business  = "TBH"
)

// Canonical duration units. Month uses "MON" internally so it cannot be
// confused with minutes; it is rendered as "M" inside the date part.
const (
	UnitYear   = "Y"
	UnitMonth  = "MON"
	UnitWeek   = "W"
	UnitDay    = "D"
	UnitHour   = "H"
	UnitMinute = "M"
	UnitSecond = "S"
)

var unitOrder = map[string]int{
	UnitYear:   0,
	UnitMonth:  1,
	UnitWeek:   2,
	UnitDay:    3,
	UnitHour:   4,
	UnitMinute: 5,
	UnitSecond: 6,
}

// UnitSeconds is the nominal length of each unit, used for duration values.
var UnitSeconds = map[string]float64{
	UnitYear:   31536000,
	UnitMonth:  2592000,
	UnitWeek:   604800,
	UnitDay:    86400,
	UnitHour:   3600,
	UnitMinute: 60,
	UnitSecond: 1,
}

// IsTimeUnit reports whether unit is hour, minute or second.
func IsTimeUnit(unit string) bool {
	return unit == UnitHour || unit == UnitMinute || unit == UnitSecond
}

// IsDateUnit reports whether unit is day or coarser.
func IsDateUnit(unit string) bool {
	_, ok := unitOrder[unit]
	return ok && !IsTimeUnit(unit)
}

// FormatNumber renders a count without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LuisDate renders a date where -1 marks an unknown component.
func LuisDate(year, month, day int) string {
	y, m, d := "XXXX", "XX", "XX"
	if year >= 0 {
		y = fmt.Sprintf("%04d", year)
	}
	if month > 0 {
		m = fmt.Sprintf("%02d", month)
	}
	if day > 0 {
		d = fmt.Sprintf("%02d", day)
	}
	return y + "-" + m + "-" + d
}

// FormatDate renders the date part of t.
func FormatDate(t time.Time) string {
	return LuisDate(t.Year(), int(t.Month()), t.Day())
}

// LuisTime renders a time of day. A negative min omits minutes, a negative
// sec omits seconds.
func LuisTime(hour, min, sec int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "T%02d", hour)
	if min >= 0 {
		fmt.Fprintf(&b, ":%02d", min)
		if sec >= 0 {
			fmt.Fprintf(&b, ":%02d", sec)
		}
	}
	return b.String()
}

// FormatTime renders the clock time of t with minute precision, adding
// seconds only when they are non-zero.
func FormatTime(t time.Time) string {
	sec := -1
	if t.Second() != 0 {
		sec = t.Second()
	}
	return LuisTime(t.Hour(), t.Minute(), sec)
}

// FormatDateTime renders date and time of t.
func FormatDateTime(t time.Time) string {
	return FormatDate(t) + FormatTime(t)
}

// Weekday renders an unanchored weekday, Monday=1 ... Sunday=7.
func Weekday(wd time.Weekday) string {
	return fmt.Sprintf("XXXX-WXX-%d", IsoWeekday(wd))
}

// IsoWeekday maps Sunday to 7.
func IsoWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// WeekdayOfMonth renders "the cardinal-th weekday of month". A negative
// year or month is rendered as unknown.
func WeekdayOfMonth(year, month int, wd time.Weekday, cardinal int) string {
	y, m := "XXXX", "XX"
	if year >= 0 {
		y = fmt.Sprintf("%04d", year)
	}
	if month > 0 {
		m = fmt.Sprintf("%02d", month)
	}
	return fmt.Sprintf("%s-%s-WXX-%d-#%d", y, m, IsoWeekday(wd), cardinal)
}

// Week renders an ISO week.
func Week(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// Duration renders a single-unit duration.
func Duration(amount float64, unit string) string {
	return Compound(map[string]float64{unit: amount})
}

// Compound renders a multi-unit duration such as P1M2D or P1DT2H.
func Compound(parts map[string]float64) string {
	units := make([]string, 0, len(parts))
	for u := range parts {
		if _, ok := unitOrder[u]; ok {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return unitOrder[units[i]] < unitOrder[units[j]] })

	var date, clock strings.Builder
	for _, u := range units {
		n := FormatNumber(parts[u])
		switch u {
		case UnitMonth:
			date.WriteString(n + "M")
		case UnitHour, UnitMinute, UnitSecond:
			clock.WriteString(n + u)
		default:
			date.WriteString(n + u)
		}
	}
	out := "P" + date.String()
	if clock.Len() > 0 {
		out += "T" + clock.String()
	}
	return out
}

// Range renders an explicit interval.
func Range(start, end, duration string) string {
	return "(" + start + "," + end + "," + duration + ")"
}

// ClockDuration renders a time-of-day span such as PT1H30M.
func ClockDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	parts := map[string]float64{}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	if h > 0 {
		parts[UnitHour] = float64(h)
	}
	if m > 0 {
		parts[UnitMinute] = float64(m)
	}
	if s > 0 || len(parts) == 0 {
		parts[UnitSecond] = float64(s)
	}
	return Compound(parts)
}

// DateDuration renders the length of a date range, preferring whole years,
// then whole months, then days.
func DateDuration(start, end time.Time) string {
	if start.Day() == end.Day() && start.Day() == 1 {
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months > 0 {
			if months%12 == 0 && start.Month() == time.January {
				return Duration(float64(months/12), UnitYear)
			}
			return Duration(float64(months), UnitMonth)
		}
	}
	days := int(DayStart(end).Sub(DayStart(start)).Hours()/24 + 0.5)
	if days%7 == 0 && days > 0 && start.Weekday() == time.Monday {
		return Duration(float64(days/7), UnitWeek)
	}
	return Duration(float64(days), UnitDay)
}

// DateRange renders a date interval with its duration.
func DateRange(start, end time.Time) string {
	return Range(FormatDate(start), FormatDate(end), DateDuration(start, end))
}

// ClockRange renders a time-of-day interval, e.g. (T15:30,T17:00,PT1H30M).
func ClockRange(start, end time.Time) string {
	return Range(FormatTime(start), FormatTime(end), ClockDuration(end.Sub(start)))
}

// DateTimeRange renders a date-time interval.
func DateTimeRange(start, end time.Time) string {
	return Range(FormatDateTime(start), FormatDateTime(end), ClockDuration(end.Sub(start)))
}
