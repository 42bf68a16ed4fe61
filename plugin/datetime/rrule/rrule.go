// Package rrule provides RRULE (Recurrence Rule) parsing, generation and
// expansion for the recurrences the recognizer resolves.
// Supports the iCalendar RFC 5545 subset a spoken recurrence can express.
package rrule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// Frequency represents the recurrence frequency.
type Frequency string

const (
	Secondly Frequency = "SECONDLY"
	Minutely Frequency = "MINUTELY"
	Hourly   Frequency = "HOURLY"
	Daily    Frequency = "DAILY"
	Weekly   Frequency = "WEEKLY"
	Monthly  Frequency = "MONTHLY"
	Yearly   Frequency = "YEARLY"
)

var frequencies = map[Frequency]bool{
	Secondly: true, Minutely: true, Hourly: true,
	Daily: true, Weekly: true, Monthly: true, Yearly: true,
}

// Weekday is a BYDAY entry: a two letter day code, optionally preceded by
// a signed ordinal ("MO", "3TH", "-1FR").
type Weekday string

var dayCodes = []string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Day builds a BYDAY entry. n == 0 matches every such weekday; n > 0 the
// n-th of the month and n < 0 the n-th from the end.
func Day(wd time.Weekday, n int) Weekday {
	if n == 0 {
		return Weekday(dayCodes[wd])
	}
	return Weekday(strconv.Itoa(n) + dayCodes[wd])
}

func (w Weekday) split() (n int, wd time.Weekday, ok bool) {
	s := string(w)
	if len(s) < 2 {
		return 0, 0, false
	}
	code, prefix := s[len(s)-2:], s[:len(s)-2]
	idx := -1
	for i, c := range dayCodes {
		if c == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, false
	}
	if prefix != "" {
		var err error
		if n, err = strconv.Atoi(prefix); err != nil || n == 0 || n > 5 || n < -5 {
			return 0, 0, false
		}
	}
	return n, time.Weekday(idx), true
}

// Rule represents a parsed recurrence rule.
type Rule struct {
	Frequency  Frequency // FREQ
	Interval   int       // INTERVAL (default 1)
	Count      int       // COUNT (number of occurrences)
	Until      time.Time // UNTIL (end date)
	BySecond   []int     // BYSECOND
	ByMinute   []int     // BYMINUTE
	ByHour     []int     // BYHOUR
	ByDay      []Weekday // BYDAY
	ByMonthDay []int     // BYMONTHDAY
	ByMonth    []int     // BYMONTH
}

const untilLayout = "20060102T150405Z"

// Parse parses an RRULE string into a Rule.
// Example: "FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=10"
func Parse(s string) (*Rule, error) {
	rule := &Rule{Interval: 1}
	for _, part := range strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "RRULE:"), ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key, value = strings.ToUpper(strings.TrimSpace(key)), strings.TrimSpace(value)

		var err error
		switch key {
		case "FREQ":
			rule.Frequency = Frequency(strings.ToUpper(value))
			if !frequencies[rule.Frequency] {
				return nil, errors.Errorf("unknown FREQ %q", value)
			}
		case "INTERVAL":
			rule.Interval, err = strconv.Atoi(value)
		case "COUNT":
			rule.Count, err = strconv.Atoi(value)
		case "UNTIL":
			rule.Until, err = time.Parse(untilLayout, value)
		case "BYDAY":
			rule.ByDay, err = parseByDay(value)
		case "BYMONTHDAY":
			rule.ByMonthDay, err = parseIntList(value, -31, 31)
		case "BYMONTH":
			rule.ByMonth, err = parseIntList(value, 1, 12)
		case "BYHOUR":
			rule.ByHour, err = parseIntList(value, 0, 23)
		case "BYMINUTE":
			rule.ByMinute, err = parseIntList(value, 0, 59)
		case "BYSECOND":
			rule.BySecond, err = parseIntList(value, 0, 59)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", key)
		}
	}

	if rule.Frequency == "" {
		return nil, errors.New("missing required FREQ in RRULE")
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}
	return rule, nil
}

func parseByDay(value string) ([]Weekday, error) {
	var days []Weekday
	for _, part := range strings.Split(value, ",") {
		day := Weekday(strings.ToUpper(strings.TrimSpace(part)))
		if day == "" {
			continue
		}
		if _, _, ok := day.split(); !ok {
			return nil, errors.Errorf("bad weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func parseIntList(value string, lo, hi int) ([]int, error) {
	var nums []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if n < lo || n > hi || (lo < 0 && n == 0) {
			return nil, errors.Errorf("%d out of range", n)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// String returns the RRULE string representation.
func (r *Rule) String() string {
	parts := []string{"FREQ=" + string(r.Frequency)}

	if r.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", r.Interval))
	}
	if r.Count > 0 {
		parts = append(parts, fmt.Sprintf("COUNT=%d", r.Count))
	}
	if !r.Until.IsZero() {
		parts = append(parts, "UNTIL="+r.Until.UTC().Format(untilLayout))
	}
	if len(r.ByDay) > 0 {
		days := make([]string, len(r.ByDay))
		for i, day := range r.ByDay {
			days[i] = string(day)
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	for _, f := range []struct {
		key  string
		nums []int
	}{
		{"BYMONTHDAY", r.ByMonthDay},
		{"BYMONTH", r.ByMonth},
		{"BYHOUR", r.ByHour},
		{"BYMINUTE", r.ByMinute},
		{"BYSECOND", r.BySecond},
	} {
		if len(f.nums) > 0 {
			parts = append(parts, f.key+"="+intListToString(f.nums))
		}
	}
	return strings.Join(parts, ";")
}

func intListToString(nums []int) string {
	strs := make([]string, len(nums))
	for i, num := range nums {
		strs[i] = strconv.Itoa(num)
	}
	return strings.Join(strs, ",")
}

// horizonYears bounds the search for rules that rarely or never match,
// such as February 29 or the 31st of a 30 day month.
const horizonYears = 400

// Occurrences returns up to n occurrences at or after start. Start also
// anchors INTERVAL counting and supplies the fields a rule leaves open:
// the clock time, and the weekday, day or month a bare WEEKLY, MONTHLY or
// YEARLY rule repeats on. Once a BY field is set, the finer clock fields
// left open default to zero.
func (r *Rule) Occurrences(start time.Time, n int) []time.Time {
	if r.Count > 0 && r.Count < n {
		n = r.Count
	}
	if n <= 0 {
		return nil
	}
	interval := max(r.Interval, 1)

	var out []time.Time
	emit := func(t time.Time) bool {
		if t.Before(start) {
			return true
		}
		if !r.Until.IsZero() && t.After(r.Until) {
			return false
		}
		out = append(out, t)
		return len(out) < n
	}

	switch r.Frequency {
	case Hourly, Minutely, Secondly:
		step := map[Frequency]time.Duration{Hourly: time.Hour, Minutely: time.Minute, Secondly: time.Second}[r.Frequency]
		for t := start; emit(t); t = t.Add(time.Duration(interval) * step) {
		}
		return out
	}

	loc := start.Location()
	day0 := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	clock := r.clockTimes(start)
	end := day0.AddDate(horizonYears, 0, 0)
	for day := day0; day.Before(end); day = day.AddDate(0, 0, 1) {
		if !r.inPeriod(day0, day, interval) || !r.matchDay(start, day) {
			continue
		}
		for _, c := range clock {
			t := time.Date(day.Year(), day.Month(), day.Day(), c[0], c[1], c[2], 0, loc)
			if !emit(t) {
				return out
			}
		}
	}
	return out
}

// inPeriod reports whether day falls in a period selected by INTERVAL.
func (r *Rule) inPeriod(day0, day time.Time, interval int) bool {
	if interval == 1 {
		return true
	}
	var diff int
	switch r.Frequency {
	case Daily:
		diff = daysBetween(day0, day)
	case Weekly:
		diff = (daysBetween(day0, day) + timex.IsoWeekday(day0.Weekday()) - 1) / 7
	case Monthly:
		diff = (day.Year()-day0.Year())*12 + int(day.Month()) - int(day0.Month())
	case Yearly:
		diff = day.Year() - day0.Year()
	}
	return diff%interval == 0
}

func (r *Rule) matchDay(start, day time.Time) bool {
	if len(r.ByMonth) > 0 && !contains(r.ByMonth, int(day.Month())) {
		return false
	}
	dim := timex.DaysInMonth(day.Year(), int(day.Month()))
	if len(r.ByMonthDay) > 0 {
		found := false
		for _, md := range r.ByMonthDay {
			if md == day.Day() || (md < 0 && dim+md+1 == day.Day()) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(r.ByDay) > 0 {
		found := false
		for _, w := range r.ByDay {
			nth, wd, ok := w.split()
			if !ok || wd != day.Weekday() {
				continue
			}
			if nth == 0 ||
				(nth > 0 && (day.Day()-1)/7+1 == nth) ||
				(nth < 0 && (dim-day.Day())/7+1 == -nth) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	switch r.Frequency {
	case Weekly:
		if len(r.ByDay) == 0 && day.Weekday() != start.Weekday() {
			return false
		}
	case Monthly, Yearly:
		if len(r.ByDay) == 0 && len(r.ByMonthDay) == 0 && day.Day() != start.Day() {
			return false
		}
		if r.Frequency == Yearly && len(r.ByMonth) == 0 && day.Month() != start.Month() {
			return false
		}
	}
	return true
}

// clockTimes lists the hour, minute and second triples of one day in
// ascending order.
func (r *Rule) clockTimes(start time.Time) [][3]int {
	hours, minutes, seconds := r.ByHour, r.ByMinute, r.BySecond
	if len(hours) == 0 {
		hours = []int{start.Hour()}
	}
	if len(minutes) == 0 {
		if len(r.ByHour) > 0 {
			minutes = []int{0}
		} else {
			minutes = []int{start.Minute()}
		}
	}
	if len(seconds) == 0 {
		if len(r.ByHour) > 0 || len(r.ByMinute) > 0 {
			seconds = []int{0}
		} else {
			seconds = []int{start.Second()}
		}
	}
	hours, minutes, seconds = sorted(hours), sorted(minutes), sorted(seconds)

	out := make([][3]int, 0, len(hours)*len(minutes)*len(seconds))
	for _, h := range hours {
		for _, m := range minutes {
			for _, s := range seconds {
				out = append(out, [3]int{h, m, s})
			}
		}
	}
	return out
}

func sorted(nums []int) []int {
	out := append([]int(nil), nums...)
	sort.Ints(out)
	return out
}

func contains(nums []int, n int) bool {
	for _, x := range nums {
		if x == n {
			return true
		}
	}
	return false
}

func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
