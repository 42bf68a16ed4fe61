package rrule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// ErrNotRecurring is returned for a timex that names no recurrence, such as
// an anchored date.
var ErrNotRecurring = errors.New("timex is not a recurrence")

var (
	durationRe   = regexp.MustCompile(`^P(\d+)([YMWD])$`)
	clockDurRe   = regexp.MustCompile(`^PT(\d+)([HMS])$`)
	weekdayRe    = regexp.MustCompile(`^XXXX-WXX-([1-7])$`)
	nthWeekdayRe = regexp.MustCompile(`^XXXX-(\d{2}|XX)-WXX-([1-7])-#([1-5])$`)
	monthDayRe   = regexp.MustCompile(`^XXXX-(\d{2}|XX)-(\d{2})$`)
	monthRe      = regexp.MustCompile(`^XXXX-(\d{2})$`)
	clockRe      = regexp.MustCompile(`^(\d{2})(?::(\d{2}))?(?::(\d{2}))?$`)
)

var durationFreq = map[string]Frequency{
	"Y": Yearly, "M": Monthly, "W": Weekly, "D": Daily,
	"TH": Hourly, "TM": Minutely, "TS": Secondly,
}

// partStart is the hour a part of the day recurs at.
var partStart = map[string]int{
	timex.Morning:   8,
	timex.Afternoon: 12,
	timex.Evening:   16,
	timex.Night:     20,
	timex.Daytime:   8,
	timex.Business:  8,
}

func isoToWeekday(d int) time.Weekday {
	return time.Weekday(d % 7)
}

// FromTimex converts the timex of a set entity into a rule:
//
//	P1D, P2W, PT1H        every n units
//	XXXX-WXX-1T15         weekday, optionally at a clock time
//	T15:30, TMO           every day at a time or part of day
//	XXXX-XX-05            day of every month
//	XXXX-05-03, XXXX-05   day or month of every year
//	XXXX-11-WXX-4-#3      n-th weekday of a month
//
// A range recurs on its start.
func FromTimex(tx string) (*Rule, error) {
	tx = strings.TrimSpace(tx)
	if strings.HasPrefix(tx, "(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(tx, "("), ")")
		tx, _, _ = strings.Cut(inner, ",")
	}
	if tx == "" {
		return nil, errors.Wrap(ErrNotRecurring, "empty timex")
	}

	if m := durationRe.FindStringSubmatch(tx); m != nil {
		return every(m[1], durationFreq[m[2]], tx)
	}
	if m := clockDurRe.FindStringSubmatch(tx); m != nil {
		return every(m[1], durationFreq["T"+m[2]], tx)
	}

	datePart, clockPart := tx, ""
	if i := strings.IndexByte(tx, 'T'); i >= 0 {
		datePart, clockPart = tx[:i], tx[i+1:]
	}

	r := &Rule{Interval: 1}
	switch m := match(datePart); {
	case datePart == "":
		if clockPart == "" {
			return nil, errors.Wrapf(ErrNotRecurring, "%q", tx)
		}
		r.Frequency = Daily
	case m.weekday != nil:
		d, _ := strconv.Atoi(m.weekday[1])
		r.Frequency = Weekly
		r.ByDay = []Weekday{Day(isoToWeekday(d), 0)}
	case m.nthWeekday != nil:
		d, _ := strconv.Atoi(m.nthWeekday[2])
		nth, _ := strconv.Atoi(m.nthWeekday[3])
		r.Frequency = Monthly
		r.ByDay = []Weekday{Day(isoToWeekday(d), nth)}
		if month := m.nthWeekday[1]; month != "XX" {
			r.Frequency = Yearly
			r.ByMonth = []int{atoi(month)}
		}
	case m.monthDay != nil:
		day := atoi(m.monthDay[2])
		if day < 1 || day > 31 {
			return nil, errors.Errorf("day out of range in %q", tx)
		}
		r.Frequency = Monthly
		r.ByMonthDay = []int{day}
		if month := m.monthDay[1]; month != "XX" {
			r.Frequency = Yearly
			r.ByMonth = []int{atoi(month)}
		}
	case m.month != nil:
		r.Frequency = Yearly
		r.ByMonth = []int{atoi(m.month[1])}
		r.ByMonthDay = []int{1}
	default:
		return nil, errors.Wrapf(ErrNotRecurring, "%q", tx)
	}
	if len(r.ByMonth) > 0 && (r.ByMonth[0] < 1 || r.ByMonth[0] > 12) {
		return nil, errors.Errorf("month out of range in %q", tx)
	}

	if clockPart != "" {
		if err := r.setClock(clockPart); err != nil {
			return nil, errors.Wrapf(err, "timex %q", tx)
		}
	}
	return r, nil
}

type dateMatch struct {
	weekday, nthWeekday, monthDay, month []string
}

func match(datePart string) dateMatch {
	return dateMatch{
		weekday:    weekdayRe.FindStringSubmatch(datePart),
		nthWeekday: nthWeekdayRe.FindStringSubmatch(datePart),
		monthDay:   monthDayRe.FindStringSubmatch(datePart),
		month:      monthRe.FindStringSubmatch(datePart),
	}
}

func every(count string, freq Frequency, tx string) (*Rule, error) {
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 {
		return nil, errors.Errorf("bad interval in %q", tx)
	}
	return &Rule{Frequency: freq, Interval: n}, nil
}

func (r *Rule) setClock(clock string) error {
	if h, ok := partStart["T"+clock]; ok {
		r.ByHour, r.ByMinute = []int{h}, []int{0}
		return nil
	}
	m := clockRe.FindStringSubmatch(clock)
	if m == nil {
		return errors.Errorf("unsupported clock %q", clock)
	}
	h := atoi(m[1])
	if h == 24 {
		h = 0
	}
	if h > 23 {
		return errors.Errorf("hour out of range %q", clock)
	}
	r.ByHour, r.ByMinute = []int{h}, []int{0}
	if m[2] != "" {
		if r.ByMinute[0] = atoi(m[2]); r.ByMinute[0] > 59 {
			return errors.Errorf("minute out of range %q", clock)
		}
	}
	if m[3] != "" {
		if s := atoi(m[3]); s > 0 && s < 60 {
			r.BySecond = []int{s}
		}
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Expand converts tx and lists its next n occurrences from ref. A rule
// without a clock time is anchored at the start of ref's day, so a
// recurring date includes today.
func Expand(tx string, ref time.Time, n int) (*Rule, []time.Time, error) {
	r, err := FromTimex(tx)
	if err != nil {
		return nil, nil, err
	}
	start := ref
	switch r.Frequency {
	case Daily, Weekly, Monthly, Yearly:
		if len(r.ByHour) == 0 {
			start = timex.DayStart(ref)
		}
	}
	return r, r.Occurrences(start, n), nil
}
