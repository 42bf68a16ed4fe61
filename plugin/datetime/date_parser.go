package datetime

import (
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// yearSearch bounds the search for a year in which a day such as Feb 29
// exists.
const yearSearch = 8

// calendarCycle is the number of years after which weekdays repeat on the
// same dates.
const calendarCycle = 28

// DateParser resolves single days. Rules, in order: explicit date, weekday
// with day of month, special day word, relative weekday, bare weekday, day
// of month, nth weekday of month, duration relative to today or to another
// date.
type DateParser struct {
	cfg      *LocaleConfig
	duration *DurationParser
	durExt   *DurationExtractor
	chain    Chain
}

// NewDateParser builds a date parser for a locale.
func NewDateParser(cfg *LocaleConfig) *DateParser {
	p := &DateParser{
		cfg:      cfg,
		duration: NewDurationParser(cfg),
		durExt:   NewDurationExtractor(cfg),
	}
	p.chain = Chain{
		RuleFunc(p.explicit),
		RuleFunc(p.weekdayDay),
		RuleFunc(p.specialDay),
		RuleFunc(p.relativeWeekday),
		RuleFunc(p.weekday),
		RuleFunc(p.dayOfMonth),
		RuleFunc(p.weekdayOfMonth),
		RuleFunc(p.durationRelative),
	}
	return p
}

func (p *DateParser) Kind() EntityKind { return KindDate }

// Parse implements Parser.
func (p *DateParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	pr := ParseResult{ExtractResult: er}
	r, ok := p.resolve(er.Text, ref)
	if !ok {
		return pr
	}
	pr.Value = &r
	pr.TimexStr = r.Timex
	return pr
}

func (p *DateParser) resolve(text string, ref time.Time) (ResolutionResult, bool) {
	r, ok := p.chain.Resolve(text, ref)
	if ok && p.cfg.Date.LunarRegex != nil && p.cfg.Date.LunarRegex.MatchString(text) {
		r.IsLunar = true
	}
	return r, ok
}

func (p *DateParser) explicit(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWholeAny(p.cfg.Date.DateRegexes, text)
	if !ok || !m.Has("month") || !m.Has("day") {
		return ResolutionResult{}, false
	}
	month, ok := p.cfg.parseMonth(m.Group("month"))
	if !ok {
		return ResolutionResult{}, false
	}
	day, ok := p.cfg.parseDay(m.Group("day"))
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()

	if m.Has("year") {
		year, ok := p.cfg.parseYear(m.Group("year"))
		if !ok {
			return ResolutionResult{}, false
		}
		tx := timex.LuisDate(year, month, day)
		if d, valid := timex.Date(year, month, day, loc); valid {
			return fixed(tx, Instant(d)), true
		}
		return fixed(tx, Instant(timex.ClipDate(year, month, day, loc))), true
	}

	if wd, ok := p.cfg.DayOfWeek[m.key("weekday")]; ok {
		if future, past, ok := monthDayOnWeekday(ref, month, day, wd); ok {
			return dual(timex.LuisDate(-1, month, day), Instant(future), Instant(past)), true
		}
	}
	future, past := monthDayBothWays(ref, month, day)
	return dual(timex.LuisDate(-1, month, day), Instant(future), Instant(past)), true
}

// monthDayOnWeekday is monthDayBothWays restricted to years in which the
// month-day falls on wd: "Friday, June 13".
func monthDayOnWeekday(ref time.Time, month, day int, wd time.Weekday) (future, past time.Time, ok bool) {
	today := timex.DayStart(ref)
	loc := ref.Location()
	var haveFuture, havePast bool
	for i := 0; i <= 2*calendarCycle && !haveFuture; i++ {
		if d, valid := timex.Date(ref.Year()+i, month, day, loc); valid && d.Weekday() == wd && !d.Before(today) {
			future, haveFuture = d, true
		}
	}
	for i := 0; i <= 2*calendarCycle && !havePast; i++ {
		if d, valid := timex.Date(ref.Year()-i, month, day, loc); valid && d.Weekday() == wd && d.Before(today) {
			past, havePast = d, true
		}
	}
	return future, past, haveFuture && havePast
}

// acceptsYear reports whether an explicit date written without a year can
// take year: the day must exist then and fall on the weekday given with it.
func (c *LocaleConfig) acceptsYear(dateText string, year int) bool {
	m, ok := matchWholeAny(c.Date.DateRegexes, dateText)
	if !ok || m.Has("year") || !m.Has("month") || !m.Has("day") {
		return false
	}
	month, ok := c.parseMonth(m.Group("month"))
	if !ok {
		return false
	}
	day, ok := c.parseDay(m.Group("day"))
	if !ok {
		return false
	}
	d, ok := timex.Date(year, month, day, time.UTC)
	if !ok {
		return false
	}
	if m.Has("weekday") {
		wd, ok := c.DayOfWeek[m.key("weekday")]
		return ok && d.Weekday() == wd
	}
	return true
}

// weekdayDay resolves "Friday the 13th": with a year, the month of that
// year nearest the reference day; without one, the nearest months on
// either side of it.
func (p *DateParser) weekdayDay(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Date.WeekdayDayRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	wd, ok := p.cfg.DayOfWeek[m.key("weekday")]
	if !ok {
		return ResolutionResult{}, false
	}
	day, ok := p.cfg.parseDay(m.Group("day"))
	if !ok {
		return ResolutionResult{}, false
	}
	today := timex.DayStart(ref)
	loc := ref.Location()

	if m.Has("year") {
		year, ok := p.cfg.parseYear(m.Group("year"))
		if !ok {
			return ResolutionResult{}, false
		}
		var best time.Time
		for month := 1; month <= 12; month++ {
			d, valid := timex.Date(year, month, day, loc)
			if !valid || d.Weekday() != wd {
				continue
			}
			if best.IsZero() || distance(d, today) < distance(best, today) {
				best = d
			}
		}
		if best.IsZero() {
			return ResolutionResult{}, false
		}
		return fixed(timex.FormatDate(best), Instant(best)), true
	}

	first := timex.MonthStart(ref)
	var future, past time.Time
	for i := 0; i < 12*calendarCycle && future.IsZero(); i++ {
		mo := first.AddDate(0, i, 0)
		if d, valid := timex.Date(mo.Year(), int(mo.Month()), day, loc); valid && d.Weekday() == wd && !d.Before(today) {
			future = d
		}
	}
	for i := 0; i < 12*calendarCycle && past.IsZero(); i++ {
		mo := first.AddDate(0, -i, 0)
		if d, valid := timex.Date(mo.Year(), int(mo.Month()), day, loc); valid && d.Weekday() == wd && d.Before(today) {
			past = d
		}
	}
	if future.IsZero() || past.IsZero() {
		return ResolutionResult{}, false
	}
	return dual(timex.LuisDate(-1, -1, day), Instant(future), Instant(past)), true
}

func distance(a, b time.Time) time.Duration {
	if a.Before(b) {
		return b.Sub(a)
	}
	return a.Sub(b)
}

// monthDayBothWays finds the nearest month-day on or after the reference day
// and the nearest one strictly before it, searching neighbouring years for
// days that only exist in leap years. A day that exists in no year collapses
// both directions onto the clipped date of the reference year.
func monthDayBothWays(ref time.Time, month, day int) (future, past time.Time) {
	today := timex.DayStart(ref)
	loc := ref.Location()
	var haveFuture, havePast bool
	for i := 0; i <= yearSearch && !haveFuture; i++ {
		if d, ok := timex.Date(ref.Year()+i, month, day, loc); ok && !d.Before(today) {
			future, haveFuture = d, true
		}
	}
	for i := 0; i <= yearSearch && !havePast; i++ {
		if d, ok := timex.Date(ref.Year()-i, month, day, loc); ok && d.Before(today) {
			past, havePast = d, true
		}
	}
	if !haveFuture || !havePast {
		clipped := timex.ClipDate(ref.Year(), month, day, loc)
		if !haveFuture && !havePast {
			return clipped, clipped
		}
		if !haveFuture {
			future = past
		} else {
			past = future
		}
	}
	return future, past
}

func (p *DateParser) specialDay(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Date.SpecialDayRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	off, ok := p.cfg.DayOffsets[m.key("day")]
	if !ok {
		return ResolutionResult{}, false
	}
	d := timex.DayStart(ref).AddDate(0, 0, off)
	return fixed(timex.FormatDate(d), Instant(d)), true
}

func (p *DateParser) relativeWeekday(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Date.RelativeWeekdayRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	step, ok := p.cfg.relative(m.Group("rel"))
	if !ok {
		return ResolutionResult{}, false
	}
	wd, ok := p.cfg.DayOfWeek[m.key("weekday")]
	if !ok {
		return ResolutionResult{}, false
	}
	d := timex.ThisWeekday(ref, wd).AddDate(0, 0, 7*step)
	return fixed(timex.Weekday(wd), Instant(d)), true
}

func (p *DateParser) weekday(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Date.WeekdayRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	wd, ok := p.cfg.DayOfWeek[m.key("weekday")]
	if !ok {
		return ResolutionResult{}, false
	}
	return dual(timex.Weekday(wd),
		Instant(timex.UpcomingWeekday(ref, wd)),
		Instant(timex.PreviousWeekday(ref, wd))), true
}

func (p *DateParser) dayOfMonth(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Date.OnRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	day, ok := p.cfg.parseDay(m.Group("day"))
	if !ok {
		return ResolutionResult{}, false
	}
	future, past := dayBothWays(ref, day)
	return dual(timex.LuisDate(-1, -1, day), Instant(future), Instant(past)), true
}

// dayBothWays finds the nearest month having day, on or after the reference
// day and strictly before it.
func dayBothWays(ref time.Time, day int) (future, past time.Time) {
	today := timex.DayStart(ref)
	first := timex.MonthStart(ref)
	loc := ref.Location()
	future, past = timex.ClipDate(ref.Year(), int(ref.Month()), day, loc), time.Time{}
	for i := 0; i < 12; i++ {
		mo := first.AddDate(0, i, 0)
		if d, ok := timex.Date(mo.Year(), int(mo.Month()), day, loc); ok && !d.Before(today) {
			future = d
			break
		}
	}
	past = future
	for i := 0; i < 12; i++ {
		mo := first.AddDate(0, -i, 0)
		if d, ok := timex.Date(mo.Year(), int(mo.Month()), day, loc); ok && d.Before(today) {
			past = d
			break
		}
	}
	return future, past
}

func (p *DateParser) weekdayOfMonth(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Date.WeekdayOfMonthRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	n, ok := p.cfg.parseCardinal(m.Group("cardinal"))
	if !ok || n < 1 || n > 5 {
		return ResolutionResult{}, false
	}
	wd, ok := p.cfg.DayOfWeek[m.key("weekday")]
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()

	if m.Has("rel") {
		step, ok := p.cfg.relative(m.Group("rel"))
		if !ok {
			return ResolutionResult{}, false
		}
		mo := timex.MonthStart(ref).AddDate(0, step, 0)
		d := timex.NthWeekdayOfMonth(mo.Year(), int(mo.Month()), wd, n, loc)
		return fixed(timex.WeekdayOfMonth(mo.Year(), int(mo.Month()), wd, n), Instant(d)), true
	}

	month, ok := p.cfg.parseMonth(m.Group("month"))
	if !ok {
		return ResolutionResult{}, false
	}
	if m.Has("year") {
		year, ok := p.cfg.parseYear(m.Group("year"))
		if !ok {
			return ResolutionResult{}, false
		}
		d := timex.NthWeekdayOfMonth(year, month, wd, n, loc)
		return fixed(timex.WeekdayOfMonth(year, month, wd, n), Instant(d)), true
	}

	today := timex.DayStart(ref)
	this := timex.NthWeekdayOfMonth(ref.Year(), month, wd, n, loc)
	future, past := this, this
	if this.Before(today) {
		future = timex.NthWeekdayOfMonth(ref.Year()+1, month, wd, n, loc)
	} else {
		past = timex.NthWeekdayOfMonth(ref.Year()-1, month, wd, n, loc)
	}
	return dual(timex.WeekdayOfMonth(-1, month, wd, n), Instant(future), Instant(past)), true
}

// durationRelative handles "3 days ago", "in 2 weeks", "3天后" and
// "3 days after next Tuesday".
func (p *DateParser) durationRelative(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	durs := p.durExt.Extract(text, ref)
	if len(durs) == 0 {
		return ResolutionResult{}, false
	}
	dur := durs[0]
	amounts, ok := p.duration.resolveDuration(dur.Text)
	if !ok {
		return ResolutionResult{}, false
	}
	before, after := text[:dur.Start], text[dur.End():]
	d := p.cfg.Date
	today := timex.DayStart(ref)

	if strings.TrimSpace(before) != "" {
		if _, ok := matchWhole(d.InRegex, before); !ok || strings.TrimSpace(after) != "" {
			return ResolutionResult{}, false
		}
		t := shiftBy(today, amounts, 1)
		return fixed(timex.FormatDate(t), Instant(t)), true
	}

	if _, ok := matchWhole(d.AgoRegex, after); ok {
		t := shiftBy(today, amounts, -1)
		return fixed(timex.FormatDate(t), Instant(t)), true
	}
	if _, ok := matchWhole(d.LaterRegex, after); ok {
		t := shiftBy(today, amounts, 1)
		return fixed(timex.FormatDate(t), Instant(t)), true
	}

	m, ok := matchStart(d.BeforeAfterRegex, after)
	if !ok {
		return ResolutionResult{}, false
	}
	sign, ok := d.BeforeAfterMap[m.key("dir")]
	if !ok {
		return ResolutionResult{}, false
	}
	anchor, ok := p.resolve(after[m.End():], ref)
	if !ok {
		return ResolutionResult{}, false
	}
	future := shiftBy(anchor.FutureValue.Start, amounts, float64(sign))
	past := shiftBy(anchor.PastValue.Start, amounts, float64(sign))
	return dual(timex.FormatDate(future), Instant(future), Instant(past)), true
}
