package datetime

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// seasonStart is the first month of each meteorological season.
var seasonStart = map[string]int{
	"SP": 3,
	"SU": 6,
	"FA": 9,
	"WI": 12,
}

// DatePeriodParser resolves date periods into a start (inclusive) and end
// (exclusive) day.
type DatePeriodParser struct {
	cfg     *LocaleConfig
	dateExt *DateExtractor
	date    *DateParser
	// base holds the rules that read a period as written; chain adds the
	// ones that qualify such a period.
	base  Chain
	chain Chain
}

// NewDatePeriodParser builds a date period parser for a locale.
func NewDatePeriodParser(cfg *LocaleConfig) *DatePeriodParser {
	p := &DatePeriodParser{
		cfg:     cfg,
		dateExt: NewDateExtractor(cfg),
		date:    NewDateParser(cfg),
	}
	p.base = Chain{
		RuleFunc(p.simpleCases),
		RuleFunc(p.yearRange),
		RuleFunc(p.monthWithYear),
		RuleFunc(p.bareMonth),
		RuleFunc(p.year),
		RuleFunc(p.relativeYear),
		RuleFunc(p.relativePeriod),
		RuleFunc(p.weekend),
		RuleFunc(p.weekOfMonth),
		RuleFunc(p.quarter),
		RuleFunc(p.halfYear),
		RuleFunc(p.season),
		RuleFunc(p.relativeNumber),
		RuleFunc(p.twoDates),
	}
	p.chain = append(p.base[:len(p.base):len(p.base)],
		RuleFunc(p.yearSuffix),
		RuleFunc(p.dekad),
		RuleFunc(p.earlyLate),
	)
	return p
}

func (p *DatePeriodParser) Kind() EntityKind { return KindDatePeriod }

// Parse implements Parser.
func (p *DatePeriodParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

func rangeOf(tx string, start, end time.Time) ResolutionResult {
	return fixed(tx, Range(start, end))
}

// bothWays picks the occurrence of a yearly period that has not ended yet as
// the future value and the one that has already started as the past value.
func bothWays(ref time.Time, build func(year int) (time.Time, time.Time)) (future, past TemporalValue) {
	today := timex.DayStart(ref)
	s, e := build(ref.Year())
	future, past = Range(s, e), Range(s, e)
	if !e.After(today) {
		fs, fe := build(ref.Year() + 1)
		future = Range(fs, fe)
	}
	if !s.Before(today) {
		ps, pe := build(ref.Year() - 1)
		past = Range(ps, pe)
	}
	return future, past
}

// yearOf resolves an optional year or relative-year group, falling back to
// -1 when neither is present.
func (p *DatePeriodParser) yearOf(m match, ref time.Time) (int, bool) {
	switch {
	case m.Has("year"):
		return p.cfg.parseYear(strings.TrimRight(m.Group("year"), "年 "))
	case m.Has("rel"):
		if off, ok := p.cfg.DatePeriod.YearRelMap[m.key("rel")]; ok {
			return ref.Year() + off, true
		}
		if off, ok := p.cfg.relative(m.Group("rel")); ok {
			return ref.Year() + off, true
		}
		return 0, false
	}
	return -1, true
}

func (p *DatePeriodParser) simpleCases(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.SimpleCasesRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	month, ok := p.cfg.parseMonth(m.Group("month"))
	if !ok {
		return ResolutionResult{}, false
	}
	d1, ok1 := p.cfg.parseDay(m.Group("day1"))
	d2, ok2 := p.cfg.parseDay(m.Group("day2"))
	if !ok1 || !ok2 || d1 > d2 {
		return ResolutionResult{}, false
	}
	year, ok := p.yearOf(m, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()
	dur := timex.Duration(float64(d2-d1), timex.UnitDay)
	if year >= 0 {
		s, ok1 := timex.Date(year, month, d1, loc)
		e, ok2 := timex.Date(year, month, d2, loc)
		if !ok1 || !ok2 {
			return ResolutionResult{}, false
		}
		return rangeOf(timex.Range(timex.FormatDate(s), timex.FormatDate(e), dur), s, e), true
	}
	if d2 > 31 || !timex.IsValidDate(2000, month, d2) {
		return ResolutionResult{}, false
	}
	future, past := bothWays(ref, func(y int) (time.Time, time.Time) {
		return timex.ClipDate(y, month, d1, loc), timex.ClipDate(y, month, d2, loc)
	})
	tx := timex.Range(timex.LuisDate(-1, month, d1), timex.LuisDate(-1, month, d2), dur)
	return dual(tx, future, past), true
}

func (p *DatePeriodParser) yearRange(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.YearRangeRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	y1, ok1 := p.cfg.parseYear(m.Group("year1"))
	y2, ok2 := p.cfg.parseYear(m.Group("year2"))
	if !ok1 || !ok2 || y2 <= y1 {
		return ResolutionResult{}, false
	}
	loc := ref.Location()
	s := time.Date(y1, time.January, 1, 0, 0, 0, 0, loc)
	e := time.Date(y2, time.January, 1, 0, 0, 0, 0, loc)
	return rangeOf(timex.DateRange(s, e), s, e), true
}

func monthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	s := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return s, s.AddDate(0, 1, 0)
}

func (p *DatePeriodParser) monthWithYear(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.MonthWithYearRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	month, ok := p.cfg.parseMonth(m.Group("month"))
	if !ok {
		return ResolutionResult{}, false
	}
	year, ok := p.yearOf(m, ref)
	if !ok || year < 0 {
		return ResolutionResult{}, false
	}
	s, e := monthRange(year, month, ref.Location())
	return rangeOf(fmt.Sprintf("%04d-%02d", year, month), s, e), true
}

func (p *DatePeriodParser) bareMonth(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.MonthRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	month, ok := p.cfg.parseMonth(m.Group("month"))
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()
	future, past := bothWays(ref, func(y int) (time.Time, time.Time) { return monthRange(y, month, loc) })
	return dual(fmt.Sprintf("XXXX-%02d", month), future, past), true
}

func yearRange(year int, loc *time.Location) (time.Time, time.Time) {
	s := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return s, s.AddDate(1, 0, 0)
}

func (p *DatePeriodParser) year(text string, ref time.Time) (ResolutionResult, bool) {
	dp := p.cfg.DatePeriod
	m, ok := matchWholeAny([]*regexp.Regexp{dp.YearRegex, dp.BareYearRegex}, text)
	if !ok {
		return ResolutionResult{}, false
	}
	year, ok := p.yearOf(m, ref)
	if !ok || year < 0 {
		return ResolutionResult{}, false
	}
	s, e := yearRange(year, ref.Location())
	return rangeOf(fmt.Sprintf("%04d", year), s, e), true
}

func (p *DatePeriodParser) relativeYear(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.RelativeYearRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	off, ok := p.cfg.DatePeriod.YearRelMap[m.key("rel")]
	if !ok {
		return ResolutionResult{}, false
	}
	year := ref.Year() + off
	s, e := yearRange(year, ref.Location())
	return rangeOf(fmt.Sprintf("%04d", year), s, e), true
}

func (p *DatePeriodParser) relativePeriod(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.RelativePeriodRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	step, ok := p.cfg.relative(m.Group("rel"))
	if !ok {
		return ResolutionResult{}, false
	}
	unit, ok := p.cfg.unit(m.Group("unit"))
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()
	switch unit {
	case timex.UnitWeek:
		s := timex.WeekStart(ref).AddDate(0, 0, 7*step)
		return rangeOf(timex.Week(s), s, s.AddDate(0, 0, 7)), true
	case timex.UnitMonth:
		first := timex.MonthStart(ref).AddDate(0, step, 0)
		s, e := monthRange(first.Year(), int(first.Month()), loc)
		return rangeOf(fmt.Sprintf("%04d-%02d", s.Year(), int(s.Month())), s, e), true
	case timex.UnitYear:
		s, e := yearRange(ref.Year()+step, loc)
		return rangeOf(fmt.Sprintf("%04d", s.Year()), s, e), true
	}
	return ResolutionResult{}, false
}

func (p *DatePeriodParser) weekend(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.WeekendRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	step := 0
	if m.Has("rel") {
		s, ok := p.cfg.relative(m.Group("rel"))
		if !ok {
			return ResolutionResult{}, false
		}
		step = s
	}
	week := timex.WeekStart(ref).AddDate(0, 0, 7*step)
	s := week.AddDate(0, 0, 5)
	return rangeOf(timex.Week(week)+"-WE", s, s.AddDate(0, 0, 2)), true
}

// weekOfMonth counts weeks from the Monday on or before the 1st.
func (p *DatePeriodParser) weekOfMonth(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.WeekOfMonthRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	n, ok := p.cfg.parseCardinal(m.Group("cardinal"))
	if !ok || n < 1 || n > 5 {
		return ResolutionResult{}, false
	}
	loc := ref.Location()
	build := func(year, month int) (time.Time, time.Time) {
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		s := timex.WeekStart(first).AddDate(0, 0, 7*(n-1))
		return s, s.AddDate(0, 0, 7)
	}
	if m.Has("month") {
		month, ok := p.cfg.parseMonth(m.Group("month"))
		if !ok {
			return ResolutionResult{}, false
		}
		if m.Has("year") {
			year, ok := p.cfg.parseYear(m.Group("year"))
			if !ok {
				return ResolutionResult{}, false
			}
			s, e := build(year, month)
			return rangeOf(fmt.Sprintf("%04d-%02d-W%02d", year, month, n), s, e), true
		}
		future, past := bothWays(ref, func(y int) (time.Time, time.Time) { return build(y, month) })
		return dual(fmt.Sprintf("XXXX-%02d-W%02d", month, n), future, past), true
	}
	step := 0
	if m.Has("rel") {
		s, ok := p.cfg.relative(m.Group("rel"))
		if !ok {
			return ResolutionResult{}, false
		}
		step = s
	}
	mo := timex.MonthStart(ref).AddDate(0, step, 0)
	s, e := build(mo.Year(), int(mo.Month()))
	return rangeOf(fmt.Sprintf("%04d-%02d-W%02d", mo.Year(), int(mo.Month()), n), s, e), true
}

func (p *DatePeriodParser) quarter(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.QuarterRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	var q int
	if m.Has("quarter") {
		q, ok = p.cfg.parseInt(m.Group("quarter"))
	} else {
		q, ok = p.cfg.parseCardinal(m.Group("cardinal"))
	}
	if !ok || q < 1 || q > 4 {
		return ResolutionResult{}, false
	}
	year, ok := p.yearOf(m, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	if year < 0 {
		year = ref.Year()
	}
	s := time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, ref.Location())
	return rangeOf(fmt.Sprintf("%04d-Q%d", year, q), s, s.AddDate(0, 3, 0)), true
}

func (p *DatePeriodParser) halfYear(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.HalfYearRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	h, ok := p.cfg.DatePeriod.HalfYearMap[m.key("halfyear")]
	if !ok || h < 1 || h > 2 {
		return ResolutionResult{}, false
	}
	year, ok := p.yearOf(m, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	if year < 0 {
		year = ref.Year()
	}
	s := time.Date(year, time.Month(6*(h-1)+1), 1, 0, 0, 0, 0, ref.Location())
	return rangeOf(fmt.Sprintf("%04d-H%d", year, h), s, s.AddDate(0, 6, 0)), true
}

func (p *DatePeriodParser) season(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.SeasonRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	code, ok := p.cfg.DatePeriod.SeasonMap[m.key("season")]
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()
	build := func(y int) (time.Time, time.Time) {
		s := time.Date(y, time.Month(seasonStart[code]), 1, 0, 0, 0, 0, loc)
		return s, s.AddDate(0, 3, 0)
	}
	year, ok := p.yearOf(m, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	if year >= 0 {
		s, e := build(year)
		return rangeOf(fmt.Sprintf("%04d-%s", year, code), s, e), true
	}
	future, past := bothWays(ref, build)
	return dual("XXXX-"+code, future, past), true
}

// relativeNumber handles "next 3 days" (starting tomorrow) and "past 3
// weeks" (ending today).
func (p *DatePeriodParser) relativeNumber(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DatePeriod.RelativeNumberRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	dir, ok := p.cfg.relative(m.Group("rel"))
	if !ok || dir == 0 {
		return ResolutionResult{}, false
	}
	n := 1.0
	if m.Has("num") {
		n, ok = p.cfg.parseNumber(m.Group("num"))
		if !ok || n <= 0 {
			return ResolutionResult{}, false
		}
	}
	unit, ok := p.cfg.unit(m.Group("unit"))
	if !ok || !timex.IsDateUnit(unit) {
		return ResolutionResult{}, false
	}
	today := timex.DayStart(ref)
	var s, e time.Time
	if dir > 0 {
		s = today.AddDate(0, 0, 1)
		e = timex.Shift(s, unit, n)
	} else {
		e = today
		s = timex.Shift(e, unit, -n)
	}
	tx := timex.Range(timex.FormatDate(s), timex.FormatDate(e), timex.Duration(n, unit))
	return rangeOf(tx, s, e), true
}

// twoDates handles "from May 5 to May 10" and "between Monday and Friday".
func (p *DatePeriodParser) twoDates(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	first, second, ok := rangeParts(text, p.dateExt.Extract(text, ref), p.cfg.Range)
	if !ok {
		return ResolutionResult{}, false
	}
	r1, ok1 := p.date.resolve(first.Text, ref)
	r2, ok2 := p.date.resolve(second.Text, ref)
	if !ok1 || !ok2 {
		return ResolutionResult{}, false
	}
	r1, r2, ok = p.shareYear(first.Text, second.Text, r1, r2, ref.Location())
	if !ok {
		return ResolutionResult{}, false
	}
	fs, fe := r1.FutureValue.Start, r2.FutureValue.Start
	ps, pe := r1.PastValue.Start, r2.PastValue.Start
	if fe.Before(fs) {
		fe = fe.AddDate(1, 0, 0)
	}
	if pe.Before(ps) {
		ps = ps.AddDate(-1, 0, 0)
	}
	if _, incl := matchWhole(p.cfg.Range.InclusiveRegex, text[first.End():second.Start]); incl {
		fe, pe = fe.AddDate(0, 0, 1), pe.AddDate(0, 0, 1)
	}
	days := int(fe.Sub(fs).Hours()/24 + 0.5)
	tx := timex.Range(r1.Timex, r2.Timex, timex.Duration(float64(days), timex.UnitDay))
	r := dual(tx, Range(fs, fe), Range(ps, pe))
	r.IsLunar = r1.IsLunar || r2.IsLunar
	return r, true
}

// shareYear gives the endpoint written without a year the year of the
// other one, so "from May 1 to May 5, 2025" starts in 2025 too.
func (p *DatePeriodParser) shareYear(first, second string, r1, r2 ResolutionResult, loc *time.Location) (ResolutionResult, ResolutionResult, bool) {
	switch {
	case openYear(r1.Timex) && fullYear(r2.Timex):
		end := r2.FutureValue.Start
		r, ok := pinYear(p.date.resolve, first, end.Year(), loc)
		if ok && r.FutureValue.Start.After(end) {
			r, ok = pinYear(p.date.resolve, first, end.Year()-1, loc)
		}
		return r, r2, ok
	case fullYear(r1.Timex) && openYear(r2.Timex):
		start := r1.FutureValue.Start
		r, ok := pinYear(p.date.resolve, second, start.Year(), loc)
		if ok && r.FutureValue.Start.Before(start) {
			r, ok = pinYear(p.date.resolve, second, start.Year()+1, loc)
		}
		return r1, r, ok
	}
	return r1, r2, true
}

// yearSuffix resolves a period followed by the year it belongs to:
// "summer, 2025".
func (p *DatePeriodParser) yearSuffix(text string, ref time.Time) (ResolutionResult, bool) {
	rest, year, ok := splitYearSuffix(p.cfg, p.cfg.DatePeriod.YearSuffixRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	return pinYear(p.base.Resolve, rest, year, ref.Location())
}

// dekad narrows a month to its first, middle or last ten days.
func (p *DatePeriodParser) dekad(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	dp := p.cfg.DatePeriod
	m, ok := matchEnd(dp.DekadRegex, text)
	if !ok || m.Start() == 0 {
		return ResolutionResult{}, false
	}
	mod, ok := dp.DekadMap[m.key("dekad")]
	if !ok {
		return ResolutionResult{}, false
	}
	inner, ok := p.base.Resolve(text[:m.Start()], ref)
	if !ok || !wholeMonth(inner.FutureValue) || !wholeMonth(inner.PastValue) {
		return ResolutionResult{}, false
	}
	inner.FutureValue = tenDays(inner.FutureValue, mod)
	inner.PastValue = tenDays(inner.PastValue, mod)
	inner.Mod = mod
	return inner, true
}

func wholeMonth(v TemporalValue) bool {
	return v.Kind == ValueRange && v.Start.Day() == 1 && v.End.Equal(v.Start.AddDate(0, 1, 0))
}

// tenDays cuts a month into the 1st-10th, the 11th-20th and the 21st to
// the end of the month.
func tenDays(v TemporalValue, mod ModTag) TemporalValue {
	switch mod {
	case ModStart:
		return Range(v.Start, v.Start.AddDate(0, 0, 10))
	case ModMid:
		return Range(v.Start.AddDate(0, 0, 10), v.Start.AddDate(0, 0, 20))
	}
	return Range(v.Start.AddDate(0, 0, 20), v.End)
}

// earlyLate narrows a period preceded by "early", "mid" or "late" to its
// first half, middle half or second half.
func (p *DatePeriodParser) earlyLate(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	dp := p.cfg.DatePeriod
	for _, c := range []struct {
		re  *regexp.Regexp
		mod ModTag
	}{{dp.EarlyRegex, ModStart}, {dp.MidRegex, ModMid}, {dp.LateRegex, ModEnd}} {
		m, ok := matchStart(c.re, text)
		if !ok {
			continue
		}
		inner, ok := p.chain[:len(p.chain)-1].Resolve(text[m.End():], ref)
		if !ok || inner.FutureValue.Kind != ValueRange {
			return ResolutionResult{}, false
		}
		inner.FutureValue = narrow(inner.FutureValue, c.mod)
		inner.PastValue = narrow(inner.PastValue, c.mod)
		inner.Mod = c.mod
		return inner, true
	}
	return ResolutionResult{}, false
}

func narrow(v TemporalValue, mod ModTag) TemporalValue {
	days := int(v.End.Sub(v.Start).Hours()/24 + 0.5)
	half, quarter := days/2, days/4
	switch mod {
	case ModStart:
		return Range(v.Start, v.Start.AddDate(0, 0, half))
	case ModEnd:
		return Range(v.Start.AddDate(0, 0, half), v.End)
	case ModMid:
		return Range(v.Start.AddDate(0, 0, quarter), v.End.AddDate(0, 0, -quarter))
	}
	return v
}
