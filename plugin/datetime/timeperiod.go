package datetime

import (
	"regexp"
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// TimePeriodExtractor finds spans within one day: "3-5pm", "from 3:30 to
// 5pm", "this morning" style parts of the day and, in calendar mode, bare
// "from 3 to 5" and "during the day".
type TimePeriodExtractor struct {
	cfg  *LocaleConfig
	opts Options
	time *TimeExtractor
}

// NewTimePeriodExtractor builds a time period extractor for a locale.
func NewTimePeriodExtractor(cfg *LocaleConfig, opts Options) *TimePeriodExtractor {
	return &TimePeriodExtractor{cfg: cfg, opts: opts, time: NewTimeExtractor(cfg)}
}

func (e *TimePeriodExtractor) Kind() EntityKind { return KindTimePeriod }

// Extract implements Extractor.
func (e *TimePeriodExtractor) Extract(text string, ref time.Time) []ExtractResult {
	tp := e.cfg.TimePeriod
	calendar := e.opts.Has(CalendarMode)

	var tokens []Token
	for _, m := range findAll(tp.PureNumberRangeRegex, text) {
		if !calendar && !m.Has("desc1") && !m.Has("desc2") && !m.Has("min1") && !m.Has("min2") {
			continue
		}
		start := m.Start()
		if pm, ok := matchEnd(e.cfg.Range.FromRegex, text[:start]); ok {
			start = pm.Start()
		} else if pm, ok := matchEnd(e.cfg.Range.BetweenRegex, text[:start]); ok {
			start = pm.Start()
		}
		tokens = append(tokens, NewToken(start, m.End()))
	}
	tokens = append(tokens, matchTokens(text, tp.TimeOfDayRegex)...)
	if calendar {
		tokens = append(tokens, matchTokens(text, tp.DuringTheDayRegex)...)
	}
	tokens = append(tokens, rangeTokens(text, e.time.Extract(text, ref), e.cfg.Range, false)...)
	return MergeAllTokens(tokens, text, KindTimePeriod)
}

// TimePeriodParser resolves spans within the reference day.
type TimePeriodParser struct {
	cfg     *LocaleConfig
	timeExt *TimeExtractor
	time    *TimeParser
	chain   Chain
}

// NewTimePeriodParser builds a time period parser for a locale.
func NewTimePeriodParser(cfg *LocaleConfig) *TimePeriodParser {
	p := &TimePeriodParser{cfg: cfg, timeExt: NewTimeExtractor(cfg), time: NewTimeParser(cfg)}
	p.chain = Chain{
		RuleFunc(p.pureNumber),
		RuleFunc(p.timeOfDay),
		RuleFunc(p.duringTheDay),
		RuleFunc(p.twoTimes),
	}
	return p
}

func (p *TimePeriodParser) Kind() EntityKind { return KindTimePeriod }

// Parse implements Parser.
func (p *TimePeriodParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

// stripRangePrefix drops a leading "from" or "between".
func (p *TimePeriodParser) stripRangePrefix(text string) string {
	text = strings.TrimSpace(text)
	for _, re := range []*regexp.Regexp{p.cfg.Range.FromRegex, p.cfg.Range.BetweenRegex} {
		if m, ok := matchStart(re, text); ok {
			return strings.TrimSpace(text[m.End():])
		}
	}
	return text
}

func (p *TimePeriodParser) pureNumber(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.TimePeriod.PureNumberRangeRegex, p.stripRangePrefix(text))
	if !ok {
		return ResolutionResult{}, false
	}
	c1, ok1 := p.rawClock(m.Group("hour1"), m.Group("min1"))
	c2, ok2 := p.rawClock(m.Group("hour2"), m.Group("min2"))
	if !ok1 || !ok2 {
		return ResolutionResult{}, false
	}
	desc1, desc2 := m.Group("desc1"), m.Group("desc2")
	p.time.applyDesc(&c1, desc1)
	p.time.applyDesc(&c2, desc2)
	alignClocks(&c1, &c2, desc1 != "", desc2 != "", func(c *clock) { p.time.applyDesc(c, desc2) })
	return clockRange(c1, c2, timex.DayStart(ref)), true
}

func (p *TimePeriodParser) rawClock(hour, min string) (clock, bool) {
	h, ok := p.cfg.parseInt(hour)
	if !ok || h < 0 || h > 24 {
		return clock{}, false
	}
	c := clock{hour: h}
	if strings.TrimSpace(min) != "" {
		n, ok := p.cfg.parseInt(min)
		if !ok || n < 0 || n > 59 {
			return clock{}, false
		}
		c.min, c.hasMin = n, true
	}
	return c, true
}

// alignClocks lets an endpoint without am/pm borrow the other endpoint's
// descriptor when that keeps the start before the end; two bare hours are
// read as an afternoon span when the end would otherwise precede the start.
func alignClocks(c1, c2 *clock, has1, has2 bool, borrowDesc2 func(*clock)) {
	switch {
	case !has1 && has2:
		borrowed := clock{hour: c1.hour, min: c1.min, hasMin: c1.hasMin}
		borrowDesc2(&borrowed)
		if minutesOf(borrowed) <= minutesOf(*c2) {
			*c1 = borrowed
		}
		c1.ambiguous = false
	case has1 && !has2:
		if minutesOf(*c2) < minutesOf(*c1) && c2.hour < 12 {
			c2.hour += 12
		}
		c2.ambiguous = false
	case !has1 && !has2:
		if minutesOf(*c2) <= minutesOf(*c1) && c2.hour < 12 {
			c2.hour += 12
		}
	}
}

func minutesOf(c clock) int {
	return c.hour*60 + c.min
}

func clockRange(c1, c2 clock, day time.Time) ResolutionResult {
	s, e := c1.on(day), c2.on(day)
	if e.Before(s) {
		e = e.AddDate(0, 0, 1)
	}
	r := fixed(timex.ClockRange(s, e), Range(s, e))
	if c1.ambiguous && c2.ambiguous {
		r.Comment = CommentAmPm
	}
	return r
}

func (p *TimePeriodParser) timeOfDay(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.TimePeriod.TimeOfDayRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	tod, ok := p.cfg.TimePeriod.TimeOfDayMap[m.key("timeofday")]
	if !ok {
		return ResolutionResult{}, false
	}
	return timeOfDayResolution(tod, timex.DayStart(ref), ""), true
}

// timeOfDayResolution spans a named part of day. prefix is the date timex
// the part of day hangs off, empty for a bare part of day.
func timeOfDayResolution(tod TimeOfDay, day time.Time, prefix string) ResolutionResult {
	s := day.Add(time.Duration(tod.StartHour) * time.Hour)
	e := day.Add(time.Duration(tod.EndHour) * time.Hour)
	return fixed(prefix+tod.Timex, Range(s, e))
}

// daytime is the calendar-mode reading of "during the day".
var daytime = TimeOfDay{Timex: timex.Daytime, StartHour: 8, EndHour: 18}

func (p *TimePeriodParser) duringTheDay(text string, ref time.Time) (ResolutionResult, bool) {
	if _, ok := matchWhole(p.cfg.TimePeriod.DuringTheDayRegex, text); !ok {
		return ResolutionResult{}, false
	}
	return timeOfDayResolution(daytime, timex.DayStart(ref), ""), true
}

// twoTimes handles "from 3:30 to 5pm" and "between 10am and noon".
func (p *TimePeriodParser) twoTimes(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	first, second, ok := rangeParts(text, p.timeExt.Extract(text, ref), p.cfg.Range)
	if !ok {
		return ResolutionResult{}, false
	}
	m1, ok1 := matchWholeAny(p.cfg.Time.TimeRegexes, first.Text)
	m2, ok2 := matchWholeAny(p.cfg.Time.TimeRegexes, second.Text)
	if !ok1 || !ok2 {
		return ResolutionResult{}, false
	}
	c1, ok1 := p.time.clockOf(m1)
	c2, ok2 := p.time.clockOf(m2)
	if !ok1 || !ok2 {
		return ResolutionResult{}, false
	}
	desc2 := m2.Group("desc")
	has1 := m1.Has("desc") || m1.Has("special")
	has2 := desc2 != "" || m2.Has("special")
	if has1 || has2 {
		alignClocks(&c1, &c2, has1, has2, func(c *clock) { p.time.applyDesc(c, desc2) })
	}
	return clockRange(c1, c2, timex.DayStart(ref)), true
}
