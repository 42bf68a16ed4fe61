package datetime

import (
	"regexp"
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// daily is the periodic timex that the each-day rule accepts in place of an
// explicit "every day" phrase.
const daily = "P1D"

// SetExtractor finds recurrences: "daily", "every 2 weeks", "mondays",
// "every Monday at 3pm", "3pm every day", "每天下午3点".
type SetExtractor struct {
	cfg        *LocaleConfig
	date       *DateExtractor
	time       *TimeExtractor
	dateTime   *DateTimeExtractor
	datePeriod *DatePeriodExtractor
	timePeriod *TimePeriodExtractor
}

// NewSetExtractor builds a recurrence extractor for a locale.
func NewSetExtractor(cfg *LocaleConfig, opts Options) *SetExtractor {
	return &SetExtractor{
		cfg:        cfg,
		date:       NewDateExtractor(cfg),
		time:       NewTimeExtractor(cfg),
		dateTime:   NewDateTimeExtractor(cfg),
		datePeriod: NewDatePeriodExtractor(cfg, opts),
		timePeriod: NewTimePeriodExtractor(cfg, opts),
	}
}

func (e *SetExtractor) Kind() EntityKind { return KindSet }

// Extract implements Extractor.
func (e *SetExtractor) Extract(text string, ref time.Time) []ExtractResult {
	s := e.cfg.Set
	tokens := matchTokens(text, s.PeriodicRegex, s.EachUnitRegex, s.WeekdaysRegex)

	times := e.time.Extract(text, ref)
	timePeriods := e.timePeriod.Extract(text, ref)
	dateTimes := e.dateTime.Extract(text, ref)
	for _, list := range [][]ExtractResult{
		e.date.Extract(text, ref),
		times,
		dateTimes,
		e.datePeriod.Extract(text, ref),
		timePeriods,
	} {
		for _, er := range list {
			if m, ok := matchEnd(s.EachPrefixRegex, text[:er.Start]); ok {
				tokens = append(tokens, NewToken(m.Start(), er.End()))
			}
		}
	}

	for _, list := range [][]ExtractResult{times, timePeriods, dateTimes} {
		for _, er := range list {
			if start, ok := e.cfg.dailyBefore(text[:er.Start]); ok {
				tokens = append(tokens, NewToken(start, er.End()))
			}
			if n, ok := e.cfg.dailyAfter(text[er.End():]); ok {
				tokens = append(tokens, NewToken(er.Start, er.End()+n))
			}
		}
	}
	return MergeAllTokens(tokens, text, KindSet)
}

// dailyCues are the regexes accepted as "every day" around a clock entity.
// With the each-day guard only EachDayRegex counts; without it a periodic
// word that means daily ("daily", "每日") is accepted too.
func (c *LocaleConfig) dailyCues() []*regexp.Regexp {
	if c.Capabilities.SetEachDayGuard {
		return []*regexp.Regexp{c.Set.EachDayRegex}
	}
	return []*regexp.Regexp{c.Set.EachDayRegex, c.Set.PeriodicRegex}
}

func (c *LocaleConfig) isDailyCue(re *regexp.Regexp, m match) bool {
	return re != c.Set.PeriodicRegex || c.Set.PeriodicMap[strings.ToLower(m.Text())] == daily
}

// dailyBefore finds a daily cue ending at the end of s and returns where it
// starts.
func (c *LocaleConfig) dailyBefore(s string) (int, bool) {
	for _, re := range c.dailyCues() {
		if m, ok := matchEnd(re, s); ok && c.isDailyCue(re, m) {
			return m.Start(), true
		}
	}
	return 0, false
}

// dailyAfter finds a daily cue at the start of s, after optional spaces,
// and returns the number of bytes it covers.
func (c *LocaleConfig) dailyAfter(s string) (int, bool) {
	lead := len(s) - len(strings.TrimLeft(s, " "))
	for _, re := range c.dailyCues() {
		if m, ok := matchStart(re, s[lead:]); ok && c.isDailyCue(re, m) {
			return lead + m.End(), true
		}
	}
	return 0, false
}

// SetParser resolves recurrences. Both values of a set carry its timex.
type SetParser struct {
	cfg           *LocaleConfig
	timeExt       *TimeExtractor
	timePeriodExt *TimePeriodExtractor
	date          *DateParser
	time          *TimeParser
	dateTime      *DateTimeParser
	datePeriod    *DatePeriodParser
	timePeriod    *TimePeriodParser
	chain         Chain
}

// NewSetParser builds a recurrence parser for a locale.
func NewSetParser(cfg *LocaleConfig) *SetParser {
	p := &SetParser{
		cfg:           cfg,
		timeExt:       NewTimeExtractor(cfg),
		timePeriodExt: NewTimePeriodExtractor(cfg, CalendarMode),
		date:          NewDateParser(cfg),
		time:          NewTimeParser(cfg),
		dateTime:      NewDateTimeParser(cfg),
		datePeriod:    NewDatePeriodParser(cfg),
		timePeriod:    NewTimePeriodParser(cfg),
	}
	p.chain = Chain{
		RuleFunc(p.periodic),
		RuleFunc(p.eachUnit),
		RuleFunc(p.weekdays),
		RuleFunc(p.eachDay),
		RuleFunc(p.eachEntity),
	}
	return p
}

func (p *SetParser) Kind() EntityKind { return KindSet }

// Parse implements Parser.
func (p *SetParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

func recurrence(tx string) ResolutionResult {
	return fixed(tx, SetValue(tx))
}

func (p *SetParser) periodic(text string, _ time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Set.PeriodicRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	tx, ok := p.cfg.Set.PeriodicMap[strings.ToLower(m.Text())]
	if !ok {
		return ResolutionResult{}, false
	}
	return recurrence(tx), true
}

// eachUnit handles "every 2 weeks", "every other day" and "每小时".
func (p *SetParser) eachUnit(text string, _ time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Set.EachUnitRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	unit, ok := p.cfg.unit(m.Group("unit"))
	if !ok {
		return ResolutionResult{}, false
	}
	n := 1.0
	switch {
	case m.Has("other"):
		n = 2
	case m.Has("num"):
		if n, ok = p.cfg.parseNumber(m.Group("num")); !ok || n <= 0 {
			return ResolutionResult{}, false
		}
	}
	return recurrence(timex.Duration(n, unit)), true
}

// weekdays handles plural weekdays: "mondays".
func (p *SetParser) weekdays(text string, _ time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.Set.WeekdaysRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	wd, ok := p.cfg.DayOfWeek[m.key("weekday")]
	if !ok {
		return ResolutionResult{}, false
	}
	return recurrence(timex.Weekday(wd)), true
}

// eachDay handles a clock time or part of day with a daily cue on either
// side: "3pm every day", "daily at 3pm", "每天下午3点".
func (p *SetParser) eachDay(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	for _, inner := range []struct {
		ext   Extractor
		chain Chain
	}{
		{p.timeExt, p.time.chain},
		{p.timePeriodExt, p.timePeriod.chain},
	} {
		ers := inner.ext.Extract(text, ref)
		if len(ers) != 1 {
			continue
		}
		er := ers[0]
		before, after := text[:er.Start], text[er.End():]
		cued := false
		if strings.TrimSpace(after) == "" {
			start, ok := p.cfg.dailyBefore(before)
			cued = ok && strings.TrimSpace(before[:start]) == ""
		} else if strings.TrimSpace(before) == "" {
			n, ok := p.cfg.dailyAfter(after)
			cued = ok && strings.TrimSpace(after[n:]) == ""
		}
		if !cued {
			continue
		}
		if r, ok := inner.chain.Resolve(er.Text, ref); ok {
			return recurrence(r.Timex), true
		}
	}
	return ResolutionResult{}, false
}

// eachEntity handles "every" followed by any other entity: "every Monday",
// "every Monday at 3pm", "each May".
func (p *SetParser) eachEntity(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	m, ok := matchStart(p.cfg.Set.EachPrefixRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	rest := strings.TrimSpace(text[m.End():])
	for _, c := range []Chain{
		p.dateTime.chain,
		p.date.chain,
		p.time.chain,
		p.timePeriod.chain,
		p.datePeriod.chain,
	} {
		if r, ok := c.Resolve(rest, ref); ok {
			return recurrence(r.Timex), true
		}
	}
	return ResolutionResult{}, false
}
