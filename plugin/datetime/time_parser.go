package datetime

import (
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// clock is a parsed time of day before it is anchored to a date.
type clock struct {
	hour, min, sec int
	hasMin, hasSec bool
	// ambiguous is set when the hour could be either am or pm.
	ambiguous bool
	// pm is set when an explicit descriptor put the hour after noon.
	pm bool
}

func (c clock) timex() string {
	min, sec := -1, -1
	if c.hasMin || c.hasSec {
		min = c.min
	}
	if c.hasSec {
		sec = c.sec
	}
	return timex.LuisTime(c.hour, min, sec)
}

// on anchors the clock to the day of d.
func (c clock) on(d time.Time) time.Time {
	h := c.hour
	if h == 24 {
		h = 0
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, c.min, c.sec, 0, d.Location())
}

// TimeParser resolves clock times against the reference day.
type TimeParser struct {
	cfg   *LocaleConfig
	chain Chain
}

// NewTimeParser builds a time parser for a locale.
func NewTimeParser(cfg *LocaleConfig) *TimeParser {
	p := &TimeParser{cfg: cfg}
	p.chain = Chain{RuleFunc(p.regexTime)}
	return p
}

func (p *TimeParser) Kind() EntityKind { return KindTime }

// Parse implements Parser. A bare number flagged as a time override is read
// as an hour.
func (p *TimeParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	if er.Metadata != nil && er.Metadata.IsTimeOverride {
		pr := ParseResult{ExtractResult: er}
		if r, ok := p.overrideHour(er.Text, ref); ok {
			r.Success = true
			pr.Value = &r
			pr.TimexStr = r.Timex
		}
		return pr
	}
	return parseWith(p.chain, er, ref)
}

func (p *TimeParser) regexTime(text string, ref time.Time) (ResolutionResult, bool) {
	c, ok := p.parseClock(text)
	if !ok {
		return ResolutionResult{}, false
	}
	return clockResolution(c, timex.DayStart(ref)), true
}

func clockResolution(c clock, day time.Time) ResolutionResult {
	t := c.on(day)
	r := fixed(c.timex(), Instant(t))
	if c.ambiguous {
		r.Comment = CommentAmPm
	}
	return r
}

func (p *TimeParser) overrideHour(text string, ref time.Time) (ResolutionResult, bool) {
	h, ok := p.cfg.parseInt(text)
	if !ok || h < 0 || h > 24 {
		return ResolutionResult{}, false
	}
	c := clock{hour: h, ambiguous: h > 0 && h <= 12}
	return clockResolution(c, timex.DayStart(ref)), true
}

// parseClock reads a whole time expression.
func (p *TimeParser) parseClock(text string) (clock, bool) {
	m, ok := matchWholeAny(p.cfg.Time.TimeRegexes, text)
	if !ok {
		return clock{}, false
	}
	return p.clockOf(m)
}

// clockOf interprets the groups of a time match.
func (p *TimeParser) clockOf(m match) (clock, bool) {
	var c clock
	t := p.cfg.Time

	switch {
	case m.Has("special"):
		h, ok := t.SpecialTimes[m.key("special")]
		if !ok {
			return clock{}, false
		}
		c.hour = h
		return c, true
	case m.Has("hour"):
		h, ok := p.cfg.parseInt(m.Group("hour"))
		if !ok || h < 0 || h > 24 {
			return clock{}, false
		}
		c.hour = h
	default:
		return clock{}, false
	}

	switch {
	case m.Has("min"):
		n, ok := p.cfg.parseInt(m.Group("min"))
		if !ok || n < 0 || n > 59 {
			return clock{}, false
		}
		c.min, c.hasMin = n, true
	case m.Has("half"):
		c.min, c.hasMin = 30, true
	case m.Has("quarter"):
		n, ok := t.QuarterMap[m.key("quarter")]
		if !ok {
			return clock{}, false
		}
		c.min, c.hasMin = n, true
	}
	if m.Has("sec") {
		n, ok := p.cfg.parseInt(m.Group("sec"))
		if !ok || n < 0 || n > 59 {
			return clock{}, false
		}
		c.sec, c.hasSec = n, true
	}
	if m.Has("to") {
		// "quarter to 6" counts back from the hour
		c.hour--
		if c.hour < 0 {
			c.hour = 23
		}
		c.min = 60 - c.min
		c.hasMin = true
	}

	p.applyDesc(&c, m.Group("desc"))
	return c, true
}

// applyDesc applies an am/pm descriptor. Without one, hours up to 12 stay
// literal and are marked ambiguous.
func (p *TimeParser) applyDesc(c *clock, desc string) {
	desc = strings.TrimSpace(desc)
	t := p.cfg.Time
	switch {
	case desc == "":
		c.ambiguous = c.hour > 0 && c.hour <= 12
	case t.MidDayRegex != nil && t.MidDayRegex.MatchString(desc):
		if c.hour < 10 {
			c.hour += 12
		}
		c.pm = c.hour >= 12
	case t.PMRegex != nil && t.PMRegex.MatchString(desc):
		if c.hour < 12 {
			c.hour += 12
		}
		c.pm = true
	case t.AMRegex != nil && t.AMRegex.MatchString(desc):
		if c.hour == 12 {
			c.hour = 0
		}
	default:
		c.ambiguous = c.hour > 0 && c.hour <= 12
	}
}
