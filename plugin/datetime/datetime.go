package datetime

import (
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// DateTimeExtractor finds instants that carry both a day and a clock time:
// "tomorrow at 5pm", "5pm on Monday", "tonight at 8", "3 hours ago", "now".
type DateTimeExtractor struct {
	cfg      *LocaleConfig
	date     *DateExtractor
	time     *TimeExtractor
	duration *DurationExtractor
}

// NewDateTimeExtractor builds a date-time extractor for a locale.
func NewDateTimeExtractor(cfg *LocaleConfig) *DateTimeExtractor {
	return &DateTimeExtractor{
		cfg:      cfg,
		date:     NewDateExtractor(cfg),
		time:     NewTimeExtractor(cfg),
		duration: NewDurationExtractor(cfg),
	}
}

func (e *DateTimeExtractor) Kind() EntityKind { return KindDateTime }

// Extract implements Extractor.
func (e *DateTimeExtractor) Extract(text string, ref time.Time) []ExtractResult {
	tokens := matchTokens(text, e.cfg.DateTime.NowRegex)

	dates := e.date.Extract(text, ref)
	times := e.time.Extract(text, ref)
	gap := connectorGap(e.cfg.DateTime.ConnectorRegex)
	tokens = append(tokens, pairTokens(text, dates, times, true, gap)...)

	specific := MergeAllTokens(matchTokens(text, e.cfg.DateTimePeriod.SpecificTimeOfDayRegex), text, KindDateTimePeriod)
	tokens = append(tokens, pairTokens(text, specific, times, true, gap)...)

	tokens = append(tokens, e.relativeDurations(text, ref)...)
	ers := MergeAllTokens(tokens, text, KindDateTime)
	tokens = append(tokens, yearSuffixTokens(e.cfg, e.cfg.DateTime.YearSuffixRegex, text, ers, func(er ExtractResult, year int) bool {
		dates := e.date.Extract(er.Text, ref)
		return len(dates) == 1 && e.cfg.acceptsYear(dates[0].Text, year)
	})...)
	return MergeAllTokens(tokens, text, KindDateTime)
}

// relativeDurations anchors durations with a clock unit to the reference
// instant: "3 hours ago", "in 5 minutes", "2天3小时后".
func (e *DateTimeExtractor) relativeDurations(text string, ref time.Time) []Token {
	d := e.cfg.Date
	var tokens []Token
	for _, dur := range e.duration.Extract(text, ref) {
		if _, ok := dur.Data.(InequalityData); ok {
			continue
		}
		if onlyDateUnits(e.cfg, dur.Text) {
			continue
		}
		after := text[dur.End():]
		if m, ok := matchStart(d.AgoRegex, after); ok {
			tokens = append(tokens, NewToken(dur.Start, dur.End()+m.End()))
			continue
		}
		if m, ok := matchStart(d.LaterRegex, after); ok {
			tokens = append(tokens, NewToken(dur.Start, dur.End()+m.End()))
			continue
		}
		if e.cfg.Capabilities.CheckBothBeforeAfter {
			if m, ok := matchEnd(d.InRegex, text[:dur.Start]); ok {
				tokens = append(tokens, NewToken(m.Start(), dur.End()))
			}
		}
	}
	return tokens
}

// DateTimeParser resolves date-time instants.
type DateTimeParser struct {
	cfg      *LocaleConfig
	dateExt  *DateExtractor
	timeExt  *TimeExtractor
	durExt   *DurationExtractor
	date     *DateParser
	time     *TimeParser
	duration *DurationParser
	chain    Chain
}

// NewDateTimeParser builds a date-time parser for a locale.
func NewDateTimeParser(cfg *LocaleConfig) *DateTimeParser {
	p := &DateTimeParser{
		cfg:      cfg,
		dateExt:  NewDateExtractor(cfg),
		timeExt:  NewTimeExtractor(cfg),
		durExt:   NewDurationExtractor(cfg),
		date:     NewDateParser(cfg),
		time:     NewTimeParser(cfg),
		duration: NewDurationParser(cfg),
	}
	p.chain = Chain{
		RuleFunc(p.now),
		RuleFunc(p.dateAndTime),
		RuleFunc(p.specificTimeOfDay),
		RuleFunc(p.durationRelative),
		RuleFunc(p.yearSuffix),
	}
	return p
}

func (p *DateTimeParser) Kind() EntityKind { return KindDateTime }

// Parse implements Parser.
func (p *DateTimeParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

func (p *DateTimeParser) now(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DateTime.NowRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	tx, ok := p.cfg.DateTime.NowMap[strings.ToLower(strings.Join(strings.Fields(m.Text()), " "))]
	if !ok {
		tx = timex.PresentRef
	}
	return fixed(tx, Instant(ref)), true
}

// splitDateTime locates the single date and single time making up text.
func (p *DateTimeParser) splitDateTime(text string, ref time.Time) (date, clk ExtractResult, ok bool) {
	return splitPair(text, p.dateExt.Extract(text, ref), p.timeExt.Extract(text, ref), connectorGap(p.cfg.DateTime.ConnectorRegex))
}

func (p *DateTimeParser) dateAndTime(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	d, t, ok := p.splitDateTime(text, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	dr, ok := p.date.resolve(d.Text, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	c, ok := p.time.parseClock(t.Text)
	if !ok {
		return ResolutionResult{}, false
	}
	return combineDateClock(dr, c), true
}

// combineDateClock puts a clock time on both candidate days of a date.
func combineDateClock(dr ResolutionResult, c clock) ResolutionResult {
	r := dual(dr.Timex+c.timex(),
		Instant(c.on(dr.FutureValue.Start)),
		Instant(c.on(dr.PastValue.Start)))
	r.IsLunar = dr.IsLunar
	if c.ambiguous {
		r.Comment = CommentAmPm
	}
	return r
}

func (p *DateTimeParser) specificTimeOfDay(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	times := p.timeExt.Extract(text, ref)
	if len(times) != 1 {
		return ResolutionResult{}, false
	}
	t := times[0]
	var rest string
	switch {
	case strings.TrimSpace(text[t.End():]) == "":
		rest = text[:t.Start]
	case strings.TrimSpace(text[:t.Start]) == "":
		rest = text[t.End():]
	default:
		return ResolutionResult{}, false
	}
	dp := p.cfg.DateTimePeriod
	specific := findAll(dp.SpecificTimeOfDayRegex, rest)
	if len(specific) != 1 {
		return ResolutionResult{}, false
	}
	sm := specific[0]
	var gap string
	if t.Start == 0 {
		gap = rest[:sm.Start()]
	} else {
		gap = rest[sm.End():]
	}
	if !gapMatches(p.cfg.DateTime.ConnectorRegex, gap) {
		return ResolutionResult{}, false
	}
	stod, ok := dp.SpecificTimeOfDayMap[strings.ToLower(strings.TrimSpace(sm.Text()))]
	if !ok {
		return ResolutionResult{}, false
	}
	c, ok := p.time.parseClock(t.Text)
	if !ok {
		return ResolutionResult{}, false
	}
	if c.ambiguous && c.hour < 12 && stod.TimeOfDay != timex.Morning {
		c.hour += 12
		c.ambiguous = false
	}
	day := timex.DayStart(ref).AddDate(0, 0, stod.DayOffset)
	at := c.on(day)
	return fixed(timex.FormatDate(day)+c.timex(), Instant(at)), true
}

func (p *DateTimeParser) durationRelative(text string, ref time.Time) (ResolutionResult, bool) {
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

	sign := 0.0
	switch {
	case strings.TrimSpace(before) != "":
		if _, ok := matchWhole(d.InRegex, before); ok && strings.TrimSpace(after) == "" {
			sign = 1
		}
	default:
		if _, ok := matchWhole(d.AgoRegex, after); ok {
			sign = -1
		} else if _, ok := matchWhole(d.LaterRegex, after); ok {
			sign = 1
		}
	}
	if sign == 0 {
		return ResolutionResult{}, false
	}
	t := shiftBy(ref, amounts, sign)
	return fixed(timex.FormatDateTime(t), Instant(t)), true
}

// yearSuffix resolves a date and time followed by the year they belong to.
func (p *DateTimeParser) yearSuffix(text string, ref time.Time) (ResolutionResult, bool) {
	rest, year, ok := splitYearSuffix(p.cfg, p.cfg.DateTime.YearSuffixRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	return pinYear(p.chain[:len(p.chain)-1].Resolve, rest, year, ref.Location())
}
