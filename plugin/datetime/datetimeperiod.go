package datetime

import (
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// DateTimePeriodExtractor finds spans that carry a day and a part of it:
// "tomorrow morning", "tonight", "Monday 3-5pm", "from Monday 3pm to
// Tuesday 5pm", "next 5 minutes".
type DateTimePeriodExtractor struct {
	cfg        *LocaleConfig
	date       *DateExtractor
	time       *TimeExtractor
	dateTime   *DateTimeExtractor
	timePeriod *TimePeriodExtractor
}

// NewDateTimePeriodExtractor builds a date-time period extractor for a
// locale.
func NewDateTimePeriodExtractor(cfg *LocaleConfig, opts Options) *DateTimePeriodExtractor {
	return &DateTimePeriodExtractor{
		cfg:        cfg,
		date:       NewDateExtractor(cfg),
		time:       NewTimeExtractor(cfg),
		dateTime:   NewDateTimeExtractor(cfg),
		timePeriod: NewTimePeriodExtractor(cfg, opts),
	}
}

func (e *DateTimePeriodExtractor) Kind() EntityKind { return KindDateTimePeriod }

// Extract implements Extractor.
func (e *DateTimePeriodExtractor) Extract(text string, ref time.Time) []ExtractResult {
	dtp := e.cfg.DateTimePeriod
	tokens := matchTokens(text, dtp.SpecificTimeOfDayRegex, dtp.RelativeTimeUnitRegex)

	dates := e.date.Extract(text, ref)
	gap := connectorGap(dtp.ConnectorRegex)
	parts := MergeAllTokens(matchTokens(text, e.cfg.TimePeriod.TimeOfDayRegex), text, KindTimePeriod)
	tokens = append(tokens, pairTokens(text, dates, parts, true, gap)...)
	tokens = append(tokens, pairTokens(text, dates, e.timePeriod.Extract(text, ref), true, gap)...)

	dateTimes := e.dateTime.Extract(text, ref)
	points := append([]ExtractResult{}, dateTimes...)
	for _, t := range e.time.Extract(text, ref) {
		if !coveredByAny(t, dateTimes) {
			points = append(points, t)
		}
	}
	for _, t := range rangeTokens(text, points, e.cfg.Range, false) {
		span := spanOf(text, t.Start, t.End, KindDateTimePeriod)
		for _, dt := range dateTimes {
			if span.Covers(dt) {
				tokens = append(tokens, t)
				break
			}
		}
	}
	return MergeAllTokens(tokens, text, KindDateTimePeriod)
}

func coveredByAny(er ExtractResult, ers []ExtractResult) bool {
	for _, o := range ers {
		if o.Covers(er) {
			return true
		}
	}
	return false
}

// DateTimePeriodParser resolves date-time periods.
type DateTimePeriodParser struct {
	cfg           *LocaleConfig
	dateExt       *DateExtractor
	timeExt       *TimeExtractor
	dateTimeExt   *DateTimeExtractor
	timePeriodExt *TimePeriodExtractor
	date          *DateParser
	time          *TimeParser
	dateTime      *DateTimeParser
	timePeriod    *TimePeriodParser
	chain         Chain
}

// NewDateTimePeriodParser builds a date-time period parser for a locale.
func NewDateTimePeriodParser(cfg *LocaleConfig) *DateTimePeriodParser {
	p := &DateTimePeriodParser{
		cfg:           cfg,
		dateExt:       NewDateExtractor(cfg),
		timeExt:       NewTimeExtractor(cfg),
		dateTimeExt:   NewDateTimeExtractor(cfg),
		timePeriodExt: NewTimePeriodExtractor(cfg, CalendarMode),
		date:          NewDateParser(cfg),
		time:          NewTimeParser(cfg),
		dateTime:      NewDateTimeParser(cfg),
		timePeriod:    NewTimePeriodParser(cfg),
	}
	p.chain = Chain{
		RuleFunc(p.specificTimeOfDay),
		RuleFunc(p.dateWithTimeOfDay),
		RuleFunc(p.dateWithTimePeriod),
		RuleFunc(p.twoPoints),
		RuleFunc(p.relativeTimeUnit),
	}
	return p
}

func (p *DateTimePeriodParser) Kind() EntityKind { return KindDateTimePeriod }

// Parse implements Parser.
func (p *DateTimePeriodParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

// timeOfDayByTimex finds the hours of a part of day by its timex code.
func (p *DateTimePeriodParser) timeOfDayByTimex(code string) (TimeOfDay, bool) {
	for _, tod := range p.cfg.TimePeriod.TimeOfDayMap {
		if tod.Timex == code {
			return tod, true
		}
	}
	return TimeOfDay{}, false
}

func (p *DateTimePeriodParser) specificTimeOfDay(text string, ref time.Time) (ResolutionResult, bool) {
	dtp := p.cfg.DateTimePeriod
	m, ok := matchWhole(dtp.SpecificTimeOfDayRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	stod, ok := dtp.SpecificTimeOfDayMap[strings.ToLower(m.Text())]
	if !ok {
		return ResolutionResult{}, false
	}
	tod, ok := p.timeOfDayByTimex(stod.TimeOfDay)
	if !ok {
		return ResolutionResult{}, false
	}
	day := timex.DayStart(ref).AddDate(0, 0, stod.DayOffset)
	return timeOfDayResolution(tod, day, timex.FormatDate(day)), true
}

func (p *DateTimePeriodParser) dateWithTimeOfDay(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	var parts []ExtractResult
	var tods []match
	for _, m := range findAll(p.cfg.TimePeriod.TimeOfDayRegex, text) {
		parts = append(parts, spanOf(text, m.Start(), m.End(), KindTimePeriod))
		tods = append(tods, m)
	}
	d, _, ok := splitPair(text, p.dateExt.Extract(text, ref), parts, connectorGap(p.cfg.DateTimePeriod.ConnectorRegex))
	if !ok {
		return ResolutionResult{}, false
	}
	tod, ok := p.cfg.TimePeriod.TimeOfDayMap[tods[0].key("timeofday")]
	if !ok {
		return ResolutionResult{}, false
	}
	dr, ok := p.date.resolve(d.Text, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	future := timeOfDayResolution(tod, dr.FutureValue.Start, "")
	past := timeOfDayResolution(tod, dr.PastValue.Start, "")
	r := dual(dr.Timex+tod.Timex, future.FutureValue, past.FutureValue)
	r.IsLunar = dr.IsLunar
	return r, true
}

func (p *DateTimePeriodParser) dateWithTimePeriod(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	d, tp, ok := splitPair(text, p.dateExt.Extract(text, ref), p.timePeriodExt.Extract(text, ref), connectorGap(p.cfg.DateTimePeriod.ConnectorRegex))
	if !ok {
		return ResolutionResult{}, false
	}
	dr, ok := p.date.resolve(d.Text, ref)
	if !ok {
		return ResolutionResult{}, false
	}
	tr, ok := p.timePeriod.chain.Resolve(tp.Text, ref)
	if !ok || tr.FutureValue.Kind != ValueRange {
		return ResolutionResult{}, false
	}
	today := timex.DayStart(ref)
	onto := func(day time.Time) TemporalValue {
		shift := day.Sub(today)
		return Range(tr.FutureValue.Start.Add(shift), tr.FutureValue.End.Add(shift))
	}
	future, past := onto(dr.FutureValue.Start), onto(dr.PastValue.Start)
	r := dual(timex.DateTimeRange(future.Start, future.End), future, past)
	r.IsLunar = dr.IsLunar
	return r, true
}

// twoPoints handles "from Monday 3pm to Tuesday 5pm" and "from today 5pm to
// 7pm"; a bare time endpoint takes the day of the other endpoint.
func (p *DateTimePeriodParser) twoPoints(text string, ref time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	dateTimes := p.dateTimeExt.Extract(text, ref)
	points := append([]ExtractResult{}, dateTimes...)
	for _, t := range p.timeExt.Extract(text, ref) {
		if !coveredByAny(t, dateTimes) {
			points = append(points, t)
		}
	}
	sortByStart(points)
	first, second, ok := rangeParts(text, points, p.cfg.Range)
	if !ok || first.Kind != KindDateTime && second.Kind != KindDateTime {
		return ResolutionResult{}, false
	}

	resolve := func(er ExtractResult, other *ResolutionResult) (ResolutionResult, bool) {
		if er.Kind == KindDateTime {
			return p.dateTime.chain.Resolve(er.Text, ref)
		}
		c, ok := p.time.parseClock(er.Text)
		if !ok || other == nil {
			return ResolutionResult{}, false
		}
		fd, pd := timex.DayStart(other.FutureValue.Start), timex.DayStart(other.PastValue.Start)
		return dual(timex.FormatDate(fd)+c.timex(), Instant(c.on(fd)), Instant(c.on(pd))), true
	}

	var r1, r2 ResolutionResult
	if first.Kind == KindDateTime {
		if r1, ok = resolve(first, nil); !ok {
			return ResolutionResult{}, false
		}
		if r2, ok = resolve(second, &r1); !ok {
			return ResolutionResult{}, false
		}
	} else {
		if r2, ok = resolve(second, nil); !ok {
			return ResolutionResult{}, false
		}
		if r1, ok = resolve(first, &r2); !ok {
			return ResolutionResult{}, false
		}
	}
	fs, fe := r1.FutureValue.Start, r2.FutureValue.Start
	ps, pe := r1.PastValue.Start, r2.PastValue.Start
	if !fe.After(fs) || !pe.After(ps) {
		return ResolutionResult{}, false
	}
	return dual(timex.DateTimeRange(fs, fe), Range(fs, fe), Range(ps, pe)), true
}

// relativeTimeUnit handles "next 5 minutes" and "past 2 hours".
func (p *DateTimePeriodParser) relativeTimeUnit(text string, ref time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.DateTimePeriod.RelativeTimeUnitRegex, text)
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
	if !ok || !timex.IsTimeUnit(unit) {
		return ResolutionResult{}, false
	}
	s, e := ref, timex.Shift(ref, unit, n)
	if dir < 0 {
		s, e = timex.Shift(ref, unit, -n), ref
	}
	tx := timex.Range(timex.FormatDateTime(s), timex.FormatDateTime(e), timex.Duration(n, unit))
	return fixed(tx, Range(s, e)), true
}
