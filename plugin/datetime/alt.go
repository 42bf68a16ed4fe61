package datetime

import (
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// AltExtractor reclassifies members of "A or B" lists. The entity carrying
// the fuller context stays as it is; every other member becomes a
// DateTimeAlt that records what it borrows from that entity.
type AltExtractor struct {
	cfg  *LocaleConfig
	date *DateExtractor
}

// NewAltExtractor builds the alternation pass for a locale.
func NewAltExtractor(cfg *LocaleConfig) *AltExtractor {
	return &AltExtractor{cfg: cfg, date: NewDateExtractor(cfg)}
}

// Extract rewrites ers, which must be sorted by start.
func (e *AltExtractor) Extract(text string, ers []ExtractResult) []ExtractResult {
	out := make([]ExtractResult, len(ers))
	copy(out, ers)

	for i := 0; i < len(out); {
		j := i
		for j+1 < len(out) && e.joinable(text, out[j], out[j+1]) {
			j++
		}
		if j > i {
			e.reclassify(out[i : j+1])
		}
		i = j + 1
	}
	return e.relativePeriods(text, out)
}

func (e *AltExtractor) joinable(text string, a, b ExtractResult) bool {
	if !alternative(a.Kind) || !alternative(b.Kind) || b.Start < a.End() {
		return false
	}
	gap := text[a.End():b.Start]
	if strings.TrimSpace(gap) == "" {
		return false
	}
	_, ok := matchWhole(e.cfg.Alt.OrRegex, gap)
	return ok
}

func alternative(k EntityKind) bool {
	switch k {
	case KindDate, KindTime, KindDateTime, KindDatePeriod, KindTimePeriod, KindDateTimePeriod:
		return true
	}
	return false
}

// reclassify tries the first member as the context carrier, then the last.
func (e *AltExtractor) reclassify(group []ExtractResult) {
	last := len(group) - 1
	for _, carrier := range []int{0, last} {
		ctxs := make([]AltContext, len(group))
		ok := true
		for i, member := range group {
			if i == carrier {
				continue
			}
			if ctxs[i], ok = e.contextOf(group[carrier], member); !ok {
				break
			}
		}
		if !ok {
			continue
		}
		for i := range group {
			if i == carrier {
				continue
			}
			alt := group[i]
			alt.Kind = KindDateTimeAlt
			alt.Data = ctxs[i]
			group[i] = alt
		}
		return
	}
}

// contextOf decides what member borrows from carrier, if the pair forms a
// valid alternative at all.
func (e *AltExtractor) contextOf(carrier, member ExtractResult) (AltContext, bool) {
	ctx := AltContext{OriginalKind: member.Kind}
	switch {
	case carrier.Kind == KindDateTime && member.Kind == KindTime:
		dates := e.date.Extract(carrier.Text, time.Time{})
		if len(dates) != 1 {
			return ctx, false
		}
		ctx.Inherit, ctx.ContextText, ctx.ContextKind = InheritDate, dates[0].Text, KindDate
		return ctx, true

	case carrier.Kind == KindTime && member.Kind == KindTime:
		cd, ok1 := e.timeDesc(carrier.Text)
		md, ok2 := e.timeDesc(member.Text)
		if !ok1 || !ok2 {
			return ctx, false
		}
		switch {
		case cd != "" && md == "":
			ctx.Inherit, ctx.ContextText = InheritAmPm, cd
		case cd == "" && md != "":
			return ctx, false
		}
		return ctx, true

	case carrier.Kind == KindDate && member.Kind == KindDate:
		if m, ok := matchStart(e.cfg.Alt.RelativeWeekPrefixRegex, carrier.Text); ok && m.Has("prefix") {
			if _, bare := matchWhole(e.cfg.Date.WeekdayRegex, member.Text); bare {
				ctx.Inherit, ctx.ContextText, ctx.ContextKind = InheritRelativeWeek, m.Group("prefix"), KindDate
				return ctx, true
			}
		}
		return ctx, true
	}
	return ctx, carrier.Kind == member.Kind
}

// timeDesc returns the am/pm descriptor of a time, "" when it has none.
// Named times such as "noon" lend nothing.
func (e *AltExtractor) timeDesc(text string) (string, bool) {
	m, ok := matchWholeAny(e.cfg.Time.TimeRegexes, text)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(m.Group("desc")), true
}

// relativePeriods turns "this week or next" into an extra alternative that
// spans the whole phrase and borrows the period unit.
func (e *AltExtractor) relativePeriods(text string, ers []ExtractResult) []ExtractResult {
	a := e.cfg.Alt
	if a.RelativePeriodRegex == nil || a.OrRelativeRegex == nil {
		return ers
	}
	var extra []ExtractResult
	for i, er := range ers {
		if er.Kind != KindDatePeriod {
			continue
		}
		pm, ok := matchWhole(a.RelativePeriodRegex, er.Text)
		if !ok || !pm.Has("unit") {
			continue
		}
		m, ok := matchStart(a.OrRelativeRegex, text[er.End():])
		if !ok {
			continue
		}
		end := er.End() + m.End()
		if i+1 < len(ers) && ers[i+1].Start < end {
			continue
		}
		alt := spanOf(text, er.Start, end, KindDateTimeAlt)
		alt.Data = AltContext{
			OriginalKind: KindDatePeriod,
			Inherit:      InheritPeriodUnit,
			ContextText:  pm.Group("unit"),
			ContextKind:  KindDatePeriod,
		}
		extra = append(extra, alt)
	}
	if len(extra) == 0 {
		return ers
	}
	ers = append(ers, extra...)
	sortByStart(ers)
	return ers
}

// AltParser resolves DateTimeAlt results using the context they borrowed.
type AltParser struct {
	cfg        *LocaleConfig
	date       *DateParser
	time       *TimeParser
	datePeriod *DatePeriodParser
	parsers    map[EntityKind]Parser
}

// NewAltParser builds the alternative parser. parsers resolves members
// that borrow nothing.
func NewAltParser(cfg *LocaleConfig, parsers map[EntityKind]Parser) *AltParser {
	return &AltParser{
		cfg:        cfg,
		date:       NewDateParser(cfg),
		time:       NewTimeParser(cfg),
		datePeriod: NewDatePeriodParser(cfg),
		parsers:    parsers,
	}
}

func (p *AltParser) Kind() EntityKind { return KindDateTimeAlt }

// Parse implements Parser.
func (p *AltParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	pr := ParseResult{ExtractResult: er}
	ctx, ok := er.Data.(AltContext)
	if !ok {
		return pr
	}
	r, ok := p.resolve(er, ctx, ref)
	if !ok {
		return pr
	}
	r.Success = true
	pr.Value = &r
	pr.TimexStr = r.Timex
	return pr
}

func (p *AltParser) resolve(er ExtractResult, ctx AltContext, ref time.Time) (ResolutionResult, bool) {
	switch ctx.Inherit {
	case InheritDate:
		dr, ok := p.date.resolve(ctx.ContextText, ref)
		if !ok {
			return ResolutionResult{}, false
		}
		c, ok := p.time.parseClock(er.Text)
		if !ok {
			return ResolutionResult{}, false
		}
		return combineDateClock(dr, c), true

	case InheritAmPm:
		m, ok := matchWholeAny(p.cfg.Time.TimeRegexes, er.Text)
		if !ok {
			return ResolutionResult{}, false
		}
		c, ok := p.time.clockOf(m)
		if !ok {
			return ResolutionResult{}, false
		}
		c.ambiguous = false
		p.time.applyDesc(&c, ctx.ContextText)
		return clockResolution(c, timex.DayStart(ref)), true

	case InheritRelativeWeek:
		return p.date.resolve(ctx.ContextText+er.Text, ref)

	case InheritPeriodUnit:
		ms := findAll(p.cfg.Alt.OrRelativeRegex, er.Text)
		if len(ms) == 0 {
			return ResolutionResult{}, false
		}
		rel := strings.TrimSpace(ms[len(ms)-1].Group("rel"))
		for _, phrase := range []string{rel + " " + ctx.ContextText, rel + ctx.ContextText} {
			if r, ok := p.datePeriod.chain.Resolve(phrase, ref); ok {
				return r, true
			}
		}
		return ResolutionResult{}, false
	}

	parser, ok := p.parsers[ctx.OriginalKind]
	if !ok {
		return ResolutionResult{}, false
	}
	inner := er
	inner.Kind, inner.Data = ctx.OriginalKind, nil
	pr := parser.Parse(inner, ref)
	if pr.Value == nil {
		return ResolutionResult{}, false
	}
	return *pr.Value, true
}
