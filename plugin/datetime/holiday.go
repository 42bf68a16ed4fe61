package datetime

import (
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// HolidayExtractor finds named holidays from the locale lexicon.
type HolidayExtractor struct {
	cfg *LocaleConfig
}

// NewHolidayExtractor builds a holiday extractor for a locale.
func NewHolidayExtractor(cfg *LocaleConfig) *HolidayExtractor {
	return &HolidayExtractor{cfg: cfg}
}

func (e *HolidayExtractor) Kind() EntityKind { return KindHoliday }

// Extract implements Extractor. Only names present in the lexicon count.
func (e *HolidayExtractor) Extract(text string, _ time.Time) []ExtractResult {
	var tokens []Token
	for _, re := range e.cfg.Holiday.HolidayRegexes {
		for _, m := range findAll(re, text) {
			if _, ok := e.cfg.Holiday.Holidays[NormalizeHoliday(m.Group("holiday"))]; !ok {
				continue
			}
			t := NewToken(m.Start(), m.End())
			t.Metadata = &Metadata{IsHoliday: true}
			tokens = append(tokens, t)
		}
	}
	return MergeAllTokens(tokens, text, KindHoliday)
}

// HolidayParser resolves holidays to a day. Without a year the next and
// previous occurrence around the reference day are offered.
type HolidayParser struct {
	cfg   *LocaleConfig
	chain Chain
}

// NewHolidayParser builds a holiday parser for a locale.
func NewHolidayParser(cfg *LocaleConfig) *HolidayParser {
	p := &HolidayParser{cfg: cfg}
	p.chain = Chain{RuleFunc(p.holiday)}
	return p
}

func (p *HolidayParser) Kind() EntityKind { return KindHoliday }

// Parse implements Parser.
func (p *HolidayParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

func (p *HolidayParser) holiday(text string, ref time.Time) (ResolutionResult, bool) {
	h := p.cfg.Holiday
	m, ok := matchWholeAny(h.HolidayRegexes, text)
	if !ok {
		return ResolutionResult{}, false
	}
	rule, ok := h.Holidays[NormalizeHoliday(m.Group("holiday"))]
	if !ok {
		return ResolutionResult{}, false
	}
	loc := ref.Location()

	year := -1
	switch {
	case m.Has("year"):
		y, ok := p.cfg.parseYear(m.Group("year"))
		if !ok {
			return ResolutionResult{}, false
		}
		year = y
	case m.Has("rel"):
		off, ok := h.YearRelMap[m.key("rel")]
		if !ok {
			return ResolutionResult{}, false
		}
		year = ref.Year() + off
	}

	var r ResolutionResult
	if year >= 0 {
		d, ok := rule.On(year, loc)
		if !ok {
			return ResolutionResult{}, false
		}
		r = fixed(timex.FormatDate(d), Instant(d))
	} else {
		today := timex.DayStart(ref)
		this, ok := rule.On(ref.Year(), loc)
		if !ok {
			return ResolutionResult{}, false
		}
		future, past := this, this
		if this.Before(today) {
			future, _ = rule.On(ref.Year()+1, loc)
		} else {
			past, _ = rule.On(ref.Year()-1, loc)
		}
		tx := timex.LuisDate(-1, int(this.Month()), this.Day())
		if rule.Compute != nil {
			// computed holidays move between years, so the timex names the
			// upcoming occurrence
			tx = timex.FormatDate(future)
		}
		r = dual(tx, Instant(future), Instant(past))
	}
	r.IsLunar = rule.Lunar
	return r, true
}
