package datetime

import (
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"
)

// DatePeriodExtractor finds spans of days: "May 5-10", "next week",
// "2016年到2017年", "the first quarter of 2016", "from May 5 to May 10".
type DatePeriodExtractor struct {
	cfg    *LocaleConfig
	opts   Options
	date   *DateExtractor
	parser *DatePeriodParser
}

// NewDatePeriodExtractor builds a date period extractor for a locale.
func NewDatePeriodExtractor(cfg *LocaleConfig, opts Options) *DatePeriodExtractor {
	return &DatePeriodExtractor{
		cfg:    cfg,
		opts:   opts,
		date:   NewDateExtractor(cfg),
		parser: NewDatePeriodParser(cfg),
	}
}

func (e *DatePeriodExtractor) Kind() EntityKind { return KindDatePeriod }

// Extract implements Extractor.
func (e *DatePeriodExtractor) Extract(text string, ref time.Time) []ExtractResult {
	dp := e.cfg.DatePeriod
	tokens := matchTokens(text,
		dp.SimpleCasesRegex,
		dp.MonthWithYearRegex,
		dp.MonthRegex,
		dp.YearRegex,
		dp.RelativeYearRegex,
		dp.RelativePeriodRegex,
		dp.WeekendRegex,
		dp.WeekOfMonthRegex,
		dp.QuarterRegex,
		dp.HalfYearRegex,
		dp.SeasonRegex,
		dp.RelativeNumberRegex,
	)
	tokens = append(tokens, unglued(text, dp.YearRangeRegex)...)
	tokens = append(tokens, unglued(text, dp.BareYearRegex)...)
	dates := e.date.Extract(text, ref)
	tokens = append(tokens, rangeTokens(text, dates, e.cfg.Range, e.opts.Has(SkipFromToMerge))...)

	periods := MergeAllTokens(tokens, text, KindDatePeriod)
	tokens = append(tokens, yearSuffixTokens(e.cfg, dp.YearSuffixRegex, text, periods, func(er ExtractResult, year int) bool {
		_, ok := pinYear(e.parser.base.Resolve, er.Text, year, ref.Location())
		return ok
	})...)
	tokens = append(tokens, earlyLateTokens(text, periods, dp)...)
	tokens = append(tokens, dekadTokens(text, periods, dp)...)
	return inclusive(MergeAllTokens(tokens, text, KindDatePeriod), text, dates, e.cfg.Range)
}

// unglued matches bare years and "2016-2018" style ranges. A match glued
// to digits, letters or dashes is part of something else (a phone number,
// a GUID) and is dropped.
func unglued(text string, re *regexp.Regexp) []Token {
	var tokens []Token
	for _, m := range findAll(re, text) {
		if gluedBefore(text, m.Start()) || gluedAfter(text, m.End()) {
			continue
		}
		tokens = append(tokens, NewToken(m.Start(), m.End()))
	}
	return tokens
}

// inclusive flags periods whose two dates are joined by a connector that
// takes in the second one: "Monday through Friday".
func inclusive(periods []ExtractResult, text string, dates []ExtractResult, rc RangeConfig) []ExtractResult {
	if rc.InclusiveRegex == nil {
		return periods
	}
	for i, p := range periods {
		var inside []ExtractResult
		for _, d := range dates {
			if p.Covers(d) {
				inside = append(inside, d)
			}
		}
		if len(inside) != 2 {
			continue
		}
		if _, ok := matchWhole(rc.InclusiveRegex, text[inside[0].End():inside[1].Start]); ok {
			md := Metadata{}
			if p.Metadata != nil {
				md = *p.Metadata
			}
			md.PossiblyIncludesPeriodEnd = true
			periods[i].Metadata = &md
		}
	}
	return periods
}

func gluedBefore(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return r == '-' || unicode.IsDigit(r) || r < utf8.RuneSelf && unicode.IsLetter(r)
}

func gluedAfter(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return r == '-' || unicode.IsDigit(r) || r < utf8.RuneSelf && unicode.IsLetter(r)
}

// dekadTokens widens months followed by 上旬, 中旬 or 下旬.
func dekadTokens(text string, periods []ExtractResult, dp DatePeriodConfig) []Token {
	var tokens []Token
	for _, p := range periods {
		if m, ok := matchStart(dp.DekadRegex, text[p.End():]); ok {
			tokens = append(tokens, NewToken(p.Start, p.End()+m.End()))
		}
	}
	return tokens
}

// earlyLateTokens widens periods preceded by "early", "mid", "late".
func earlyLateTokens(text string, periods []ExtractResult, dp DatePeriodConfig) []Token {
	var tokens []Token
	for _, p := range periods {
		before := text[:p.Start]
		for _, re := range []*regexp.Regexp{dp.EarlyRegex, dp.MidRegex, dp.LateRegex} {
			if m, ok := matchEnd(re, before); ok {
				tokens = append(tokens, NewToken(m.Start(), p.End()))
				break
			}
		}
	}
	return tokens
}
