package datetime

import (
	"time"
)

// DateExtractor finds single calendar days: explicit dates, implicit ones
// ("today", "the 13th", "next Tuesday") and durations anchored to today
// ("3 days ago", "in 2 weeks", "3 days after next Tuesday").
type DateExtractor struct {
	cfg      *LocaleConfig
	duration *DurationExtractor
}

// NewDateExtractor builds a date extractor for a locale.
func NewDateExtractor(cfg *LocaleConfig) *DateExtractor {
	return &DateExtractor{cfg: cfg, duration: NewDurationExtractor(cfg)}
}

func (e *DateExtractor) Kind() EntityKind { return KindDate }

// Extract implements Extractor.
func (e *DateExtractor) Extract(text string, ref time.Time) []ExtractResult {
	d := e.cfg.Date
	tokens := matchTokens(text, d.DateRegexes...)
	tokens = append(tokens, matchTokens(text,
		d.SpecialDayRegex,
		d.RelativeWeekdayRegex,
		d.WeekdayRegex,
		d.OnRegex,
		d.WeekdayDayRegex,
		d.WeekdayOfMonthRegex,
	)...)

	dates := MergeAllTokens(tokens, text, KindDate)
	tokens = append(tokens, e.relativeDurations(text, ref, dates)...)
	return MergeAllTokens(tokens, text, KindDate)
}

// relativeDurations anchors day-or-coarser durations to the reference day
// or to a following date.
func (e *DateExtractor) relativeDurations(text string, ref time.Time, dates []ExtractResult) []Token {
	d := e.cfg.Date
	var tokens []Token
	for _, dur := range e.duration.Extract(text, ref) {
		if _, ok := dur.Data.(InequalityData); ok {
			continue
		}
		if !onlyDateUnits(e.cfg, dur.Text) {
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
		if m, ok := matchStart(d.BeforeAfterRegex, after); ok {
			anchor := dur.End() + m.End()
			for _, date := range dates {
				if date.Start == anchor {
					tokens = append(tokens, NewToken(dur.Start, date.End()))
					break
				}
			}
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
