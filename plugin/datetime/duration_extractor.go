package datetime

import (
	"sort"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// durationPart is a single "number unit" match.
type durationPart struct {
	start, end int
	m          match
	unit       string
}

// DurationExtractor finds lengths of time: "3 days", "1 month and 2 days",
// "more than 2 weeks", "两个半小时".
type DurationExtractor struct {
	cfg *LocaleConfig
}

// NewDurationExtractor builds a duration extractor for a locale.
func NewDurationExtractor(cfg *LocaleConfig) *DurationExtractor {
	return &DurationExtractor{cfg: cfg}
}

func (e *DurationExtractor) Kind() EntityKind { return KindDuration }

// Extract implements Extractor.
func (e *DurationExtractor) Extract(text string, _ time.Time) []ExtractResult {
	parts := durationParts(e.cfg, text)
	if len(parts) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		t := NewToken(p.start, p.end)
		if m, ok := matchStart(e.cfg.Duration.HalfSuffixRegex, text[p.end:]); ok {
			t.End += m.End()
		}
		tokens = append(tokens, t)
	}
	merged := MergeAllTokens(tokens, text, KindDuration)

	// contiguous results joined by a connector form one compound duration
	var groups [][]ExtractResult
	for _, er := range merged {
		if n := len(groups); n > 0 {
			last := groups[n-1][len(groups[n-1])-1]
			if gapMatches(e.cfg.Duration.CompoundConnectorRegex, text[last.End():er.Start]) {
				groups[n-1] = append(groups[n-1], er)
				continue
			}
		}
		groups = append(groups, []ExtractResult{er})
	}

	results := make([]ExtractResult, 0, len(groups))
	for _, g := range groups {
		start, end := g[0].Start, g[len(g)-1].End()
		er := spanOf(text, start, end, KindDuration)

		var inner []durationPart
		for _, p := range parts {
			if p.start >= start && p.end <= end {
				inner = append(inner, p)
			}
		}
		if len(inner) > 1 {
			data := CompoundDurationData{Kind: compoundKind(inner)}
			for _, p := range inner {
				data.Parts = append(data.Parts, spanOf(text, p.start, p.end, KindDuration))
			}
			er.Data = data
		}

		before := text[:start]
		if m, ok := matchEnd(e.cfg.Duration.MoreThanRegex, before); ok {
			er = spanOf(text, m.Start(), end, KindDuration)
			er.Data = InequalityData{Mod: ModMore}
		} else if m, ok := matchEnd(e.cfg.Duration.LessThanRegex, before); ok {
			er = spanOf(text, m.Start(), end, KindDuration)
			er.Data = InequalityData{Mod: ModLess}
		}
		results = append(results, er)
	}
	return results
}

// durationParts returns the non-overlapping unit matches of text, longest
// first at equal starts. Matches naming a calendar period are skipped.
func durationParts(cfg *LocaleConfig, text string) []durationPart {
	var all []durationPart
	for _, re := range cfg.Duration.DurationRegexes {
		for _, m := range findAll(re, text) {
			u, ok := cfg.unit(m.Group("unit"))
			if !ok {
				continue
			}
			if _, calendar := matchWhole(cfg.Duration.CalendarRegex, m.Text()); calendar {
				continue
			}
			all = append(all, durationPart{start: m.Start(), end: m.End(), m: m, unit: u})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end > all[j].end
	})
	out := all[:0]
	lastEnd := -1
	for _, p := range all {
		if p.start >= lastEnd {
			out = append(out, p)
			lastEnd = p.end
		}
	}
	return out
}

func compoundKind(parts []durationPart) CompoundKind {
	var hasDate, hasTime bool
	for _, p := range parts {
		if timex.IsTimeUnit(p.unit) {
			hasTime = true
		} else {
			hasDate = true
		}
	}
	switch {
	case hasDate && hasTime:
		return CompoundMixed
	case hasTime:
		return CompoundTime
	}
	return CompoundDate
}

// durationUnits lists the units found in text.
func durationUnits(cfg *LocaleConfig, text string) []string {
	parts := durationParts(cfg, text)
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		units = append(units, p.unit)
	}
	return units
}

// onlyDateUnits reports whether a duration is measured in days or coarser.
func onlyDateUnits(cfg *LocaleConfig, text string) bool {
	units := durationUnits(cfg, text)
	if len(units) == 0 {
		return false
	}
	for _, u := range units {
		if timex.IsTimeUnit(u) {
			return false
		}
	}
	return true
}
