package datetime

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// MergedExtractor runs every extractor of a locale in a fixed order and
// reconciles their spans into one list.
type MergedExtractor struct {
	cfg        *LocaleConfig
	opts       Options
	extractors []Extractor
	alt        *AltExtractor
}

// NewMergedExtractor builds the ensemble extractor for a locale.
func NewMergedExtractor(cfg *LocaleConfig, opts Options) *MergedExtractor {
	extractors := []Extractor{
		NewDateExtractor(cfg),
		NewTimeExtractor(cfg),
		NewDurationExtractor(cfg),
		NewDatePeriodExtractor(cfg, opts),
		NewDateTimeExtractor(cfg),
		NewTimePeriodExtractor(cfg, opts),
		NewDateTimePeriodExtractor(cfg, opts),
		NewSetExtractor(cfg, opts),
		NewHolidayExtractor(cfg),
	}
	if opts.Has(EnablePreview) {
		extractors = append(extractors, NewTimeZoneExtractor(cfg))
	}
	return &MergedExtractor{
		cfg:        cfg,
		opts:       opts,
		extractors: extractors,
		alt:        NewAltExtractor(cfg),
	}
}

// Options returns the flags the extractor was built with.
func (m *MergedExtractor) Options() Options { return m.opts }

// Extract returns the disjoint temporal entities of text, sorted by start,
// or nil when there are none.
func (m *MergedExtractor) Extract(text string, ref time.Time) []ExtractResult {
	var ers []ExtractResult
	if stripped, origin, ok := m.strip(text); ok {
		ers = restoreOffsets(text, origin, m.extract(stripped, ref))
	} else {
		ers = m.extract(text, ref)
	}
	if len(ers) == 0 {
		return nil
	}
	return ers
}

func (m *MergedExtractor) strip(text string) (string, []int, bool) {
	if !m.opts.Has(EnablePreview) || len(m.cfg.Merged.SuperfluousWords) == 0 {
		return "", nil, false
	}
	stripped, origin := stripSuperfluous(text, m.cfg.Merged.SuperfluousWords)
	return stripped, origin, len(stripped) != len(text)
}

func (m *MergedExtractor) extract(text string, ref time.Time) []ExtractResult {
	var ers []ExtractResult
	for _, e := range m.extractors {
		ers = addTo(ers, e.Extract(text, ref))
	}
	sortByStart(ers)

	ers = m.numberOverrides(text, ers)
	ers = m.modifiers(text, ers)
	if m.opts.Has(CalendarMode) {
		ers = m.filterAmbiguity(text, ers)
	}
	if m.opts.Has(EnablePreview) {
		ers = mergeTimeZones(text, ers)
	}
	if m.opts.Has(ExtendedTypes) {
		ers = m.alt.Extract(text, ers)
	}
	return ers
}

// addTo merges src into dst. A result overlapping nothing is appended. A
// result that strictly covers every result it overlaps replaces them at the
// position of the first one. A partial overlap, or a span equal to one
// already present, is rejected so the earlier result stays.
func addTo(dst, src []ExtractResult) []ExtractResult {
	for _, er := range src {
		first := -1
		rejected := false
		for i, d := range dst {
			if !er.Overlaps(d) {
				continue
			}
			if !er.StrictlyCovers(d) {
				rejected = true
				break
			}
			if first < 0 {
				first = i
			}
		}
		switch {
		case rejected:
		case first < 0:
			dst = append(dst, er)
		default:
			out := make([]ExtractResult, 0, len(dst)+1)
			for i, d := range dst {
				if i == first {
					out = append(out, er)
				}
				if !er.Overlaps(d) {
					out = append(out, d)
				}
			}
			dst = out
		}
	}
	return dst
}

// numberOverrides turns "move the 3pm meeting to 4" into a second time
// entity "4" that overrides the hour of the first one.
func (m *MergedExtractor) numberOverrides(text string, ers []ExtractResult) []ExtractResult {
	re := m.cfg.Merged.NumberEndingRegex
	if re == nil {
		return ers
	}
	var extra []ExtractResult
	for _, er := range ers {
		if er.Kind != KindTime && er.Kind != KindDateTime {
			continue
		}
		after := text[er.End():]
		mm, ok := matchStart(re, after)
		if !ok {
			continue
		}
		s, e, ok := mm.groupSpan("newTime")
		if !ok {
			continue
		}
		t := spanOf(text, er.End()+s, er.End()+e, KindTime)
		t.Metadata = &Metadata{IsTimeOverride: true}
		extra = append(extra, t)
	}
	for _, t := range extra {
		clash := false
		for _, er := range ers {
			if er.Overlaps(t) {
				clash = true
				break
			}
		}
		if !clash {
			ers = append(ers, t)
		}
	}
	sortByStart(ers)
	return ers
}

type modCue struct {
	re  *regexp.Regexp
	mod ModTag
}

// modifiers widens results by an adjacent "before", "after" or "since" cue
// and records it in the metadata. Durations and sets take no such cue.
func (m *MergedExtractor) modifiers(text string, ers []ExtractResult) []ExtractResult {
	mc := m.cfg.Merged
	prefixes := []modCue{{mc.BeforeRegex, ModBefore}, {mc.AfterRegex, ModAfter}, {mc.SinceRegex, ModSince}}
	suffixes := []modCue{{mc.BeforeSuffixRegex, ModBefore}, {mc.AfterSuffixRegex, ModAfter}, {mc.SinceSuffixRegex, ModSince}}

	out := make([]ExtractResult, len(ers))
	copy(out, ers)
	for i, er := range out {
		if er.Kind == KindDuration || er.Kind == KindSet || er.Kind == KindTimeZone {
			continue
		}
		lo, hi := 0, len(text)
		if i > 0 {
			lo = out[i-1].End()
		}
		if i+1 < len(out) {
			hi = out[i+1].Start
		}
		if w, ok := widenByPrefix(text, lo, er, prefixes); ok {
			out[i] = w
			continue
		}
		if w, ok := widenBySuffix(text, hi, er, suffixes); ok {
			out[i] = w
		}
	}
	return out
}

func widenByPrefix(text string, lo int, er ExtractResult, cues []modCue) (ExtractResult, bool) {
	for _, c := range cues {
		mm, ok := matchEnd(c.re, text[lo:er.Start])
		if !ok {
			continue
		}
		start := lo + mm.Start()
		w := spanOf(text, start, er.End(), er.Kind)
		w.Data = er.Data
		w.Metadata = withMod(er.Metadata, c.mod, er.Start-start, false)
		return w, true
	}
	return er, false
}

func widenBySuffix(text string, hi int, er ExtractResult, cues []modCue) (ExtractResult, bool) {
	for _, c := range cues {
		mm, ok := matchStart(c.re, text[er.End():hi])
		if !ok {
			continue
		}
		w := spanOf(text, er.Start, er.End()+mm.End(), er.Kind)
		w.Data = er.Data
		w.Metadata = withMod(er.Metadata, c.mod, mm.End(), true)
		return w, true
	}
	return er, false
}

func withMod(md *Metadata, mod ModTag, n int, suffix bool) *Metadata {
	var c Metadata
	if md != nil {
		c = *md
	}
	c.Mod, c.ModLength, c.ModSuffix = mod, n, suffix
	return &c
}

// filterAmbiguity drops results listed as context dependent false
// positives: a span that matches a filter while the text around it matches
// the filter's context.
func (m *MergedExtractor) filterAmbiguity(text string, ers []ExtractResult) []ExtractResult {
	filters := m.cfg.Merged.AmbiguityFilters
	if len(filters) == 0 {
		return ers
	}
	out := ers[:0:0]
	for _, er := range ers {
		drop := false
		for _, f := range filters {
			if _, ok := matchWhole(f.Span, er.Text); !ok {
				continue
			}
			if f.Context == nil || f.Context.MatchString(text) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, er)
		}
	}
	return out
}

// timeBearing kinds may absorb a trailing time zone.
var timeBearing = map[EntityKind]bool{
	KindTime:           true,
	KindDateTime:       true,
	KindTimePeriod:     true,
	KindDateTimePeriod: true,
}

// mergeTimeZones folds a time zone that directly follows a time-bearing
// entity into it.
func mergeTimeZones(text string, ers []ExtractResult) []ExtractResult {
	out := make([]ExtractResult, 0, len(ers))
	for i := 0; i < len(ers); i++ {
		er := ers[i]
		if i+1 < len(ers) && timeBearing[er.Kind] && ers[i+1].Kind == KindTimeZone &&
			strings.TrimSpace(text[er.End():ers[i+1].Start]) == "" {
			zone := ers[i+1]
			merged := spanOf(text, er.Start, zone.End(), er.Kind)
			merged.Metadata = er.Metadata
			merged.Data = TimeZoneData{Zone: zone}
			out = append(out, merged)
			i++
			continue
		}
		out = append(out, er)
	}
	return out
}

// stripSuperfluous removes filler words and returns the shorter text with,
// for each of its bytes and its end, the matching offset in the original.
func stripSuperfluous(text string, words []string) (string, []int) {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var b strings.Builder
	origin := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		skipped := false
		for _, w := range sorted {
			end := i + len(w)
			if w != "" && end <= len(text) && strings.EqualFold(text[i:end], w) && wordBoundary(text, i, end) {
				i += len(w)
				skipped = true
				break
			}
		}
		if skipped {
			continue
		}
		b.WriteByte(text[i])
		origin = append(origin, i)
		i++
	}
	origin = append(origin, len(text))
	return b.String(), origin
}

func wordBoundary(text string, start, end int) bool {
	isWord := func(c byte) bool {
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
	}
	if start > 0 && isWord(text[start-1]) && isWord(text[start]) {
		return false
	}
	if end < len(text) && isWord(text[end-1]) && isWord(text[end]) {
		return false
	}
	return true
}

// restoreOffsets maps results on stripped text back onto the original.
func restoreOffsets(text string, origin []int, ers []ExtractResult) []ExtractResult {
	out := make([]ExtractResult, 0, len(ers))
	for _, er := range ers {
		start := origin[er.Start]
		end := origin[er.End()-1] + 1
		r := spanOf(text, start, end, er.Kind)
		r.Data, r.Metadata = er.Data, er.Metadata
		if tz, ok := er.Data.(TimeZoneData); ok {
			z := tz.Zone
			r.Data = TimeZoneData{Zone: spanOf(text, origin[z.Start], origin[z.End()-1]+1, z.Kind)}
		}
		out = append(out, r)
	}
	return out
}
