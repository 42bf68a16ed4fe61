package datetime

import (
	"strings"
	"time"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// DurationParser resolves durations into a TIMEX period and a length in
// seconds. Both directions carry the same value.
type DurationParser struct {
	cfg   *LocaleConfig
	chain Chain
}

// NewDurationParser builds a duration parser for a locale.
func NewDurationParser(cfg *LocaleConfig) *DurationParser {
	p := &DurationParser{cfg: cfg}
	p.chain = Chain{
		RuleFunc(p.single),
		RuleFunc(p.compound),
	}
	return p
}

func (p *DurationParser) Kind() EntityKind { return KindDuration }

// Parse implements Parser. An inequality prefix is stripped and reported as
// the Mod of the resolution.
func (p *DurationParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	text, mod := p.stripInequality(er.Text)
	pr := ParseResult{ExtractResult: er}
	r, ok := p.chain.Resolve(text, ref)
	if !ok {
		return pr
	}
	r.Mod = mod
	pr.Value = &r
	pr.TimexStr = r.Timex
	return pr
}

func (p *DurationParser) stripInequality(text string) (string, ModTag) {
	parts := durationParts(p.cfg, text)
	if len(parts) == 0 || parts[0].start == 0 {
		return text, ModNone
	}
	prefix := text[:parts[0].start]
	if m, ok := matchEnd(p.cfg.Duration.MoreThanRegex, prefix); ok && strings.TrimSpace(prefix[:m.Start()]) == "" {
		return text[parts[0].start:], ModMore
	}
	if m, ok := matchEnd(p.cfg.Duration.LessThanRegex, prefix); ok && strings.TrimSpace(prefix[:m.Start()]) == "" {
		return text[parts[0].start:], ModLess
	}
	return text, ModNone
}

// amount reads the count of one unit match.
func (p *DurationParser) amount(m match) (float64, bool) {
	var n float64
	switch {
	case m.Has("halfonly"):
		n = 0.5
	case m.Has("num"):
		v, ok := p.cfg.parseNumber(m.Group("num"))
		if !ok {
			return 0, false
		}
		n = v
	default:
		n = 1
	}
	if m.Has("half") {
		n += 0.5
	}
	return n, true
}

// single handles one unit, optionally followed by "and a half".
func (p *DurationParser) single(text string, _ time.Time) (ResolutionResult, bool) {
	text = strings.TrimSpace(text)
	for _, re := range p.cfg.Duration.DurationRegexes {
		for _, m := range findAll(re, text) {
			if m.Start() != 0 {
				continue
			}
			rest := text[m.End():]
			half := false
			if strings.TrimSpace(rest) != "" {
				hm, ok := matchStart(p.cfg.Duration.HalfSuffixRegex, rest)
				if !ok || strings.TrimSpace(rest[hm.End():]) != "" {
					continue
				}
				half = true
			}
			unit, ok := p.cfg.unit(m.Group("unit"))
			if !ok {
				continue
			}
			n, ok := p.amount(m)
			if !ok {
				continue
			}
			if half {
				n += 0.5
			}
			return durationResolution(map[string]float64{unit: n}), true
		}
	}
	return ResolutionResult{}, false
}

// compound sums several unit matches separated by connectors.
func (p *DurationParser) compound(text string, _ time.Time) (ResolutionResult, bool) {
	if len(durationParts(p.cfg, strings.TrimSpace(text))) < 2 {
		return ResolutionResult{}, false
	}
	sum, ok := p.resolveDuration(text)
	if !ok {
		return ResolutionResult{}, false
	}
	return durationResolution(sum), true
}

func durationResolution(parts map[string]float64) ResolutionResult {
	var secs float64
	for u, n := range parts {
		secs += n * timex.UnitSeconds[u]
	}
	return fixed(timex.Compound(parts), DurationSeconds(secs))
}

// resolveDuration parses a duration phrase into unit amounts. It is shared
// by the relative date, date-time and period rules.
func (p *DurationParser) resolveDuration(text string) (map[string]float64, bool) {
	text = strings.TrimSpace(text)
	parts := durationParts(p.cfg, text)
	if len(parts) == 0 || parts[0].start != 0 {
		return nil, false
	}
	sum := map[string]float64{}
	for i, part := range parts {
		if i > 0 && !gapMatches(p.cfg.Duration.CompoundConnectorRegex, text[parts[i-1].end:part.start]) {
			return nil, false
		}
		n, ok := p.amount(part.m)
		if !ok {
			return nil, false
		}
		sum[part.unit] += n
	}
	rest := text[parts[len(parts)-1].end:]
	if strings.TrimSpace(rest) != "" {
		hm, ok := matchStart(p.cfg.Duration.HalfSuffixRegex, rest)
		if !ok || strings.TrimSpace(rest[hm.End():]) != "" {
			return nil, false
		}
		sum[parts[len(parts)-1].unit] += 0.5
	}
	return sum, true
}

// shiftBy applies unit amounts to t with the given sign.
func shiftBy(t time.Time, parts map[string]float64, sign float64) time.Time {
	for _, u := range []string{timex.UnitYear, timex.UnitMonth, timex.UnitWeek, timex.UnitDay, timex.UnitHour, timex.UnitMinute, timex.UnitSecond} {
		if n, ok := parts[u]; ok {
			t = timex.Shift(t, u, sign*n)
		}
	}
	return t
}
