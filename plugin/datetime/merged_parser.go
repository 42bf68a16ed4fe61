package datetime

import (
	"strings"
	"time"
	"unicode"
)

// MergedParser resolves results of the MergedExtractor. It dispatches on
// the entity kind after taking off a before/after/since cue and a trailing
// time zone, and puts both back on the resolution.
type MergedParser struct {
	cfg      *LocaleConfig
	parsers  map[EntityKind]Parser
	alt      *AltParser
	timeZone *TimeZoneParser
}

// NewMergedParser builds the ensemble parser for a locale.
func NewMergedParser(cfg *LocaleConfig) *MergedParser {
	timeZone := NewTimeZoneParser(cfg)
	parsers := map[EntityKind]Parser{}
	for _, p := range []Parser{
		NewDateParser(cfg),
		NewTimeParser(cfg),
		NewDurationParser(cfg),
		NewDatePeriodParser(cfg),
		NewDateTimeParser(cfg),
		NewTimePeriodParser(cfg),
		NewDateTimePeriodParser(cfg),
		NewSetParser(cfg),
		NewHolidayParser(cfg),
		timeZone,
	} {
		parsers[p.Kind()] = p
	}
	return &MergedParser{
		cfg:      cfg,
		parsers:  parsers,
		alt:      NewAltParser(cfg, parsers),
		timeZone: timeZone,
	}
}

// Parse resolves one merged result. A span no rule understands comes back
// with a nil Value.
func (p *MergedParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	out := ParseResult{ExtractResult: er}

	inner, mod := stripMod(er)
	var zone *ExtractResult
	if tz, ok := inner.Data.(TimeZoneData); ok && tz.Zone.Start > inner.Start {
		z := tz.Zone
		zone = &z
		inner = subSpan(inner, 0, z.Start-inner.Start)
		inner.Data = nil
	}

	var pr ParseResult
	if inner.Kind == KindDateTimeAlt {
		pr = p.alt.Parse(inner, ref)
	} else if parser, ok := p.parsers[inner.Kind]; ok {
		pr = parser.Parse(inner, ref)
	}
	if pr.Value == nil {
		return out
	}

	v := *pr.Value
	if mod != ModNone {
		v.Mod = mod
	}
	if zone != nil {
		if zr := p.timeZone.Parse(*zone, ref); zr.Value != nil {
			v.TimeZone = zr.Value.TimeZone
		}
	}
	out.Value = &v
	out.TimexStr = v.Timex
	out.ResolutionStr = out.renderJSON()
	return out
}

// stripMod returns the span without its before/after/since cue.
func stripMod(er ExtractResult) (ExtractResult, ModTag) {
	md := er.Metadata
	if md == nil || md.Mod == ModNone || md.ModLength <= 0 || md.ModLength >= er.Length {
		return er, ModNone
	}
	var inner ExtractResult
	if md.ModSuffix {
		inner = subSpan(er, 0, er.Length-md.ModLength)
	} else {
		inner = subSpan(er, md.ModLength, er.Length)
	}
	c := *md
	c.Mod, c.ModLength, c.ModSuffix = ModNone, 0, false
	inner.Metadata = &c
	return inner, md.Mod
}

// subSpan cuts er.Text[from:to] and trims white space off both ends,
// keeping offsets in terms of the original input.
func subSpan(er ExtractResult, from, to int) ExtractResult {
	s := er.Text[from:to]
	lead := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	s = strings.TrimSpace(s)
	out := er
	out.Start = er.Start + from + lead
	out.Length = len(s)
	out.Text = s
	return out
}
