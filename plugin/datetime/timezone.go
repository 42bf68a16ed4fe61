package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeZoneExtractor finds explicit UTC offsets ("UTC+8", "GMT-05:30") and
// gazetteer zones ("PST", "Beijing time", "北京时间").
type TimeZoneExtractor struct {
	cfg *LocaleConfig
}

// NewTimeZoneExtractor builds a time zone extractor for a locale.
func NewTimeZoneExtractor(cfg *LocaleConfig) *TimeZoneExtractor {
	return &TimeZoneExtractor{cfg: cfg}
}

func (e *TimeZoneExtractor) Kind() EntityKind { return KindTimeZone }

// Extract implements Extractor.
func (e *TimeZoneExtractor) Extract(text string, _ time.Time) []ExtractResult {
	tz := e.cfg.TimeZone
	tokens := matchTokens(text, tz.OffsetRegex)
	for _, re := range tz.ZoneRegexes {
		for _, m := range findAll(re, text) {
			if _, ok := tz.ZoneOffsets[zoneKey(m)]; ok {
				tokens = append(tokens, NewToken(m.Start(), m.End()))
			}
		}
	}
	return MergeAllTokens(tokens, text, KindTimeZone)
}

func zoneKey(m match) string {
	if m.Has("zone") {
		return m.key("zone")
	}
	return m.key("city")
}

// TimeZoneParser resolves a zone mention into a UTC offset. The values of a
// time zone resolution are empty; the offset travels in TimeZone.
type TimeZoneParser struct {
	cfg   *LocaleConfig
	chain Chain
}

// NewTimeZoneParser builds a time zone parser for a locale.
func NewTimeZoneParser(cfg *LocaleConfig) *TimeZoneParser {
	p := &TimeZoneParser{cfg: cfg}
	p.chain = Chain{RuleFunc(p.offset), RuleFunc(p.zone)}
	return p
}

func (p *TimeZoneParser) Kind() EntityKind { return KindTimeZone }

// Parse implements Parser.
func (p *TimeZoneParser) Parse(er ExtractResult, ref time.Time) ParseResult {
	return parseWith(p.chain, er, ref)
}

func (p *TimeZoneParser) offset(text string, _ time.Time) (ResolutionResult, bool) {
	m, ok := matchWhole(p.cfg.TimeZone.OffsetRegex, text)
	if !ok {
		return ResolutionResult{}, false
	}
	mins := 0
	if m.Has("offset") {
		v, ok := parseOffset(m.Group("offset"))
		if !ok {
			return ResolutionResult{}, false
		}
		mins = v
		if strings.TrimSpace(m.Group("sign")) == "-" {
			mins = -mins
		}
	}
	return zoneResolution(mins), true
}

func (p *TimeZoneParser) zone(text string, _ time.Time) (ResolutionResult, bool) {
	tz := p.cfg.TimeZone
	m, ok := matchWholeAny(tz.ZoneRegexes, text)
	if !ok {
		return ResolutionResult{}, false
	}
	mins, ok := tz.ZoneOffsets[zoneKey(m)]
	if !ok {
		return ResolutionResult{}, false
	}
	return zoneResolution(mins), true
}

// parseOffset reads "8", "08", "0530", "5:30" into minutes.
func parseOffset(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ":", "")
	if s == "" || len(s) > 4 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	h, m := n, 0
	if len(s) > 2 {
		h, m = n/100, n%100
	}
	if h > 14 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func zoneResolution(mins int) ResolutionResult {
	return ResolutionResult{
		Timex:    "",
		TimeZone: &TimeZoneResolution{Value: FormatUTCOffset(mins), UTCOffsetMins: mins},
	}
}

// FormatUTCOffset renders minutes east of UTC as "UTC+08:00".
func FormatUTCOffset(mins int) string {
	sign := "+"
	if mins < 0 {
		sign, mins = "-", -mins
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, mins/60, mins%60)
}
