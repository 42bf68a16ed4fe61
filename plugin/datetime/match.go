package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/hrygo/timesense/plugin/datetime/timex"
)

// match is one regex hit with access to its named groups.
type match struct {
	re   *regexp.Regexp
	text string
	idx  []int
}

func (m match) Start() int { return m.idx[0] }
func (m match) End() int   { return m.idx[1] }

// Text is the whole matched text.
func (m match) Text() string { return m.text[m.idx[0]:m.idx[1]] }

// Group returns the text of a named group, or "" when the group is absent
// from the regex or did not participate.
func (m match) Group(name string) string {
	s, e, ok := m.groupSpan(name)
	if !ok {
		return ""
	}
	return m.text[s:e]
}

// groupSpan returns the offsets of a named group within the matched text.
func (m match) groupSpan(name string) (start, end int, ok bool) {
	i := m.re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(m.idx) || m.idx[2*i] < 0 {
		return 0, 0, false
	}
	return m.idx[2*i], m.idx[2*i+1], true
}

// Has reports whether a named group participated in the match.
func (m match) Has(name string) bool {
	return strings.TrimSpace(m.Group(name)) != ""
}

// key is the lower-cased, trimmed group text used for map lookups.
func (m match) key(name string) string {
	return strings.ToLower(strings.TrimSpace(m.Group(name)))
}

// findAll returns every non-overlapping match of re; a nil regex has none.
func findAll(re *regexp.Regexp, text string) []match {
	if re == nil {
		return nil
	}
	all := re.FindAllStringSubmatchIndex(text, -1)
	out := make([]match, 0, len(all))
	for _, idx := range all {
		if idx[1] > idx[0] {
			out = append(out, match{re: re, text: text, idx: idx})
		}
	}
	return out
}

// matchTokens collects tokens for all matches of the given regexes.
func matchTokens(text string, res ...*regexp.Regexp) []Token {
	var tokens []Token
	for _, re := range res {
		for _, m := range findAll(re, text) {
			tokens = append(tokens, NewToken(m.Start(), m.End()))
		}
	}
	return tokens
}

var anchored sync.Map // *regexp.Regexp -> *regexp.Regexp

// wholeOf returns re anchored at both ends. Anchored copies are compiled
// once per regex and shared.
func wholeOf(re *regexp.Regexp) *regexp.Regexp {
	if v, ok := anchored.Load(re); ok {
		return v.(*regexp.Regexp)
	}
	a := regexp.MustCompile(`^(?:` + re.String() + `)$`)
	v, _ := anchored.LoadOrStore(re, a)
	return v.(*regexp.Regexp)
}

// matchWhole matches re against the whole of text, ignoring surrounding
// white space.
func matchWhole(re *regexp.Regexp, text string) (match, bool) {
	if re == nil {
		return match{}, false
	}
	trimmed := strings.TrimSpace(text)
	a := wholeOf(re)
	idx := a.FindStringSubmatchIndex(trimmed)
	if idx == nil {
		return match{}, false
	}
	return match{re: a, text: trimmed, idx: idx}, true
}

// matchWholeAny tries each regex in order.
func matchWholeAny(res []*regexp.Regexp, text string) (match, bool) {
	for _, re := range res {
		if m, ok := matchWhole(re, text); ok {
			return m, true
		}
	}
	return match{}, false
}

// matchEnd finds a match of re that ends exactly at the end of s. It is used
// for cue words preceding an entity.
func matchEnd(re *regexp.Regexp, s string) (match, bool) {
	if re == nil {
		return match{}, false
	}
	all := re.FindAllStringSubmatchIndex(s, -1)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i][1] == len(s) && all[i][1] > all[i][0] {
			return match{re: re, text: s, idx: all[i]}, true
		}
	}
	return match{}, false
}

// matchStart finds a match of re that begins at offset 0 of s. It is used
// for cue words following an entity.
func matchStart(re *regexp.Regexp, s string) (match, bool) {
	if re == nil {
		return match{}, false
	}
	idx := re.FindStringSubmatchIndex(s)
	if idx == nil || idx[0] != 0 || idx[1] == 0 {
		return match{}, false
	}
	return match{re: re, text: s, idx: idx}, true
}

// gapMatches reports whether the text between two entities is empty or
// entirely matched by re.
func gapMatches(re *regexp.Regexp, gap string) bool {
	if strings.TrimSpace(gap) == "" {
		return true
	}
	_, ok := matchWhole(re, gap)
	return ok
}

// parseNumber reads a count: digits, special words ("an", "a couple of"),
// then the locale integer parser.
func (c *LocaleConfig) parseNumber(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	if f, ok := c.Duration.SpecialNumbers[s]; ok {
		return f, true
	}
	if c.Integers != nil {
		if n, ok := c.Integers.ParseInt(s); ok {
			return float64(n), true
		}
	}
	return 0, false
}

func (c *LocaleConfig) parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if c.Integers != nil {
		return c.Integers.ParseInt(strings.ToLower(s))
	}
	return 0, false
}

// parseYear reads a year and expands two-digit forms with the locale pivot.
func (c *LocaleConfig) parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "'")
	n, ok := c.parseInt(s)
	if !ok || n < 0 {
		return 0, false
	}
	if n < 100 && len([]rune(s)) <= 2 {
		n = timex.ExpandTwoDigitYear(n, c.TwoDigitYearPivot)
	}
	return n, true
}

// parseMonth reads a month name or number.
func (c *LocaleConfig) parseMonth(s string) (int, bool) {
	k := strings.ToLower(strings.TrimSpace(s))
	if m, ok := c.MonthOfYear[k]; ok {
		return m, true
	}
	n, ok := c.parseInt(k)
	if !ok || n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

// parseDay reads a day of month given as ordinal or cardinal.
func (c *LocaleConfig) parseDay(s string) (int, bool) {
	k := strings.ToLower(strings.TrimSpace(s))
	if c.Ordinals != nil {
		if n, ok := c.Ordinals.ParseOrdinal(k); ok && n >= 1 && n <= 31 {
			return n, true
		}
	}
	n, ok := c.parseInt(k)
	if !ok || n < 1 || n > 31 {
		return 0, false
	}
	return n, true
}

// parseCardinal reads "first" ... "last" or an ordinal.
func (c *LocaleConfig) parseCardinal(s string) (int, bool) {
	k := strings.ToLower(strings.TrimSpace(s))
	if n, ok := c.CardinalMap[k]; ok {
		return n, true
	}
	if c.Ordinals != nil {
		if n, ok := c.Ordinals.ParseOrdinal(k); ok {
			return n, true
		}
	}
	return c.parseInt(k)
}

// unit maps a unit word to its timex unit.
func (c *LocaleConfig) unit(s string) (string, bool) {
	u, ok := c.UnitMap[strings.ToLower(strings.TrimSpace(s))]
	return u, ok
}

// relative maps "this", "next", "下" ... to a step.
func (c *LocaleConfig) relative(s string) (int, bool) {
	n, ok := c.RelativeMap[strings.ToLower(strings.TrimSpace(s))]
	return n, ok
}
