package datetime

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// tagged remembers which constituent list a result came from.
type tagged struct {
	ExtractResult
	src int
}

func sortByStart(ers []ExtractResult) {
	sort.SliceStable(ers, func(i, j int) bool { return ers[i].Start < ers[j].Start })
}

func tagAll(lists ...[]ExtractResult) []tagged {
	var all []tagged
	for i, l := range lists {
		for _, er := range l {
			all = append(all, tagged{ExtractResult: er, src: i})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	return all
}

// pairTokens joins a result of list a with an adjacent result of list b
// when the text between them is accepted by gap. With either set the pair
// may also appear as b then a. Pairing is greedy and never backtracks: a
// joined pair consumes both members.
func pairTokens(text string, a, b []ExtractResult, either bool, gap func(string) bool) []Token {
	all := tagAll(a, b)
	var tokens []Token
	for i := 0; i+1 < len(all); {
		x, y := all[i], all[i+1]
		ordered := x.src == 0 && y.src == 1 || either && x.src == 1 && y.src == 0
		if ordered && y.Start >= x.End() && gap(text[x.End():y.Start]) {
			tokens = append(tokens, NewToken(x.Start, y.End()))
			i += 2
			continue
		}
		i++
	}
	return tokens
}

// rangeTokens joins two adjacent points into a range: "from X to Y",
// "X - Y", "between X and Y". With skipFromTo the "from X to Y" form is
// left alone.
func rangeTokens(text string, points []ExtractResult, rc RangeConfig, skipFromTo bool) []Token {
	sorted := make([]ExtractResult, len(points))
	copy(sorted, points)
	sortByStart(sorted)

	var tokens []Token
	for i := 0; i+1 < len(sorted); {
		x, y := sorted[i], sorted[i+1]
		if y.Start < x.End() {
			i++
			continue
		}
		gap := text[x.End():y.Start]
		before := text[:x.Start]

		if _, ok := matchWhole(rc.TillRegex, gap); ok && strings.TrimSpace(gap) != "" {
			start := x.Start
			if m, ok := matchEnd(rc.FromRegex, before); ok {
				if skipFromTo {
					i++
					continue
				}
				start = m.Start()
			}
			tokens = append(tokens, NewToken(start, y.End()))
			i += 2
			continue
		}
		if _, ok := matchWhole(rc.AndRegex, gap); ok {
			if m, ok := matchEnd(rc.BetweenRegex, before); ok {
				tokens = append(tokens, NewToken(m.Start(), y.End()))
				i += 2
				continue
			}
		}
		i++
	}
	return tokens
}

// rangeParts splits a range span into its two points. It mirrors
// rangeTokens and returns the byte offsets of both points within text.
func rangeParts(text string, points []ExtractResult, rc RangeConfig) (first, second ExtractResult, ok bool) {
	if len(points) != 2 {
		return first, second, false
	}
	x, y := points[0], points[1]
	before := strings.TrimSpace(text[:x.Start])
	gap := text[x.End():y.Start]
	after := strings.TrimSpace(text[y.End():])
	if after != "" {
		return first, second, false
	}
	if _, till := matchWhole(rc.TillRegex, gap); till && strings.TrimSpace(gap) != "" {
		if before == "" {
			return x, y, true
		}
		if _, from := matchWhole(rc.FromRegex, before); from {
			return x, y, true
		}
		return first, second, false
	}
	if _, and := matchWhole(rc.AndRegex, gap); and {
		if _, between := matchWhole(rc.BetweenRegex, before); between {
			return x, y, true
		}
	}
	return first, second, false
}

// splitPair finds exactly one a-span and one b-span covering text, in
// either order, separated by an accepted connector.
func splitPair(text string, as, bs []ExtractResult, connector func(string) bool) (a, b ExtractResult, ok bool) {
	if len(as) != 1 || len(bs) != 1 {
		return a, b, false
	}
	a, b = as[0], bs[0]
	first, second := a, b
	if b.Start < a.Start {
		first, second = b, a
	}
	if first.End() > second.Start ||
		strings.TrimSpace(text[:first.Start]) != "" ||
		strings.TrimSpace(text[second.End():]) != "" ||
		!connector(text[first.End():second.Start]) {
		return a, b, false
	}
	return a, b, true
}

// connectorGap accepts an empty gap or one fully matched by re.
func connectorGap(re *regexp.Regexp) func(string) bool {
	return func(gap string) bool {
		return gapMatches(re, gap)
	}
}

// yearSuffixTokens widens results by a year written right after them, as
// in "May 3 at 3pm, 2025". accept decides whether the year fits the result;
// a year glued to more digits or a dash is never taken.
func yearSuffixTokens(cfg *LocaleConfig, re *regexp.Regexp, text string, ers []ExtractResult, accept func(ExtractResult, int) bool) []Token {
	if re == nil {
		return nil
	}
	var tokens []Token
	for _, er := range ers {
		m, ok := matchStart(re, text[er.End():])
		if !ok || gluedAfter(text, er.End()+m.End()) {
			continue
		}
		year, ok := cfg.parseYear(m.Group("year"))
		if !ok || !accept(er, year) {
			continue
		}
		tokens = append(tokens, NewToken(er.Start, er.End()+m.End()))
	}
	return tokens
}

// splitYearSuffix cuts a trailing year off text.
func splitYearSuffix(cfg *LocaleConfig, re *regexp.Regexp, text string) (string, int, bool) {
	text = strings.TrimSpace(text)
	m, ok := matchEnd(re, text)
	if !ok || m.Start() == 0 {
		return "", 0, false
	}
	year, ok := cfg.parseYear(m.Group("year"))
	if !ok {
		return "", 0, false
	}
	return text[:m.Start()], year, true
}

// pinYear resolves a year-less expression as if year had been written with
// it. The expression must leave its year open and land in that year.
func pinYear(resolve func(string, time.Time) (ResolutionResult, bool), text string, year int, loc *time.Location) (ResolutionResult, bool) {
	r, ok := resolve(text, time.Date(year, time.January, 1, 0, 0, 0, 0, loc))
	if !ok || !openYear(r.Timex) || r.FutureValue.Start.Year() != year {
		return ResolutionResult{}, false
	}
	r.Timex = strings.ReplaceAll(r.Timex, "XXXX", fmt.Sprintf("%04d", year))
	r.PastValue = r.FutureValue
	return r, true
}

// openYear reports whether tx names a month or season of an unspecified
// year. Weekdays and bare days of month have no year slot to fill.
func openYear(tx string) bool {
	return strings.Contains(tx, "XXXX-") && !strings.Contains(tx, "XXXX-W") && !strings.Contains(tx, "XXXX-XX")
}

// fullYear reports whether a date TIMEX starts with a written year.
func fullYear(tx string) bool {
	if len(tx) < 4 {
		return false
	}
	for _, c := range tx[:4] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
