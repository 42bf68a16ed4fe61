package datetime

import (
	"fmt"
	"sort"
)

// Token is a half-open byte range found by a single rule.
type Token struct {
	Start    int
	End      int
	Metadata *Metadata
}

// NewToken panics on malformed ranges: they can only come from a bug in an
// extractor, never from input text.
func NewToken(start, end int) Token {
	if start < 0 || end < start {
		panic(fmt.Sprintf("datetime: malformed token [%d,%d)", start, end))
	}
	return Token{Start: start, End: end}
}

// Length is the token size in bytes.
func (t Token) Length() int {
	return t.End - t.Start
}

// MergeAllTokens folds possibly overlapping tokens into disjoint results of
// one kind. Tokens are sorted by start; a token starting inside (or right
// at the end of) the current run extends it, and metadata flags of absorbed
// tokens are OR'd together. Empty tokens are dropped.
func MergeAllTokens(tokens []Token, text string, kind EntityKind) []ExtractResult {
	valid := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Start < 0 || t.End > len(text) || t.End < t.Start {
			panic(fmt.Sprintf("datetime: token [%d,%d) outside text of length %d", t.Start, t.End, len(text)))
		}
		if t.Length() > 0 {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End > valid[j].End
	})

	merged := []Token{valid[0]}
	for _, t := range valid[1:] {
		cur := &merged[len(merged)-1]
		if t.Start <= cur.End {
			if t.End > cur.End {
				cur.End = t.End
			}
			cur.Metadata = cur.Metadata.merge(t.Metadata)
			continue
		}
		merged = append(merged, t)
	}

	results := make([]ExtractResult, 0, len(merged))
	for _, t := range merged {
		er := spanOf(text, t.Start, t.End, kind)
		er.Metadata = t.Metadata
		results = append(results, er)
	}
	return results
}

// tokensOf converts results back into tokens, keeping their metadata.
func tokensOf(ers []ExtractResult) []Token {
	tokens := make([]Token, 0, len(ers))
	for _, er := range ers {
		tokens = append(tokens, Token{Start: er.Start, End: er.End(), Metadata: er.Metadata})
	}
	return tokens
}
