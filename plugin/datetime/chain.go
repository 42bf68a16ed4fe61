package datetime

import "time"

// Extractor locates spans of one entity kind.
type Extractor interface {
	Kind() EntityKind
	Extract(text string, ref time.Time) []ExtractResult
}

// Parser resolves a span produced by the extractor of the same kind.
type Parser interface {
	Kind() EntityKind
	Parse(er ExtractResult, ref time.Time) ParseResult
}

// ResolutionRule is one candidate interpretation. It declines by returning
// false; it never guesses.
type ResolutionRule interface {
	TryResolve(text string, ref time.Time) (ResolutionResult, bool)
}

// RuleFunc adapts a function to ResolutionRule.
type RuleFunc func(text string, ref time.Time) (ResolutionResult, bool)

// TryResolve calls f.
func (f RuleFunc) TryResolve(text string, ref time.Time) (ResolutionResult, bool) {
	return f(text, ref)
}

// Chain is an ordered rule list; the first rule that succeeds wins.
type Chain []ResolutionRule

// Resolve folds over the chain until a rule succeeds.
func (c Chain) Resolve(text string, ref time.Time) (ResolutionResult, bool) {
	for _, rule := range c {
		if r, ok := rule.TryResolve(text, ref); ok {
			r.Success = true
			return r, true
		}
	}
	return ResolutionResult{}, false
}

// parseWith runs a chain over er and wraps the outcome.
func parseWith(c Chain, er ExtractResult, ref time.Time) ParseResult {
	pr := ParseResult{ExtractResult: er}
	r, ok := c.Resolve(er.Text, ref)
	if !ok {
		return pr
	}
	pr.Value = &r
	pr.TimexStr = r.Timex
	return pr
}

// fixed builds a fully specified resolution where both directions agree.
func fixed(tx string, v TemporalValue) ResolutionResult {
	return ResolutionResult{Timex: tx, FutureValue: v, PastValue: v}
}

// dual builds an ambiguous resolution.
func dual(tx string, future, past TemporalValue) ResolutionResult {
	return ResolutionResult{Timex: tx, FutureValue: future, PastValue: past}
}
