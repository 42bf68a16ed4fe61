package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChainResolve(t *testing.T) {
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	var calls []string
	rule := func(name string, ok bool) ResolutionRule {
		return RuleFunc(func(text string, _ time.Time) (ResolutionResult, bool) {
			calls = append(calls, name)
			if !ok {
				return ResolutionResult{}, false
			}
			return ResolutionResult{Timex: name}, true
		})
	}

	t.Run("first success wins", func(t *testing.T) {
		calls = nil
		c := Chain{rule("a", false), rule("b", true), rule("c", true)}
		r, ok := c.Resolve("x", ref)
		assert.True(t, ok)
		assert.True(t, r.Success)
		assert.Equal(t, "b", r.Timex)
		assert.Equal(t, []string{"a", "b"}, calls)
	})

	t.Run("all decline", func(t *testing.T) {
		calls = nil
		c := Chain{rule("a", false), rule("b", false)}
		r, ok := c.Resolve("x", ref)
		assert.False(t, ok)
		assert.False(t, r.Success)
		assert.Equal(t, []string{"a", "b"}, calls)
	})

	t.Run("empty chain", func(t *testing.T) {
		_, ok := Chain{}.Resolve("x", ref)
		assert.False(t, ok)
	})
}

func TestParseWith(t *testing.T) {
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	er := ExtractResult{Start: 0, Length: 5, Text: "today", Kind: KindDate}

	day := Instant(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	c := Chain{RuleFunc(func(string, time.Time) (ResolutionResult, bool) {
		return fixed("2024-06-10", day), true
	})}
	pr := parseWith(c, er, ref)
	if assert.NotNil(t, pr.Value) {
		assert.Equal(t, "2024-06-10", pr.TimexStr)
		assert.True(t, pr.Value.FutureValue.Equal(pr.Value.PastValue))
	}

	pr = parseWith(Chain{}, er, ref)
	assert.Nil(t, pr.Value)
	assert.Equal(t, er, pr.ExtractResult)
}
