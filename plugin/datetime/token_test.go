package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	tok := NewToken(2, 5)
	assert.Equal(t, 3, tok.Length())

	assert.Panics(t, func() { NewToken(-1, 2) })
	assert.Panics(t, func() { NewToken(4, 3) })
	assert.NotPanics(t, func() { NewToken(3, 3) })
}

func TestMergeAllTokens(t *testing.T) {
	text := "from may 5 to may 9 at noon"

	tests := []struct {
		name   string
		tokens []Token
		want   []string
	}{
		{
			name:   "empty",
			tokens: nil,
			want:   nil,
		},
		{
			name:   "disjoint stay apart",
			tokens: []Token{{Start: 5, End: 10}, {Start: 14, End: 19}},
			want:   []string{"may 5", "may 9"},
		},
		{
			name:   "overlapping merge",
			tokens: []Token{{Start: 0, End: 10}, {Start: 5, End: 19}},
			want:   []string{"from may 5 to may 9"},
		},
		{
			name:   "touching merge",
			tokens: []Token{{Start: 5, End: 10}, {Start: 10, End: 13}},
			want:   []string{"may 5 to"},
		},
		{
			name:   "contained is absorbed",
			tokens: []Token{{Start: 5, End: 8}, {Start: 0, End: 19}},
			want:   []string{"from may 5 to may 9"},
		},
		{
			name:   "unsorted input",
			tokens: []Token{{Start: 23, End: 27}, {Start: 5, End: 10}},
			want:   []string{"may 5", "noon"},
		},
		{
			name:   "empty tokens dropped",
			tokens: []Token{{Start: 3, End: 3}, {Start: 23, End: 27}},
			want:   []string{"noon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeAllTokens(tt.tokens, text, KindDate)
			var texts []string
			for _, er := range got {
				assert.Equal(t, KindDate, er.Kind)
				assert.Equal(t, text[er.Start:er.End()], er.Text)
				texts = append(texts, er.Text)
			}
			assert.Equal(t, tt.want, texts)

			for i := 1; i < len(got); i++ {
				assert.Greater(t, got[i].Start, got[i-1].End(), "results must be disjoint and non-adjacent")
			}
		})
	}
}

func TestMergeAllTokens_Idempotent(t *testing.T) {
	text := "lunch at noon tomorrow or the day after"
	tokens := []Token{{Start: 0, End: 13}, {Start: 9, End: 22}, {Start: 26, End: 39}}

	once := MergeAllTokens(tokens, text, KindTime)
	twice := MergeAllTokens(tokensOf(once), text, KindTime)
	assert.Equal(t, once, twice)
}

func TestMergeAllTokens_Metadata(t *testing.T) {
	text := "dinner at 7"
	tokens := []Token{
		{Start: 0, End: 6, Metadata: &Metadata{IsMealtime: true}},
		{Start: 3, End: 11, Metadata: &Metadata{PossiblyIncludesPeriodEnd: true}},
	}
	got := MergeAllTokens(tokens, text, KindTime)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Metadata)
	assert.True(t, got[0].Metadata.IsMealtime)
	assert.True(t, got[0].Metadata.PossiblyIncludesPeriodEnd)
	assert.False(t, got[0].Metadata.IsHoliday)

	// The inputs are not mutated.
	assert.False(t, tokens[0].Metadata.PossiblyIncludesPeriodEnd)
}

func TestMergeAllTokens_OutOfRange(t *testing.T) {
	assert.Panics(t, func() {
		MergeAllTokens([]Token{{Start: 0, End: 20}}, "short", KindDate)
	})
}
