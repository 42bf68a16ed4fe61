package datetime

import "time"

// TimeExtractor finds clock times: "5pm", "3:30", "half past 4",
// "下午三点一刻", "noon".
type TimeExtractor struct {
	cfg *LocaleConfig
}

// NewTimeExtractor builds a time extractor for a locale.
func NewTimeExtractor(cfg *LocaleConfig) *TimeExtractor {
	return &TimeExtractor{cfg: cfg}
}

func (e *TimeExtractor) Kind() EntityKind { return KindTime }

// Extract implements Extractor. Matches naming a meal time carry the
// mealtime flag.
func (e *TimeExtractor) Extract(text string, _ time.Time) []ExtractResult {
	var tokens []Token
	for _, re := range e.cfg.Time.TimeRegexes {
		for _, m := range findAll(re, text) {
			t := NewToken(m.Start(), m.End())
			if m.Has("mealtime") {
				t.Metadata = &Metadata{IsMealtime: true}
			}
			tokens = append(tokens, t)
		}
	}
	return MergeAllTokens(tokens, text, KindTime)
}
