package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/chinese"
	"github.com/hrygo/timesense/plugin/datetime/english"
	"github.com/hrygo/timesense/plugin/datetime/timex"
)

var sentences = map[string][]string{
	"en-us": {
		"I'll leave on Monday, Tuesday or Wednesday",
		"Monday 7pm, 8pm or 9pm works",
		"from May 1 to May 5, 2025 and again in June",
		"Friday the 13th, 2025 at noon",
		"call 555-2016 before 5pm tomorrow",
		"every week since 2016 for three hours",
		"the meeting is between 3 and 5pm next Friday",
		"Monday through Friday 9am to 5pm EST",
		"just now, immediately after lunch",
	},
	"zh-cn": {
		"周一、周二或周三都可以",
		"五月上旬到2024年2月下旬",
		"三月开会三个月",
		"明天三点前或者下午五点后",
		"13号星期五下午两点",
	},
}

func TestMergedExtractor_Disjoint(t *testing.T) {
	configs := map[string]*datetime.LocaleConfig{"en-us": english.Config(), "zh-cn": chinese.Config()}
	for _, opts := range []datetime.Options{datetime.OptionsNone, datetime.CalendarMode, datetime.EnablePreview} {
		for culture, texts := range sentences {
			e := datetime.NewMergedExtractor(configs[culture], opts)
			for _, text := range texts {
				ers := e.Extract(text, ref)
				for i, er := range ers {
					assert.Equal(t, text[er.Start:er.End()], er.Text, "%s %q", opts, text)
					if i > 0 {
						assert.LessOrEqual(t, ers[i-1].End(), er.Start, "%s %q: %q overlaps %q", opts, text, ers[i-1].Text, er.Text)
					}
				}
			}
		}
	}
}

func TestParse_DualValuesStraddleToday(t *testing.T) {
	tests := []struct {
		cfg  *datetime.LocaleConfig
		text string
	}{
		{english.Config(), "Tuesday"},
		{english.Config(), "Monday"},
		{english.Config(), "the 5th"},
		{english.Config(), "May 5"},
		{english.Config(), "third Thursday of November"},
		{english.Config(), "Friday the 13th"},
		{english.Config(), "Friday, June 13"},
		{chinese.Config(), "周三"},
		{chinese.Config(), "5号"},
		{chinese.Config(), "6月1号"},
	}
	today := timex.DayStart(ref)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := single(t, tt.cfg, tt.text, ref)
			assert.False(t, pr.Value.FutureValue.Start.Before(today), "future %s", pr.Value.FutureValue.Start)
			assert.True(t, pr.Value.PastValue.Start.Before(today), "past %s", pr.Value.PastValue.Start)
		})
	}
}

func TestDateParser_TimexRoundTrip(t *testing.T) {
	cfg := english.Config()
	parser := datetime.NewDateParser(cfg)
	for _, text := range []string{"May 5, 2025", "Friday the 13th, 2025", "12/25/2023", "Feb 29 2024"} {
		t.Run(text, func(t *testing.T) {
			first := single(t, cfg, text, ref)
			require.Equal(t, datetime.KindDate, first.Kind)

			again := parser.Parse(datetime.ExtractResult{Text: first.TimexStr, Length: len(first.TimexStr), Kind: datetime.KindDate}, ref)
			require.NotNil(t, again.Value, "timex %q", first.TimexStr)
			assert.Equal(t, first.TimexStr, again.TimexStr)
			assert.True(t, first.Value.FutureValue.Equal(again.Value.FutureValue))
			assert.Equal(t, time.UTC, again.Value.FutureValue.Start.Location())
		})
	}
}
