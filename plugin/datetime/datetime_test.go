package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/plugin/datetime"
	"github.com/hrygo/timesense/plugin/datetime/chinese"
	"github.com/hrygo/timesense/plugin/datetime/english"
)

// Monday.
var ref = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recognize(t *testing.T, cfg *datetime.LocaleConfig, opts datetime.Options, text string, at time.Time) []datetime.ParseResult {
	t.Helper()
	ers := datetime.NewMergedExtractor(cfg, opts).Extract(text, at)
	parser := datetime.NewMergedParser(cfg)
	out := make([]datetime.ParseResult, 0, len(ers))
	for _, er := range ers {
		require.Equal(t, text[er.Start:er.End()], er.Text, "offsets must address the input")
		out = append(out, parser.Parse(er, at))
	}
	return out
}

func single(t *testing.T, cfg *datetime.LocaleConfig, text string, at time.Time) datetime.ParseResult {
	t.Helper()
	prs := recognize(t, cfg, datetime.OptionsNone, text, at)
	require.Len(t, prs, 1, "results for %q", text)
	require.NotNil(t, prs[0].Value, "unresolved %q", text)
	return prs[0]
}

func TestRecognize_English(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		at     time.Time
		kind   datetime.EntityKind
		span   string
		timex  string
		future datetime.TemporalValue
		past   datetime.TemporalValue
	}{
		{
			name:   "next weekday",
			text:   "let's meet next Tuesday",
			at:     ref,
			kind:   datetime.KindDate,
			span:   "next Tuesday",
			timex:  "XXXX-WXX-2",
			future: datetime.Instant(day(2024, 6, 18)),
			past:   datetime.Instant(day(2024, 6, 18)),
		},
		{
			name:   "time range",
			text:   "I'm out from 3:30 to 5pm",
			at:     ref,
			kind:   datetime.KindTimePeriod,
			span:   "from 3:30 to 5pm",
			timex:  "(T15:30,T17:00,PT1H30M)",
			future: datetime.Range(time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC), time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)),
			past:   datetime.Range(time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC), time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)),
		},
		{
			name:   "days ago",
			text:   "it happened 3 days ago",
			at:     time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
			kind:   datetime.KindDate,
			span:   "3 days ago",
			timex:  "2024-01-07",
			future: datetime.Instant(day(2024, 1, 7)),
			past:   datetime.Instant(day(2024, 1, 7)),
		},
		{
			name:   "duration",
			text:   "it takes 2 hours",
			at:     ref,
			kind:   datetime.KindDuration,
			span:   "2 hours",
			timex:  "PT2H",
			future: datetime.DurationSeconds(7200),
			past:   datetime.DurationSeconds(7200),
		},
		{
			name:   "holiday with year",
			text:   "see you christmas 2024",
			at:     ref,
			kind:   datetime.KindHoliday,
			span:   "christmas 2024",
			timex:  "2024-12-25",
			future: datetime.Instant(day(2024, 12, 25)),
			past:   datetime.Instant(day(2024, 12, 25)),
		},
		{
			name:   "recurrence",
			text:   "standup every Monday",
			at:     ref,
			kind:   datetime.KindSet,
			span:   "every Monday",
			timex:  "XXXX-WXX-1",
			future: datetime.SetValue("XXXX-WXX-1"),
			past:   datetime.SetValue("XXXX-WXX-1"),
		},
	}

	cfg := english.Config()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := single(t, cfg, tt.text, tt.at)
			assert.Equal(t, tt.kind, pr.Kind)
			assert.Equal(t, tt.span, pr.Text)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.True(t, pr.Value.Success)
			assert.True(t, tt.future.Equal(pr.Value.FutureValue), "future %+v", pr.Value.FutureValue)
			assert.True(t, tt.past.Equal(pr.Value.PastValue), "past %+v", pr.Value.PastValue)
		})
	}
}

func TestRecognize_ImpossibleDate(t *testing.T) {
	pr := single(t, english.Config(), "the 31st of February", ref)
	assert.Equal(t, datetime.KindDate, pr.Kind)
	assert.Equal(t, "XXXX-02-31", pr.TimexStr)
	assert.Equal(t, datetime.ValueInstant, pr.Value.FutureValue.Kind)
	assert.Equal(t, time.February, pr.Value.FutureValue.Start.Month())
}

func TestRecognize_BeforeModifier(t *testing.T) {
	pr := single(t, english.Config(), "before May 5", ref)
	assert.Equal(t, datetime.KindDate, pr.Kind)
	assert.Equal(t, datetime.ModBefore, pr.Value.Mod)
	assert.Equal(t, "datetimeV2.daterange", pr.TypeName())

	res := pr.Resolution()
	require.Len(t, res, 2)
	assert.Equal(t, "2024-05-05", res[0]["end"])
	assert.Equal(t, "2025-05-05", res[1]["end"])
	assert.Equal(t, "before", res[0]["Mod"])
	assert.Equal(t, "daterange", res[0]["type"])
}

func TestRecognize_Alternatives(t *testing.T) {
	prs := recognize(t, english.Config(), datetime.ExtendedTypes, "Monday 7pm or 8pm", ref)
	require.Len(t, prs, 2)

	assert.Equal(t, datetime.KindDateTime, prs[0].Kind)
	assert.Equal(t, "Monday 7pm", prs[0].Text)

	alt := prs[1]
	assert.Equal(t, datetime.KindDateTimeAlt, alt.Kind)
	assert.Equal(t, "8pm", alt.Text)
	assert.Equal(t, datetime.AltContext{
		OriginalKind: datetime.KindTime,
		Inherit:      datetime.InheritDate,
		ContextText:  "Monday",
		ContextKind:  datetime.KindDate,
	}, alt.Data)
	require.NotNil(t, alt.Value)
	assert.Equal(t, "XXXX-WXX-1T20", alt.TimexStr)
	assert.Equal(t, time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC), alt.Value.FutureValue.Start)
}

func TestRecognize_NoEntities(t *testing.T) {
	cfg := english.Config()
	assert.Empty(t, recognize(t, cfg, datetime.OptionsNone, "", ref))
	assert.Empty(t, recognize(t, cfg, datetime.OptionsNone, "nothing temporal here", ref))
}

func TestRecognize_Chinese(t *testing.T) {
	cfg := chinese.Config()

	t.Run("year range", func(t *testing.T) {
		pr := single(t, cfg, "2016年到2017年", ref)
		assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
		assert.Equal(t, "(2016-01-01,2017-01-01,P1Y)", pr.TimexStr)
		assert.True(t, datetime.Range(day(2016, 1, 1), day(2017, 1, 1)).Equal(pr.Value.FutureValue))
	})

	t.Run("relative weekday", func(t *testing.T) {
		pr := single(t, cfg, "下周二", ref)
		assert.Equal(t, datetime.KindDate, pr.Kind)
		assert.Equal(t, day(2024, 6, 18), pr.Value.FutureValue.Start)
	})

	t.Run("quarter hour", func(t *testing.T) {
		pr := single(t, cfg, "下午三点一刻", ref)
		assert.Equal(t, datetime.KindTime, pr.Kind)
		assert.Equal(t, "T15:15", pr.TimexStr)
	})

	t.Run("date and time", func(t *testing.T) {
		pr := single(t, cfg, "明天下午3点", ref)
		assert.Equal(t, datetime.KindDateTime, pr.Kind)
		assert.Equal(t, "2024-06-11T15", pr.TimexStr)
		assert.Equal(t, time.Date(2024, 6, 11, 15, 0, 0, 0, time.UTC), pr.Value.FutureValue.Start)
	})

	t.Run("lunar holiday", func(t *testing.T) {
		pr := single(t, cfg, "中秋节", ref)
		assert.True(t, pr.Value.IsLunar)
		res := pr.Resolution()
		require.NotEmpty(t, res)
		assert.Equal(t, "true", res[0]["isLunar"])
	})

	t.Run("relative week alternative", func(t *testing.T) {
		prs := recognize(t, cfg, datetime.ExtendedTypes, "下周二或周三", ref)
		require.Len(t, prs, 2)
		alt := prs[1]
		assert.Equal(t, datetime.KindDateTimeAlt, alt.Kind)
		ctx, ok := alt.Data.(datetime.AltContext)
		require.True(t, ok)
		assert.Equal(t, datetime.InheritRelativeWeek, ctx.Inherit)
		require.NotNil(t, alt.Value)
		assert.Equal(t, day(2024, 6, 19), alt.Value.FutureValue.Start)
	})
}

func TestRecognize_OffsetsAreBytes(t *testing.T) {
	text := "我们明天下午3点见"
	prs := recognize(t, chinese.Config(), datetime.OptionsNone, text, ref)
	require.Len(t, prs, 1)
	assert.Equal(t, len("我们"), prs[0].Start)
	assert.Equal(t, "明天下午3点", prs[0].Text)
}

func TestOptions(t *testing.T) {
	o, err := datetime.ParseOptions("ExtendedTypes|calendarmode")
	require.NoError(t, err)
	assert.True(t, o.Has(datetime.ExtendedTypes))
	assert.True(t, o.Has(datetime.CalendarMode))
	assert.False(t, o.Has(datetime.EnablePreview))
	assert.Equal(t, "CalendarMode|ExtendedTypes", o.String())
	assert.Equal(t, "None", datetime.OptionsNone.String())

	_, err = datetime.ParseOptions("Turbo")
	assert.Error(t, err)
}

func TestRecognize_AlternationLists(t *testing.T) {
	t.Run("dates", func(t *testing.T) {
		prs := recognize(t, english.Config(), datetime.ExtendedTypes, "Monday, Tuesday or Wednesday", ref)
		require.Len(t, prs, 3)
		assert.Equal(t, datetime.KindDate, prs[0].Kind)
		for i, want := range []time.Time{day(2024, 6, 11), day(2024, 6, 12)} {
			alt := prs[i+1]
			assert.Equal(t, datetime.KindDateTimeAlt, alt.Kind, alt.Text)
			ctx, ok := alt.Data.(datetime.AltContext)
			require.True(t, ok)
			assert.Equal(t, datetime.KindDate, ctx.OriginalKind)
			require.NotNil(t, alt.Value)
			assert.Equal(t, want, alt.Value.FutureValue.Start)
		}
	})

	t.Run("times share the leading date", func(t *testing.T) {
		prs := recognize(t, english.Config(), datetime.ExtendedTypes, "Monday 7pm, 8pm or 9pm", ref)
		require.Len(t, prs, 3)
		assert.Equal(t, "Monday 7pm", prs[0].Text)
		for i, want := range []string{"XXXX-WXX-1T20", "XXXX-WXX-1T21"} {
			alt := prs[i+1]
			assert.Equal(t, datetime.KindDateTimeAlt, alt.Kind)
			ctx, ok := alt.Data.(datetime.AltContext)
			require.True(t, ok)
			assert.Equal(t, datetime.InheritDate, ctx.Inherit)
			assert.Equal(t, "Monday", ctx.ContextText)
			assert.Equal(t, want, alt.TimexStr)
		}
		assert.Equal(t, time.Date(2024, 6, 10, 21, 0, 0, 0, time.UTC), prs[2].Value.FutureValue.Start)
	})

	t.Run("chinese enumeration comma", func(t *testing.T) {
		prs := recognize(t, chinese.Config(), datetime.ExtendedTypes, "周一、周二或周三", ref)
		require.Len(t, prs, 3)
		assert.Equal(t, datetime.KindDate, prs[0].Kind)
		assert.Equal(t, datetime.KindDateTimeAlt, prs[1].Kind)
		assert.Equal(t, datetime.KindDateTimeAlt, prs[2].Kind)
	})
}

func TestRecognize_YearSuffix(t *testing.T) {
	cfg := english.Config()
	tests := []struct {
		text  string
		timex string
		at    time.Time
	}{
		{"May 3 at 3pm, 2025", "2025-05-03T15", time.Date(2025, 5, 3, 15, 0, 0, 0, time.UTC)},
		{"March 5 3pm 2025", "2025-03-05T15", time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := single(t, cfg, tt.text, ref)
			assert.Equal(t, datetime.KindDateTime, pr.Kind)
			assert.Equal(t, tt.text, pr.Text)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.at, pr.Value.FutureValue.Start)
			assert.Equal(t, tt.at, pr.Value.PastValue.Start)
		})
	}

	t.Run("weekday disagrees with year", func(t *testing.T) {
		prs := recognize(t, cfg, datetime.OptionsNone, "Friday, May 3 at 3pm, 2025", ref)
		require.Len(t, prs, 2)
		assert.Equal(t, "Friday, May 3 at 3pm", prs[0].Text)
		assert.Equal(t, datetime.KindDatePeriod, prs[1].Kind)
		assert.Equal(t, "2025", prs[1].Text)
	})
}

func TestRecognize_RangeSharesYear(t *testing.T) {
	tests := []struct {
		text       string
		timex      string
		start, end time.Time
	}{
		{"from May 1 to May 5, 2025", "(2025-05-01,2025-05-05,P4D)", day(2025, 5, 1), day(2025, 5, 5)},
		{"from Dec 28 to Jan 3, 2025", "(2024-12-28,2025-01-03,P6D)", day(2024, 12, 28), day(2025, 1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := single(t, english.Config(), tt.text, ref)
			assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
			assert.Equal(t, tt.timex, pr.TimexStr)
			want := datetime.Range(tt.start, tt.end)
			assert.True(t, want.Equal(pr.Value.FutureValue), "future %+v", pr.Value.FutureValue)
			assert.True(t, want.Equal(pr.Value.PastValue), "past %+v", pr.Value.PastValue)
		})
	}
}

func TestRecognize_InclusiveRange(t *testing.T) {
	cfg := english.Config()

	pr := single(t, cfg, "Monday through Friday", ref)
	assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
	require.NotNil(t, pr.Metadata)
	assert.True(t, pr.Metadata.PossiblyIncludesPeriodEnd)
	assert.Equal(t, "(XXXX-WXX-1,XXXX-WXX-5,P5D)", pr.TimexStr)
	assert.True(t, datetime.Range(day(2024, 6, 10), day(2024, 6, 15)).Equal(pr.Value.FutureValue))

	pr = single(t, cfg, "Monday to Friday", ref)
	assert.True(t, pr.Metadata == nil || !pr.Metadata.PossiblyIncludesPeriodEnd)
	assert.Equal(t, "(XXXX-WXX-1,XXXX-WXX-5,P4D)", pr.TimexStr)
}

func TestRecognize_NowReferences(t *testing.T) {
	cfg := english.Config()
	tests := []struct {
		text  string
		timex string
	}{
		{"just now", "PAST_REF"},
		{"immediately", "FUTURE_REF"},
		{"right now", "PRESENT_REF"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := single(t, cfg, tt.text, ref)
			assert.Equal(t, datetime.KindDateTime, pr.Kind)
			assert.Equal(t, tt.text, pr.Text)
			assert.Equal(t, tt.timex, pr.TimexStr)
		})
	}
}

func TestRecognize_BareYear(t *testing.T) {
	cfg := english.Config()

	pr := single(t, cfg, "since 2016", ref)
	assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
	assert.Equal(t, "since 2016", pr.Text)
	assert.Equal(t, datetime.ModSince, pr.Value.Mod)
	assert.Equal(t, "2016", pr.TimexStr)
	assert.Equal(t, "datetimeV2.daterange", pr.TypeName())

	pr = single(t, cfg, "2016", ref)
	assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
	assert.True(t, datetime.Range(day(2016, 1, 1), day(2017, 1, 1)).Equal(pr.Value.FutureValue))

	for _, text := range []string{"call 555-2016", "id 3f2504e0-4f89-2016-9a0c"} {
		assert.Empty(t, recognize(t, cfg, datetime.OptionsNone, text, ref), text)
	}
}

func TestRecognize_WeekdayWithDay(t *testing.T) {
	cfg := english.Config()

	pr := single(t, cfg, "Friday the 13th, 2025", ref)
	assert.Equal(t, datetime.KindDate, pr.Kind)
	assert.Equal(t, "Friday the 13th, 2025", pr.Text)
	assert.Equal(t, "2025-06-13", pr.TimexStr)
	assert.Equal(t, day(2025, 6, 13), pr.Value.FutureValue.Start)

	pr = single(t, cfg, "Friday the 13th", ref)
	assert.Equal(t, "XXXX-XX-13", pr.TimexStr)
	assert.Equal(t, day(2024, 9, 13), pr.Value.FutureValue.Start)
	assert.Equal(t, day(2023, 10, 13), pr.Value.PastValue.Start)

	pr = single(t, cfg, "Friday, June 13", ref)
	assert.Equal(t, "XXXX-06-13", pr.TimexStr)
	assert.Equal(t, day(2025, 6, 13), pr.Value.FutureValue.Start)
	assert.Equal(t, day(2014, 6, 13), pr.Value.PastValue.Start)

	pr = single(t, chinese.Config(), "13号星期五", ref)
	assert.Equal(t, day(2024, 9, 13), pr.Value.FutureValue.Start)
}

func TestRecognize_ChinesePeriods(t *testing.T) {
	cfg := chinese.Config()

	t.Run("dekads", func(t *testing.T) {
		tests := []struct {
			text         string
			mod          datetime.ModTag
			future, past datetime.TemporalValue
		}{
			{"五月上旬", datetime.ModStart, datetime.Range(day(2025, 5, 1), day(2025, 5, 11)), datetime.Range(day(2024, 5, 1), day(2024, 5, 11))},
			{"五月中旬", datetime.ModMid, datetime.Range(day(2025, 5, 11), day(2025, 5, 21)), datetime.Range(day(2024, 5, 11), day(2024, 5, 21))},
			{"2024年2月下旬", datetime.ModEnd, datetime.Range(day(2024, 2, 21), day(2024, 3, 1)), datetime.Range(day(2024, 2, 21), day(2024, 3, 1))},
		}
		for _, tt := range tests {
			pr := single(t, cfg, tt.text, ref)
			assert.Equal(t, datetime.KindDatePeriod, pr.Kind, tt.text)
			assert.Equal(t, tt.text, pr.Text)
			assert.Equal(t, tt.mod, pr.Value.Mod, tt.text)
			assert.True(t, tt.future.Equal(pr.Value.FutureValue), "%s future %+v", tt.text, pr.Value.FutureValue)
			assert.True(t, tt.past.Equal(pr.Value.PastValue), "%s past %+v", tt.text, pr.Value.PastValue)
		}
	})

	t.Run("month is not a duration", func(t *testing.T) {
		pr := single(t, cfg, "三月", ref)
		assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
		assert.Equal(t, "XXXX-03", pr.TimexStr)

		pr = single(t, cfg, "三个月", ref)
		assert.Equal(t, datetime.KindDuration, pr.Kind)
		assert.Equal(t, "P3M", pr.TimexStr)

		pr = single(t, cfg, "2016年", ref)
		assert.Equal(t, datetime.KindDatePeriod, pr.Kind)
		assert.Equal(t, "2016", pr.TimexStr)
	})

	t.Run("bare before and after cues", func(t *testing.T) {
		pr := single(t, cfg, "三点前", ref)
		assert.Equal(t, "三点前", pr.Text)
		assert.Equal(t, datetime.ModBefore, pr.Value.Mod)

		pr = single(t, cfg, "三点后", ref)
		assert.Equal(t, datetime.ModAfter, pr.Value.Mod)
	})
}

func TestMergedExtractor_EmptyIsNil(t *testing.T) {
	for _, opts := range []datetime.Options{datetime.OptionsNone, datetime.EnablePreview | datetime.ExtendedTypes} {
		ers := datetime.NewMergedExtractor(english.Config(), opts).Extract("nothing temporal here", ref)
		assert.Nil(t, ers)
	}
}
