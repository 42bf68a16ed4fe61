package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/timesense/plugin/datetime"
)

func sampleParse() []datetime.ParseResult {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	return []datetime.ParseResult{{
		ExtractResult: datetime.ExtractResult{Start: 8, Length: 8, Text: "tomorrow", Kind: datetime.KindDate},
		Value: &datetime.ResolutionResult{
			Timex:       "2024-06-11",
			FutureValue: datetime.Instant(day),
			PastValue:   datetime.Instant(day),
			Success:     true,
		},
		TimexStr: "2024-06-11",
	}}
}

func TestRenderExtract(t *testing.T) {
	results := []datetime.ExtractResult{{Start: 8, Length: 8, Text: "tomorrow", Kind: datetime.KindDate}}

	var buf bytes.Buffer
	require.NoError(t, renderExtract(&buf, results, formatTable))
	assert.Contains(t, buf.String(), "START")
	assert.Contains(t, buf.String(), "tomorrow")
	assert.Contains(t, buf.String(), "date")

	buf.Reset()
	require.NoError(t, renderExtract(&buf, results, formatJSON))
	decoded, err := datetime.DecodeResults(bytes.TrimSpace(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, results, decoded)

	buf.Reset()
	require.NoError(t, renderExtract(&buf, nil, formatJSON))
	assert.Equal(t, "[]\n", buf.String())

	assert.Error(t, renderExtract(&buf, results, "xml"))
}

func TestRenderRecognize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRecognize(&buf, sampleParse(), time.Time{}, 0, formatTable))
	assert.Contains(t, buf.String(), "TIMEX")
	assert.Contains(t, buf.String(), "datetimeV2.date")
	assert.Contains(t, buf.String(), "2024-06-11")

	buf.Reset()
	require.NoError(t, renderRecognize(&buf, sampleParse(), time.Time{}, 0, formatJSON))
	var out []recognizedJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "datetimeV2.date", out[0].TypeName)
	assert.Equal(t, "2024-06-11", out[0].Timex)
	require.Len(t, out[0].Resolution, 1)
	assert.Equal(t, "2024-06-11", out[0].Resolution[0]["value"])

	assert.Error(t, renderRecognize(&buf, nil, time.Time{}, 0, "yaml"))
}

func TestRenderRecognize_Recurrence(t *testing.T) {
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	sets := []datetime.ParseResult{{
		ExtractResult: datetime.ExtractResult{Text: "every Monday", Length: 12, Kind: datetime.KindSet},
		Value: &datetime.ResolutionResult{
			Timex:       "XXXX-WXX-1",
			FutureValue: datetime.SetValue("XXXX-WXX-1"),
			PastValue:   datetime.SetValue("XXXX-WXX-1"),
			Success:     true,
		},
		TimexStr: "XXXX-WXX-1",
	}}

	var buf bytes.Buffer
	require.NoError(t, renderRecognize(&buf, sets, ref, 2, formatJSON))
	var out []recognizedJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", out[0].RRule)
	require.Len(t, out[0].Next, 2)
	assert.True(t, out[0].Next[1].Equal(time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)))

	buf.Reset()
	require.NoError(t, renderRecognize(&buf, sets, ref, 0, formatTable))
	assert.Contains(t, buf.String(), "FREQ=WEEKLY;BYDAY=MO")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "2024-06-11", describe(map[string]string{"value": "2024-06-11"}))
	assert.Equal(t, "2024-06-10 ~ 2024-06-17", describe(map[string]string{"start": "2024-06-10", "end": "2024-06-17"}))
	assert.Equal(t, "2024-05-05", describe(map[string]string{"end": "2024-05-05"}))
	assert.Equal(t, "", describe(map[string]string{}))
}
