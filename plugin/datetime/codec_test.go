package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []ExtractResult {
	text := "more than 2 hours and 30 minutes"
	hours := spanOf(text, 10, 17, KindDuration)
	minutes := spanOf(text, 22, 32, KindDuration)
	zone := ExtractResult{Start: 4, Length: 3, Text: "pst", Kind: KindTimeZone}
	return []ExtractResult{
		{Start: 0, Length: 32, Text: text, Kind: KindDuration, Data: InequalityData{Mod: ModMore}},
		{Start: 10, Length: 22, Text: text[10:], Kind: KindDuration, Data: CompoundDurationData{
			Kind:  CompoundTime,
			Parts: []ExtractResult{hours, minutes},
		}},
		{Start: 0, Length: 3, Text: "8pm", Kind: KindDateTimeAlt, Data: AltContext{
			OriginalKind: KindTime,
			Inherit:      InheritDate,
			ContextText:  "Monday",
			ContextKind:  KindDate,
		}},
		{Start: 0, Length: 7, Text: "5pm pst", Kind: KindTime, Data: TimeZoneData{Zone: zone}},
		{Start: 4, Length: 4, Text: "noon", Kind: KindTime, Metadata: &Metadata{IsMealtime: true, Mod: ModBefore, ModLength: 7}},
	}
}

func TestEncodeDecodeResults(t *testing.T) {
	in := sampleResults()
	b, err := EncodeResults(in)
	require.NoError(t, err)

	out, err := DecodeResults(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeResults_Empty(t *testing.T) {
	b, err := EncodeResults(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	out, err := DecodeResults(b)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeResults_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{`},
		{"unknown data kind", `[{"start":0,"length":1,"text":"x","type":"date","data":{"kind":"mystery"}}]`},
		{"zone missing", `[{"start":0,"length":1,"text":"x","type":"time","data":{"kind":"timezone"}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResults([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestCloneResults(t *testing.T) {
	assert.Nil(t, CloneResults(nil))

	in := sampleResults()
	out := CloneResults(in)
	require.Equal(t, in, out)

	out[4].Metadata.IsMealtime = false
	assert.True(t, in[4].Metadata.IsMealtime)

	parts := out[1].Data.(CompoundDurationData).Parts
	parts[0].Text = "changed"
	assert.Equal(t, "2 hours", in[1].Data.(CompoundDurationData).Parts[0].Text)
}
