package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddTo(t *testing.T) {
	span := func(start, length int, kind EntityKind) ExtractResult {
		return ExtractResult{Start: start, Length: length, Kind: kind}
	}

	tests := []struct {
		name string
		dst  []ExtractResult
		src  []ExtractResult
		want []ExtractResult
	}{
		{
			name: "disjoint appended",
			dst:  []ExtractResult{span(0, 5, KindDate)},
			src:  []ExtractResult{span(10, 3, KindTime)},
			want: []ExtractResult{span(0, 5, KindDate), span(10, 3, KindTime)},
		},
		{
			name: "strict cover replaces at first position",
			dst:  []ExtractResult{span(0, 2, KindTime), span(4, 3, KindDate), span(8, 2, KindTime), span(20, 2, KindTime)},
			src:  []ExtractResult{span(3, 8, KindDatePeriod)},
			want: []ExtractResult{span(0, 2, KindTime), span(3, 8, KindDatePeriod), span(20, 2, KindTime)},
		},
		{
			name: "equal span keeps the earlier result",
			dst:  []ExtractResult{span(0, 5, KindDatePeriod)},
			src:  []ExtractResult{span(0, 5, KindDuration)},
			want: []ExtractResult{span(0, 5, KindDatePeriod)},
		},
		{
			name: "partial overlap rejected",
			dst:  []ExtractResult{span(0, 5, KindDate)},
			src:  []ExtractResult{span(3, 5, KindTime)},
			want: []ExtractResult{span(0, 5, KindDate)},
		},
		{
			name: "cover rejected when it also clips another span",
			dst:  []ExtractResult{span(0, 3, KindDate), span(5, 4, KindTime)},
			src:  []ExtractResult{span(0, 7, KindDateTime)},
			want: []ExtractResult{span(0, 3, KindDate), span(5, 4, KindTime)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, addTo(tt.dst, tt.src))
		})
	}
}
