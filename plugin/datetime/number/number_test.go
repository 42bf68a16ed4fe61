package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChineseParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"三", 3, true},
		{"两", 2, true},
		{"十", 10, true},
		{"十五", 15, true},
		{"二十", 20, true},
		{"二十四", 24, true},
		{"一百零五", 105, true},
		{"三千二百", 3200, true},
		{"一万二千", 12000, true},
		{"二〇一六", 2016, true},
		{"二零一七", 2017, true},
		{"2016", 2016, true},
		{"２０１６", 2016, true},
		{"3十", 30, true},
		{"", 0, false},
		{"天", 0, false},
		{"百", 0, false},
	}
	var c Chinese
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := c.ParseInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestChineseParseOrdinal(t *testing.T) {
	var c Chinese
	n, ok := c.ParseOrdinal("第三")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = c.ParseOrdinal("二十一")
	assert.True(t, ok)
	assert.Equal(t, 21, n)

	n, ok = c.ParseOrdinal("初八")
	assert.True(t, ok)
	assert.Equal(t, 8, n)

	n, ok = c.ParseOrdinal("廿三")
	assert.True(t, ok)
	assert.Equal(t, 23, n)

	_, ok = c.ParseOrdinal("第")
	assert.False(t, ok)
}

func TestEnglishParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"7", 7, true},
		{"seven", 7, true},
		{"Twelve", 12, true},
		{"twenty", 20, true},
		{"twenty-one", 21, true},
		{"twenty one", 21, true},
		{"a hundred", 100, true},
		{"one hundred and five", 105, true},
		{"two thousand sixteen", 2016, true},
		{"1,000", 1000, true},
		{"", 0, false},
		{"a", 0, false},
		{"dozen", 0, false},
	}
	var e English
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := e.ParseInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEnglishParseOrdinal(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1st", 1, true},
		{"2nd", 2, true},
		{"3rd", 3, true},
		{"31st", 31, true},
		{"13th", 13, true},
		{"first", 1, true},
		{"twelfth", 12, true},
		{"twentieth", 20, true},
		{"twenty-first", 21, true},
		{"thirty first", 31, true},
		{"the 5th", 5, true},
		{"the third", 3, true},
		{"0th", 0, false},
		{"three", 0, false},
		{"last", 0, false},
	}
	var e English
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := e.ParseOrdinal(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "2016", Fold(" ２０１６ "))
	assert.Equal(t, "abc", Fold("ａｂｃ"))
}
