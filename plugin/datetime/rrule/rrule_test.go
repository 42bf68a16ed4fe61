package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		rrule string
		want  *Rule
	}{
		{
			name:  "simple weekly",
			rrule: "FREQ=WEEKLY",
			want:  &Rule{Frequency: Weekly, Interval: 1},
		},
		{
			name:  "weekly with interval",
			rrule: "FREQ=WEEKLY;INTERVAL=2",
			want:  &Rule{Frequency: Weekly, Interval: 2},
		},
		{
			name:  "weekly with days",
			rrule: "FREQ=WEEKLY;BYDAY=MO,WE,FR",
			want:  &Rule{Frequency: Weekly, Interval: 1, ByDay: []Weekday{"MO", "WE", "FR"}},
		},
		{
			name:  "daily with count",
			rrule: "RRULE:FREQ=DAILY;COUNT=10",
			want:  &Rule{Frequency: Daily, Interval: 1, Count: 10},
		},
		{
			name:  "monthly by month day",
			rrule: "FREQ=MONTHLY;BYMONTHDAY=15,-1",
			want:  &Rule{Frequency: Monthly, Interval: 1, ByMonthDay: []int{15, -1}},
		},
		{
			name:  "yearly nth weekday",
			rrule: "freq=yearly;byday=4th;bymonth=11",
			want:  &Rule{Frequency: Yearly, Interval: 1, ByDay: []Weekday{"4TH"}, ByMonth: []int{11}},
		},
		{
			name:  "until",
			rrule: "FREQ=DAILY;UNTIL=20240612T000000Z",
			want:  &Rule{Frequency: Daily, Interval: 1, Until: day(2024, 6, 12, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.rrule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Parse(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, s := range []string{
		"",
		"INTERVAL=2",
		"FREQ=FORTNIGHTLY",
		"FREQ=WEEKLY;BYDAY=XX",
		"FREQ=WEEKLY;BYDAY=9MO",
		"FREQ=DAILY;BYHOUR=25",
		"FREQ=MONTHLY;BYMONTHDAY=0",
		"FREQ=DAILY;COUNT=many",
		"FREQ=DAILY;UNTIL=tomorrow",
	} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestRuleString(t *testing.T) {
	r := &Rule{
		Frequency:  Weekly,
		Interval:   2,
		Count:      3,
		ByDay:      []Weekday{Day(time.Monday, 0), Day(time.Friday, -1)},
		ByHour:     []int{9},
		ByMinute:   []int{30},
		ByMonthDay: nil,
	}
	assert.Equal(t, "FREQ=WEEKLY;INTERVAL=2;COUNT=3;BYDAY=MO,-1FR;BYHOUR=9;BYMINUTE=30", r.String())
}

func TestOccurrences(t *testing.T) {
	start := day(2024, 6, 10, 0) // Monday
	tests := []struct {
		rrule string
		n     int
		want  []time.Time
	}{
		{"FREQ=DAILY;COUNT=2", 5, []time.Time{day(2024, 6, 10, 0), day(2024, 6, 11, 0)}},
		{"FREQ=DAILY;UNTIL=20240612T000000Z", 5, []time.Time{day(2024, 6, 10, 0), day(2024, 6, 11, 0), day(2024, 6, 12, 0)}},
		{"FREQ=WEEKLY;BYDAY=MO,WE,FR", 4, []time.Time{day(2024, 6, 10, 0), day(2024, 6, 12, 0), day(2024, 6, 14, 0), day(2024, 6, 17, 0)}},
		{"FREQ=WEEKLY;INTERVAL=2;BYDAY=TU", 2, []time.Time{day(2024, 6, 11, 0), day(2024, 6, 25, 0)}},
		{"FREQ=MONTHLY;BYDAY=-1FR", 2, []time.Time{day(2024, 6, 28, 0), day(2024, 7, 26, 0)}},
		{"FREQ=MONTHLY;BYMONTHDAY=31", 3, []time.Time{day(2024, 7, 31, 0), day(2024, 8, 31, 0), day(2024, 10, 31, 0)}},
		{"FREQ=DAILY;BYHOUR=18,9", 3, []time.Time{day(2024, 6, 10, 9), day(2024, 6, 10, 18), day(2024, 6, 11, 9)}},
		{"FREQ=HOURLY;INTERVAL=6", 3, []time.Time{day(2024, 6, 10, 0), day(2024, 6, 10, 6), day(2024, 6, 10, 12)}},
		{"FREQ=YEARLY", 2, []time.Time{day(2024, 6, 10, 0), day(2025, 6, 10, 0)}},
		{"FREQ=YEARLY;BYMONTH=2;BYMONTHDAY=30", 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.rrule, func(t *testing.T) {
			r, err := Parse(tt.rrule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Occurrences(start, tt.n))
		})
	}

	r, err := Parse("FREQ=DAILY")
	require.NoError(t, err)
	assert.Nil(t, r.Occurrences(start, 0))
}

func TestOccurrences_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	r, err := Parse("FREQ=DAILY;BYHOUR=8")
	require.NoError(t, err)

	got := r.Occurrences(time.Date(2024, 6, 10, 9, 0, 0, 0, loc), 1)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, 6, 11, 8, 0, 0, 0, loc), got[0])
	assert.Equal(t, loc, got[0].Location())
}
