package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimex(t *testing.T) {
	tests := []struct {
		timex string
		want  string
	}{
		{"P1D", "FREQ=DAILY"},
		{"P2W", "FREQ=WEEKLY;INTERVAL=2"},
		{"P3M", "FREQ=MONTHLY;INTERVAL=3"},
		{"P1Y", "FREQ=YEARLY"},
		{"PT1H", "FREQ=HOURLY"},
		{"PT15M", "FREQ=MINUTELY;INTERVAL=15"},
		{"XXXX-WXX-1", "FREQ=WEEKLY;BYDAY=MO"},
		{"XXXX-WXX-7T15:30", "FREQ=WEEKLY;BYDAY=SU;BYHOUR=15;BYMINUTE=30"},
		{"T15", "FREQ=DAILY;BYHOUR=15;BYMINUTE=0"},
		{"T07:45:30", "FREQ=DAILY;BYHOUR=7;BYMINUTE=45;BYSECOND=30"},
		{"TMO", "FREQ=DAILY;BYHOUR=8;BYMINUTE=0"},
		{"XXXX-XX-05", "FREQ=MONTHLY;BYMONTHDAY=5"},
		{"XXXX-12-25", "FREQ=YEARLY;BYMONTHDAY=25;BYMONTH=12"},
		{"XXXX-05", "FREQ=YEARLY;BYMONTHDAY=1;BYMONTH=5"},
		{"XXXX-11-WXX-4-#4", "FREQ=YEARLY;BYDAY=4TH;BYMONTH=11"},
		{"XXXX-XX-WXX-1-#1", "FREQ=MONTHLY;BYDAY=1MO"},
		{"(T15,T17,PT2H)", "FREQ=DAILY;BYHOUR=15;BYMINUTE=0"},
	}
	for _, tt := range tests {
		t.Run(tt.timex, func(t *testing.T) {
			r, err := FromTimex(tt.timex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestFromTimex_Errors(t *testing.T) {
	for _, tx := range []string{"", "2024-06-11", "XXXX-WXX-1-WE", "T25"} {
		_, err := FromTimex(tx)
		assert.Error(t, err, tx)
	}
	_, err := FromTimex("2024-06-11")
	assert.ErrorIs(t, err, ErrNotRecurring)

	for _, tx := range []string{"P1DT2H", "P0D", "XXXX-13-01", "XXXX-02-32"} {
		_, err := FromTimex(tx)
		assert.Error(t, err, tx)
	}
}

func TestExpand(t *testing.T) {
	ref := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) // Monday
	at := func(m time.Month, d, h int) time.Time {
		return time.Date(2024, m, d, h, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		timex string
		n     int
		want  []time.Time
	}{
		{"XXXX-WXX-1", 3, []time.Time{at(6, 10, 0), at(6, 17, 0), at(6, 24, 0)}},
		{"XXXX-WXX-1T08", 2, []time.Time{at(6, 17, 8), at(6, 24, 8)}},
		{"T15", 2, []time.Time{at(6, 10, 15), at(6, 11, 15)}},
		{"P2W", 3, []time.Time{at(6, 10, 0), at(6, 24, 0), at(7, 8, 0)}},
		{"PT1H", 2, []time.Time{at(6, 10, 9), at(6, 10, 10)}},
		{"XXXX-11-WXX-4-#4", 2, []time.Time{at(11, 28, 0), time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)}},
		{"XXXX-02-29", 2, []time.Time{time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2032, 2, 29, 0, 0, 0, 0, time.UTC)}},
	}
	for _, tt := range tests {
		t.Run(tt.timex, func(t *testing.T) {
			_, got, err := Expand(tt.timex, ref, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
