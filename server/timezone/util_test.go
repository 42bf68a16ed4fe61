package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		wantErr bool
	}{
		{"UTC", "UTC", false},
		{"empty string defaults to UTC", "", false},
		{"Asia/Shanghai", "Asia/Shanghai", false},
		{"invalid timezone", "Mars/Olympus", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseTimezone(tt.tz)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, UTC, loc)
				assert.False(t, IsValidTimezone(tt.tz))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, loc)
			assert.True(t, IsValidTimezone(tt.tz))
		})
	}
}

func TestParseReference(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	fixedNow := time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixedNow }

	tests := []struct {
		name  string
		value string
		tz    string
		want  time.Time
	}{
		{"empty is now", "", "", fixedNow},
		{"empty is now in zone", "", "Asia/Shanghai", fixedNow.In(shanghai)},
		{"rfc3339 keeps offset", "2024-06-10T09:00:00+08:00", "", time.Date(2024, 6, 10, 9, 0, 0, 0, time.FixedZone("", 8*3600))},
		{"date only", "2024-06-10", "", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"wall time in zone", "2024-06-10 09:30", "Asia/Shanghai", time.Date(2024, 6, 10, 9, 30, 0, 0, shanghai)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.value, tt.tz, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			assert.Equal(t, tt.want.Format(time.RFC3339), got.Format(time.RFC3339))
		})
	}

	_, err = ParseReference("next tuesday", "", now)
	assert.Error(t, err)
	_, err = ParseReference("", "Nowhere/City", now)
	assert.Error(t, err)
}
