package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	tests := []struct {
		in       string
		want     time.Time
		dateOnly bool
	}{
		{"2026-11-02", time.Date(2026, 11, 2, 0, 0, 0, 0, shanghai), true},
		{" 2026-11-02T09:15 ", time.Date(2026, 11, 2, 9, 15, 0, 0, shanghai), false},
		{"2026-11-02 09:15", time.Date(2026, 11, 2, 9, 15, 0, 0, shanghai), false},
		{"2026-11-02T01:00:00Z", time.Date(2026, 11, 2, 9, 0, 0, 0, shanghai), false},
	}
	for _, tt := range tests {
		got, dateOnly, err := ParseDate(tt.in, shanghai)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
		assert.Equal(t, tt.dateOnly, dateOnly, tt.in)
	}

	_, _, err := ParseDate("", shanghai)
	assert.Error(t, err)
	_, _, err = ParseDate("02/11/2026", shanghai)
	assert.Error(t, err)
}

func TestAtHour(t *testing.T) {
	got := atHour(time.Date(2026, 11, 2, 23, 30, 0, 0, time.UTC), 10, time.UTC)
	assert.Equal(t, time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC), got)
}
