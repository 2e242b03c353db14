package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeTime(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want TimeRow
	}{
		{
			// 2018-11-01T21:57:10.796Z, a Thursday in ISO week 44.
			name: "playback timestamp with millisecond precision",
			ms:   1541105830796,
			want: TimeRow{
				StartTime: time.Date(2018, time.November, 1, 21, 57, 10, 796000000, time.UTC),
				Hour:      21,
				Day:       1,
				Week:      44,
				Month:     11,
				Year:      2018,
				Weekday:   5,
			},
		},
		{
			// The epoch itself, also a Thursday.
			name: "epoch",
			ms:   0,
			want: TimeRow{
				StartTime: time.Unix(0, 0).UTC(),
				Hour:      0,
				Day:       1,
				Week:      1,
				Month:     1,
				Year:      1970,
				Weekday:   5,
			},
		},
		{
			// 2018-12-30 is a Sunday that already belongs to ISO week 52;
			// weekday numbering starts at Sunday=1.
			name: "sunday at an ISO week boundary",
			ms:   1546128000000,
			want: TimeRow{
				StartTime: time.Date(2018, time.December, 30, 0, 0, 0, 0, time.UTC),
				Hour:      0,
				Day:       30,
				Week:      52,
				Month:     12,
				Year:      2018,
				Weekday:   1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecomposeTime(tc.ms))
		})
	}
}

func TestStartTime_SharedConversion(t *testing.T) {
	const ms = 1541105830796
	assert.True(t, DecomposeTime(ms).StartTime.Equal(StartTime(ms)),
		"time and songplays must derive the identical instant from one raw value")
}
