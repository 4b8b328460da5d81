package timeutil_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pomo/internal/timeutil"
)

func TestFormatSecs(t *testing.T) {
	tests := []struct {
		secs uint64
		want [3]uint64
	}{
		{0, [3]uint64{0, 0, 0}},
		{59, [3]uint64{0, 0, 59}},
		{60, [3]uint64{0, 1, 0}},
		{3599, [3]uint64{0, 59, 59}},
		{3600, [3]uint64{1, 0, 0}},
		{3661, [3]uint64{1, 1, 1}},
		{90061, [3]uint64{25, 1, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeutil.FormatSecs(tt.secs), "FormatSecs(%d)", tt.secs)
	}
}

func TestToSecsRoundTrip(t *testing.T) {
	for _, h := range []uint64{0, 1, 2, 99, 1000} {
		for m := uint64(0); m < 60; m += 7 {
			for s := uint64(0); s < 60; s += 11 {
				got := timeutil.FormatSecs(timeutil.ToSecs(h, m, s))
				assert.Equal(t, [3]uint64{h, m, s}, got)
			}
		}
	}
}

func TestToSecsSaturates(t *testing.T) {
	assert.Equal(t, uint64(math.MaxUint64), timeutil.ToSecs(math.MaxUint64, 0, 0))
	assert.Equal(t, uint64(math.MaxUint64), timeutil.ToSecs(math.MaxUint64/3600, 59, 59))
	assert.Equal(t, uint64(420), timeutil.ToSecs(0, 7, 0))
}

func TestClock(t *testing.T) {
	tests := []struct {
		secs uint64
		want string
	}{
		{0, "00:00:00"},
		{5, "00:00:05"},
		{900, "00:15:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{360000, "100:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeutil.Clock(tt.secs), "Clock(%d)", tt.secs)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		remaining, total uint64
		want             uint16
	}{
		{0, 0, 0},
		{10, 10, 0},
		{5, 10, 50},
		{0, 10, 100},
		{2, 3, 33},
		{20, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timeutil.Percent(tt.remaining, tt.total), "Percent(%d, %d)", tt.remaining, tt.total)
	}
}
