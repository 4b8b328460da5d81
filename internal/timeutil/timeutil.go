package timeutil

import (
	"fmt"
	"math"
)

const (
	SecondsInMinute uint64 = 60
	MinutesInHour   uint64 = 60
	SecondsInHour          = SecondsInMinute * MinutesInHour
)

// FormatSecs splits secs into hours, minutes and seconds.
func FormatSecs(secs uint64) [3]uint64 {
	hours := secs / SecondsInHour
	secs -= hours * SecondsInHour
	minutes := secs / SecondsInMinute
	seconds := secs % SecondsInMinute

	return [3]uint64{hours, minutes, seconds}
}

// ToSecs combines hours, minutes and seconds into a total. The result
// saturates at math.MaxUint64 instead of wrapping.
func ToSecs(hours, minutes, secs uint64) uint64 {
	if hours > math.MaxUint64/SecondsInHour {
		return math.MaxUint64
	}
	total := hours * SecondsInHour
	rest := minutes*SecondsInMinute + secs
	if total > math.MaxUint64-rest {
		return math.MaxUint64
	}
	return total + rest
}

// Clock renders secs as HH:MM:SS. Hours are not wrapped at 24.
func Clock(secs uint64) string {
	hms := FormatSecs(secs)
	return fmt.Sprintf("%02d:%02d:%02d", hms[0], hms[1], hms[2])
}

// Percent returns how much of total has elapsed when remaining is left,
// in the range [0, 100]. A zero total counts as nothing elapsed.
func Percent(remaining, total uint64) uint16 {
	if total == 0 {
		return 0
	}
	if remaining > total {
		remaining = total
	}
	elapsed := total - remaining
	return uint16(float64(elapsed) * 100 / float64(total))
}
