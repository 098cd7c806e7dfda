package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock-of-day default applied when upstream data omits or mangles a time.
// Deliberately a fallback, not an error: imported delivery sheets frequently
// leave windows blank.
const defaultClockMinutes = 480 // 08:00

// ClockToMinutes parses a clock-of-day string into minutes since midnight.
// It accepts "HH:MM" or a bare number interpreted as whole hours ("9" is
// 09:00). Empty or unparseable input yields the 08:00 default.
func ClockToMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultClockMinutes
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return defaultClockMinutes
		}
		mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return defaultClockMinutes
		}
		return hours*60 + mins
	}

	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultClockMinutes
	}
	return int(hours) * 60
}

// MinutesToClock formats minutes since midnight as zero-padded "HH:MM".
// Inverse of ClockToMinutes for values in [0, 1439].
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
