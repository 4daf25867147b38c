package service

import (
	"fmt"
	"regexp"
	"strconv"

	"cleanops_backend/platform/apperr"
)

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseClock converts a 24-hour "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, apperr.Validation(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// RenderClock converts minutes since midnight back to a zero-padded "HH:MM"
// string. The caller guarantees 0 <= minutes < 1440.
func RenderClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// jobWindow computes the start and end minutes for a job. Jobs that would run
// past midnight are rejected rather than wrapping into the next day.
func jobWindow(serviceTime string, durationHours float64) (start, end int, err error) {
	start, err = ParseClock(serviceTime)
	if err != nil {
		return 0, 0, err
	}
	if durationHours <= 0 {
		durationHours = defaultDurationHours
	}
	end = start + int(durationHours*60)
	if end > minutesPerDay {
		return 0, 0, apperr.Validation(
			fmt.Sprintf("job starting at %s with duration %.1fh ends past midnight", serviceTime, durationHours))
	}
	return start, end, nil
}

var zonePattern = regexp.MustCompile(`\b\d{5}\b`)

// ExtractZone pulls the first 5-digit zone code out of a free-form address.
// Returns "" when the address carries no zone; the caller treats that as a
// wildcard match rather than an error.
func ExtractZone(address string) string {
	return zonePattern.FindString(address)
}
