// Package worktime handles wall-clock HH:MM fields on work logs: parsing,
// display normalization, and the farm's payable-hours calculation.
package worktime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Lunch break (12:00-13:00) is unpaid and excluded from work hours.
const (
	lunchStartMinute = 12 * 60
	lunchEndMinute   = 13 * 60

	// MinutesPerDay bounds a single shift segment.
	MinutesPerDay = 24 * 60
)

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses an HH:MM wall-clock string into minutes since midnight.
// Hours must be 0-23 and minutes 0-59.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight back to zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Normalize trims storage precision from a clock value, e.g. "07:30:00" from
// a TIME column becomes "07:30". Inputs already in HH:MM pass through.
func Normalize(s string) string {
	if len(s) >= 5 && strings.Count(s, ":") >= 1 {
		return s[:5]
	}
	return s
}

// PayableHours computes the payable duration between two clock positions,
// excluding whatever part of the interval overlaps the lunch break.
// Both arguments are minutes since midnight and start must precede end;
// callers validate ordering before computing.
func PayableHours(startMinute, endMinute int) decimal.Decimal {
	workMinutes := endMinute - startMinute
	if workMinutes <= 0 {
		return decimal.Zero
	}

	overlapStart := max(startMinute, lunchStartMinute)
	overlapEnd := min(endMinute, lunchEndMinute)
	if overlapEnd > overlapStart {
		workMinutes -= overlapEnd - overlapStart
	}

	return decimal.NewFromInt(int64(workMinutes)).Div(decimal.NewFromInt(60)).Round(2)
}
