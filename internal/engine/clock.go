package engine

import (
	"fmt"
	"time"
)

// daysBack is how far into the past the day picker reaches, today included
// it yields daysBack+1 options.
const daysBack = 7

// combine builds a timezone-aware timestamp from a calendar day and a
// wall-clock hour/minute in the engine's location.
func combine(day time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

// rollForward pushes end one day ahead when it lands before start,
// treating the pair as an overnight incident.
func rollForward(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

// durationMinutes is the floor of the interval in whole minutes.
func durationMinutes(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Minute)
}

// formatDuration renders minutes as "Nm" or "Hh Mm" from one hour up.
func formatDuration(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// dayWindow returns the selectable days, today first, going daysBack into
// the past.
func dayWindow(now time.Time, loc *time.Location) []time.Time {
	today := now.In(loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	days := make([]time.Time, 0, daysBack+1)
	for n := 0; n <= daysBack; n++ {
		days = append(days, today.AddDate(0, 0, -n))
	}
	return days
}

// validDay reports whether the picked day falls inside the current window.
func validDay(day time.Time, now time.Time, loc *time.Location) bool {
	for _, d := range dayWindow(now, loc) {
		if d.Equal(day) {
			return true
		}
	}
	return false
}
