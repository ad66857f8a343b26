package planner

import (
	"strings"
	"time"
)

// NoExamDays is the days-until-exam sentinel for subjects without a usable
// exam date.
const NoExamDays = 365

var examDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseExamDate parses an exam date and returns its calendar day at
// midnight in loc. Malformed values report ok=false.
func ParseExamDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range examDateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			if layout == time.RFC3339 {
				t = t.In(loc)
			}
			return StartOfDay(t), true
		}
	}
	return time.Time{}, false
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil is ceil((exam midnight - now) / 1 day) clamped at zero, counted
// in calendar days so DST shifts do not add a day.
func DaysUntil(exam, now time.Time) int {
	days := calendarDays(StartOfDay(now), exam)
	if days < 0 {
		return 0
	}
	return days
}

func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// examPassed reports whether the exam day is strictly before today.
func examPassed(subjectDate string, now time.Time) bool {
	exam, ok := ParseExamDate(subjectDate, now.Location())
	if !ok {
		return false
	}
	return exam.Before(StartOfDay(now))
}
