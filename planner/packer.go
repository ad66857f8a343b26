package planner

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"study-planner-api/models"
)

const (
	// DefaultHorizonDays is how many days a schedule covers, today included.
	DefaultHorizonDays = 7
	// BreakMinutes is the gap left after each session in break mode. It is
	// charged against the daily budget.
	BreakMinutes = 15
	// MaxDailyMinutes caps the daily study budget at a whole day.
	MaxDailyMinutes = 24 * 60
)

// sessionMinutes holds the per-pick duration by tier, as
// [continuous, breaks].
var sessionMinutes = map[string][2]int{
	models.DifficultyHard:   {120, 90},
	models.DifficultyMedium: {90, 60},
	models.DifficultyEasy:   {60, 30},
}

// SessionMinutes returns the length of one session for a difficulty tier.
// Unknown tiers are sized like easy subjects.
func SessionMinutes(tier string, studyType models.StudyType) int {
	lengths, ok := sessionMinutes[tier]
	if !ok {
		lengths = sessionMinutes[models.DifficultyEasy]
	}
	if studyType == models.StudyBreaks {
		return lengths[1]
	}
	return lengths[0]
}

// PackOptions controls the packing horizon and clock window.
type PackOptions struct {
	HorizonDays int
	Window      Window
}

// Pack lays ranked subjects out over the horizon, one day at a time. Each
// day is filled round-robin from a cursor that carries over between days,
// until the day's budget of HoursPerDay is used up; the last session of a
// day is cut short to fit. Subjects whose exam day is before today are
// skipped.
func Pack(ranked []RankedSubject, prefs models.StudyPreferences, now time.Time, opts PackOptions) []models.ScheduleSession {
	today := StartOfDay(now)
	active := make([]RankedSubject, 0, len(ranked))
	for _, subject := range ranked {
		if subject.HasExam() && subject.ExamDay.Before(today) {
			continue
		}
		active = append(active, subject)
	}

	minutes := math.Round(prefs.HoursPerDay * 60)
	if len(active) == 0 || !(minutes > 0) {
		return []models.ScheduleSession{}
	}
	budget := int(math.Min(minutes, MaxDailyMinutes))

	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	sessions := make([]models.ScheduleSession, 0)
	discriminator := now.UnixMilli()
	subjectIndex := 0

	for day := 0; day < horizon; day++ {
		y, m, d := today.AddDate(0, 0, day).Date()
		scheduled := 0

		for scheduled < budget {
			subject := active[subjectIndex%len(active)]

			duration := SessionMinutes(subject.Difficulty.Tier(), prefs.StudyType)
			if scheduled+duration > budget {
				duration = budget - scheduled
			}

			start := time.Date(y, m, d, opts.Window.StartHour, scheduled, 0, 0, today.Location())
			sessions = append(sessions, models.ScheduleSession{
				ID:          fmt.Sprintf("session-%d-%d-%d", day, subjectIndex, discriminator),
				Title:       "Study: " + subject.Name,
				Subject:     subject.Name,
				Start:       start,
				End:         start.Add(time.Duration(duration) * time.Minute),
				Description: describe(subject),
				Difficulty:  subject.Difficulty.Display(),
				Priority:    subject.Priority,
			})

			scheduled += duration
			if prefs.StudyType == models.StudyBreaks {
				scheduled += BreakMinutes
			}
			subjectIndex++
		}
	}

	return sessions
}

func describe(subject RankedSubject) string {
	label := []rune(subject.Difficulty.Display())
	label[0] = unicode.ToUpper(label[0])

	var b strings.Builder
	b.WriteString(string(label))
	b.WriteString(" difficulty")
	if subject.HasExam() {
		b.WriteString(" • Exam on ")
		b.WriteString(subject.ExamDay.Format("Jan 02"))
	}
	return b.String()
}
