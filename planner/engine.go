package planner

import (
	"time"

	"study-planner-api/models"
)

// Engine produces multi-day schedules. It holds no state between calls.
type Engine struct {
	Scorer      Scorer
	HorizonDays int
}

func NewEngine() *Engine {
	return &Engine{
		Scorer:      NewScorer(IntegerTier),
		HorizonDays: DefaultHorizonDays,
	}
}

// Generate drops subjects whose exam has passed, ranks the rest, resolves
// the study window and packs the sessions. An empty result is valid.
func (e *Engine) Generate(subjects []models.Subject, prefs models.StudyPreferences, now time.Time) []models.ScheduleSession {
	active := ActiveSubjects(subjects, now)
	if len(active) == 0 {
		return []models.ScheduleSession{}
	}

	prefs = prefs.WithDefaults()
	ranked := e.Scorer.Rank(active, now, models.StudyStats{})

	return Pack(ranked, prefs, now, PackOptions{
		HorizonDays: e.HorizonDays,
		Window:      WindowFor(prefs.StudyTime),
	})
}

// GenerateSchedule runs a default Engine.
func GenerateSchedule(subjects []models.Subject, prefs models.StudyPreferences, now time.Time) []models.ScheduleSession {
	return NewEngine().Generate(subjects, prefs, now)
}

// ActiveSubjects keeps subjects whose exam is today or later, plus those
// without a usable exam date.
func ActiveSubjects(subjects []models.Subject, now time.Time) []models.Subject {
	active := make([]models.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if examPassed(subject.ExamDate, now) {
			continue
		}
		active = append(active, subject)
	}
	return active
}
