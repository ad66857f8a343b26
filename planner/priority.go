package planner

import (
	"math"
	"sort"
	"time"

	"study-planner-api/models"
)

// Policy selects how subjects are scored before allocation.
type Policy int

const (
	// IntegerTier adds a difficulty weight and an exam urgency weight.
	IntegerTier Policy = iota
	// ContinuousScore blends exam closeness, difficulty, study history and
	// weekly hours into a real-valued score.
	ContinuousScore
)

func (p Policy) String() string {
	switch p {
	case IntegerTier:
		return "integer-tier"
	case ContinuousScore:
		return "continuous-score"
	}
	return "unknown"
}

// defaultWeeklyHours is assumed by the studied factor when a subject has none.
const defaultWeeklyHours = 3

// RankedSubject is a subject with its computed ranking attached.
type RankedSubject struct {
	models.Subject
	Priority       int
	Score          float64
	DaysUntilExam  int
	StudiedMinutes int
	// ExamDay is the parsed exam day, zero when the subject has none.
	ExamDay time.Time
}

// HasExam reports whether the subject carries a parseable exam date.
func (r RankedSubject) HasExam() bool {
	return !r.ExamDay.IsZero()
}

// Scorer computes priorities under one policy.
type Scorer struct {
	Policy Policy
}

func NewScorer(policy Policy) Scorer {
	return Scorer{Policy: policy}
}

// Score annotates a copy of subject with its priority or score.
func (s Scorer) Score(subject models.Subject, now time.Time, stats models.StudyStats) RankedSubject {
	ranked := RankedSubject{
		Subject:       subject,
		DaysUntilExam: NoExamDays,
	}
	if exam, ok := ParseExamDate(subject.ExamDate, now.Location()); ok {
		ranked.ExamDay = exam
		ranked.DaysUntilExam = DaysUntil(exam, now)
	}

	switch s.Policy {
	case ContinuousScore:
		ranked.StudiedMinutes = stats.Minutes(subject.Name)
		ranked.Score = continuousScore(subject, ranked.DaysUntilExam, ranked.StudiedMinutes)
	default:
		ranked.Priority = DifficultyWeight(subject.Difficulty.Tier()) + ExamUrgencyWeight(ranked.DaysUntilExam)
		ranked.Score = float64(ranked.Priority)
	}
	return ranked
}

// Rank scores every subject and sorts them most urgent first. Equal scores
// keep their input order.
func (s Scorer) Rank(subjects []models.Subject, now time.Time, stats models.StudyStats) []RankedSubject {
	ranked := make([]RankedSubject, 0, len(subjects))
	for _, subject := range subjects {
		ranked = append(ranked, s.Score(subject, now, stats))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// DifficultyWeight: hard 3, medium 2, anything else 1.
func DifficultyWeight(tier string) int {
	switch tier {
	case models.DifficultyHard:
		return 3
	case models.DifficultyMedium:
		return 2
	}
	return 1
}

// ExamUrgencyWeight: within a week 5, two weeks 3, a month 2, otherwise 1.
func ExamUrgencyWeight(daysUntilExam int) int {
	switch {
	case daysUntilExam <= 7:
		return 5
	case daysUntilExam <= 14:
		return 3
	case daysUntilExam <= 30:
		return 2
	}
	return 1
}

func continuousScore(subject models.Subject, daysUntilExam, studiedMinutes int) float64 {
	closeness := 1 / math.Max(1, float64(daysUntilExam))
	difficulty := float64(subject.Difficulty.Scale()) / 5

	weekly := subject.WeeklyHours
	if weekly <= 0 {
		weekly = defaultWeeklyHours
	}
	studiedFactor := math.Max(0, 1-float64(studiedMinutes)/math.Max(1, weekly*60*4))

	return closeness*3 + difficulty*2 + studiedFactor*1.5 + subject.WeeklyHours/10
}
