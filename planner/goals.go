package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"study-planner-api/models"
)

// MaxGoals caps how many goals one composition returns. Earlier-ranked
// subjects fill the quota first.
const MaxGoals = 10

// Composer turns ranked subjects into today's mini goals.
type Composer struct {
	// NewID generates goal IDs; defaults to "g-<uuid>".
	NewID func() string
}

func NewComposer() *Composer {
	return &Composer{NewID: newGoalID}
}

func newGoalID() string {
	return "g-" + uuid.NewString()
}

// Compose ranks subjects with the continuous score and emits, per subject,
// a revision goal, practice goals up to the day's session count, and one
// note-summary goal. The list is cut to MaxGoals.
func (c *Composer) Compose(subjects []models.Subject, prefs models.StudyPreferences, stats models.StudyStats, now time.Time) []models.MiniGoal {
	if len(subjects) == 0 {
		return []models.MiniGoal{}
	}
	nextID := c.NewID
	if nextID == nil {
		nextID = newGoalID
	}

	prefs = prefs.WithDefaults()
	sessionLength := prefs.SessionLengthMinutes
	windows := prefs.StudyWindows

	perSubject := int(math.Round(float64(prefs.DailyGoalMinutes) / float64(max(15, sessionLength))))
	perSubject = max(1, min(3, perSubject))

	goals := make([]models.MiniGoal, 0, len(subjects)*(perSubject+1))
	for _, subject := range NewScorer(ContinuousScore).Rank(subjects, now, stats) {
		difficulty := subject.Difficulty
		if difficulty.Label == "" && difficulty.Level <= 0 {
			difficulty = models.DifficultyFromLevel(models.DefaultDifficultyLevel)
		}

		for i := 0; i < perSubject; i++ {
			examInDays := subject.DaysUntilExam
			goals = append(goals, models.MiniGoal{
				ID:              nextID(),
				Title:           goalTitle(subject, i),
				Subject:         subject.Name,
				Minutes:         sessionLength,
				Difficulty:      difficulty,
				ExamInDays:      &examInDays,
				SuggestedWindow: windows[i%len(windows)],
			})
		}

		goals = append(goals, models.MiniGoal{
			ID:              nextID(),
			Title:           "Summarize notes / make formula sheet: " + subject.Name,
			Subject:         subject.Name,
			Minutes:         max(15, int(math.Round(float64(sessionLength)*0.8))),
			Difficulty:      difficulty,
			SuggestedWindow: windows[0],
		})
	}

	if len(goals) > MaxGoals {
		goals = goals[:MaxGoals]
	}
	return goals
}

// ComposeGoals runs a default Composer.
func ComposeGoals(subjects []models.Subject, prefs models.StudyPreferences, stats models.StudyStats, now time.Time) []models.MiniGoal {
	return NewComposer().Compose(subjects, prefs, stats, now)
}

func goalTitle(subject RankedSubject, session int) string {
	if session > 0 {
		return fmt.Sprintf("Practice: %s (session %d)", subject.Name, session+1)
	}
	title := "Quick revision: " + subject.Name
	if len(subject.Topics) > 0 && subject.Topics[0] != "" {
		title += " — " + subject.Topics[0]
	}
	return title
}
