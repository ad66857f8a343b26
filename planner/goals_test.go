package planner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner-api/models"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("g-%d", n)
	}
}

func testComposer() *Composer {
	return &Composer{NewID: sequentialIDs()}
}

func goalSubject(name string, level int, examInDays int, topics ...string) models.Subject {
	s := models.Subject{Name: name, Difficulty: models.DifficultyFromLevel(level), Topics: topics}
	if examInDays != NoExamDays {
		s.ExamDate = daysOut(examInDays)
	}
	return s
}

func TestComposeDefaultPreferences(t *testing.T) {
	subjects := []models.Subject{goalSubject("Math", 4, 3, "Algebra", "Geometry")}

	goals := testComposer().Compose(subjects, models.StudyPreferences{}, models.StudyStats{}, testNow)

	require.Len(t, goals, 2)

	revision := goals[0]
	assert.Equal(t, "g-1", revision.ID)
	assert.Equal(t, "Quick revision: Math — Algebra", revision.Title)
	assert.Equal(t, "Math", revision.Subject)
	assert.Equal(t, 30, revision.Minutes)
	assert.Equal(t, "morning", revision.SuggestedWindow)
	assert.Equal(t, 4, revision.Difficulty.Level)
	require.NotNil(t, revision.ExamInDays)
	assert.Equal(t, 3, *revision.ExamInDays)

	summary := goals[1]
	assert.Equal(t, "Summarize notes / make formula sheet: Math", summary.Title)
	assert.Equal(t, 24, summary.Minutes)
	assert.Equal(t, "morning", summary.SuggestedWindow)
	assert.Nil(t, summary.ExamInDays)
}

func TestComposePracticeSessionsCycleWindows(t *testing.T) {
	subjects := []models.Subject{goalSubject("Chem", 3, 10)}
	prefs := models.StudyPreferences{
		DailyGoalMinutes:     120,
		SessionLengthMinutes: 40,
		StudyWindows:         []string{"evening", "night"},
	}

	goals := testComposer().Compose(subjects, prefs, models.StudyStats{}, testNow)

	require.Len(t, goals, 4)
	assert.Equal(t, "Quick revision: Chem", goals[0].Title)
	assert.Equal(t, "Practice: Chem (session 2)", goals[1].Title)
	assert.Equal(t, "Practice: Chem (session 3)", goals[2].Title)
	assert.Equal(t, []string{"evening", "night", "evening"},
		[]string{goals[0].SuggestedWindow, goals[1].SuggestedWindow, goals[2].SuggestedWindow})
	for _, g := range goals[:3] {
		assert.Equal(t, 40, g.Minutes)
	}
	assert.Equal(t, 32, goals[3].Minutes)
	assert.Equal(t, "evening", goals[3].SuggestedWindow)
}

func TestComposeSessionCountIsClamped(t *testing.T) {
	tests := []struct {
		name     string
		daily    int
		session  int
		practice int
	}{
		{"rounds down", 40, 30, 1},
		{"rounds half up", 45, 30, 2},
		{"caps at three", 600, 30, 3},
		{"short sessions use fifteen minute floor", 30, 5, 2},
		{"at least one", 10, 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := models.StudyPreferences{DailyGoalMinutes: tt.daily, SessionLengthMinutes: tt.session}
			goals := testComposer().Compose([]models.Subject{goalSubject("X", 3, 5)}, prefs, models.StudyStats{}, testNow)
			assert.Len(t, goals, tt.practice+1)
		})
	}
}

func TestComposeShortSessionSummaryFloor(t *testing.T) {
	prefs := models.StudyPreferences{SessionLengthMinutes: 10}

	goals := testComposer().Compose([]models.Subject{goalSubject("X", 3, 5)}, prefs, models.StudyStats{}, testNow)

	last := goals[len(goals)-1]
	assert.Equal(t, 15, last.Minutes)
	assert.Equal(t, 10, goals[0].Minutes)
}

func TestComposeTruncatesToTen(t *testing.T) {
	subjects := make([]models.Subject, 0, 6)
	for i := 0; i < 6; i++ {
		// Sooner exams rank first.
		subjects = append(subjects, goalSubject(fmt.Sprintf("S%d", i), 3, i+1))
	}

	goals := testComposer().Compose(subjects, models.StudyPreferences{}, models.StudyStats{}, testNow)

	require.Len(t, goals, MaxGoals)
	seen := make(map[string]bool)
	for _, g := range goals {
		seen[g.Subject] = true
	}
	assert.Len(t, seen, 5)
	assert.False(t, seen["S5"], "the lowest ranked subject is crowded out")
}

func TestComposeLaterSubjectsCrowdedOutMidway(t *testing.T) {
	subjects := []models.Subject{
		goalSubject("First", 5, 1),
		goalSubject("Second", 4, 2),
		goalSubject("Third", 3, 3),
	}
	prefs := models.StudyPreferences{DailyGoalMinutes: 90, SessionLengthMinutes: 30}

	goals := testComposer().Compose(subjects, prefs, models.StudyStats{}, testNow)

	require.Len(t, goals, 10)
	assert.Equal(t, "Third", goals[8].Subject)
	assert.True(t, strings.HasPrefix(goals[8].Title, "Quick revision"))
	assert.Equal(t, "Practice: Third (session 2)", goals[9].Title)
}

func TestComposeOrdersByContinuousScore(t *testing.T) {
	subjects := []models.Subject{
		goalSubject("Someday", 3, NoExamDays),
		goalSubject("Tomorrow", 3, 1),
	}

	goals := testComposer().Compose(subjects, models.StudyPreferences{}, models.StudyStats{}, testNow)

	require.Len(t, goals, 4)
	assert.Equal(t, "Tomorrow", goals[0].Subject)
	assert.Equal(t, "Someday", goals[2].Subject)
	assert.Equal(t, NoExamDays, *goals[2].ExamInDays)
}

func TestComposeDefaultsDifficultyToThree(t *testing.T) {
	subjects := []models.Subject{{Name: "Plain"}, {Name: "Labelled", Difficulty: models.DifficultyFromLabel("hard")}}

	goals := testComposer().Compose(subjects, models.StudyPreferences{}, models.StudyStats{}, testNow)

	byName := make(map[string]models.Difficulty)
	for _, g := range goals {
		byName[g.Subject] = g.Difficulty
	}
	assert.Equal(t, 3, byName["Plain"].Level)
	assert.Equal(t, "hard", byName["Labelled"].Label)
}

func TestComposeEmptySubjects(t *testing.T) {
	goals := ComposeGoals(nil, models.StudyPreferences{}, models.StudyStats{}, testNow)

	assert.NotNil(t, goals)
	assert.Empty(t, goals)
}

func TestComposeNeverExceedsTen(t *testing.T) {
	subjects := make([]models.Subject, 0, 40)
	for i := 0; i < 40; i++ {
		subjects = append(subjects, goalSubject(fmt.Sprintf("S%d", i), 1+i%5, i%20))
	}
	prefs := models.StudyPreferences{DailyGoalMinutes: 500, SessionLengthMinutes: 20}

	assert.Len(t, ComposeGoals(subjects, prefs, models.StudyStats{}, testNow), MaxGoals)
}

func TestComposeDefaultIDsAreUnique(t *testing.T) {
	subjects := []models.Subject{goalSubject("A", 3, 2), goalSubject("B", 3, 4)}

	goals := ComposeGoals(subjects, models.StudyPreferences{DailyGoalMinutes: 90}, models.StudyStats{}, testNow)

	ids := make(map[string]bool)
	for _, g := range goals {
		assert.True(t, strings.HasPrefix(g.ID, "g-"))
		assert.False(t, ids[g.ID])
		ids[g.ID] = true
	}
}
