package planner

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner-api/models"
)

func rank(subjects ...models.Subject) []RankedSubject {
	return NewScorer(IntegerTier).Rank(subjects, testNow, models.StudyStats{})
}

func morning() PackOptions {
	return PackOptions{HorizonDays: DefaultHorizonDays, Window: WindowFor(models.StudyMorning)}
}

func studyMinutesByDay(sessions []models.ScheduleSession) map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, s := range sessions {
		out[s.Start.Format("2006-01-02")] += s.Duration()
	}
	return out
}

func TestSessionMinutes(t *testing.T) {
	tests := []struct {
		tier      string
		studyType models.StudyType
		want      int
	}{
		{"hard", models.StudyContinuous, 120},
		{"hard", models.StudyBreaks, 90},
		{"medium", models.StudyContinuous, 90},
		{"medium", models.StudyBreaks, 60},
		{"easy", models.StudyContinuous, 60},
		{"easy", models.StudyBreaks, 30},
		{"", models.StudyBreaks, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SessionMinutes(tt.tier, tt.studyType), "%s/%s", tt.tier, tt.studyType)
	}
}

func TestPackBreaksMorningScenario(t *testing.T) {
	ranked := rank(
		subject("1", "Math", "hard", 3),
		subject("2", "Art", "easy", 40),
	)
	prefs := models.StudyPreferences{StudyType: models.StudyBreaks, StudyTime: models.StudyMorning, HoursPerDay: 2}

	sessions := Pack(ranked, prefs, testNow, morning())

	require.Len(t, sessions, 14)
	for day := 0; day < 7; day++ {
		first, second := sessions[day*2], sessions[day*2+1]
		date := StartOfDay(testNow).AddDate(0, 0, day)

		assert.Equal(t, "Math", first.Subject, "day %d", day)
		assertInstant(t, date.Add(7*time.Hour), first.Start)
		assertInstant(t, date.Add(8*time.Hour+30*time.Minute), first.End)

		// Art starts after the 15 minute break and is cut to fit 2h.
		assert.Equal(t, "Art", second.Subject)
		assertInstant(t, date.Add(8*time.Hour+45*time.Minute), second.Start)
		assert.Equal(t, 15*time.Minute, second.Duration())
	}

	for day, total := range studyMinutesByDay(sessions) {
		assert.LessOrEqual(t, total, 2*time.Hour, day)
	}
}

func TestPackSessionFields(t *testing.T) {
	ranked := rank(subject("1", "Math", "hard", 3))
	prefs := models.StudyPreferences{StudyType: models.StudyContinuous, HoursPerDay: 1}

	sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 1, Window: WindowFor(models.StudyNight)})

	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, "Study: Math", s.Title)
	assert.Equal(t, "Math", s.Subject)
	assert.Equal(t, "hard", s.Difficulty)
	assert.Equal(t, 8, s.Priority)
	assert.Equal(t, "Hard difficulty • Exam on Oct 17", s.Description)
	assert.Equal(t, 20, s.Start.Hour())
	assert.Equal(t, time.Hour, s.Duration())
}

func TestPackDescriptionWithoutExam(t *testing.T) {
	ranked := rank(subject("1", "Yoga", "easy", NoExamDays))
	prefs := models.StudyPreferences{StudyType: models.StudyContinuous, HoursPerDay: 1}

	sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 1})

	require.Len(t, sessions, 1)
	assert.Equal(t, "Easy difficulty", sessions[0].Description)
}

func TestPackMissingDifficultyLabelledAsApplied(t *testing.T) {
	ranked := rank(subject("1", "Yoga", "", NoExamDays))
	prefs := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 1}

	sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 1})

	require.NotEmpty(t, sessions)
	assert.Equal(t, 30*time.Minute, sessions[0].Duration())
	assert.Equal(t, models.DifficultyEasy, sessions[0].Difficulty)
	assert.Equal(t, "Easy difficulty", sessions[0].Description)
}

func TestPackZeroOrNegativeBudget(t *testing.T) {
	ranked := rank(subject("1", "Math", "hard", 3))

	for _, hours := range []float64{0, -2, math.NaN()} {
		prefs := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: hours}
		assert.Empty(t, Pack(ranked, prefs, testNow, morning()))
	}
}

func TestPackEmptySubjects(t *testing.T) {
	prefs := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 3}

	sessions := Pack(nil, prefs, testNow, morning())

	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestPackSkipsPastExams(t *testing.T) {
	ranked := rank(
		subject("1", "Old", "hard", -1),
		subject("2", "New", "easy", 5),
	)
	prefs := models.StudyPreferences{StudyType: models.StudyContinuous, HoursPerDay: 2}

	sessions := Pack(ranked, prefs, testNow, morning())

	require.NotEmpty(t, sessions)
	for _, s := range sessions {
		assert.Equal(t, "New", s.Subject)
	}

	onlyPast := rank(subject("1", "Old", "hard", -1))
	assert.Empty(t, Pack(onlyPast, prefs, testNow, morning()))
}

func TestPackCursorCarriesAcrossDays(t *testing.T) {
	ranked := rank(
		subject("1", "A", "medium", 5),
		subject("2", "B", "medium", 5),
		subject("3", "C", "medium", 5),
	)
	prefs := models.StudyPreferences{StudyType: models.StudyContinuous, HoursPerDay: 3}

	sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 3, Window: WindowFor(models.StudyEvening)})

	got := make([]string, 0, len(sessions))
	for _, s := range sessions {
		got = append(got, s.Subject)
	}
	assert.Equal(t, []string{"A", "B", "C", "A", "B", "C"}, got)
}

func TestPackConsecutivePicksCycle(t *testing.T) {
	ranked := rank(
		subject("1", "A", "easy", 5),
		subject("2", "B", "easy", 5),
	)
	prefs := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 2}

	sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 1, Window: WindowFor(models.StudyEvening)})

	require.Len(t, sessions, 3)
	for i := 1; i < len(sessions); i++ {
		assert.NotEqual(t, sessions[i-1].Subject, sessions[i].Subject)
	}
	// 30 min sessions, each followed by a 15 min break.
	assert.Equal(t, 16*60, minuteOfDay(sessions[0].Start))
	assert.Equal(t, 16*60+45, minuteOfDay(sessions[1].Start))
	assert.Equal(t, 17*60+30, minuteOfDay(sessions[2].Start))
}

func TestPackClampsDailyBudget(t *testing.T) {
	ranked := rank(subject("1", "Art", "easy", NoExamDays))
	fullDay := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 24}
	huge := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 20000}

	sessions := Pack(ranked, huge, testNow, morning())

	// 1440 minutes a day at 30 min study + 15 min break.
	require.Len(t, sessions, 7*32)
	assert.Equal(t, Pack(ranked, fullDay, testNow, morning()), sessions)
	assert.Len(t, Pack(ranked, models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 1e300}, testNow, morning()), 7*32)
	last := sessions[len(sessions)-1]
	assert.True(t, last.End.Before(StartOfDay(testNow).AddDate(0, 0, DefaultHorizonDays+1)))
}

func TestPackFractionalBudget(t *testing.T) {
	ranked := rank(subject("1", "A", "hard", 5))
	prefs := models.StudyPreferences{StudyType: models.StudyContinuous, HoursPerDay: 2.5}

	sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 1, Window: WindowFor(models.StudyMorning)})

	require.Len(t, sessions, 2)
	assert.Equal(t, 2*time.Hour, sessions[0].Duration())
	assert.Equal(t, 30*time.Minute, sessions[1].Duration())
	assert.Equal(t, 9*60, minuteOfDay(sessions[1].Start))
}

func TestPackInvariants(t *testing.T) {
	ranked := rank(
		subject("1", "Math", "hard", 2),
		subject("2", "Bio", "medium", 12),
		subject("3", "Art", "easy", NoExamDays),
	)

	for _, studyType := range []models.StudyType{models.StudyContinuous, models.StudyBreaks} {
		for _, hours := range []float64{0.25, 1, 1.75, 3, 5.5} {
			prefs := models.StudyPreferences{StudyType: studyType, HoursPerDay: hours}
			window := WindowFor(models.StudyEvening)
			sessions := Pack(ranked, prefs, testNow, PackOptions{HorizonDays: 7, Window: window})

			require.NotEmpty(t, sessions)
			ids := make(map[string]bool)
			for _, s := range sessions {
				assert.True(t, s.End.After(s.Start))
				assert.GreaterOrEqual(t, s.Start.Hour(), window.StartHour)
				assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
				ids[s.ID] = true
			}
			for day, total := range studyMinutesByDay(sessions) {
				assert.LessOrEqual(t, total, time.Duration(hours*float64(time.Hour)), "%s %s %.2f", day, studyType, hours)
			}
			assert.Len(t, studyMinutesByDay(sessions), 7)
		}
	}
}

func TestPackIsDeterministicForPinnedNow(t *testing.T) {
	ranked := rank(subject("1", "Math", "hard", 2), subject("2", "Art", "easy", 20))
	prefs := models.StudyPreferences{StudyType: models.StudyBreaks, HoursPerDay: 3}

	assert.Equal(t, Pack(ranked, prefs, testNow, morning()), Pack(ranked, prefs, testNow, morning()))
}

func assertInstant(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
