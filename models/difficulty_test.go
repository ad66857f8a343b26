package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTier  string
		wantScale int
		display   string
	}{
		{"label hard", `"hard"`, DifficultyHard, 5, "hard"},
		{"label mixed case", `" Easy "`, DifficultyEasy, 1, "easy"},
		{"level 4", `4`, DifficultyHard, 4, "hard"},
		{"level 2", `2`, DifficultyEasy, 2, "easy"},
		{"level 3.4 rounds", `3.4`, DifficultyMedium, 3, "medium"},
		{"unknown label", `"brutal"`, "", 3, "brutal"},
		{"null", `null`, "", 3, "easy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Difficulty
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.wantTier, d.Tier())
			assert.Equal(t, tt.wantScale, d.Scale())
			assert.Equal(t, tt.display, d.Display())
		})
	}
}

func TestDifficultyRejectsObjects(t *testing.T) {
	var d Difficulty
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &d))
}

func TestDifficultyMarshalKeepsWireForm(t *testing.T) {
	out, err := json.Marshal(struct {
		A Difficulty `json:"a"`
		B Difficulty `json:"b"`
		C Difficulty `json:"c"`
	}{DifficultyFromLevel(4), DifficultyFromLabel("hard"), Difficulty{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":4,"b":"hard","c":null}`, string(out))
}

func TestPreferencesWithDefaults(t *testing.T) {
	p := StudyPreferences{HoursPerDay: 2}.WithDefaults()

	assert.Equal(t, StudyBreaks, p.StudyType)
	assert.Equal(t, StudyEvening, p.StudyTime)
	assert.Equal(t, 2.0, p.HoursPerDay)
	assert.Equal(t, 30, p.DailyGoalMinutes)
	assert.Equal(t, 30, p.SessionLengthMinutes)
	assert.Equal(t, 60, p.BreakEveryMinutes)
	assert.Equal(t, []string{"morning", "evening"}, p.StudyWindows)

	zero := StudyPreferences{}.WithDefaults()
	assert.Zero(t, zero.HoursPerDay)
}
