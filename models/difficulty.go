package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Difficulty tiers.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DefaultDifficultyLevel is used when a subject carries no usable difficulty.
const DefaultDifficultyLevel = 3

// Difficulty accepts either a tier label ("easy", "medium", "hard") or a
// 1-5 level on the wire. Only one of Label or Level is set.
type Difficulty struct {
	Label string
	Level int
}

func DifficultyFromLabel(label string) Difficulty {
	return Difficulty{Label: strings.ToLower(strings.TrimSpace(label))}
}

func DifficultyFromLevel(level int) Difficulty {
	return Difficulty{Level: level}
}

func (d Difficulty) IsZero() bool {
	return d.Label == "" && d.Level == 0
}

// Tier returns easy, medium or hard, or "" when the value is not recognised.
func (d Difficulty) Tier() string {
	switch d.Label {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d.Label
	}
	if d.Label != "" || d.Level <= 0 {
		return ""
	}
	switch {
	case d.Level <= 2:
		return DifficultyEasy
	case d.Level == 3:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Scale returns the difficulty on the 1-5 scale.
func (d Difficulty) Scale() int {
	if d.Level > 0 {
		return min(d.Level, 5)
	}
	switch d.Label {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 5
	}
	return DefaultDifficultyLevel
}

// Display is the label shown to users: the raw label when one was given,
// the derived tier for numeric levels, otherwise easy, which is how a
// missing difficulty is sized and weighted.
func (d Difficulty) Display() string {
	if d.Label != "" {
		return d.Label
	}
	if tier := d.Tier(); tier != "" {
		return tier
	}
	return DifficultyEasy
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	switch {
	case d.Level > 0:
		return json.Marshal(d.Level)
	case d.Label != "":
		return json.Marshal(d.Label)
	}
	return []byte("null"), nil
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Difficulty{}
		return nil
	}
	if data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return fmt.Errorf("difficulty: %w", err)
		}
		*d = DifficultyFromLabel(label)
		return nil
	}
	var level float64
	if err := json.Unmarshal(data, &level); err != nil {
		return fmt.Errorf("difficulty must be a label or a number: %w", err)
	}
	*d = DifficultyFromLevel(int(math.Round(level)))
	return nil
}
