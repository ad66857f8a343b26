package planner

import (
	"math"

	"study-planner-api/models"
)

// Summarize reports totals and distributions for a set of sessions.
func Summarize(sessions []models.ScheduleSession) models.ScheduleStats {
	stats := models.ScheduleStats{
		TotalSessions:          len(sessions),
		SubjectDistribution:    make(map[string]int),
		DifficultyDistribution: make(map[string]int),
	}

	var hours float64
	for _, s := range sessions {
		hours += s.Duration().Hours()
		stats.SubjectDistribution[s.Subject]++
		stats.DifficultyDistribution[s.Difficulty]++
	}

	stats.TotalHours = roundTenth(hours)
	if len(sessions) > 0 {
		stats.AverageSessionLength = roundTenth(hours / float64(len(sessions)))
	}
	return stats
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
