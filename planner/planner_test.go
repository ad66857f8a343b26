package planner

import (
	"time"

	"study-planner-api/models"
)

// testNow is a Wednesday morning in a fixed +02:00 zone.
var (
	testZone = time.FixedZone("test", 2*60*60)
	testNow  = time.Date(2026, time.October, 14, 9, 30, 0, 0, testZone)
)

func daysOut(n int) string {
	return testNow.AddDate(0, 0, n).Format("2006-01-02")
}

func subject(id, name, difficulty string, examInDays int) models.Subject {
	s := models.Subject{
		ID:         id,
		Name:       name,
		Difficulty: models.DifficultyFromLabel(difficulty),
	}
	if examInDays != NoExamDays {
		s.ExamDate = daysOut(examInDays)
	}
	return s
}
