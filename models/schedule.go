package models

import "time"

type ScheduleSession struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	Priority    int       `json:"priority"`
}

// Duration of the session.
func (s ScheduleSession) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

type ScheduleStats struct {
	TotalSessions          int            `json:"totalSessions"`
	TotalHours             float64        `json:"totalHours"`
	AverageSessionLength   float64        `json:"averageSessionLength"`
	SubjectDistribution    map[string]int `json:"subjectDistribution"`
	DifficultyDistribution map[string]int `json:"difficultyDistribution"`
}

type MiniGoal struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	Minutes         int        `json:"minutes"`
	Difficulty      Difficulty `json:"difficulty"`
	ExamInDays      *int       `json:"examInDays,omitempty"`
	SuggestedWindow string     `json:"suggestedWindow"`
}

// AISession is one entry of an LLM-written schedule. The model returns
// free-form strings, so nothing here is parsed further.
type AISession struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Topic    string `json:"topic"`
	Subject  string `json:"subject"`
}

type AISchedule struct {
	Sessions []AISession `json:"sessions"`
	Summary  string      `json:"summary"`
}

type Notification struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	When  time.Time `json:"when"`
}

// RunningSession is the study timer state while a session is open.
type RunningSession struct {
	StartAt time.Time `json:"startAt"`
	Subject string    `json:"subject"`
}

type PresignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	FileName  string    `json:"fileName"`
}
