package models

// StudyType decides session lengths and whether breaks are inserted.
type StudyType string

const (
	StudyContinuous StudyType = "continuous"
	StudyBreaks     StudyType = "breaks"
)

// StudyTime is the preferred part of the day for packed sessions.
type StudyTime string

const (
	StudyMorning StudyTime = "morning"
	StudyEvening StudyTime = "evening"
	StudyNight   StudyTime = "night"
)

// Preference defaults for goal composition.
const (
	DefaultDailyGoalMinutes     = 30
	DefaultSessionLengthMinutes = 30
	DefaultBreakEveryMinutes    = 60
)

// DefaultStudyWindows returns a fresh copy of the default day-parts.
func DefaultStudyWindows() []string {
	return []string{string(StudyMorning), string(StudyEvening)}
}

type Subject struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Difficulty  Difficulty `json:"difficulty"`
	ExamDate    string     `json:"examDate,omitempty"`
	WeeklyHours float64    `json:"weeklyHours,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
}

type StudyPreferences struct {
	StudyType            StudyType `json:"studyType"`
	StudyTime            StudyTime `json:"studyTime"`
	HoursPerDay          float64   `json:"hoursPerDay"`
	DailyGoalMinutes     int       `json:"dailyGoalMinutes,omitempty"`
	SessionLengthMinutes int       `json:"sessionLengthMinutes,omitempty"`
	BreakEveryMinutes    int       `json:"breakEveryMinutes,omitempty"`
	StudyWindows         []string  `json:"studyWindows,omitempty"`
}

// WithDefaults returns a copy with absent fields filled in. HoursPerDay is
// left untouched: a zero budget means no sessions.
func (p StudyPreferences) WithDefaults() StudyPreferences {
	if p.StudyType == "" {
		p.StudyType = StudyBreaks
	}
	if p.StudyTime == "" {
		p.StudyTime = StudyEvening
	}
	if p.DailyGoalMinutes <= 0 {
		p.DailyGoalMinutes = DefaultDailyGoalMinutes
	}
	if p.SessionLengthMinutes <= 0 {
		p.SessionLengthMinutes = DefaultSessionLengthMinutes
	}
	if p.BreakEveryMinutes <= 0 {
		p.BreakEveryMinutes = DefaultBreakEveryMinutes
	}
	if len(p.StudyWindows) == 0 {
		p.StudyWindows = DefaultStudyWindows()
	} else {
		p.StudyWindows = append([]string(nil), p.StudyWindows...)
	}
	return p
}

// StudyStats is the cumulative study time recorded by the timer.
type StudyStats struct {
	TotalMinutes int            `json:"totalMinutes"`
	PerSubject   map[string]int `json:"perSubject"`
}

// Minutes returns the studied minutes for a subject name.
func (s StudyStats) Minutes(subject string) int {
	if s.PerSubject == nil {
		return 0
	}
	return s.PerSubject[subject]
}
