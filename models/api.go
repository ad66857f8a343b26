package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type GenerateScheduleRequest struct {
	Subjects    []Subject        `json:"subjects"`
	Preferences StudyPreferences `json:"preferences"`
	Timezone    string           `json:"timezone,omitempty"`
}

type GenerateScheduleResponse struct {
	Sessions []ScheduleSession `json:"sessions"`
	Stats    ScheduleStats     `json:"stats"`
}

type AIScheduleRequest struct {
	Goals      []string       `json:"goals"`
	StudyPrefs map[string]any `json:"studyPrefs"`
}

type ExportRequest struct {
	Sessions []ScheduleSession `json:"sessions" binding:"required"`
}

type GenerateGoalsRequest struct {
	Subjects    []Subject        `json:"subjects"`
	Preferences StudyPreferences `json:"preferences"`
	Stats       *StudyStats      `json:"stats,omitempty"`
	Timezone    string           `json:"timezone,omitempty"`
}

type NotesExtractRequest struct {
	Filename      string `json:"filename,omitempty"`
	ContentBase64 string `json:"contentBase64,omitempty"`
	ContentType   string `json:"contentType,omitempty"`
	Text          string `json:"text,omitempty"`
	Prompt        string `json:"prompt,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type AIGoalsRequest struct {
	Topics   []string `json:"topics"`
	ExamDate string   `json:"examDate"`
}

type TimerStartRequest struct {
	Subject string `json:"subject"`
}
