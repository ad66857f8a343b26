package handlers

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"study-planner-api/models"
	"study-planner-api/planner"
	"study-planner-api/services"
)

type GoalsHandler struct {
	composer  *planner.Composer
	timer     *services.StudyTimer
	notifier  *services.Notifier
	assistant *services.Assistant
	clock     Clock
}

func NewGoalsHandler(composer *planner.Composer, timer *services.StudyTimer, notifier *services.Notifier, assistant *services.Assistant, clock Clock) *GoalsHandler {
	return &GoalsHandler{
		composer:  composer,
		timer:     timer,
		notifier:  notifier,
		assistant: assistant,
		clock:     clock,
	}
}

// Generate composes today's mini goals. Without stats in the body the
// client's recorded timer stats are used.
func (h *GoalsHandler) Generate(c *gin.Context) {
	log.Println("GoalsHandler - Generate")

	var req models.GenerateGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if len(req.Subjects) == 0 {
		badRequest(c, "Missing subjects array", nil)
		return
	}

	now, err := nowIn(h.clock, req.Timezone)
	if err != nil {
		badRequest(c, "invalid timezone", err)
		return
	}

	var stats models.StudyStats
	if req.Stats != nil {
		stats = *req.Stats
	} else {
		stats = h.timer.RecordedStats(c.Request.Context(), clientID(c))
	}

	goals := h.composer.Compose(req.Subjects, req.Preferences, stats, now)

	if c.Query("remind") == "true" {
		for i, goal := range goals {
			h.notifier.Schedule(reminderFor(goal, i, now), now)
		}
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func reminderFor(goal models.MiniGoal, index int, now time.Time) models.Notification {
	return models.Notification{
		ID:    goal.ID,
		Title: "Study: " + goal.Subject,
		Body:  fmt.Sprintf("%s — %d min", goal.Title, goal.Minutes),
		When:  services.ReminderTime(goal.SuggestedWindow, index, now),
	}
}

// ExtractNotes pulls topics and tasks out of a note. Without an API key
// only the decoded text is returned.
func (h *GoalsHandler) ExtractNotes(c *gin.Context) {
	log.Println("GoalsHandler - ExtractNotes")

	var req models.NotesExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	text, err := noteText(req)
	if err != nil {
		badRequest(c, "invalid note content", err)
		return
	}
	if text == "" {
		badRequest(c, "Missing file content", nil)
		return
	}

	if !h.assistant.Enabled() {
		c.JSON(http.StatusOK, gin.H{"text": text, "summary": nil})
		return
	}

	parsed, err := h.assistant.ExtractNotes(c.Request.Context(), text, req.Prompt)
	if err != nil {
		assistantError(c, "failed to extract notes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text, "ai": parsed})
}

func noteText(req models.NotesExtractRequest) (string, error) {
	if req.ContentBase64 == "" {
		return strings.TrimSpace(req.Text), nil
	}
	raw, err := base64.StdEncoding.DecodeString(req.ContentBase64)
	if err != nil {
		return "", fmt.Errorf("contentBase64: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s is not a text document", displayName(req.Filename))
	}
	return strings.TrimSpace(string(raw)), nil
}

func displayName(filename string) string {
	if filename == "" {
		return "upload"
	}
	return filename
}
