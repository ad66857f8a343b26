package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-planner-api/models"
	"study-planner-api/planner"
	"study-planner-api/services"
)

const (
	icsFileName    = "study-schedule.ics"
	maxHoursPerDay = 24
)

type ScheduleHandler struct {
	engine    *planner.Engine
	assistant *services.Assistant
	sharer    ObjectSharer
	clock     Clock
}

// NewScheduleHandler wires schedule generation. sharer may be nil, which
// disables share links.
func NewScheduleHandler(engine *planner.Engine, assistant *services.Assistant, sharer ObjectSharer, clock Clock) *ScheduleHandler {
	return &ScheduleHandler{
		engine:    engine,
		assistant: assistant,
		sharer:    sharer,
		clock:     clock,
	}
}

// Generate builds a deterministic schedule for the coming week.
func (h *ScheduleHandler) Generate(c *gin.Context) {
	log.Println("ScheduleHandler - Generate")

	var req models.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if req.Preferences.HoursPerDay > maxHoursPerDay {
		badRequest(c, "invalid hoursPerDay", fmt.Errorf("hoursPerDay must be at most %d", maxHoursPerDay))
		return
	}

	now, err := nowIn(h.clock, req.Timezone)
	if err != nil {
		badRequest(c, "invalid timezone", err)
		return
	}

	sessions := h.engine.Generate(req.Subjects, req.Preferences, now)
	c.JSON(http.StatusOK, models.GenerateScheduleResponse{
		Sessions: sessions,
		Stats:    planner.Summarize(sessions),
	})
}

// GenerateAI asks the assistant for a narrative schedule.
func (h *ScheduleHandler) GenerateAI(c *gin.Context) {
	log.Println("ScheduleHandler - GenerateAI")

	var req models.AIScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if len(req.Goals) == 0 {
		badRequest(c, "Missing goals", nil)
		return
	}

	schedule, err := h.assistant.PlanSchedule(c.Request.Context(), req.Goals, req.StudyPrefs)
	if err != nil {
		assistantError(c, "failed to generate AI schedule", err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// Export returns the sessions as an iCalendar file, or a share link when
// ?share=true.
func (h *ScheduleHandler) Export(c *gin.Context) {
	log.Println("ScheduleHandler - Export")

	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	doc := services.BuildICS(req.Sessions)

	if c.Query("share") != "true" {
		c.Header("Content-Disposition", `attachment; filename="`+icsFileName+`"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(doc))
		return
	}

	if h.sharer == nil {
		c.JSON(http.StatusNotImplemented, models.ErrorResponse{
			Error:   "sharing is not available",
			Message: "set STORE_BACKEND=minio to enable share links",
		})
		return
	}

	ctx := c.Request.Context()
	objectPath := "exports/" + uuid.NewString() + ".ics"
	if err := h.sharer.PutObject(ctx, objectPath, []byte(doc), "text/calendar"); err != nil {
		internalError(c, "failed to upload calendar", err)
		return
	}
	link, err := h.sharer.GetPresignedURL(ctx, objectPath)
	if err != nil {
		internalError(c, "failed to generate share link", err)
		return
	}
	c.JSON(http.StatusOK, link)
}
