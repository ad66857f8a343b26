package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner-api/models"
	"study-planner-api/services"
)

type TimerHandler struct {
	timer *services.StudyTimer
	clock Clock
}

func NewTimerHandler(timer *services.StudyTimer, clock Clock) *TimerHandler {
	return &TimerHandler{timer: timer, clock: clock}
}

func (h *TimerHandler) Start(c *gin.Context) {
	log.Println("TimerHandler - Start")

	var req models.TimerStartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body", err)
			return
		}
	}

	running, err := h.timer.Start(c.Request.Context(), clientID(c), req.Subject, h.clock())
	if err != nil {
		internalError(c, "failed to start timer", err)
		return
	}
	c.JSON(http.StatusOK, running)
}

func (h *TimerHandler) Stop(c *gin.Context) {
	log.Println("TimerHandler - Stop")

	minutes, stats, err := h.timer.Stop(c.Request.Context(), clientID(c), h.clock())
	if err != nil {
		internalError(c, "failed to stop timer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"minutes": minutes, "stats": stats})
}

func (h *TimerHandler) Stats(c *gin.Context) {
	stats, err := h.timer.Stats(c.Request.Context(), clientID(c))
	if err != nil {
		internalError(c, "failed to read stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
