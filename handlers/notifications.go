package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-planner-api/models"
	"study-planner-api/services"
)

type NotificationHandler struct {
	notifier *services.Notifier
	clock    Clock
}

func NewNotificationHandler(notifier *services.Notifier, clock Clock) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, clock: clock}
}

func (h *NotificationHandler) Schedule(c *gin.Context) {
	log.Println("NotificationHandler - Schedule")

	var n models.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if n.Title == "" || n.When.IsZero() {
		badRequest(c, "title and when are required", nil)
		return
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	h.notifier.Schedule(n, h.clock())
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.notifier.Pending()})
}

func (h *NotificationHandler) Cancel(c *gin.Context) {
	log.Println("NotificationHandler - Cancel")

	if !h.notifier.Cancel(c.Param("id")) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
