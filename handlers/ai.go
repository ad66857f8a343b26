package handlers

import (
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"study-planner-api/models"
	"study-planner-api/services"
)

type AIHandler struct {
	assistant     *services.Assistant
	maxUploadSize int64
}

func NewAIHandler(assistant *services.Assistant, maxUploadSize int64) *AIHandler {
	return &AIHandler{
		assistant:     assistant,
		maxUploadSize: maxUploadSize,
	}
}

func (h *AIHandler) Status(c *gin.Context) {
	message := "API key configured"
	if !h.assistant.Enabled() {
		message = "API key not configured"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"hasApiKey": h.assistant.Enabled(),
		"message":   message,
	})
}

// Chat proxies a conversation to the chat completions API.
func (h *AIHandler) Chat(c *gin.Context) {
	log.Println("AIHandler - Chat")

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if len(req.Messages) == 0 {
		badRequest(c, "Missing messages", nil)
		return
	}

	resp, err := h.assistant.Chat(c.Request.Context(), req.Messages, req.MaxTokens)
	if err != nil {
		assistantError(c, "AI request failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upload summarises an uploaded text file.
func (h *AIHandler) Upload(c *gin.Context) {
	log.Println("AIHandler - Upload")

	data, name, ok := readUpload(c, h.maxUploadSize)
	if !ok {
		return
	}
	if !utf8.Valid(data) {
		badRequest(c, "unsupported file type", nil)
		return
	}
	notes := strings.TrimSpace(string(data))
	if notes == "" {
		badRequest(c, "Uploaded file is empty", nil)
		return
	}

	summary, err := h.assistant.SummarizeNotes(c.Request.Context(), notes)
	if err != nil {
		log.Printf("Failed to summarize %s", name)
		assistantError(c, "failed to summarize notes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Goals suggests study goals for topics ahead of an exam date.
func (h *AIHandler) Goals(c *gin.Context) {
	log.Println("AIHandler - Goals")

	var req models.AIGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if len(req.Topics) == 0 || req.ExamDate == "" {
		badRequest(c, "Missing data", nil)
		return
	}

	goals, err := h.assistant.SuggestGoals(c.Request.Context(), req.Topics, req.ExamDate)
	if err != nil {
		assistantError(c, "failed to generate goals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}
