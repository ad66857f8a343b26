package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"study-planner-api/models"
	"study-planner-api/services"
)

// ClientIDHeader namespaces stored state per browser.
const ClientIDHeader = "X-Client-ID"

// Clock returns the current time in the planning zone.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// ObjectSharer uploads a file and hands out a temporary download link.
type ObjectSharer interface {
	PutObject(ctx context.Context, objectPath string, data []byte, contentType string) error
	GetPresignedURL(ctx context.Context, objectPath string) (*models.PresignedURLResponse, error)
}

func clientID(c *gin.Context) string {
	return c.GetHeader(ClientIDHeader)
}

// nowIn applies an optional request timezone to the clock.
func nowIn(clock Clock, zone string) (time.Time, error) {
	now := clock()
	if zone == "" {
		return now, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return now.In(loc), nil
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := models.ErrorResponse{Error: msg}
	if err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func internalError(c *gin.Context, msg string, err error) {
	log.Printf("%s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   msg,
		Message: err.Error(),
	})
}

// assistantError maps LLM failures onto HTTP statuses.
func assistantError(c *gin.Context, msg string, err error) {
	var rateLimit *services.ErrRateLimit
	var unavailable *services.ErrProviderUnavailable
	var invalid *services.ErrInvalidResponse

	switch {
	case errors.Is(err, services.ErrMissingAPIKey):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Missing OPENAI_API_KEY",
		})
	case errors.As(err, &rateLimit):
		if rateLimit.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(rateLimit.RetryAfter.Seconds())))
		}
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   "AI provider rate limit reached",
			Message: err.Error(),
		})
	case errors.As(err, &unavailable), errors.As(err, &invalid):
		log.Printf("%s: %v", msg, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   msg,
			Message: err.Error(),
		})
	default:
		internalError(c, msg, err)
	}
}
