package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner-api/services"
)

type CacheHandler struct {
	cache *services.CacheService
}

func NewCacheHandler(cache *services.CacheService) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// InvalidateCache drops every cached AI summary.
func (h *CacheHandler) InvalidateCache(c *gin.Context) {
	log.Println("CacheHandler - InvalidateCache")

	flushed := h.cache.ItemCount()
	h.cache.Flush()
	c.JSON(http.StatusOK, gin.H{
		"message": "cache invalidated",
		"flushed": flushed,
	})
}
