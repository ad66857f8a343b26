package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner-api/models"
	"study-planner-api/services"
)

type StoreHandler struct {
	store services.Store
}

func NewStoreHandler(store services.Store) *StoreHandler {
	return &StoreHandler{store: store}
}

// scopedKey validates the path key and prefixes it with the client ID.
func (h *StoreHandler) scopedKey(c *gin.Context) (string, bool) {
	key := c.Param("key")
	if err := services.ValidateKey(key); err != nil {
		badRequest(c, "invalid key", err)
		return "", false
	}
	return services.ClientKey(clientID(c), key), true
}

func (h *StoreHandler) Get(c *gin.Context) {
	log.Println("StoreHandler - Get")

	key, ok := h.scopedKey(c)
	if !ok {
		return
	}

	var value json.RawMessage
	found, err := h.store.Get(c.Request.Context(), key, &value)
	if err != nil {
		internalError(c, "failed to read value", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "key not found"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", value)
}

func (h *StoreHandler) Put(c *gin.Context) {
	log.Println("StoreHandler - Put")

	key, ok := h.scopedKey(c)
	if !ok {
		return
	}

	var value json.RawMessage
	if err := c.ShouldBindJSON(&value); err != nil {
		badRequest(c, "invalid JSON body", err)
		return
	}
	if err := h.store.Set(c.Request.Context(), key, value); err != nil {
		if errors.Is(err, services.ErrInvalidKey) {
			badRequest(c, "invalid key", err)
			return
		}
		internalError(c, "failed to save value", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": c.Param("key"), "saved": true})
}

func (h *StoreHandler) Delete(c *gin.Context) {
	log.Println("StoreHandler - Delete")

	key, ok := h.scopedKey(c)
	if !ok {
		return
	}
	if err := h.store.Remove(c.Request.Context(), key); err != nil {
		internalError(c, "failed to delete value", err)
		return
	}
	c.Status(http.StatusNoContent)
}
