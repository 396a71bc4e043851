package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/store"
)

// CacheHandler exposes the raw cache for inspection and manual writes. The
// active backend (single endpoint or cluster) is whatever was injected at
// startup.
type CacheHandler struct {
	cache store.CacheStore
}

// NewCacheHandler creates a CacheHandler.
func NewCacheHandler(cache store.CacheStore) *CacheHandler {
	return &CacheHandler{cache: cache}
}

type cacheSetRequest struct {
	Key   string   `json:"key" binding:"required"`
	Value *float64 `json:"value" binding:"required"`
}

// GetEntryHandler handles GET /v1/redis/?key=K.
func (h *CacheHandler) GetEntryHandler(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		_ = c.Error(apperrors.ValidationFailed("key must be provided", ""))
		return
	}

	value, found := h.cache.Get(c.Request.Context(), key)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value})
}

// SetEntryHandler handles PUT /v1/redis/ with a {key, value} body.
func (h *CacheHandler) SetEntryHandler(c *gin.Context) {
	var req cacheSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("json {\"key\", \"value\"} must be provided", err.Error()))
		return
	}

	if !h.cache.Set(c.Request.Context(), req.Key, *req.Value) {
		_ = c.Error(apperrors.InternalServerError("can't write to cache"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"set": "OK"})
}
