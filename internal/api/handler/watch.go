package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/repository"
)

// WatchHandler serves Trakt watch history data.
type WatchHandler struct {
	repo *repository.WatchRepository
}

// NewWatchHandler creates a new watch history handler.
func NewWatchHandler(repo *repository.WatchRepository) *WatchHandler {
	return &WatchHandler{repo: repo}
}

// ListHistory handles GET /api/v1/history with an optional type filter
// (movie or episode).
func (h *WatchHandler) ListHistory(c *gin.Context) {
	limit, offset := pagination(c)
	eventType := c.Query("type")
	if eventType != "" && eventType != "movie" && eventType != "episode" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "type must be movie or episode",
		})
		return
	}

	events, err := h.repo.List(c.Request.Context(), eventType, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list history: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": events,
		"count":   len(events),
		"limit":   limit,
		"offset":  offset,
	})
}
