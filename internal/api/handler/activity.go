package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/repository"
)

// ActivityHandler serves Strava activity data.
type ActivityHandler struct {
	repo *repository.ActivityRepository
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(repo *repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// ListActivities handles GET /api/v1/activities with an optional sport_type
// filter.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	limit, offset := pagination(c)
	sportType := c.Query("sport_type")

	activities, err := h.repo.List(c.Request.Context(), sportType, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list activities: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": activities,
		"count":   len(activities),
		"limit":   limit,
		"offset":  offset,
	})
}
