package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/repository"
)

// SyncHandler serves sync run reports.
type SyncHandler struct {
	repo *repository.SyncRunRepository
}

// NewSyncHandler creates a new sync run handler.
func NewSyncHandler(repo *repository.SyncRunRepository) *SyncHandler {
	return &SyncHandler{repo: repo}
}

// ListSyncs handles GET /api/v1/syncs with an optional source filter.
func (h *SyncHandler) ListSyncs(c *gin.Context) {
	limit, offset := pagination(c)
	source := c.Query("source")

	runs, err := h.repo.List(c.Request.Context(), source, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list sync runs: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": runs,
		"count":   len(runs),
		"limit":   limit,
		"offset":  offset,
	})
}
