package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/repository"
)

// ScrobbleHandler serves Last.fm listen data.
type ScrobbleHandler struct {
	repo *repository.ScrobbleRepository
}

// NewScrobbleHandler creates a new scrobble handler.
func NewScrobbleHandler(repo *repository.ScrobbleRepository) *ScrobbleHandler {
	return &ScrobbleHandler{repo: repo}
}

// ListScrobbles handles GET /api/v1/scrobbles. Supports from/to unix
// timestamp bounds plus limit/offset pagination.
func (h *ScrobbleHandler) ListScrobbles(c *gin.Context) {
	limit, offset := pagination(c)
	from, _ := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	to, _ := strconv.ParseInt(c.DefaultQuery("to", "0"), 10, 64)

	scrobbles, err := h.repo.List(c.Request.Context(), from, to, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list scrobbles: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": scrobbles,
		"count":   len(scrobbles),
		"limit":   limit,
		"offset":  offset,
	})
}
