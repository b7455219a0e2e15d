package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/repository"
)

// StatsHandler serves aggregate counts across every synced table.
type StatsHandler struct {
	scrobbles  *repository.ScrobbleRepository
	activities *repository.ActivityRepository
	books      *repository.BookRepository
	films      *repository.FilmRepository
	enrichment *repository.EnrichmentRepository
	history    *repository.WatchRepository
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(
	scrobbles *repository.ScrobbleRepository,
	activities *repository.ActivityRepository,
	books *repository.BookRepository,
	films *repository.FilmRepository,
	enrichment *repository.EnrichmentRepository,
	history *repository.WatchRepository,
) *StatsHandler {
	return &StatsHandler{
		scrobbles:  scrobbles,
		activities: activities,
		books:      books,
		films:      films,
		enrichment: enrichment,
		history:    history,
	}
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	counts := gin.H{}

	type counter struct {
		name  string
		count func() (int64, error)
	}
	counters := []counter{
		{"scrobbles", func() (int64, error) { return h.scrobbles.Count(ctx) }},
		{"activities", func() (int64, error) { return h.activities.Count(ctx) }},
		{"books", func() (int64, error) { return h.books.Count(ctx) }},
		{"films_watched", func() (int64, error) { return h.films.Count(ctx, domain.ShelfWatched) }},
		{"films_watchlist", func() (int64, error) { return h.films.Count(ctx, domain.ShelfWatchlist) }},
		{"enriched_films", func() (int64, error) { return h.enrichment.Count(ctx) }},
		{"watch_events", func() (int64, error) { return h.history.Count(ctx) }},
	}
	for _, ct := range counters {
		n, err := ct.count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to count " + ct.name + ": " + err.Error(),
			})
			return
		}
		counts[ct.name] = n
	}

	c.JSON(http.StatusOK, counts)
}
