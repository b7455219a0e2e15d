package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/domain"
	"github.com/danny/worldly/internal/repository"
)

// FilmHandler serves Letterboxd film data and its TMDB enrichment.
type FilmHandler struct {
	films      *repository.FilmRepository
	enrichment *repository.EnrichmentRepository
}

// NewFilmHandler creates a new film handler.
func NewFilmHandler(films *repository.FilmRepository, enrichment *repository.EnrichmentRepository) *FilmHandler {
	return &FilmHandler{films: films, enrichment: enrichment}
}

// ListFilms handles GET /api/v1/films with an optional shelf filter
// (watched or watchlist).
func (h *FilmHandler) ListFilms(c *gin.Context) {
	limit, offset := pagination(c)
	shelf := domain.FilmShelf(c.Query("shelf"))
	if shelf != "" && shelf != domain.ShelfWatched && shelf != domain.ShelfWatchlist {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shelf must be watched or watchlist",
		})
		return
	}

	films, err := h.films.List(c.Request.Context(), shelf, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list films: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": films,
		"count":   len(films),
		"limit":   limit,
		"offset":  offset,
	})
}

// ListEnrichment handles GET /api/v1/enrichment.
func (h *FilmHandler) ListEnrichment(c *gin.Context) {
	limit, offset := pagination(c)

	rows, err := h.enrichment.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list enrichment: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": rows,
		"count":   len(rows),
		"limit":   limit,
		"offset":  offset,
	})
}

// GetEnrichment handles GET /api/v1/enrichment/lookup?name=&year=.
func (h *FilmHandler) GetEnrichment(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "name is required",
		})
		return
	}

	row, err := h.enrichment.GetByTitle(c.Request.Context(), name, c.Query("year"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Enrichment not found",
		})
		return
	}

	c.JSON(http.StatusOK, row)
}
