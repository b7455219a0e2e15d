package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danny/worldly/internal/repository"
)

// BookHandler serves Goodreads book data.
type BookHandler struct {
	repo *repository.BookRepository
}

// NewBookHandler creates a new book handler.
func NewBookHandler(repo *repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

// ListBooks handles GET /api/v1/books.
func (h *BookHandler) ListBooks(c *gin.Context) {
	limit, offset := pagination(c)

	books, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list books: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": books,
		"count":   len(books),
		"limit":   limit,
		"offset":  offset,
	})
}
