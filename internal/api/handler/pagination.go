package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
