package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// normalizePage clamps a requested page and size into the accepted range.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into an SQL offset and limit
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, limit = normalizePage(page, size)
	return uint64(page-1) * uint64(limit), limit
}

// NewPaginationInfo builds the pagination block of a list response.
// An empty result still reports one page.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := 1
	if totalItems > 0 {
		totalPages = int((totalItems + int64(size) - 1) / int64(size))
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads page and pageSize from the query string.
// Unparseable values fall back to the defaults.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("pageSize"))
	return normalizePage(page, size)
}
