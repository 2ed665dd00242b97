package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ParseLimitOffset extracts and validates limit/offset query parameters.
// Out-of-range values fall back to the defaults rather than erroring.
func ParseLimitOffset(c *gin.Context) (limit, offset int) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	offsetStr := c.DefaultQuery("offset", "0")
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

// NewPaginationInfo creates a standard PaginationInfo DTO for list responses.
func NewPaginationInfo(totalItems int64, limit, offset int) dto.PaginationInfo {
	if limit < 1 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	return dto.PaginationInfo{
		Limit:      limit,
		Offset:     offset,
		TotalItems: totalItems,
	}
}
