package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseLimitOffsetDefaults(t *testing.T) {
	limit, offset := ParseLimitOffset(testContext(""))
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)
}

func TestParseLimitOffsetValid(t *testing.T) {
	limit, offset := ParseLimitOffset(testContext("limit=10&offset=30"))
	assert.Equal(t, 10, limit)
	assert.Equal(t, 30, offset)
}

func TestParseLimitOffsetOutOfRange(t *testing.T) {
	limit, offset := ParseLimitOffset(testContext("limit=0&offset=-5"))
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ParseLimitOffset(testContext("limit=1000"))
	assert.Equal(t, DefaultLimit, limit)
}

func TestParseLimitOffsetGarbage(t *testing.T) {
	limit, offset := ParseLimitOffset(testContext("limit=abc&offset=xyz"))
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 10, 20)
	assert.Equal(t, 10, info.Limit)
	assert.Equal(t, 20, info.Offset)
	assert.Equal(t, int64(42), info.TotalItems)

	// Invalid values normalize
	info = NewPaginationInfo(5, 0, -1)
	assert.Equal(t, DefaultLimit, info.Limit)
	assert.Equal(t, 0, info.Offset)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, ParseDuration("30m", time.Hour))
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
}
