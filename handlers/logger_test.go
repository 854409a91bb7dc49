package handlers

import (
	"net/http/httptest"
	"testing"

	"hungrylah/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetLoggerPrefersContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	scoped := zap.NewNop()
	c.Set("logger", scoped)

	assert.Same(t, scoped, getLogger(c))
}

func TestGetLoggerFallsBackToGlobal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	got := getLogger(c)
	assert.Same(t, utils.GetLogger(), got)
	// Repeated calls reuse the global instance instead of allocating.
	assert.Same(t, got, getLogger(c))
}
