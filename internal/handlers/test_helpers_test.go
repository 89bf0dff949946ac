package handlers_test

import (
	"github.com/gin-gonic/gin"
	"github.com/taycraft/joinery-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}
