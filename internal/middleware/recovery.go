package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker-api/internal/response"
)

// Recovery returns a middleware that turns panics into a 500 envelope
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.String("error_type", fmt.Sprintf("%T", err)),
					zap.Any("error", err),
					zap.String("route", c.FullPath()),
					zap.String("method", c.Request.Method),
					zap.String("query", c.Request.URL.RawQuery),
				}
				// set only once the auth middleware has run
				if userID, ok := c.Get(ContextUserID); ok {
					fields = append(fields, zap.Any("user_id", userID))
				}
				logger.Error("Panic recovered", append(fields, zap.Stack("stacktrace"))...)

				response.AbortWithError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			}
		}()

		c.Next()
	}
}
