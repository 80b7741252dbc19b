package middleware

import (
	"log/slog"
	"net/http"

	"battery-sizing/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware handles panics
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic while handling request",
			slog.String("path", c.Request.URL.Path),
			slog.Any("recovered", recovered))

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
