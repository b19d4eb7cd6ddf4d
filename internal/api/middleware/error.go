// Package middleware holds gin middleware shared by the API routes.
package middleware

import (
	"net/http"

	"tokenomics-lab/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts panics into structured error responses so a
// misbehaving handler never leaks a stack trace to the client.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
