package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-dispatch/internal/api/models"
)

// ErrorHandler recovers panics into the API's error envelope so a failed
// solve or a bad input bug never drops the connection without a body.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: message},
		})
	})
}
