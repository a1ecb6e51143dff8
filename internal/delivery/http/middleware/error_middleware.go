package middleware

import (
	"errors"
	"net/http"

	"go-onboarding-wizard/internal/delivery/http/response"
	"go-onboarding-wizard/pkg/apperror"
	"go-onboarding-wizard/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					logger.Log.Error("Request failed", "path", c.FullPath(), "status", appErr.Code, "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				// Never expose internal error details to clients
				logger.Log.Error("Internal Server Error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
