package middleware

import (
	"context"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/audit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id taken from X-Request-ID or freshly
// generated. The id is echoed back and attached to the request context for
// audit events.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set("RequestID", id)
		c.Header(requestIDHeader, id)

		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, id)
		c.Request = c.Request.WithContext(audit.WithRequestID(ctx, id))

		c.Next()
	}
}
