package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motormarket/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodyBytes caps request bodies at 1 MiB
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit rejects request bodies larger than maxBytes. A declared
// Content-Length over the limit is refused up front; chunked bodies are
// cut off by MaxBytesReader while the handler reads.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("PAYLOAD_TOO_LARGE", "Request body too large", RequestIDFrom(c)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
