package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdantia/storefront/internal/interfaces/http/dto"
)

// BodyLimit caps request body size. Declared oversizes are rejected up
// front; chunked bodies are capped mid-read by http.MaxBytesReader, which
// surfaces to the handler as a bind error.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(
				http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"),
			)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
