package middleware

import (
	"net/http"

	"socially/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimit rejects chat bodies above maxSize bytes. Declared lengths
// are refused up front; undeclared ones are cut off while binding.
func RequestSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxSize {
			utils.RespondWithTooLarge(c, maxSize)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
