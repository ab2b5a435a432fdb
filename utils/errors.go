package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body every endpoint returns
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError sends an error response and aborts the handler chain
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// RespondWithBadRequest sends a 400 Bad Request error
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message)
}

// RespondWithNotFound sends a 404 Not Found error
func RespondWithNotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, message)
}

// RespondWithInternalError sends a 500 Internal Server Error
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message)
}

// RespondWithTooLarge sends a 413 naming the body size limit
func RespondWithTooLarge(c *gin.Context, limit int64) {
	RespondWithError(c, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Request body exceeds maximum size of %d bytes", limit))
}
