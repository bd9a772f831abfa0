package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError carries the HTTP status an operation should surface with.
// Handlers pass any error to AbortWithError; unclassified errors become 500s.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Validation marks malformed, missing or out-of-range input.
func Validation(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

// Conflict marks an operation that is not permitted in the current runtime mode.
func Conflict(msg string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: msg}
}

// NotFound marks a lookup of a missing record.
func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

// Upstream marks a failed call to the ESP32.
func Upstream(msg string) *APIError {
	return &APIError{Status: http.StatusBadGateway, Message: msg}
}

// AbortWithError writes the JSON error response for err.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
