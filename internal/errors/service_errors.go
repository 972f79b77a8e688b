package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is returned when the ignore template service answers with a
// non-2xx status.
type ServiceError struct {
	Op      string // Operation that failed
	Status  int    // HTTP status code
	Message string // First line of the response body, if any
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
}

// NewServiceError creates a new ServiceError
func NewServiceError(op string, status int, message string) *ServiceError {
	return &ServiceError{
		Op:      op,
		Status:  status,
		Message: message,
	}
}

// IsNotFound reports whether the service answered 404, which is what it
// does for unknown tags.
func IsNotFound(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Status == http.StatusNotFound
	}
	return false
}
