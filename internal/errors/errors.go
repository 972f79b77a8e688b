// Package errors holds the error types shared by the clone and ignore-file
// steps of git--.
package errors

import "fmt"

// Operation names used as OperationError.Op.
const (
	OpClone     = "clone"
	OpGitignore = "gitignore"
	OpConfig    = "config"
	OpLogging   = "logging"
)

// OperationError represents an error that occurred during one of the steps
type OperationError struct {
	Op  string // The operation being performed
	Err error  // The underlying error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// New creates a new OperationError
func New(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// Is matches any OperationError with the same Op.
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Op == t.Op
}
