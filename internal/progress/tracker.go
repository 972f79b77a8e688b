package progress

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Tracker interface defines methods for tracking step progress
type Tracker interface {
	Start(operation string) *Operation
	Complete()
	Error(err error)
}

// Operation statuses
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Operation represents a tracked step
type Operation struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Err       error
}

// Duration returns how long the step ran, or has been running.
func (o *Operation) Duration() time.Duration {
	if o.EndTime.IsZero() {
		return time.Since(o.StartTime)
	}
	return o.EndTime.Sub(o.StartTime)
}

func (o *Operation) finish(status string, err error) {
	o.EndTime = time.Now()
	o.Status = status
	o.Err = err
}

// DefaultTracker records step state without printing anything
type DefaultTracker struct {
	CurrentOperation *Operation
}

// Start begins tracking a new step
func (t *DefaultTracker) Start(operation string) *Operation {
	t.CurrentOperation = &Operation{
		Name:      operation,
		StartTime: time.Now(),
		Status:    StatusInProgress,
	}
	return t.CurrentOperation
}

// Complete marks the step as completed unless it already failed
func (t *DefaultTracker) Complete() {
	if t.CurrentOperation != nil && t.CurrentOperation.Status == StatusInProgress {
		t.CurrentOperation.finish(StatusCompleted, nil)
	}
}

// Error marks the step as failed with an error
func (t *DefaultTracker) Error(err error) {
	if t.CurrentOperation != nil {
		t.CurrentOperation.finish(StatusFailed, err)
	}
}

// ConsoleTracker prints each step transition and keeps the step state in
// its embedded DefaultTracker.
type ConsoleTracker struct {
	DefaultTracker
	out io.Writer
}

// NewConsoleTracker creates a tracker printing to w, or stdout when w is nil
func NewConsoleTracker(w io.Writer) *ConsoleTracker {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleTracker{out: w}
}

// Start begins tracking a new step
func (t *ConsoleTracker) Start(operation string) *Operation {
	op := t.DefaultTracker.Start(operation)
	fmt.Fprintf(t.out, "Starting: %s\n", operation)
	return op
}

// Complete marks the current step as completed. It is a no-op after Error.
func (t *ConsoleTracker) Complete() {
	op := t.CurrentOperation
	if op == nil || op.Status != StatusInProgress {
		return
	}
	t.DefaultTracker.Complete()
	fmt.Fprintf(t.out, "Completed: %s (took %v)\n", op.Name, op.Duration().Round(time.Millisecond))
}

// Error marks the current step as failed. A later Complete is a no-op.
func (t *ConsoleTracker) Error(err error) {
	op := t.CurrentOperation
	if op == nil || op.Status != StatusInProgress {
		return
	}
	t.DefaultTracker.Error(err)
	fmt.Fprintf(t.out, "Error: %s - %v\n", op.Name, err)
}
