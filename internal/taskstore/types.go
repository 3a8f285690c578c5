package taskstore

import (
	"errors"
	"fmt"
	"sort"
)

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Label returns the capitalized status for display.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Task is a single checklist entry for a day.
type Task struct {
	Description string `json:"task" yaml:"task"`
	Status      Status `json:"status" yaml:"status"`
}

// Done reports whether the task is completed.
func (t Task) Done() bool {
	return t.Status == StatusCompleted
}

// Document is the whole persisted store, keyed by ISO date.
type Document map[string][]Task

// Dates returns the document's date keys in ascending order.
func (d Document) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Progress summarizes the tasks of one day.
type Progress int

const (
	// ProgressFree means the day has no tasks.
	ProgressFree Progress = iota
	// ProgressPending means at least one task is still pending.
	ProgressPending
	// ProgressCompleted means every task is completed.
	ProgressCompleted
)

// ProgressOf summarizes a day's task list.
func ProgressOf(tasks []Task) Progress {
	if len(tasks) == 0 {
		return ProgressFree
	}
	for _, task := range tasks {
		if !task.Done() {
			return ProgressPending
		}
	}
	return ProgressCompleted
}

// ErrEmptyDescription is returned when a task description is blank.
var ErrEmptyDescription = errors.New("task description is empty")

// StorageError reports a failure to read or write the task file.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s task file %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every problem found in one document.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return "invalid task file: " + v[0].Error()
	default:
		return fmt.Sprintf("invalid task file: %s (and %d more)", v[0], len(v)-1)
	}
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	return v
}
