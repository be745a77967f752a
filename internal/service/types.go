// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Task represents a single task item in the client's internal shape.
// The server's wire naming never leaks past the backend package.
type Task struct {
	ID          string
	Title       string
	Description string
	IsComplete  bool
}

// CreateTaskParams is the body of a task creation request.
// CompletedAt is nil for tasks created incomplete.
type CreateTaskParams struct {
	Title       string
	Description string
	CompletedAt *time.Time
}
