// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for remote task API operations.
// All HTTP calls go through this interface.
// The store and commands never import the HTTP backend directly.
type Service interface {
	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new task and returns the server's record,
	// including the server-assigned ID.
	CreateTask(ctx context.Context, params CreateTaskParams) (Task, error)

	// MarkComplete marks a task complete and returns the updated record.
	MarkComplete(ctx context.Context, taskID string) (Task, error)

	// MarkIncomplete marks a task incomplete and returns the updated record.
	MarkIncomplete(ctx context.Context, taskID string) (Task, error)

	// DeleteTask deletes a task.
	// Deleting a task the server no longer has is not an error.
	DeleteTask(ctx context.Context, taskID string) error
}
