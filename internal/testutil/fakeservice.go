// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tasklist/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	seq   int
	tasks []service.Task

	// Error injection for testing
	ListTasksErr      error
	CreateTaskErr     error
	MarkCompleteErr   error
	MarkIncompleteErr error
	DeleteTaskErr     error

	// Call counts, one per operation
	Calls map[string]int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		Calls: make(map[string]int),
	}
}

// SeedTask adds a task directly to the fake's backing collection.
func (f *FakeService) SeedTask(id, title, description string, complete bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: description,
		IsComplete:  complete,
	})
}

// SetTasks replaces the fake's backing collection.
func (f *FakeService) SetTasks(tasks []service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]service.Task(nil), tasks...)
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[op]++
}

// CallCount returns how many times the named operation was invoked.
func (f *FakeService) CallCount(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.Calls[op]
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, params service.CreateTaskParams) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := service.Task{
		ID:          fmt.Sprintf("%d", f.seq),
		Title:       params.Title,
		Description: params.Description,
		IsComplete:  params.CompletedAt != nil,
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// MarkComplete implements service.Service.
func (f *FakeService) MarkComplete(ctx context.Context, taskID string) (service.Task, error) {
	f.record("MarkComplete")
	if f.MarkCompleteErr != nil {
		return service.Task{}, f.MarkCompleteErr
	}
	return f.setComplete(taskID, true)
}

// MarkIncomplete implements service.Service.
func (f *FakeService) MarkIncomplete(ctx context.Context, taskID string) (service.Task, error) {
	f.record("MarkIncomplete")
	if f.MarkIncompleteErr != nil {
		return service.Task{}, f.MarkIncompleteErr
	}
	return f.setComplete(taskID, false)
}

func (f *FakeService) setComplete(taskID string, complete bool) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks[i].IsComplete = complete
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID string) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	// Deleting an already-gone task is fine.
	return nil
}
