// Package apistub is a local stand-in for the remote task list API,
// used for development and end-to-end tests. It implements the same wire
// contract the real service exposes: a flat task collection, dedicated
// mark_complete/mark_incomplete endpoints, and task records whose
// completion flag is derived from the completion timestamp.
package apistub

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTitleRequired is returned when a task is created without a title.
var ErrTitleRequired = errors.New("title required")

// Record is a stored task. CompletedAt is nil for incomplete tasks; the
// wire-level is_complete flag is derived from its presence.
type Record struct {
	ID          string
	Title       string
	Description string
	CompletedAt *time.Time
}

// Complete reports the derived completion flag.
func (r Record) Complete() bool { return r.CompletedAt != nil }

// Repository stores task records.
type Repository interface {
	List() ([]Record, error)
	Create(title, description string, completedAt *time.Time) (Record, error)
	// SetCompleted updates the completion timestamp. The bool result is
	// false when no record has the given id.
	SetCompleted(id string, completedAt *time.Time) (Record, bool, error)
	// Delete removes a record. The bool result is false when no record
	// has the given id.
	Delete(id string) (bool, error)
}

// MemoryRepo is an in-memory Repository.
type MemoryRepo struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// List implements Repository.
func (r *MemoryRepo) List() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Create implements Repository.
func (r *MemoryRepo) Create(title, description string, completedAt *time.Time) (Record, error) {
	if title == "" {
		return Record{}, ErrTitleRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := Record{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CompletedAt: completedAt,
	}
	r.records = append(r.records, rec)
	return rec, nil
}

// SetCompleted implements Repository.
func (r *MemoryRepo) SetCompleted(id string, completedAt *time.Time) (Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records[i].CompletedAt = completedAt
			return r.records[i], true, nil
		}
	}
	return Record{}, false, nil
}

// Delete implements Repository.
func (r *MemoryRepo) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
