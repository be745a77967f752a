// Package store maintains the client's in-memory task collection and
// keeps it synchronized with the remote task API.
//
// Every operation performs exactly one remote call and, on success,
// applies one local state transition. On failure the collection is left
// exactly as it was before the call: the local view only ever changes to
// reflect something the server has confirmed.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tasklist/internal/service"
)

// ProvenanceDescription is the description synthesized for tasks created
// through Add. The caller supplies only a title and a completion flag.
const ProvenanceDescription = "created in Task List Front End"

// NewTask is a draft task supplied to Add.
type NewTask struct {
	Title      string
	IsComplete bool
}

// OpError is the single fault kind raised by store operations. It carries
// an operation-specific message identifying which operation and, where
// applicable, which task id failed. The underlying transport fault is
// logged at the store boundary and available via Unwrap.
type OpError struct {
	Op     string // "refresh", "toggle", "remove" or "add"
	TaskID string // empty for refresh and add
	Err    error
}

func (e *OpError) Error() string {
	switch e.Op {
	case "refresh":
		return "failed to refresh tasks"
	case "toggle":
		return fmt.Sprintf("failed to update task %s", e.TaskID)
	case "remove":
		return fmt.Sprintf("failed to delete task %s", e.TaskID)
	case "add":
		return "failed to create task"
	}
	return fmt.Sprintf("task operation %s failed", e.Op)
}

func (e *OpError) Unwrap() error { return e.Err }

// Store owns the ordered task collection for the current session.
//
// The collection is a single owned value mutated only by whole-slice
// replacement, so readers never observe a half-applied update. Multiple
// operations may be in flight concurrently; responses apply in the order
// they resolve, not the order they were issued.
type Store struct {
	svc    service.Service
	logger *slog.Logger

	// now is stubbed in tests.
	now func() time.Time

	mu    sync.RWMutex
	tasks []service.Task
	subs  []func([]service.Task)
}

// New creates a Store backed by the given service. A nil logger discards
// nothing: slog.Default() is used.
func New(svc service.Service, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		svc:    svc,
		logger: logger,
		now:    time.Now,
	}
}

// SetNow overrides the completion-timestamp clock (for testing).
func (s *Store) SetNow(fn func() time.Time) {
	s.now = fn
}

// Tasks returns a snapshot copy of the current collection in display order.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns the task with the given id and whether it is present.
func (s *Store) Find(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Subscribe registers fn to be called with a snapshot of the collection
// after every replacement. Callbacks run synchronously on the goroutine
// that applied the mutation, outside the store lock.
func (s *Store) Subscribe(fn func([]service.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Refresh replaces the entire local collection with the server's current
// task collection. Full overwrite, not a merge: on success the local
// state exactly mirrors server state at the time of the call. On failure
// the collection is unchanged.
func (s *Store) Refresh(ctx context.Context) error {
	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		return s.fail(&OpError{Op: "refresh", Err: err})
	}
	s.replace(tasks)
	return nil
}

// ToggleComplete flips the completion state of the task with the given
// id. If the id is not present locally the call is a no-op and no
// request is issued. The toggle target is the opposite of the value
// observed at call time.
func (s *Store) ToggleComplete(ctx context.Context, id string) error {
	cur, ok := s.Find(id)
	if !ok {
		return nil
	}

	var updated service.Task
	var err error
	if cur.IsComplete {
		updated, err = s.svc.MarkIncomplete(ctx, id)
	} else {
		updated, err = s.svc.MarkComplete(ctx, id)
	}
	if err != nil {
		return s.fail(&OpError{Op: "toggle", TaskID: id, Err: err})
	}

	s.mu.Lock()
	next := make([]service.Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.ID == id {
			next[i] = updated
		} else {
			next[i] = t
		}
	}
	s.tasks = next
	s.mu.Unlock()
	s.notify()
	return nil
}

// Remove deletes the task with the given id remotely and, on success,
// drops every local task with that id. Removing an id that is absent
// locally yields an unchanged collection, not a fault.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return s.fail(&OpError{Op: "remove", TaskID: id, Err: err})
	}

	s.mu.Lock()
	next := make([]service.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.tasks = next
	s.mu.Unlock()
	s.notify()
	return nil
}

// Add creates a task remotely and, on success, appends the server's
// record to the end of the collection. The description is synthesized
// with a fixed provenance marker, and the completion timestamp is the
// current time if the draft is complete. Completion state is set at
// creation time here, not via a separate toggle.
func (s *Store) Add(ctx context.Context, draft NewTask) (service.Task, error) {
	params := service.CreateTaskParams{
		Title:       draft.Title,
		Description: ProvenanceDescription,
	}
	if draft.IsComplete {
		now := s.now().UTC()
		params.CompletedAt = &now
	}

	created, err := s.svc.CreateTask(ctx, params)
	if err != nil {
		return service.Task{}, s.fail(&OpError{Op: "add", Err: err})
	}

	s.mu.Lock()
	next := make([]service.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, created)
	s.tasks = next
	s.mu.Unlock()
	s.notify()
	return created, nil
}

// replace installs a new collection wholesale.
func (s *Store) replace(tasks []service.Task) {
	next := make([]service.Task, len(tasks))
	copy(next, tasks)
	s.mu.Lock()
	s.tasks = next
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func([]service.Task), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	snapshot := s.Tasks()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// fail logs the raw fault and returns the simplified one.
func (s *Store) fail(opErr *OpError) error {
	s.logger.Error("task operation failed",
		slog.String("op", opErr.Op),
		slog.String("task_id", opErr.TaskID),
		slog.String("error", opErr.Err.Error()),
	)
	return opErr
}
