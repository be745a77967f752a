package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tasklist/internal/service"
	"tasklist/internal/store"
)

// ErrTaskRefRequired is returned when no task reference was given.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a 1-based task number from positional args.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments")
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	return num, nil
}

// resolveTaskByNumber refreshes the store and returns the task at the
// given 1-based position in display order. Numbers are a CLI convenience;
// the store itself operates on server-assigned ids.
func resolveTaskByNumber(ctx context.Context, st *store.Store, num int) (service.Task, error) {
	if err := st.Refresh(ctx); err != nil {
		return service.Task{}, err
	}
	tasks := st.Tasks()
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
