package taskapi

import (
	"encoding/json"
	"time"

	"tasklist/internal/service"
)

// wireID accepts both JSON numbers and strings; the client treats task
// ids as opaque either way.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

// wireTask is the server's record shape. The completion flag is snake_case
// on the wire; fromWire is the single place that naming is translated, so
// internal code never observes it. The reverse direction is not needed:
// completion changes only through the dedicated mark endpoints.
type wireTask struct {
	ID          wireID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsComplete  bool   `json:"is_complete"`
}

// taskEnvelope is the `{"task": ...}` wrapper on single-task responses.
type taskEnvelope struct {
	Task wireTask `json:"task"`
}

// createBody is the POST /tasks request body.
type createBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompletedAt *time.Time `json:"completed_at"`
}

// fromWire translates a wire record to the internal shape.
func fromWire(w wireTask) service.Task {
	return service.Task{
		ID:          string(w.ID),
		Title:       w.Title,
		Description: w.Description,
		IsComplete:  w.IsComplete,
	}
}
