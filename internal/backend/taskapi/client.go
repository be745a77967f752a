// Package taskapi implements the service.Service interface over the
// remote task list HTTP API.
package taskapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second
)

// Client implements service.Service against the task list API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client from config. The base URL must be configured;
// if a token is present, requests carry it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.HasBaseURL() {
		return nil, fmt.Errorf("no API base URL configured (set %s or %s)", config.BaseURLEnv, cfg.ConfigPath())
	}

	httpc := http.DefaultClient
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpc = oauth2.NewClient(ctx, src)
	}

	return NewWithHTTPClient(cfg.BaseURL, httpc), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// ListTasks returns the full task collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, wrapError(err)
	}

	var records []wireTask
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, wrapError(fmt.Errorf("malformed response: %w", err))
	}

	tasks := make([]service.Task, len(records))
	for i, rec := range records {
		tasks[i] = fromWire(rec)
	}
	return tasks, nil
}

// CreateTask creates a new task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, params service.CreateTaskParams) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	body, err := c.do(ctx, http.MethodPost, "/tasks", createBody{
		Title:       params.Title,
		Description: params.Description,
		CompletedAt: params.CompletedAt,
	})
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return decodeEnvelope(body)
}

// MarkComplete marks a task complete and returns the updated record.
func (c *Client) MarkComplete(ctx context.Context, taskID string) (service.Task, error) {
	return c.mark(ctx, taskID, "mark_complete")
}

// MarkIncomplete marks a task incomplete and returns the updated record.
func (c *Client) MarkIncomplete(ctx context.Context, taskID string) (service.Task, error) {
	return c.mark(ctx, taskID, "mark_incomplete")
}

func (c *Client) mark(ctx context.Context, taskID, action string) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	path := fmt.Sprintf("/tasks/%s/%s", url.PathEscape(taskID), action)
	body, err := c.do(ctx, http.MethodPatch, path, nil)
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return decodeEnvelope(body)
}

// DeleteTask deletes a task. The response body is ignored. A 404 means
// the server already has no such task, which counts as success.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	path := "/tasks/" + url.PathEscape(taskID)
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil
		}
		return wrapError(err)
	}
	return nil
}

// do issues one request and returns the response body on a 2xx status.
func (c *Client) do(ctx context.Context, method, path string, reqBody any) ([]byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, err
		}
		bodyReader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode}
	}
	return data, nil
}

func decodeEnvelope(body []byte) (service.Task, error) {
	var env taskEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return service.Task{}, wrapError(fmt.Errorf("malformed response: %w", err))
	}
	return fromWire(env.Task), nil
}

// statusError is a non-2xx response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var se *statusError
	if errors.As(err, &se) {
		switch se.code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token rejected by the API (check %s)", config.TokenEnv)
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}

	return err
}
