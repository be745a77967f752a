package apistub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// record is the wire shape of a task. The completion flag is snake_case,
// derived from the stored completion timestamp.
type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsComplete  bool   `json:"is_complete"`
}

// taskEnvelope wraps single-task responses.
type taskEnvelope struct {
	Task record `json:"task"`
}

// createRequest is the POST /tasks body.
type createRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompletedAt *time.Time `json:"completed_at"`
}

type errResponse struct {
	Error string `json:"error"`
}

// Server serves the task list API locally.
type Server struct {
	repo   Repository
	logger *slog.Logger
}

// NewServer creates a Server over the given repository.
func NewServer(repo Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		repo:   repo,
		logger: logger,
	}
}

// Router builds the full middleware stack and routes.
// A browser front end is the expected caller, so CORS is wide open.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(requestLogger(s.logger))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", MetricsHandler())

	r.Get("/tasks", s.listTasks)
	r.Post("/tasks", s.createTask)
	r.Patch("/tasks/{id}/mark_complete", s.markComplete)
	r.Patch("/tasks/{id}/mark_incomplete", s.markIncomplete)
	r.Delete("/tasks/{id}", s.deleteTask)

	return r
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	recs, err := s.repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
		return
	}
	out := make([]record, len(recs))
	for i, rec := range recs {
		out[i] = toRecord(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
		return
	}

	rec, err := s.repo.Create(req.Title, req.Description, req.CompletedAt)
	if err != nil {
		if err == ErrTitleRequired {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "title_required"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
		return
	}
	writeJSON(w, http.StatusCreated, taskEnvelope{Task: toRecord(rec)})
}

func (s *Server) markComplete(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	s.setCompleted(w, r, &now)
}

func (s *Server) markIncomplete(w http.ResponseWriter, r *http.Request) {
	s.setCompleted(w, r, nil)
}

func (s *Server) setCompleted(w http.ResponseWriter, r *http.Request, completedAt *time.Time) {
	id := chi.URLParam(r, "id")
	rec, found, err := s.repo.SetCompleted(id, completedAt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errResponse{Error: "task_not_found"})
		return
	}
	writeJSON(w, http.StatusOK, taskEnvelope{Task: toRecord(rec)})
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found, err := s.repo.Delete(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errResponse{Error: "task_not_found"})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func toRecord(rec Record) record {
	return record{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		IsComplete:  rec.Complete(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
