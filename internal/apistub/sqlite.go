package apistub

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRepo is a Repository backed by a sqlite database, so a stub
// instance can keep its collection across restarts.
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo opens (or creates) the database at dsn.
func NewSQLiteRepo(dsn string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Reasonable pragmas for an app server
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepo{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteRepo) Close() error { return r.db.Close() }

// ApplyMigrations ensures the schema exists.
func (r *SQLiteRepo) ApplyMigrations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed_at TEXT,
	seq INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_seq ON tasks(seq);
	`)
	return err
}

// List implements Repository. Records come back in insertion order.
func (r *SQLiteRepo) List() ([]Record, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, completed_at
		FROM tasks
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var completed sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &completed); err != nil {
			return nil, err
		}
		if completed.Valid {
			if ts, err := time.Parse(time.RFC3339Nano, completed.String); err == nil {
				rec.CompletedAt = &ts
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create implements Repository.
func (r *SQLiteRepo) Create(title, description string, completedAt *time.Time) (Record, error) {
	if title == "" {
		return Record{}, ErrTitleRequired
	}
	rec := Record{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CompletedAt: completedAt,
	}
	_, err := r.db.Exec(`
		INSERT INTO tasks (id, title, description, completed_at, seq)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks))
	`, rec.ID, rec.Title, rec.Description, formatCompleted(completedAt))
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// SetCompleted implements Repository.
func (r *SQLiteRepo) SetCompleted(id string, completedAt *time.Time) (Record, bool, error) {
	res, err := r.db.Exec(`
		UPDATE tasks SET completed_at = ? WHERE id = ?
	`, formatCompleted(completedAt), id)
	if err != nil {
		return Record{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Record{}, false, err
	}
	if n == 0 {
		return Record{}, false, nil
	}

	var rec Record
	var completed sql.NullString
	err = r.db.QueryRow(`
		SELECT id, title, description, completed_at FROM tasks WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Title, &rec.Description, &completed)
	if err != nil {
		return Record{}, false, err
	}
	if completed.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, completed.String); err == nil {
			rec.CompletedAt = &ts
		}
	}
	return rec, true, nil
}

// Delete implements Repository.
func (r *SQLiteRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func formatCompleted(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
