package apistub_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tasklist/internal/apistub"
)

func newSQLiteRepo(t *testing.T) *apistub.SQLiteRepo {
	t.Helper()
	repo, err := apistub.NewSQLiteRepo(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	if err := repo.ApplyMigrations(context.Background()); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repo
}

func TestSQLiteRepo_CreateAndList(t *testing.T) {
	repo := newSQLiteRepo(t)

	a, err := repo.Create("A", "", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b, err := repo.Create("B", "d", &ts)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	recs, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != a.ID || recs[1].ID != b.ID {
		t.Errorf("expected insertion order, got %+v", recs)
	}
	if recs[0].Complete() {
		t.Error("expected A incomplete")
	}
	if !recs[1].Complete() || !recs[1].CompletedAt.Equal(ts) {
		t.Errorf("expected B complete at %v, got %+v", ts, recs[1])
	}
}

func TestSQLiteRepo_TitleRequired(t *testing.T) {
	repo := newSQLiteRepo(t)

	if _, err := repo.Create("", "", nil); err != apistub.ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestSQLiteRepo_SetCompleted(t *testing.T) {
	repo := newSQLiteRepo(t)

	a, err := repo.Create("A", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	rec, found, err := repo.SetCompleted(a.ID, &now)
	if err != nil || !found {
		t.Fatalf("expected update, got found=%v err=%v", found, err)
	}
	if !rec.Complete() {
		t.Error("expected record complete")
	}

	rec, found, err = repo.SetCompleted(a.ID, nil)
	if err != nil || !found {
		t.Fatalf("expected update, got found=%v err=%v", found, err)
	}
	if rec.Complete() {
		t.Error("expected record incomplete")
	}

	if _, found, _ := repo.SetCompleted("missing", &now); found {
		t.Error("expected missing id to report not found")
	}
}

func TestSQLiteRepo_Delete(t *testing.T) {
	repo := newSQLiteRepo(t)

	a, err := repo.Create("A", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	found, err := repo.Delete(a.ID)
	if err != nil || !found {
		t.Fatalf("expected delete, got found=%v err=%v", found, err)
	}
	found, err = repo.Delete(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected second delete to report not found")
	}

	recs, err := repo.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty collection, got %+v", recs)
	}
}
