package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/persondir/internal/directory"
	"github.com/rcliao/persondir/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Status != model.ReadyStatus {
		t.Errorf("expected Ready status, got %+v", snap.Status)
	}
	if snap.Persons == nil || len(snap.Persons) != 0 {
		t.Errorf("expected empty non-nil persons, got %#v", snap.Persons)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ann := model.Person{ID: 1, Name: "Ann", Age: 30}
	want := directory.Snapshot{
		Persons: []model.Person{ann},
		Status:  model.Status{Message: "Failed to update: 500", IsError: true},
		Query:   "Ann",
		Create: directory.FormSnapshot{
			Open:   true,
			Draft:  model.Draft{Name: "E", Age: "x"},
			Errors: map[string]string{"name": "too short"},
		},
		Edit: directory.EditSnapshot{
			FormSnapshot: directory.FormSnapshot{Open: true, Draft: model.DraftOf(ann)},
			Selected:     &ann,
		},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Status != want.Status || got.Query != want.Query {
		t.Errorf("status/query mismatch: got %+v", got)
	}
	if len(got.Persons) != 1 || got.Persons[0] != ann {
		t.Errorf("persons mismatch: %+v", got.Persons)
	}
	if !got.Create.Open || got.Create.Draft != want.Create.Draft || got.Create.Errors["name"] != "too short" {
		t.Errorf("create form mismatch: %+v", got.Create)
	}
	if got.Edit.Selected == nil || *got.Edit.Selected != ann || got.Edit.Draft.ID != "1" {
		t.Errorf("edit form mismatch: %+v", got.Edit)
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := directory.NewSnapshot()
	first.Query = "one"
	second := directory.NewSnapshot()
	second.Query = "two"

	s.Save(ctx, first)
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := s.Load(ctx)
	if got.Query != "two" {
		t.Errorf("expected latest snapshot, got query %q", got.Query)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Record(ctx, "list", model.Status{Message: "Loaded"})
	s.Record(ctx, "add", model.Status{Message: "Failed to create: 500", IsError: true})
	last, err := s.Record(ctx, "add", model.Status{Message: "Added person"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if last.ID == "" {
		t.Error("expected non-empty ID")
	}

	hist, err := s.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(hist))
	}
	if hist[0].Message != "Added person" || hist[2].Message != "Loaded" {
		t.Errorf("unexpected order: %+v", hist)
	}
	if !hist[1].IsError {
		t.Error("expected error flag on second entry")
	}

	limited, _ := s.History(ctx, 1)
	if len(limited) != 1 || limited[0].ID != last.ID {
		t.Errorf("expected only the newest entry, got %+v", limited)
	}
}

func TestHistoryRejectsCorruptTime(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, at, action, message, is_error) VALUES ('x', 'yesterday', 'list', 'Loaded', 0)`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := s.History(ctx, 10); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestResetAndStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Save(ctx, directory.NewSnapshot())
	s.Record(ctx, "rm", model.Status{Message: "Failed to delete: 404", IsError: true})
	s.Record(ctx, "rm", model.Status{Message: "Deletion cancelled"})

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !st.HasSnapshot || st.Activity != 2 || st.Errors != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, _ = s.Stats(ctx)
	if st.HasSnapshot || st.Activity != 0 {
		t.Errorf("expected empty session after reset: %+v", st)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "session.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
