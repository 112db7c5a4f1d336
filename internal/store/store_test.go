package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/liftlog/internal/model"
	"github.com/verte-zerg/liftlog/internal/state"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "liftlog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLoadMissingKey(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Load(context.Background(), "absent"); !errors.Is(err, state.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	if _, err := st.UpdatedAt(context.Background(), "absent"); !errors.Is(err, state.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	st.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	if err := st.Save(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save(ctx, "j", []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("unexpected value: %s", got)
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "j" || keys[1] != "k" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	updated, err := st.UpdatedAt(ctx, "k")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !updated.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected updated_at: %v", updated)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liftlog.db")
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	st, err := state.Open(ctx, db)
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	session := model.WorkoutSession{
		ID:        "s1",
		Date:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Name:      "Freestyle Workout",
		Exercises: []model.SessionExercise{},
	}
	if err := st.AddSession(ctx, session); err != nil {
		t.Fatalf("add session: %v", err)
	}
	if err := st.SetActiveWorkoutID(ctx, model.StringPtr("s1")); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	reloaded, err := state.Open(ctx, db)
	if err != nil {
		t.Fatalf("reopen state: %v", err)
	}
	active, ok := reloaded.ActiveSession()
	if !ok {
		t.Fatalf("expected active session after reopen")
	}
	if active.ID != "s1" || !active.Date.Equal(session.Date) {
		t.Fatalf("unexpected session: %+v", active)
	}
	if len(reloaded.Templates()) != 3 {
		t.Fatalf("expected default templates to persist, got %d", len(reloaded.Templates()))
	}
}
