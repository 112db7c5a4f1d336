package workout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/liftlog/internal/model"
	"github.com/verte-zerg/liftlog/internal/state"
)

var (
	// ErrActiveWorkout is returned when starting a workout while another is
	// active and replacement was not requested.
	ErrActiveWorkout = errors.New("a workout is already active")
	// ErrNoActiveWorkout is returned by operations on the active workout
	// when there is none.
	ErrNoActiveWorkout = errors.New("no active workout")
	// ErrEmptyName is returned when saving a template without a name.
	ErrEmptyName = errors.New("template name must not be empty")
)

// Tracker runs the active workout on top of a state.Store.
type Tracker struct {
	store  *state.Store
	editor *Editor
	now    func() time.Time
	log    *zap.Logger
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithEditor sets the editor used for session edits.
func WithEditor(e *Editor) TrackerOption {
	return func(t *Tracker) {
		if e != nil {
			t.editor = e
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) TrackerOption {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// NewTracker builds a Tracker over st.
func NewTracker(st *state.Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:  st,
		editor: NewEditor(nil, DefaultConfig()),
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Store returns the underlying state store.
func (t *Tracker) Store() *state.Store {
	return t.store
}

// Editor returns the session editor.
func (t *Tracker) Editor() *Editor {
	return t.editor
}

// Start creates a session and makes it the active workout. With a known
// templateID the session is seeded from the template; an unknown id yields
// an empty session that still records the id. If a workout is already
// active, Start fails with ErrActiveWorkout unless replace is set; the
// replaced session stays in history unfinished.
func (t *Tracker) Start(ctx context.Context, templateID *string, replace bool) (model.WorkoutSession, error) {
	if prev, ok := t.store.ActiveSession(); ok && !replace {
		return model.WorkoutSession{}, fmt.Errorf("%w: %s", ErrActiveWorkout, prev.Name)
	}

	now := t.now()
	session := t.editor.Freestyle(now, templateID)
	if templateID != nil {
		if tmpl, ok := t.store.Template(*templateID); ok {
			session = t.editor.FromTemplate(now, tmpl)
		} else {
			t.log.Debug("template not found, starting freestyle", zap.String("template_id", *templateID))
		}
	}

	if err := t.store.StartSession(ctx, session); err != nil {
		return model.WorkoutSession{}, err
	}
	t.log.Info("workout started", zap.String("session_id", session.ID), zap.String("name", session.Name))
	return session, nil
}

// Active returns the active session.
func (t *Tracker) Active() (model.WorkoutSession, error) {
	s, ok := t.store.ActiveSession()
	if !ok {
		return model.WorkoutSession{}, ErrNoActiveWorkout
	}
	return s, nil
}

// Edit applies fn to the active session and stores the result.
func (t *Tracker) Edit(ctx context.Context, fn func(*Editor, model.WorkoutSession) (model.WorkoutSession, error)) (model.WorkoutSession, error) {
	s, err := t.Active()
	if err != nil {
		return model.WorkoutSession{}, err
	}
	next, err := fn(t.editor, s)
	if err != nil {
		return s, err
	}
	if err := t.store.UpdateSession(ctx, next); err != nil {
		return s, err
	}
	return next, nil
}

// Finish stamps the active session's end time and clears the active pointer.
func (t *Tracker) Finish(ctx context.Context) (model.WorkoutSession, error) {
	s, err := t.Active()
	if err != nil {
		return model.WorkoutSession{}, err
	}
	done := t.editor.Finish(s, t.now())
	if err := t.store.CloseSession(ctx, done); err != nil {
		return model.WorkoutSession{}, err
	}
	t.log.Info("workout finished", zap.String("session_id", done.ID))
	return done, nil
}

// Cancel deletes the active session, which also clears the pointer.
func (t *Tracker) Cancel(ctx context.Context) (model.WorkoutSession, error) {
	s, err := t.Active()
	if err != nil {
		return model.WorkoutSession{}, err
	}
	if err := t.store.DeleteSession(ctx, s.ID); err != nil {
		return model.WorkoutSession{}, err
	}
	t.log.Info("workout cancelled", zap.String("session_id", s.ID))
	return s, nil
}

// SaveTemplate creates a template when id is empty, otherwise replaces the
// existing one. The name is trimmed and must not be empty.
func (t *Tracker) SaveTemplate(ctx context.Context, id, name string, exercises []string) (model.WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.WorkoutTemplate{}, ErrEmptyName
	}
	tmpl := model.WorkoutTemplate{
		ID:        id,
		Name:      name,
		Exercises: append([]string{}, exercises...),
	}
	if id == "" {
		tmpl.ID = t.editor.NewID()
		if err := t.store.AddTemplate(ctx, tmpl); err != nil {
			return model.WorkoutTemplate{}, err
		}
		return tmpl, nil
	}
	if err := t.store.UpdateTemplate(ctx, tmpl); err != nil {
		return model.WorkoutTemplate{}, err
	}
	return tmpl, nil
}

// DeleteTemplate removes a template.
func (t *Tracker) DeleteTemplate(ctx context.Context, id string) error {
	return t.store.DeleteTemplate(ctx, id)
}
