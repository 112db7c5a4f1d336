// Package state owns the canonical application state and mirrors every
// change to persistent storage.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/verte-zerg/liftlog/internal/model"
)

// StorageKey is the fixed key the state snapshot is stored under.
const StorageKey = "gym-tracker-state"

var (
	// ErrNotFound is returned when an update or delete names an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for entities that cannot be added.
	ErrInvalid = errors.New("invalid entity")
	// ErrNoSnapshot is returned by a Persister when nothing is stored under a key.
	ErrNoSnapshot = errors.New("no snapshot")
)

// Persister stores serialized snapshots under a key.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Store holds the application state. Every mutation is persisted before it
// becomes visible and before subscribers are notified.
type Store struct {
	persister Persister
	key       string
	log       *zap.Logger

	mu    sync.RWMutex
	state model.AppState

	subMu   sync.Mutex
	subs    map[int]func(model.AppState)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recoverable failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Open rehydrates the store from the last persisted snapshot. A missing or
// malformed snapshot yields DefaultState; only storage read errors are returned.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		key:       StorageKey,
		log:       zap.NewNop(),
		subs:      map[int]func(model.AppState){},
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := p.Load(ctx, s.key)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.log.Debug("no saved state, using defaults", zap.String("key", s.key))
		s.state = DefaultState()
	case err != nil:
		return nil, fmt.Errorf("loading state: %w", err)
	default:
		st, derr := Decode(data)
		if derr != nil {
			s.log.Warn("failed to parse state, using defaults", zap.String("key", s.key), zap.Error(derr))
			st = DefaultState()
		}
		s.state = st
	}
	return s, nil
}

// DefaultState is the state used on first start or after a corrupt snapshot.
func DefaultState() model.AppState {
	return model.AppState{
		Sessions: []model.WorkoutSession{},
		Templates: []model.WorkoutTemplate{
			{ID: "t1", Name: "Pull Day", Exercises: []string{"e6", "e7", "e8", "e21"}},
			{ID: "t2", Name: "Push Day", Exercises: []string{"e1", "e2", "e17", "e22"}},
			{ID: "t3", Name: "Leg Day", Exercises: []string{"e11", "e12", "e14", "e15"}},
		},
	}
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() model.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Sessions returns a copy of all sessions in insertion order.
func (s *Store) Sessions() []model.WorkoutSession {
	return s.Snapshot().Sessions
}

// Templates returns a copy of all templates in insertion order.
func (s *Store) Templates() []model.WorkoutTemplate {
	return s.Snapshot().Templates
}

// ActiveWorkoutID returns the active workout pointer, or nil.
func (s *Store) ActiveWorkoutID() *string {
	return s.Snapshot().ActiveWorkoutID
}

// Session looks up a session by id.
func (s *Store) Session(id string) (model.WorkoutSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := sessionIndex(s.state.Sessions, id); i >= 0 {
		return s.state.Sessions[i].Clone(), true
	}
	return model.WorkoutSession{}, false
}

// Template looks up a template by id.
func (s *Store) Template(id string) (model.WorkoutTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := templateIndex(s.state.Templates, id); i >= 0 {
		return s.state.Templates[i].Clone(), true
	}
	return model.WorkoutTemplate{}, false
}

// ActiveSession resolves the active workout pointer. A dangling pointer
// resolves to false.
func (s *Store) ActiveSession() (model.WorkoutSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveWorkoutID == nil {
		return model.WorkoutSession{}, false
	}
	if i := sessionIndex(s.state.Sessions, *s.state.ActiveWorkoutID); i >= 0 {
		return s.state.Sessions[i].Clone(), true
	}
	return model.WorkoutSession{}, false
}

// AddSession appends a session. The id must be non-empty and unused.
func (s *Store) AddSession(ctx context.Context, session model.WorkoutSession) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		return appendSession(st, session)
	})
}

// StartSession appends a session and makes it the active workout in one
// write.
func (s *Store) StartSession(ctx context.Context, session model.WorkoutSession) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		if err := appendSession(st, session); err != nil {
			return err
		}
		st.ActiveWorkoutID = model.StringPtr(session.ID)
		return nil
	})
}

// UpdateSession replaces the session with the same id.
func (s *Store) UpdateSession(ctx context.Context, session model.WorkoutSession) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		return replaceSession(st, session)
	})
}

// CloseSession replaces the session with the same id and clears the active
// pointer if it referenced that session, in one write.
func (s *Store) CloseSession(ctx context.Context, session model.WorkoutSession) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		if err := replaceSession(st, session); err != nil {
			return err
		}
		if st.ActiveWorkoutID != nil && *st.ActiveWorkoutID == session.ID {
			st.ActiveWorkoutID = nil
		}
		return nil
	})
}

func appendSession(st *model.AppState, session model.WorkoutSession) error {
	if session.ID == "" {
		return fmt.Errorf("session: empty id: %w", ErrInvalid)
	}
	if sessionIndex(st.Sessions, session.ID) >= 0 {
		return fmt.Errorf("session %s: duplicate id: %w", session.ID, ErrInvalid)
	}
	st.Sessions = append(st.Sessions, session.Clone())
	return nil
}

func replaceSession(st *model.AppState, session model.WorkoutSession) error {
	i := sessionIndex(st.Sessions, session.ID)
	if i < 0 {
		return fmt.Errorf("session %s: %w", session.ID, ErrNotFound)
	}
	st.Sessions[i] = session.Clone()
	return nil
}

// DeleteSession removes a session and clears the active pointer if it
// referenced that session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		i := sessionIndex(st.Sessions, id)
		if i < 0 {
			return fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		st.Sessions = append(st.Sessions[:i], st.Sessions[i+1:]...)
		if st.ActiveWorkoutID != nil && *st.ActiveWorkoutID == id {
			st.ActiveWorkoutID = nil
		}
		return nil
	})
}

// AddTemplate appends a template. The id must be non-empty and unused.
func (s *Store) AddTemplate(ctx context.Context, tmpl model.WorkoutTemplate) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		if tmpl.ID == "" {
			return fmt.Errorf("template: empty id: %w", ErrInvalid)
		}
		if templateIndex(st.Templates, tmpl.ID) >= 0 {
			return fmt.Errorf("template %s: duplicate id: %w", tmpl.ID, ErrInvalid)
		}
		st.Templates = append(st.Templates, tmpl.Clone())
		return nil
	})
}

// UpdateTemplate replaces the template with the same id.
func (s *Store) UpdateTemplate(ctx context.Context, tmpl model.WorkoutTemplate) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		i := templateIndex(st.Templates, tmpl.ID)
		if i < 0 {
			return fmt.Errorf("template %s: %w", tmpl.ID, ErrNotFound)
		}
		st.Templates[i] = tmpl.Clone()
		return nil
	})
}

// DeleteTemplate removes a template. Sessions referencing it keep the
// now-dangling id.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		i := templateIndex(st.Templates, id)
		if i < 0 {
			return fmt.Errorf("template %s: %w", id, ErrNotFound)
		}
		st.Templates = append(st.Templates[:i], st.Templates[i+1:]...)
		return nil
	})
}

// SetActiveWorkoutID overwrites the active pointer. It does not check that
// the session exists or is incomplete.
func (s *Store) SetActiveWorkoutID(ctx context.Context, id *string) error {
	return s.mutate(ctx, func(st *model.AppState) error {
		if id == nil {
			st.ActiveWorkoutID = nil
		} else {
			st.ActiveWorkoutID = model.StringPtr(*id)
		}
		return nil
	})
}

// Subscribe registers fn to receive the state after every mutation. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(model.AppState)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) mutate(ctx context.Context, fn func(*model.AppState) error) error {
	next, err := s.commit(ctx, fn)
	if err != nil {
		return err
	}
	s.notify(next)
	return nil
}

// commit applies fn to a copy of the state and persists it before swapping
// it in. The write lock is held throughout.
func (s *Store) commit(ctx context.Context, fn func(*model.AppState) error) (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return model.AppState{}, err
	}
	data, err := Encode(next)
	if err != nil {
		return model.AppState{}, fmt.Errorf("encoding state: %w", err)
	}
	if err := s.persister.Save(ctx, s.key, data); err != nil {
		return model.AppState{}, fmt.Errorf("saving state: %w", err)
	}
	s.state = next
	return next, nil
}

func (s *Store) notify(st model.AppState) {
	s.subMu.Lock()
	fns := make([]func(model.AppState), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(st.Clone())
	}
}

func sessionIndex(sessions []model.WorkoutSession, id string) int {
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func templateIndex(templates []model.WorkoutTemplate, id string) int {
	for i := range templates {
		if templates[i].ID == id {
			return i
		}
	}
	return -1
}
