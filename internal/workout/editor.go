// Package workout implements editing of workout sessions: starting from a
// template, adding exercises and sets, and recording drop-set progressions.
package workout

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/liftlog/internal/model"
	"github.com/verte-zerg/liftlog/internal/state"
)

// FreestyleName names sessions not started from a template.
const FreestyleName = "Freestyle Workout"

// Default editing settings.
const (
	DefaultReps     = 10
	DefaultWeight   = 0.0
	DefaultDropStep = 5.0
)

var (
	// ErrNotFound is returned when an exercise, set or drop part id is unknown.
	ErrNotFound = state.ErrNotFound
	// ErrInvalidValue is returned for negative reps or weight.
	ErrInvalidValue = errors.New("value must not be negative")
	// ErrNotDropSet is returned when adding drop parts to a normal set.
	ErrNotDropSet = errors.New("set is not a drop set")
)

// IDGenerator assigns ids to new entities.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID strings.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// DefaultConfig returns the built-in editing settings.
func DefaultConfig() model.Config {
	return model.Config{
		DefaultReps:   DefaultReps,
		DefaultWeight: DefaultWeight,
		DropStep:      DefaultDropStep,
	}
}

// Editor applies edits to sessions. Every method works on a copy and leaves
// its input untouched.
type Editor struct {
	ids IDGenerator
	cfg model.Config
}

// NewEditor builds an Editor. A nil generator falls back to UUIDGenerator.
func NewEditor(ids IDGenerator, cfg model.Config) *Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Editor{ids: ids, cfg: cfg}
}

// NewID returns a fresh id.
func (e *Editor) NewID() string {
	return e.ids.NewID()
}

// NewSession creates a session with one default set per exercise id.
func (e *Editor) NewSession(now time.Time, name string, templateID *string, exerciseIDs []string) model.WorkoutSession {
	s := model.WorkoutSession{
		ID:        e.ids.NewID(),
		Date:      now,
		Name:      name,
		Exercises: make([]model.SessionExercise, 0, len(exerciseIDs)),
	}
	if templateID != nil {
		s.TemplateID = model.StringPtr(*templateID)
	}
	for _, exID := range exerciseIDs {
		s.Exercises = append(s.Exercises, e.newExercise(exID))
	}
	return s
}

// FromTemplate seeds a session with the template's name and exercises.
func (e *Editor) FromTemplate(now time.Time, tmpl model.WorkoutTemplate) model.WorkoutSession {
	return e.NewSession(now, tmpl.Name, &tmpl.ID, tmpl.Exercises)
}

// Freestyle creates an empty session.
func (e *Editor) Freestyle(now time.Time, templateID *string) model.WorkoutSession {
	return e.NewSession(now, FreestyleName, templateID, nil)
}

// AddExercise appends a catalog exercise with one default set.
func (e *Editor) AddExercise(s model.WorkoutSession, exerciseID string) model.WorkoutSession {
	out := s.Clone()
	out.Exercises = append(out.Exercises, e.newExercise(exerciseID))
	return out
}

// RemoveExercise drops an exercise and its sets.
func (e *Editor) RemoveExercise(s model.WorkoutSession, sessionExerciseID string) (model.WorkoutSession, error) {
	out := s.Clone()
	i := exerciseIndex(out, sessionExerciseID)
	if i < 0 {
		return s, fmt.Errorf("exercise %s: %w", sessionExerciseID, ErrNotFound)
	}
	out.Exercises = append(out.Exercises[:i], out.Exercises[i+1:]...)
	return out, nil
}

// AddSet appends a set, copying reps and weight from the last set. Drop sets
// start with a single default part.
func (e *Editor) AddSet(s model.WorkoutSession, sessionExerciseID string, typ model.SetType) (model.WorkoutSession, error) {
	if typ != model.SetNormal && typ != model.SetDrop {
		return s, fmt.Errorf("unknown set type %q", typ)
	}
	out := s.Clone()
	i := exerciseIndex(out, sessionExerciseID)
	if i < 0 {
		return s, fmt.Errorf("exercise %s: %w", sessionExerciseID, ErrNotFound)
	}
	ex := &out.Exercises[i]
	set := e.newSet()
	set.Type = typ
	if n := len(ex.Sets); n > 0 {
		set.Reps = ex.Sets[n-1].Reps
		set.Weight = ex.Sets[n-1].Weight
	}
	if typ == model.SetDrop {
		set.DropSets = append(set.DropSets, model.DropSetPart{
			ID:     e.ids.NewID(),
			Reps:   e.cfg.DefaultReps,
			Weight: e.cfg.DefaultWeight,
		})
	}
	ex.Sets = append(ex.Sets, set)
	return out, nil
}

// SetPatch holds optional set field changes.
type SetPatch struct {
	Reps      *int
	Weight    *float64
	Completed *bool
}

// UpdateSet applies patch to one set.
func (e *Editor) UpdateSet(s model.WorkoutSession, sessionExerciseID, setID string, patch SetPatch) (model.WorkoutSession, error) {
	if patch.Reps != nil && *patch.Reps < 0 {
		return s, fmt.Errorf("reps: %w", ErrInvalidValue)
	}
	if patch.Weight != nil && *patch.Weight < 0 {
		return s, fmt.Errorf("weight: %w", ErrInvalidValue)
	}
	out := s.Clone()
	set, err := findSet(&out, sessionExerciseID, setID)
	if err != nil {
		return s, err
	}
	if patch.Reps != nil {
		set.Reps = *patch.Reps
	}
	if patch.Weight != nil {
		set.Weight = *patch.Weight
	}
	if patch.Completed != nil {
		set.Completed = *patch.Completed
	}
	return out, nil
}

// ToggleSetCompleted flips the completed flag of a set.
func (e *Editor) ToggleSetCompleted(s model.WorkoutSession, sessionExerciseID, setID string) (model.WorkoutSession, error) {
	out := s.Clone()
	set, err := findSet(&out, sessionExerciseID, setID)
	if err != nil {
		return s, err
	}
	set.Completed = !set.Completed
	return out, nil
}

// RemoveSet drops one set.
func (e *Editor) RemoveSet(s model.WorkoutSession, sessionExerciseID, setID string) (model.WorkoutSession, error) {
	out := s.Clone()
	i := exerciseIndex(out, sessionExerciseID)
	if i < 0 {
		return s, fmt.Errorf("exercise %s: %w", sessionExerciseID, ErrNotFound)
	}
	ex := &out.Exercises[i]
	j := setIndex(*ex, setID)
	if j < 0 {
		return s, fmt.Errorf("set %s: %w", setID, ErrNotFound)
	}
	ex.Sets = append(ex.Sets[:j], ex.Sets[j+1:]...)
	return out, nil
}

// AddDropPart appends a drop part that keeps the last part's reps and
// lowers its weight by the drop step, never below zero.
func (e *Editor) AddDropPart(s model.WorkoutSession, sessionExerciseID, setID string) (model.WorkoutSession, error) {
	out := s.Clone()
	set, err := findSet(&out, sessionExerciseID, setID)
	if err != nil {
		return s, err
	}
	if set.Type != model.SetDrop {
		return s, fmt.Errorf("set %s: %w", setID, ErrNotDropSet)
	}
	part := model.DropSetPart{
		ID:     e.ids.NewID(),
		Reps:   e.cfg.DefaultReps,
		Weight: e.cfg.DefaultWeight,
	}
	if n := len(set.DropSets); n > 0 {
		last := set.DropSets[n-1]
		part.Reps = last.Reps
		part.Weight = math.Max(0, last.Weight-e.cfg.DropStep)
	}
	set.DropSets = append(set.DropSets, part)
	return out, nil
}

// DropPartPatch holds optional drop part field changes.
type DropPartPatch struct {
	Reps   *int
	Weight *float64
}

// UpdateDropPart applies patch to one drop part.
func (e *Editor) UpdateDropPart(s model.WorkoutSession, sessionExerciseID, setID, partID string, patch DropPartPatch) (model.WorkoutSession, error) {
	if patch.Reps != nil && *patch.Reps < 0 {
		return s, fmt.Errorf("reps: %w", ErrInvalidValue)
	}
	if patch.Weight != nil && *patch.Weight < 0 {
		return s, fmt.Errorf("weight: %w", ErrInvalidValue)
	}
	out := s.Clone()
	set, err := findSet(&out, sessionExerciseID, setID)
	if err != nil {
		return s, err
	}
	k := partIndex(*set, partID)
	if k < 0 {
		return s, fmt.Errorf("drop part %s: %w", partID, ErrNotFound)
	}
	if patch.Reps != nil {
		set.DropSets[k].Reps = *patch.Reps
	}
	if patch.Weight != nil {
		set.DropSets[k].Weight = *patch.Weight
	}
	return out, nil
}

// RemoveDropPart drops one part of a drop set.
func (e *Editor) RemoveDropPart(s model.WorkoutSession, sessionExerciseID, setID, partID string) (model.WorkoutSession, error) {
	out := s.Clone()
	set, err := findSet(&out, sessionExerciseID, setID)
	if err != nil {
		return s, err
	}
	k := partIndex(*set, partID)
	if k < 0 {
		return s, fmt.Errorf("drop part %s: %w", partID, ErrNotFound)
	}
	set.DropSets = append(set.DropSets[:k], set.DropSets[k+1:]...)
	return out, nil
}

// Finish marks the session complete at now.
func (e *Editor) Finish(s model.WorkoutSession, now time.Time) model.WorkoutSession {
	out := s.Clone()
	out.EndTime = &now
	return out
}

func (e *Editor) newExercise(exerciseID string) model.SessionExercise {
	return model.SessionExercise{
		ID:         e.ids.NewID(),
		ExerciseID: exerciseID,
		Sets:       []model.WorkoutSet{e.newSet()},
	}
}

func (e *Editor) newSet() model.WorkoutSet {
	return model.WorkoutSet{
		ID:       e.ids.NewID(),
		Type:     model.SetNormal,
		Reps:     e.cfg.DefaultReps,
		Weight:   e.cfg.DefaultWeight,
		DropSets: []model.DropSetPart{},
	}
}

func findSet(s *model.WorkoutSession, sessionExerciseID, setID string) (*model.WorkoutSet, error) {
	i := exerciseIndex(*s, sessionExerciseID)
	if i < 0 {
		return nil, fmt.Errorf("exercise %s: %w", sessionExerciseID, ErrNotFound)
	}
	j := setIndex(s.Exercises[i], setID)
	if j < 0 {
		return nil, fmt.Errorf("set %s: %w", setID, ErrNotFound)
	}
	return &s.Exercises[i].Sets[j], nil
}

func exerciseIndex(s model.WorkoutSession, id string) int {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			return i
		}
	}
	return -1
}

func setIndex(ex model.SessionExercise, id string) int {
	for i := range ex.Sets {
		if ex.Sets[i].ID == id {
			return i
		}
	}
	return -1
}

func partIndex(set model.WorkoutSet, id string) int {
	for i := range set.DropSets {
		if set.DropSets[i].ID == id {
			return i
		}
	}
	return -1
}
