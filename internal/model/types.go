// Package model defines shared data structures.
package model

import "time"

// MuscleGroup classifies catalog exercises.
type MuscleGroup string

// Known muscle groups.
const (
	Chest     MuscleGroup = "Chest"
	Back      MuscleGroup = "Back"
	Legs      MuscleGroup = "Legs"
	Shoulders MuscleGroup = "Shoulders"
	Arms      MuscleGroup = "Arms"
	Core      MuscleGroup = "Core"
	FullBody  MuscleGroup = "Full Body"
)

// MuscleGroups lists every known group in display order.
var MuscleGroups = []MuscleGroup{Chest, Back, Legs, Shoulders, Arms, Core, FullBody}

// Valid reports whether g is a known muscle group.
func (g MuscleGroup) Valid() bool {
	for _, known := range MuscleGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Exercise is a static catalog entry.
type Exercise struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	MuscleGroup MuscleGroup `json:"muscleGroup" yaml:"muscleGroup"`
}

// SetType distinguishes plain sets from drop sets.
type SetType string

// Set types.
const (
	SetNormal SetType = "normal"
	SetDrop   SetType = "drop"
)

// DropSetPart is one weight/rep step of a drop set.
type DropSetPart struct {
	ID     string  `json:"id" yaml:"id"`
	Reps   int     `json:"reps" yaml:"reps"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// WorkoutSet is one block of repetitions. For drop sets the parts in
// DropSets are authoritative and Completed covers the whole set.
type WorkoutSet struct {
	ID        string        `json:"id" yaml:"id"`
	Type      SetType       `json:"type" yaml:"type"`
	Reps      int           `json:"reps" yaml:"reps"`
	Weight    float64       `json:"weight" yaml:"weight"`
	DropSets  []DropSetPart `json:"dropSets" yaml:"dropSets"`
	Completed bool          `json:"completed" yaml:"completed"`
}

// Clone returns a deep copy of the set.
func (s WorkoutSet) Clone() WorkoutSet {
	out := s
	out.DropSets = make([]DropSetPart, len(s.DropSets))
	copy(out.DropSets, s.DropSets)
	return out
}

// SessionExercise is an exercise performed within a session.
type SessionExercise struct {
	ID         string       `json:"id" yaml:"id"`
	ExerciseID string       `json:"exerciseId" yaml:"exerciseId"`
	Sets       []WorkoutSet `json:"sets" yaml:"sets"`
}

// Clone returns a deep copy of the exercise and its sets.
func (e SessionExercise) Clone() SessionExercise {
	out := e
	out.Sets = make([]WorkoutSet, len(e.Sets))
	for i, set := range e.Sets {
		out.Sets[i] = set.Clone()
	}
	return out
}

// WorkoutSession is one recorded or in-progress workout.
type WorkoutSession struct {
	ID         string            `json:"id" yaml:"id"`
	Date       time.Time         `json:"date" yaml:"date"`
	TemplateID *string           `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	Name       string            `json:"name" yaml:"name"`
	Exercises  []SessionExercise `json:"exercises" yaml:"exercises"`
	EndTime    *time.Time        `json:"endTime,omitempty" yaml:"endTime,omitempty"`
}

// Completed reports whether the session has been finished.
func (s WorkoutSession) Completed() bool {
	return s.EndTime != nil
}

// Clone returns a deep copy of the session.
func (s WorkoutSession) Clone() WorkoutSession {
	out := s
	out.TemplateID = cloneString(s.TemplateID)
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	out.Exercises = make([]SessionExercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// WorkoutTemplate is a named, reusable ordered list of exercise ids.
type WorkoutTemplate struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Exercises []string `json:"exercises" yaml:"exercises"`
}

// Clone returns a deep copy of the template.
func (t WorkoutTemplate) Clone() WorkoutTemplate {
	out := t
	out.Exercises = make([]string, len(t.Exercises))
	copy(out.Exercises, t.Exercises)
	return out
}

// AppState is the full persisted application state.
type AppState struct {
	Sessions        []WorkoutSession  `json:"sessions" yaml:"sessions"`
	Templates       []WorkoutTemplate `json:"templates" yaml:"templates"`
	ActiveWorkoutID *string           `json:"activeWorkoutId" yaml:"activeWorkoutId"`
}

// Clone returns a deep copy of the state.
func (a AppState) Clone() AppState {
	out := AppState{
		Sessions:        make([]WorkoutSession, len(a.Sessions)),
		Templates:       make([]WorkoutTemplate, len(a.Templates)),
		ActiveWorkoutID: cloneString(a.ActiveWorkoutID),
	}
	for i, s := range a.Sessions {
		out.Sessions[i] = s.Clone()
	}
	for i, t := range a.Templates {
		out.Templates[i] = t.Clone()
	}
	return out
}

// StringPtr returns a pointer to a copy of v.
func StringPtr(v string) *string {
	return &v
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Config defines workout editing settings.
type Config struct {
	DefaultReps   int
	DefaultWeight float64
	DropStep      float64
}
