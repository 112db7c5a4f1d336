// Package catalog provides the read-only exercise catalog.
package catalog

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/liftlog/internal/model"
)

var builtin = []model.Exercise{
	{ID: "e1", Name: "Bench Press", MuscleGroup: model.Chest},
	{ID: "e2", Name: "Incline Bench Press", MuscleGroup: model.Chest},
	{ID: "e3", Name: "Dumbbell Flyes", MuscleGroup: model.Chest},
	{ID: "e4", Name: "Push-ups", MuscleGroup: model.Chest},
	{ID: "e5", Name: "Cable Crossovers", MuscleGroup: model.Chest},

	{ID: "e6", Name: "Pull-ups", MuscleGroup: model.Back},
	{ID: "e7", Name: "Lat Pulldown", MuscleGroup: model.Back},
	{ID: "e8", Name: "Barbell Row", MuscleGroup: model.Back},
	{ID: "e9", Name: "Deadlift", MuscleGroup: model.Back},
	{ID: "e10", Name: "Seated Cable Row", MuscleGroup: model.Back},

	{ID: "e11", Name: "Squat", MuscleGroup: model.Legs},
	{ID: "e12", Name: "Leg Press", MuscleGroup: model.Legs},
	{ID: "e13", Name: "Lunges", MuscleGroup: model.Legs},
	{ID: "e14", Name: "Leg Extension", MuscleGroup: model.Legs},
	{ID: "e15", Name: "Leg Curl", MuscleGroup: model.Legs},
	{ID: "e16", Name: "Calf Raises", MuscleGroup: model.Legs},

	{ID: "e17", Name: "Overhead Press", MuscleGroup: model.Shoulders},
	{ID: "e18", Name: "Lateral Raises", MuscleGroup: model.Shoulders},
	{ID: "e19", Name: "Front Raises", MuscleGroup: model.Shoulders},
	{ID: "e20", Name: "Face Pulls", MuscleGroup: model.Shoulders},

	{ID: "e21", Name: "Barbell Curl", MuscleGroup: model.Arms},
	{ID: "e22", Name: "Tricep Pushdown", MuscleGroup: model.Arms},
	{ID: "e23", Name: "Hammer Curls", MuscleGroup: model.Arms},
	{ID: "e24", Name: "Skull Crushers", MuscleGroup: model.Arms},

	{ID: "e25", Name: "Crunches", MuscleGroup: model.Core},
	{ID: "e26", Name: "Plank", MuscleGroup: model.Core},
	{ID: "e27", Name: "Leg Raises", MuscleGroup: model.Core},
	{ID: "e28", Name: "Russian Twists", MuscleGroup: model.Core},
}

// Catalog is an ordered, id-indexed list of exercises.
type Catalog struct {
	exercises []model.Exercise
	byID      map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from the given exercises, rejecting duplicate ids.
func New(exercises []model.Exercise) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(exercises))}
	if err := c.add(exercises); err != nil {
		return nil, err
	}
	return c, nil
}

// Extend returns a new catalog with extra exercises appended after the
// existing ones.
func (c *Catalog) Extend(extra []model.Exercise) (*Catalog, error) {
	out, err := New(c.exercises)
	if err != nil {
		return nil, err
	}
	if err := out.add(extra); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Catalog) add(exercises []model.Exercise) error {
	for _, ex := range exercises {
		if ex.ID == "" {
			return fmt.Errorf("exercise %q has empty id", ex.Name)
		}
		if _, ok := c.byID[ex.ID]; ok {
			return fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		c.byID[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}
	return nil
}

// All returns every exercise in catalog order.
func (c *Catalog) All() []model.Exercise {
	out := make([]model.Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// Lookup finds an exercise by id. A miss is an expected outcome for
// dangling references.
func (c *Catalog) Lookup(id string) (model.Exercise, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Exercise{}, false
	}
	return c.exercises[idx], true
}

// Search returns exercises whose name or muscle group contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []model.Exercise {
	match := Matcher(query)
	out := make([]model.Exercise, 0, len(c.exercises))
	for _, ex := range c.exercises {
		if match(ex) {
			out = append(out, ex)
		}
	}
	return out
}

// Names resolves ids to exercise names, skipping unknown ids.
func (c *Catalog) Names(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if ex, ok := c.Lookup(id); ok {
			names = append(names, ex.Name)
		}
	}
	return names
}

// MatchFunc returns true when an exercise should be kept.
type MatchFunc func(model.Exercise) bool

// Matcher builds a case-insensitive substring matcher over name and muscle group.
func Matcher(query string) MatchFunc {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return func(model.Exercise) bool { return true }
	}
	return func(ex model.Exercise) bool {
		return strings.Contains(strings.ToLower(ex.Name), q) ||
			strings.Contains(strings.ToLower(string(ex.MuscleGroup)), q)
	}
}
