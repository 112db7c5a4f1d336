package workout

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/liftlog/internal/model"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id%d", s.n)
}

func newTestEditor() *Editor {
	return NewEditor(&seqIDs{}, DefaultConfig())
}

var testNow = time.Date(2024, 4, 2, 17, 0, 0, 0, time.UTC)

func TestFromTemplateSeedsDefaultSets(t *testing.T) {
	e := newTestEditor()
	tmpl := model.WorkoutTemplate{ID: "t2", Name: "Push Day", Exercises: []string{"e1", "e2", "e17"}}

	s := e.FromTemplate(testNow, tmpl)

	assert.Equal(t, "Push Day", s.Name)
	require.NotNil(t, s.TemplateID)
	assert.Equal(t, "t2", *s.TemplateID)
	assert.Equal(t, testNow, s.Date)
	assert.Nil(t, s.EndTime)
	require.Len(t, s.Exercises, 3)
	for i, exID := range tmpl.Exercises {
		ex := s.Exercises[i]
		assert.Equal(t, exID, ex.ExerciseID)
		require.Len(t, ex.Sets, 1)
		set := ex.Sets[0]
		assert.Equal(t, model.SetNormal, set.Type)
		assert.Equal(t, 10, set.Reps)
		assert.Equal(t, 0.0, set.Weight)
		assert.Empty(t, set.DropSets)
		assert.False(t, set.Completed)
	}
}

func TestFreestyleIsEmpty(t *testing.T) {
	s := newTestEditor().Freestyle(testNow, nil)
	assert.Equal(t, FreestyleName, s.Name)
	assert.Nil(t, s.TemplateID)
	assert.Empty(t, s.Exercises)
}

func TestAddSetCopiesLastSet(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e9")
	exID := s.Exercises[0].ID
	setID := s.Exercises[0].Sets[0].ID

	reps, weight := 5, 140.0
	s, err := e.UpdateSet(s, exID, setID, SetPatch{Reps: &reps, Weight: &weight})
	require.NoError(t, err)

	s, err = e.AddSet(s, exID, model.SetNormal)
	require.NoError(t, err)
	sets := s.Exercises[0].Sets
	require.Len(t, sets, 2)
	assert.Equal(t, 5, sets[1].Reps)
	assert.Equal(t, 140.0, sets[1].Weight)
	assert.NotEqual(t, sets[0].ID, sets[1].ID)

	s, err = e.AddSet(s, exID, model.SetDrop)
	require.NoError(t, err)
	drop := s.Exercises[0].Sets[2]
	assert.Equal(t, model.SetDrop, drop.Type)
	require.Len(t, drop.DropSets, 1)
	assert.Equal(t, model.DropSetPart{ID: drop.DropSets[0].ID, Reps: 10, Weight: 0}, drop.DropSets[0])
}

func TestToggleCompletedLeavesOtherFields(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e1")
	exID := s.Exercises[0].ID
	before := s.Exercises[0].Sets[0]

	toggled, err := e.ToggleSetCompleted(s, exID, before.ID)
	require.NoError(t, err)

	after := toggled.Exercises[0].Sets[0]
	assert.True(t, after.Completed)
	after.Completed = false
	assert.Equal(t, before, after)
	assert.False(t, s.Exercises[0].Sets[0].Completed, "input must not change")
}

func TestAddDropPartStepsWeightDown(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e22")
	exID := s.Exercises[0].ID
	s, err := e.AddSet(s, exID, model.SetDrop)
	require.NoError(t, err)
	set := s.Exercises[0].Sets[1]

	reps, weight := 12, 30.0
	s, err = e.UpdateDropPart(s, exID, set.ID, set.DropSets[0].ID, DropPartPatch{Reps: &reps, Weight: &weight})
	require.NoError(t, err)

	s, err = e.AddDropPart(s, exID, set.ID)
	require.NoError(t, err)
	parts := s.Exercises[0].Sets[1].DropSets
	require.Len(t, parts, 2)
	assert.Equal(t, 30.0, parts[0].Weight)
	assert.Equal(t, 25.0, parts[1].Weight)
	assert.Equal(t, 12, parts[1].Reps)
}

func TestAddDropPartFloorsAtZero(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e22")
	exID := s.Exercises[0].ID
	s, err := e.AddSet(s, exID, model.SetDrop)
	require.NoError(t, err)
	set := s.Exercises[0].Sets[1]

	weight := 3.0
	s, err = e.UpdateDropPart(s, exID, set.ID, set.DropSets[0].ID, DropPartPatch{Weight: &weight})
	require.NoError(t, err)
	s, err = e.AddDropPart(s, exID, set.ID)
	require.NoError(t, err)
	s, err = e.AddDropPart(s, exID, set.ID)
	require.NoError(t, err)

	parts := s.Exercises[0].Sets[1].DropSets
	require.Len(t, parts, 3)
	assert.Equal(t, []float64{3, 0, 0}, []float64{parts[0].Weight, parts[1].Weight, parts[2].Weight})
}

func TestAddDropPartRejectsNormalSet(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e1")
	_, err := e.AddDropPart(s, s.Exercises[0].ID, s.Exercises[0].Sets[0].ID)
	assert.ErrorIs(t, err, ErrNotDropSet)
}

func TestRemoveSetAndParts(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e1")
	exID := s.Exercises[0].ID
	s, err := e.AddSet(s, exID, model.SetDrop)
	require.NoError(t, err)
	drop := s.Exercises[0].Sets[1]
	s, err = e.AddDropPart(s, exID, drop.ID)
	require.NoError(t, err)

	s, err = e.RemoveDropPart(s, exID, drop.ID, drop.DropSets[0].ID)
	require.NoError(t, err)
	assert.Len(t, s.Exercises[0].Sets[1].DropSets, 1)

	s, err = e.RemoveSet(s, exID, s.Exercises[0].Sets[0].ID)
	require.NoError(t, err)
	require.Len(t, s.Exercises[0].Sets, 1)
	assert.Equal(t, drop.ID, s.Exercises[0].Sets[0].ID)

	s, err = e.RemoveExercise(s, exID)
	require.NoError(t, err)
	assert.Empty(t, s.Exercises)
}

func TestEditorMissesReportNotFound(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e1")
	exID := s.Exercises[0].ID
	setID := s.Exercises[0].Sets[0].ID

	tests := []struct {
		name string
		fn   func() error
	}{
		{"add set", func() error { _, err := e.AddSet(s, "nope", model.SetNormal); return err }},
		{"update set", func() error { _, err := e.UpdateSet(s, exID, "nope", SetPatch{}); return err }},
		{"toggle", func() error { _, err := e.ToggleSetCompleted(s, "nope", setID); return err }},
		{"remove set", func() error { _, err := e.RemoveSet(s, exID, "nope"); return err }},
		{"remove exercise", func() error { _, err := e.RemoveExercise(s, "nope"); return err }},
		{"drop part", func() error { _, err := e.UpdateDropPart(s, exID, setID, "nope", DropPartPatch{}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), ErrNotFound)
		})
	}
}

func TestNegativeValuesRejected(t *testing.T) {
	e := newTestEditor()
	s := e.AddExercise(e.Freestyle(testNow, nil), "e1")
	reps := -1
	_, err := e.UpdateSet(s, s.Exercises[0].ID, s.Exercises[0].Sets[0].ID, SetPatch{Reps: &reps})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFinishStampsEndTime(t *testing.T) {
	e := newTestEditor()
	s := e.Freestyle(testNow, nil)
	done := e.Finish(s, testNow.Add(time.Hour))
	require.True(t, done.Completed())
	assert.Equal(t, testNow.Add(time.Hour), *done.EndTime)
	assert.False(t, s.Completed())
}
