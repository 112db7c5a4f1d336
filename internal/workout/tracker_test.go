package workout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/liftlog/internal/model"
	"github.com/verte-zerg/liftlog/internal/state"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	st, err := state.Open(context.Background(), state.NewMemoryPersister())
	require.NoError(t, err)
	clock := testNow
	return NewTracker(st,
		WithEditor(newTestEditor()),
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
	)
}

func TestStartFromTemplate(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	s, err := tr.Start(ctx, model.StringPtr("t3"), false)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", s.Name)
	assert.Len(t, s.Exercises, 4)

	active, err := tr.Active()
	require.NoError(t, err)
	assert.Equal(t, s.ID, active.ID)
	require.NotNil(t, tr.Store().ActiveWorkoutID())
	assert.Equal(t, s.ID, *tr.Store().ActiveWorkoutID())
}

func TestStartWithDanglingTemplateIsFreestyle(t *testing.T) {
	tr := newTestTracker(t)
	s, err := tr.Start(context.Background(), model.StringPtr("deleted"), false)
	require.NoError(t, err)
	assert.Equal(t, FreestyleName, s.Name)
	assert.Empty(t, s.Exercises)
	require.NotNil(t, s.TemplateID)
	assert.Equal(t, "deleted", *s.TemplateID)
}

func TestStartRefusesToReplaceWithoutFlag(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	first, err := tr.Start(ctx, nil, false)
	require.NoError(t, err)

	_, err = tr.Start(ctx, nil, false)
	assert.ErrorIs(t, err, ErrActiveWorkout)

	second, err := tr.Start(ctx, nil, true)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *tr.Store().ActiveWorkoutID())
	_, ok := tr.Store().Session(first.ID)
	assert.True(t, ok, "replaced session stays in history")
}

func TestEditPersistsThroughStore(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	_, err := tr.Start(ctx, nil, false)
	require.NoError(t, err)

	s, err := tr.Edit(ctx, func(e *Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.AddExercise(s, "e11"), nil
	})
	require.NoError(t, err)
	exID := s.Exercises[0].ID
	setID := s.Exercises[0].Sets[0].ID

	_, err = tr.Edit(ctx, func(e *Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.ToggleSetCompleted(s, exID, setID)
	})
	require.NoError(t, err)

	stored, ok := tr.Store().Session(s.ID)
	require.True(t, ok)
	assert.True(t, stored.Exercises[0].Sets[0].Completed)
	assert.Equal(t, 10, stored.Exercises[0].Sets[0].Reps)
	assert.Equal(t, 0.0, stored.Exercises[0].Sets[0].Weight)
}

func TestEditErrorKeepsStoredSession(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	started, err := tr.Start(ctx, model.StringPtr("t1"), false)
	require.NoError(t, err)

	_, err = tr.Edit(ctx, func(e *Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.RemoveSet(s, "missing", "missing")
	})
	assert.ErrorIs(t, err, ErrNotFound)
	stored, _ := tr.Store().Session(started.ID)
	assert.Equal(t, started, stored)
}

func TestFinishAndCancel(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	s, err := tr.Start(ctx, nil, false)
	require.NoError(t, err)
	done, err := tr.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.ID, done.ID)
	require.NotNil(t, done.EndTime)
	assert.True(t, done.EndTime.After(done.Date))
	assert.Nil(t, tr.Store().ActiveWorkoutID())
	_, err = tr.Active()
	assert.ErrorIs(t, err, ErrNoActiveWorkout)

	c, err := tr.Start(ctx, nil, false)
	require.NoError(t, err)
	_, err = tr.Cancel(ctx)
	require.NoError(t, err)
	_, ok := tr.Store().Session(c.ID)
	assert.False(t, ok)
	assert.Nil(t, tr.Store().ActiveWorkoutID())
	assert.Len(t, tr.Store().Sessions(), 1)

	_, err = tr.Finish(ctx)
	assert.ErrorIs(t, err, ErrNoActiveWorkout)
	_, err = tr.Cancel(ctx)
	assert.ErrorIs(t, err, ErrNoActiveWorkout)
}

// budgetPersister accepts a fixed number of saves and fails the rest.
type budgetPersister struct {
	*state.MemoryPersister
	left int
}

var errDiskFull = errors.New("disk full")

func (b *budgetPersister) Save(ctx context.Context, key string, data []byte) error {
	if b.left <= 0 {
		return errDiskFull
	}
	b.left--
	return b.MemoryPersister.Save(ctx, key, data)
}

func newBudgetTracker(t *testing.T) (*Tracker, *budgetPersister) {
	t.Helper()
	p := &budgetPersister{MemoryPersister: state.NewMemoryPersister()}
	st, err := state.Open(context.Background(), p)
	require.NoError(t, err)
	return NewTracker(st, WithEditor(newTestEditor()), WithClock(func() time.Time { return testNow })), p
}

func TestStartAndFinishWriteOnce(t *testing.T) {
	tr, p := newBudgetTracker(t)
	ctx := context.Background()

	p.left = 1
	s, err := tr.Start(ctx, model.StringPtr("t1"), false)
	require.NoError(t, err)
	require.NotNil(t, tr.Store().ActiveWorkoutID())
	assert.Equal(t, s.ID, *tr.Store().ActiveWorkoutID())

	p.left = 1
	_, err = tr.Finish(ctx)
	require.NoError(t, err)
	assert.Nil(t, tr.Store().ActiveWorkoutID())
	assert.Equal(t, 2, p.Saves())
}

func TestFailedSaveLeavesNoPartialWorkout(t *testing.T) {
	tr, p := newBudgetTracker(t)
	ctx := context.Background()

	_, err := tr.Start(ctx, nil, false)
	require.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, tr.Store().Sessions())
	assert.Nil(t, tr.Store().ActiveWorkoutID())

	p.left = 1
	s, err := tr.Start(ctx, nil, false)
	require.NoError(t, err)

	_, err = tr.Finish(ctx)
	require.ErrorIs(t, err, errDiskFull)
	active, err := tr.Active()
	require.NoError(t, err)
	assert.Equal(t, s.ID, active.ID)
	assert.False(t, active.Completed())
}

func TestSaveTemplate(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.SaveTemplate(ctx, "", "   ", []string{"e1"})
	assert.ErrorIs(t, err, ErrEmptyName)

	created, err := tr.SaveTemplate(ctx, "", "  Arms  ", []string{"e21", "e22"})
	require.NoError(t, err)
	assert.Equal(t, "Arms", created.Name)
	assert.NotEmpty(t, created.ID)

	updated, err := tr.SaveTemplate(ctx, created.ID, "Arms", []string{"e21", "e22", "e23"})
	require.NoError(t, err)
	got, ok := tr.Store().Template(created.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)

	_, err = tr.SaveTemplate(ctx, "ghost", "Ghost", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tr.DeleteTemplate(ctx, created.ID))
	assert.Len(t, tr.Store().Templates(), 3)
}
