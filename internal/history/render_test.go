package history

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/model"
)

func testRenderer() Renderer {
	return Renderer{Catalog: catalog.Default(), Loc: time.UTC}
}

func TestRenderDetail(t *testing.T) {
	end := time.Date(2024, 6, 3, 19, 0, 0, 0, time.UTC)
	session := model.WorkoutSession{
		ID:      "s1",
		Name:    "Push Day",
		Date:    time.Date(2024, 6, 3, 18, 5, 0, 0, time.UTC),
		EndTime: &end,
		Exercises: []model.SessionExercise{
			{ID: "x1", ExerciseID: "e1", Sets: []model.WorkoutSet{
				{ID: "s1", Type: model.SetNormal, Reps: 5, Weight: 100, Completed: true},
				{ID: "s2", Type: model.SetDrop, DropSets: []model.DropSetPart{
					{ID: "p1", Reps: 8, Weight: 30},
					{ID: "p2", Reps: 8, Weight: 25},
				}},
			}},
			{ID: "x2", ExerciseID: "gone", Sets: []model.WorkoutSet{{ID: "s3", Reps: 1}}},
			{ID: "x3", ExerciseID: "e17", Sets: []model.WorkoutSet{{ID: "s4", Type: model.SetNormal, Reps: 10, Weight: 42.5}}},
		},
	}

	var buf bytes.Buffer
	if err := testRenderer().RenderDetail(&buf, session); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Push Day\n",
		"June 3, 2024 - 6:05 PM\n",
		"Completed\n",
		"1. Bench Press\n",
		"Drop Set 2",
		"  2.2" + strings.Repeat(" ", 11) + "25     8",
		"3. Overhead Press\n",
		"42.5",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2. ") {
		t.Fatalf("dangling exercise should be skipped:\n%s", out)
	}
}

func TestRenderDayPreview(t *testing.T) {
	session := model.WorkoutSession{
		ID:   "s1",
		Name: "Leg Day",
		Date: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		Exercises: []model.SessionExercise{
			{ID: "a", ExerciseID: "e11"},
			{ID: "b", ExerciseID: "e12"},
			{ID: "c", ExerciseID: "e14"},
			{ID: "d", ExerciseID: "e15"},
			{ID: "e", ExerciseID: "e16"},
		},
	}
	report := DayReport{Day: session.Date, Sessions: []model.WorkoutSession{session}, WorkoutDays: []int{3}}

	var buf bytes.Buffer
	if err := testRenderer().RenderDay(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Workouts on Monday, June 3") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "Leg Day  [In Progress]  5 exercises") {
		t.Fatalf("missing session line:\n%s", out)
	}
	if !strings.Contains(out, "  Leg Extension: 0 sets") || strings.Contains(out, "Leg Curl") {
		t.Fatalf("unexpected preview:\n%s", out)
	}
	if !strings.Contains(out, "  +2 more") {
		t.Fatalf("missing overflow line:\n%s", out)
	}
}

func TestRenderDaySkipsUnknownExercises(t *testing.T) {
	session := model.WorkoutSession{
		ID:   "s1",
		Name: "Mixed",
		Date: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		Exercises: []model.SessionExercise{
			{ID: "a", ExerciseID: "gone-99"},
			{ID: "b", ExerciseID: "e1"},
			{ID: "c", ExerciseID: "e2"},
			{ID: "d", ExerciseID: "gone-98"},
			{ID: "e", ExerciseID: "e3"},
			{ID: "f", ExerciseID: "e4"},
		},
	}
	report := DayReport{Day: session.Date, Sessions: []model.WorkoutSession{session}}

	var buf bytes.Buffer
	if err := testRenderer().RenderDay(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "gone-") {
		t.Fatalf("unknown exercise rendered:\n%s", out)
	}
	if !strings.Contains(out, "Mixed  [In Progress]  4 exercises") {
		t.Fatalf("unexpected session line:\n%s", out)
	}
	if !strings.Contains(out, "  Dumbbell Flyes: 0 sets") || !strings.Contains(out, "  +1 more") {
		t.Fatalf("unexpected preview:\n%s", out)
	}
}

func TestRenderDayEmptyToday(t *testing.T) {
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		report DayReport
		want   string
	}{
		{"start", DayReport{Day: day, IsToday: true}, "Start a workout with: liftlog start"},
		{"resume", DayReport{Day: day, IsToday: true, HasActive: true}, "Resume your workout with: liftlog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := testRenderer().RenderDay(&buf, tt.report); err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Fatalf("expected %q in:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestRenderHistoryNewestFirst(t *testing.T) {
	sessions := []model.WorkoutSession{
		{ID: "old", Name: "Old", Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "new", Name: "New", Date: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)},
	}
	var buf bytes.Buffer
	if err := testRenderer().RenderHistory(&buf, sessions); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "Feb 1, 2024") || !strings.HasPrefix(lines[2], "Jan 1, 2024") {
		t.Fatalf("unexpected order:\n%s", buf.String())
	}
}

func TestRenderTemplatesSkipsDangling(t *testing.T) {
	templates := []model.WorkoutTemplate{{ID: "t1", Name: "Mixed", Exercises: []string{"e1", "nope", "e6"}}}
	var buf bytes.Buffer
	if err := testRenderer().RenderTemplates(&buf, templates); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Bench Press, Pull-ups") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestRendererClipsToWidth(t *testing.T) {
	r := testRenderer()
	r.Width = 10
	var buf bytes.Buffer
	if err := r.RenderExercises(&buf, catalog.Default().Search("incline")); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if displayWidth(line) > 10 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}
