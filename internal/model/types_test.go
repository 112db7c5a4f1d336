package model

import (
	"testing"
	"time"
)

func TestSessionCloneIsDeep(t *testing.T) {
	end := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orig := WorkoutSession{
		ID:         "s1",
		TemplateID: StringPtr("t1"),
		EndTime:    &end,
		Exercises: []SessionExercise{{
			ID:         "x1",
			ExerciseID: "e1",
			Sets: []WorkoutSet{{
				ID:       "set1",
				Type:     SetDrop,
				DropSets: []DropSetPart{{ID: "p1", Reps: 8, Weight: 40}},
			}},
		}},
	}

	cp := orig.Clone()
	*cp.TemplateID = "t2"
	*cp.EndTime = end.Add(time.Hour)
	cp.Exercises[0].Sets[0].DropSets[0].Weight = 10
	cp.Exercises[0].Sets[0].Completed = true

	if *orig.TemplateID != "t1" {
		t.Fatalf("template id aliased: %q", *orig.TemplateID)
	}
	if !orig.EndTime.Equal(end) {
		t.Fatalf("end time aliased: %v", orig.EndTime)
	}
	if orig.Exercises[0].Sets[0].DropSets[0].Weight != 40 {
		t.Fatalf("drop part aliased")
	}
	if orig.Exercises[0].Sets[0].Completed {
		t.Fatalf("set aliased")
	}
}

func TestMuscleGroupValid(t *testing.T) {
	if !FullBody.Valid() {
		t.Fatalf("expected %q to be valid", FullBody)
	}
	if MuscleGroup("Neck").Valid() {
		t.Fatalf("expected unknown group to be invalid")
	}
}
