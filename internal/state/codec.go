package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/verte-zerg/liftlog/internal/model"
)

// Encode serializes the full state snapshot.
func Encode(st model.AppState) ([]byte, error) {
	return json.Marshal(normalize(st))
}

// Decode parses a snapshot. The document must be an object carrying both
// collections; a null collection decodes as empty. Sets must have a known
// type and no negative reps or weight.
func Decode(data []byte) (model.AppState, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return model.AppState{}, err
	}
	if fields == nil {
		return model.AppState{}, errors.New("snapshot is null")
	}
	for _, key := range []string{"sessions", "templates"} {
		if _, ok := fields[key]; !ok {
			return model.AppState{}, fmt.Errorf("snapshot has no %q", key)
		}
	}
	var st model.AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return model.AppState{}, err
	}
	st = normalize(st)
	if err := validate(st); err != nil {
		return model.AppState{}, err
	}
	return st, nil
}

func validate(st model.AppState) error {
	for _, s := range st.Sessions {
		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				if set.Type != model.SetNormal && set.Type != model.SetDrop {
					return fmt.Errorf("session %s: set %s: unknown type %q", s.ID, set.ID, set.Type)
				}
				if set.Reps < 0 || set.Weight < 0 {
					return fmt.Errorf("session %s: set %s: negative reps or weight", s.ID, set.ID)
				}
				for _, part := range set.DropSets {
					if part.Reps < 0 || part.Weight < 0 {
						return fmt.Errorf("session %s: drop part %s: negative reps or weight", s.ID, part.ID)
					}
				}
			}
		}
	}
	return nil
}

func normalize(st model.AppState) model.AppState {
	if st.Sessions == nil {
		st.Sessions = []model.WorkoutSession{}
	}
	if st.Templates == nil {
		st.Templates = []model.WorkoutTemplate{}
	}
	for i := range st.Sessions {
		s := &st.Sessions[i]
		if s.Exercises == nil {
			s.Exercises = []model.SessionExercise{}
		}
		for j := range s.Exercises {
			ex := &s.Exercises[j]
			if ex.Sets == nil {
				ex.Sets = []model.WorkoutSet{}
			}
			for k := range ex.Sets {
				if ex.Sets[k].DropSets == nil {
					ex.Sets[k].DropSets = []model.DropSetPart{}
				}
				if ex.Sets[k].Type == "" {
					ex.Sets[k].Type = model.SetNormal
				}
			}
		}
	}
	for i := range st.Templates {
		if st.Templates[i].Exercises == nil {
			st.Templates[i].Exercises = []string{}
		}
	}
	return st
}
