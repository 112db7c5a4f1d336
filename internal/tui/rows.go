package tui

import "github.com/verte-zerg/liftlog/internal/model"

type rowKind int

const (
	rowExercise rowKind = iota
	rowSet
	rowPart
)

// row addresses one selectable line of the session view.
type row struct {
	kind  rowKind
	exIdx int
	set   int
	part  int
}

func buildRows(s model.WorkoutSession) []row {
	var rows []row
	for i, ex := range s.Exercises {
		rows = append(rows, row{kind: rowExercise, exIdx: i, set: -1, part: -1})
		for j, set := range ex.Sets {
			rows = append(rows, row{kind: rowSet, exIdx: i, set: j, part: -1})
			if set.Type != model.SetDrop {
				continue
			}
			for k := range set.DropSets {
				rows = append(rows, row{kind: rowPart, exIdx: i, set: j, part: k})
			}
		}
	}
	return rows
}

// setCounts returns completed and total sets of a session.
func setCounts(s model.WorkoutSession) (done, total int) {
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			total++
			if set.Completed {
				done++
			}
		}
	}
	return done, total
}
