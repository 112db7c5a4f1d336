package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/model"
)

const (
	listDateLayout   = "Jan 2, 2006"
	detailDateLayout = "January 2, 2006 - 3:04 PM"
	dayLayout        = "Monday, January 2"
	previewCount     = 3
)

// Renderer writes plain-text views of sessions and templates.
type Renderer struct {
	Catalog *catalog.Catalog
	Loc     *time.Location
	// Width clips lines when positive.
	Width int
}

func (r Renderer) loc() *time.Location {
	if r.Loc == nil {
		return time.Local
	}
	return r.Loc
}

func (r Renderer) write(w io.Writer, lines []string) error {
	for _, line := range clip(lines, r.Width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory lists sessions newest first.
func (r Renderer) RenderHistory(w io.Writer, sessions []model.WorkoutSession) error {
	if len(sessions) == 0 {
		return r.write(w, []string{"No workouts yet."})
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range SortedByDateDesc(sessions) {
		rows = append(rows, []string{
			s.Date.In(r.loc()).Format(listDateLayout),
			s.Name,
			fmt.Sprintf("%d exercises", len(s.Exercises)),
			Status(s),
			s.ID,
		})
	}
	return r.write(w, formatTable([]column{left("Date"), left("Workout"), left("Exercises"), left("Status"), left("ID")}, rows))
}

// RenderDay prints the sessions of one calendar day with a short preview of
// their exercises. Exercises missing from the catalog are left out.
func (r Renderer) RenderDay(w io.Writer, report DayReport) error {
	lines := []string{
		"Workouts on " + report.Day.In(r.loc()).Format(dayLayout),
	}
	if len(report.WorkoutDays) > 0 {
		days := make([]string, len(report.WorkoutDays))
		for i, d := range report.WorkoutDays {
			days[i] = strconv.Itoa(d)
		}
		lines = append(lines, fmt.Sprintf("Workout days in %s: %s",
			report.Day.In(r.loc()).Format("January"), strings.Join(days, ", ")))
	}
	lines = append(lines, "")

	if len(report.Sessions) == 0 {
		lines = append(lines, "No workouts logged on this day.")
		if report.IsToday {
			if report.HasActive {
				lines = append(lines, "Resume your workout with: liftlog")
			} else {
				lines = append(lines, "Start a workout with: liftlog start")
			}
		}
		return r.write(w, lines)
	}

	for _, s := range report.Sessions {
		type preview struct {
			name string
			sets int
		}
		var known []preview
		for _, ex := range s.Exercises {
			if def, ok := r.Catalog.Lookup(ex.ExerciseID); ok {
				known = append(known, preview{name: def.Name, sets: len(ex.Sets)})
			}
		}
		lines = append(lines, fmt.Sprintf("%s  [%s]  %d exercises  (%s)", s.Name, Status(s), len(known), s.ID))
		for i, p := range known {
			if i == previewCount {
				lines = append(lines, fmt.Sprintf("  +%d more", len(known)-previewCount))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s: %d sets", p.name, p.sets))
		}
	}
	return r.write(w, lines)
}

// RenderDetail prints every exercise and set of a session. Exercises whose
// catalog entry is gone are skipped.
func (r Renderer) RenderDetail(w io.Writer, s model.WorkoutSession) error {
	lines := []string{
		s.Name,
		s.Date.In(r.loc()).Format(detailDateLayout),
		Status(s),
	}
	if len(s.Exercises) == 0 {
		lines = append(lines, "", "No exercises recorded.")
		return r.write(w, lines)
	}
	for i, ex := range s.Exercises {
		def, ok := r.Catalog.Lookup(ex.ExerciseID)
		if !ok {
			continue
		}
		lines = append(lines, "", fmt.Sprintf("%d. %s", i+1, def.Name))
		lines = append(lines, formatTable([]column{left("Set"), right("Weight"), right("Reps"), left("Done")}, setRows(ex.Sets))...)
	}
	return r.write(w, lines)
}

func setRows(sets []model.WorkoutSet) [][]string {
	var rows [][]string
	for i, set := range sets {
		if set.Type == model.SetDrop {
			rows = append(rows, []string{fmt.Sprintf("Drop Set %d", i+1), "", "", doneMark(set.Completed)})
			for j, part := range set.DropSets {
				rows = append(rows, []string{
					fmt.Sprintf("  %d.%d", i+1, j+1),
					formatWeight(part.Weight),
					strconv.Itoa(part.Reps),
					"",
				})
			}
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatWeight(set.Weight),
			strconv.Itoa(set.Reps),
			doneMark(set.Completed),
		})
	}
	return rows
}

// RenderTemplates lists templates with their exercise names.
func (r Renderer) RenderTemplates(w io.Writer, templates []model.WorkoutTemplate) error {
	if len(templates) == 0 {
		return r.write(w, []string{"No templates."})
	}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{t.ID, t.Name, strings.Join(r.Catalog.Names(t.Exercises), ", ")})
	}
	return r.write(w, formatTable([]column{left("ID"), left("Name"), left("Exercises")}, rows))
}

// RenderExercises lists catalog exercises.
func (r Renderer) RenderExercises(w io.Writer, exercises []model.Exercise) error {
	if len(exercises) == 0 {
		return r.write(w, []string{"No exercises found."})
	}
	rows := make([][]string, 0, len(exercises))
	for _, ex := range exercises {
		rows = append(rows, []string{ex.ID, ex.Name, string(ex.MuscleGroup)})
	}
	return r.write(w, formatTable([]column{left("ID"), left("Name"), left("Muscle Group")}, rows))
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func doneMark(done bool) string {
	if done {
		return "x"
	}
	return ""
}
