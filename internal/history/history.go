package history

import (
	"sort"
	"time"

	"github.com/verte-zerg/liftlog/internal/model"
)

// Status labels.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
)

// Status describes whether a session has been finished.
func Status(s model.WorkoutSession) string {
	if s.Completed() {
		return StatusCompleted
	}
	return StatusInProgress
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// OnDay returns the sessions dated on day, in their original order.
func OnDay(sessions []model.WorkoutSession, day time.Time, loc *time.Location) []model.WorkoutSession {
	var out []model.WorkoutSession
	for _, s := range sessions {
		if SameDay(s.Date, day, loc) {
			out = append(out, s)
		}
	}
	return out
}

// SortedByDateDesc returns sessions newest first. Sessions with equal dates
// keep their relative order.
func SortedByDateDesc(sessions []model.WorkoutSession) []model.WorkoutSession {
	out := make([]model.WorkoutSession, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// WorkoutDays returns the days of month (1-based, ascending) that have at
// least one session.
func WorkoutDays(sessions []model.WorkoutSession, month time.Time, loc *time.Location) []int {
	my, mm, _ := month.In(loc).Date()
	seen := map[int]struct{}{}
	for _, s := range sessions {
		y, m, d := s.Date.In(loc).Date()
		if y == my && m == mm {
			seen[d] = struct{}{}
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// DayReport contains the data shown for a selected calendar day.
type DayReport struct {
	Day         time.Time
	Sessions    []model.WorkoutSession
	WorkoutDays []int
	IsToday     bool
	HasActive   bool
}

// BuildDayReport gathers the sessions of day and the workout days of its month.
func BuildDayReport(st model.AppState, day, now time.Time, loc *time.Location) DayReport {
	return DayReport{
		Day:         day,
		Sessions:    OnDay(st.Sessions, day, loc),
		WorkoutDays: WorkoutDays(st.Sessions, day, loc),
		IsToday:     SameDay(day, now, loc),
		HasActive:   st.ActiveWorkoutID != nil,
	}
}
