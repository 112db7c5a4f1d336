package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/model"
)

const searchVisible = 8

// exerciseSearch is the add-exercise picker.
type exerciseSearch struct {
	catalog  *catalog.Catalog
	input    textinput.Model
	results  []model.Exercise
	selected int
}

func newExerciseSearch(c *catalog.Catalog) *exerciseSearch {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.PromptStyle = accentStyle
	ti.Placeholder = "name or muscle group"
	ti.PlaceholderStyle = dimStyle
	ti.CharLimit = 40
	ti.Width = 30
	ti.Focus()
	return &exerciseSearch{
		catalog: c,
		input:   ti,
		results: c.All(),
	}
}

// update feeds msg to the input. It returns the picked exercise once the
// user confirms, and done when the picker should close.
func (s *exerciseSearch) update(msg tea.KeyMsg) (picked *model.Exercise, done bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return nil, true, nil
	case tea.KeyEnter:
		if len(s.results) == 0 {
			return nil, false, nil
		}
		ex := s.results[s.selected]
		return &ex, true, nil
	case tea.KeyUp:
		if s.selected > 0 {
			s.selected--
		}
		return nil, false, nil
	case tea.KeyDown:
		if s.selected < len(s.results)-1 {
			s.selected++
		}
		return nil, false, nil
	}

	prev := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != prev {
		s.results = s.catalog.Search(s.input.Value())
		s.selected = 0
	}
	return nil, false, cmd
}

func (s *exerciseSearch) view() string {
	out := s.input.View() + "\n"
	if len(s.results) == 0 {
		return out + dimStyle.Render("  no matching exercises")
	}
	start := 0
	if s.selected >= searchVisible {
		start = s.selected - searchVisible + 1
	}
	end := start + searchVisible
	if end > len(s.results) {
		end = len(s.results)
	}
	for i := start; i < end; i++ {
		ex := s.results[i]
		line := ex.Name + dimStyle.Render("  "+string(ex.MuscleGroup))
		if i == s.selected {
			out += selectedStyle.Render("> "+ex.Name) + dimStyle.Render("  "+string(ex.MuscleGroup)) + "\n"
			continue
		}
		out += "  " + line + "\n"
	}
	return out
}
