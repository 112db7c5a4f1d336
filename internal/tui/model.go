// Package tui provides the Bubble Tea active-workout interface.
package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/model"
	"github.com/verte-zerg/liftlog/internal/workout"
)

const weightStep = 2.5

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeField
	modeConfirm
)

type fieldKind int

const (
	fieldWeight fieldKind = iota
	fieldReps
)

type stateMsg model.AppState

// Model implements the Bubble Tea workout logger.
type Model struct {
	tracker     *workout.Tracker
	catalog     *catalog.Catalog
	log         *zap.Logger
	updates     chan model.AppState
	unsubscribe func()

	width  int
	height int

	active    bool
	session   model.WorkoutSession
	templates []model.WorkoutTemplate
	rows      []row
	cursor    int

	mode      mode
	search    *exerciseSearch
	field     textinput.Model
	fieldKind fieldKind
	confirm   string
	onConfirm func() error

	status string
	err    error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the workout TUI. Call Close when the program exits.
func NewModel(tracker *workout.Tracker, cat *catalog.Catalog, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		tracker: tracker,
		catalog: cat,
		log:     log,
		updates: make(chan model.AppState, 1),
	}
	m.unsubscribe = tracker.Store().Subscribe(m.publish)
	m.apply(tracker.Store().Snapshot())
	return m
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// publish keeps only the newest state in the channel.
func (m *Model) publish(st model.AppState) {
	for {
		select {
		case m.updates <- st:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-m.updates)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForState()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case stateMsg:
		m.apply(model.AppState(msg))
		return m, m.waitForState()
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m, m.updateSearch(msg)
		case modeField:
			return m, m.updateField(msg)
		case modeConfirm:
			m.updateConfirm(msg)
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	default:
		return m, nil
	}
}

func (m *Model) apply(st model.AppState) {
	m.templates = st.Templates
	m.active = false
	m.session = model.WorkoutSession{}
	if st.ActiveWorkoutID != nil {
		for _, s := range st.Sessions {
			if s.ID == *st.ActiveWorkoutID {
				m.session = s
				m.active = true
				break
			}
		}
	}
	m.rows = buildRows(m.session)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) refresh() {
	m.apply(m.tracker.Store().Snapshot())
}

func (m *Model) fail(err error) {
	m.err = err
	m.status = ""
	m.log.Warn("workout action failed", zap.Error(err))
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	m.err = nil
	m.status = ""
	if !m.active {
		m.updateIdle(key)
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "a":
		m.search = newExerciseSearch(m.catalog)
		m.mode = modeSearch
		return m, textinput.Blink
	case "s":
		m.addSet(model.SetNormal)
	case "d":
		m.addSet(model.SetDrop)
	case "p":
		m.addDropPart()
	case " ", "x":
		m.toggle()
	case "+", "=":
		m.adjust(weightStep, 0)
	case "-":
		m.adjust(-weightStep, 0)
	case "]":
		m.adjust(0, 1)
	case "[":
		m.adjust(0, -1)
	case "w":
		return m, m.openField(fieldWeight)
	case "r":
		return m, m.openField(fieldReps)
	case "backspace", "delete":
		m.removeCurrent()
	case "f":
		m.ask("Finish workout? (y/n)", func() error {
			_, err := m.tracker.Finish(context.Background())
			return err
		})
	case "c":
		m.ask("Cancel workout and discard it? (y/n)", func() error {
			_, err := m.tracker.Cancel(context.Background())
			return err
		})
	}
	return m, nil
}

func (m *Model) updateIdle(key string) {
	switch {
	case key == "n":
		m.start(nil)
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		idx := int(key[0] - '1')
		if idx < len(m.templates) {
			m.start(&m.templates[idx].ID)
		}
	}
}

func (m *Model) start(templateID *string) {
	s, err := m.tracker.Start(context.Background(), templateID, false)
	if err != nil {
		m.fail(err)
		return
	}
	m.cursor = 0
	m.status = "Started " + s.Name
	m.refresh()
}

func (m *Model) ask(prompt string, fn func() error) {
	m.confirm = prompt
	m.onConfirm = fn
	m.mode = modeConfirm
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	fn := m.onConfirm
	m.mode = modeBrowse
	m.confirm = ""
	m.onConfirm = nil
	if msg.String() != "y" || fn == nil {
		return
	}
	if err := fn(); err != nil {
		m.fail(err)
		return
	}
	m.cursor = 0
	m.refresh()
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	picked, done, cmd := m.search.update(msg)
	if done {
		m.mode = modeBrowse
		m.search = nil
	}
	if picked != nil {
		id := picked.ID
		m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
			return e.AddExercise(s, id), nil
		})
		m.cursor = len(m.rows) - 2
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.status = "Added " + picked.Name
	}
	return cmd
}

func (m *Model) openField(kind fieldKind) tea.Cmd {
	r, ok := m.current()
	if !ok || r.kind == rowExercise {
		return nil
	}
	ex := m.session.Exercises[r.exIdx]
	set := ex.Sets[r.set]
	if r.kind == rowSet && set.Type == model.SetDrop {
		return nil
	}
	reps, weight := set.Reps, set.Weight
	if r.kind == rowPart {
		reps, weight = set.DropSets[r.part].Reps, set.DropSets[r.part].Weight
	}

	ti := textinput.New()
	ti.CharLimit = 8
	ti.Width = 10
	ti.PromptStyle = accentStyle
	if kind == fieldWeight {
		ti.Prompt = "Weight: "
		ti.SetValue(formatWeight(weight))
	} else {
		ti.Prompt = "Reps: "
		ti.SetValue(strconv.Itoa(reps))
	}
	ti.CursorEnd()
	ti.Focus()
	m.field = ti
	m.fieldKind = kind
	m.mode = modeField
	return textinput.Blink
}

func (m *Model) updateField(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = modeBrowse
		return nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.commitField(strings.TrimSpace(m.field.Value()))
		return nil
	}
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return cmd
}

func (m *Model) commitField(value string) {
	if m.fieldKind == fieldWeight {
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.fail(fmt.Errorf("invalid weight %q", value))
			return
		}
		m.patch(nil, &w)
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		m.fail(fmt.Errorf("invalid reps %q", value))
		return
	}
	m.patch(&n, nil)
}

func (m *Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) ids(r row) (exID, setID, partID string) {
	ex := m.session.Exercises[r.exIdx]
	exID = ex.ID
	if r.set >= 0 {
		setID = ex.Sets[r.set].ID
	}
	if r.part >= 0 {
		partID = ex.Sets[r.set].DropSets[r.part].ID
	}
	return exID, setID, partID
}

func (m *Model) edit(fn func(*workout.Editor, model.WorkoutSession) (model.WorkoutSession, error)) bool {
	if _, err := m.tracker.Edit(context.Background(), fn); err != nil {
		m.fail(err)
		return false
	}
	m.refresh()
	return true
}

func (m *Model) addSet(typ model.SetType) {
	r, ok := m.current()
	if !ok {
		return
	}
	exID, _, _ := m.ids(r)
	m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.AddSet(s, exID, typ)
	})
}

func (m *Model) addDropPart() {
	r, ok := m.current()
	if !ok || r.kind == rowExercise {
		return
	}
	exID, setID, _ := m.ids(r)
	m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.AddDropPart(s, exID, setID)
	})
}

func (m *Model) toggle() {
	r, ok := m.current()
	if !ok || r.kind == rowExercise {
		return
	}
	exID, setID, _ := m.ids(r)
	m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.ToggleSetCompleted(s, exID, setID)
	})
}

func (m *Model) adjust(dWeight float64, dReps int) {
	r, ok := m.current()
	if !ok || r.kind == rowExercise {
		return
	}
	set := m.session.Exercises[r.exIdx].Sets[r.set]
	reps, weight := set.Reps, set.Weight
	switch {
	case r.kind == rowPart:
		reps, weight = set.DropSets[r.part].Reps, set.DropSets[r.part].Weight
	case set.Type == model.SetDrop:
		return
	}
	reps = max(0, reps+dReps)
	weight = math.Max(0, weight+dWeight)
	m.patch(&reps, &weight)
}

// patch writes reps and/or weight to the set or drop part under the cursor.
func (m *Model) patch(reps *int, weight *float64) {
	r, ok := m.current()
	if !ok || r.kind == rowExercise {
		return
	}
	exID, setID, partID := m.ids(r)
	if r.kind == rowPart {
		m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
			return e.UpdateDropPart(s, exID, setID, partID, workout.DropPartPatch{Reps: reps, Weight: weight})
		})
		return
	}
	m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		return e.UpdateSet(s, exID, setID, workout.SetPatch{Reps: reps, Weight: weight})
	})
}

func (m *Model) removeCurrent() {
	r, ok := m.current()
	if !ok {
		return
	}
	exID, setID, partID := m.ids(r)
	if r.kind == rowExercise {
		name := m.session.Exercises[r.exIdx].ExerciseID
		if def, ok := m.catalog.Lookup(name); ok {
			name = def.Name
		}
		// Dropping an exercise takes all of its sets with it.
		m.ask(fmt.Sprintf("Remove %s and its sets? (y/n)", name), func() error {
			_, err := m.tracker.Edit(context.Background(), func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
				return e.RemoveExercise(s, exID)
			})
			return err
		})
		return
	}
	m.edit(func(e *workout.Editor, s model.WorkoutSession) (model.WorkoutSession, error) {
		switch r.kind {
		case rowSet:
			return e.RemoveSet(s, exID, setID)
		default:
			return e.RemoveDropPart(s, exID, setID, partID)
		}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch {
	case !m.active:
		content = m.renderIdle()
	case m.mode == modeSearch:
		content = m.renderSession() + "\n\n" + m.search.view()
	default:
		content = m.renderSession()
	}
	switch m.mode {
	case modeField:
		content += "\n\n" + m.field.View()
	case modeConfirm:
		content += "\n\n" + accentStyle.Render(m.confirm)
	}
	if m.err != nil {
		content += "\n\n" + errorStyle.Render("Error: "+m.err.Error())
	} else if m.status != "" {
		content += "\n\n" + dimStyle.Render(m.status)
	}

	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Left, lipgloss.Top, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderIdle() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("No active workout"))
	b.WriteString("\n\n")
	b.WriteString("  n  Freestyle Workout\n")
	for i, t := range m.templates {
		if i == 9 {
			break
		}
		names := strings.Join(m.catalog.Names(t.Exercises), ", ")
		fmt.Fprintf(&b, "  %d  %s %s\n", i+1, t.Name, dimStyle.Render(names))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderSession() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.session.Name))
	b.WriteString(dimStyle.Render("  started " + m.session.Date.Local().Format("Mon Jan 2 15:04")))
	b.WriteString("\n\n")
	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("No exercises yet. Press a to add one."))
		return b.String()
	}
	for i, r := range m.rows {
		line := m.renderRow(r)
		if i == m.cursor {
			line = selectedStyle.Render(">") + line[1:]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderRow(r row) string {
	ex := m.session.Exercises[r.exIdx]
	switch r.kind {
	case rowExercise:
		def, ok := m.catalog.Lookup(ex.ExerciseID)
		if !ok {
			return "  " + dimStyle.Render("unknown exercise "+ex.ExerciseID)
		}
		return "  " + accentStyle.Render(def.Name)
	case rowSet:
		set := ex.Sets[r.set]
		mark := "[ ]"
		if set.Completed {
			mark = doneStyle.Render("[x]")
		}
		if set.Type == model.SetDrop {
			return fmt.Sprintf("    %s Drop Set %d", mark, r.set+1)
		}
		return fmt.Sprintf("    %s Set %d  %s x %d", mark, r.set+1, formatWeight(set.Weight), set.Reps)
	default:
		part := ex.Sets[r.set].DropSets[r.part]
		return fmt.Sprintf("          - %s x %d", formatWeight(part.Weight), part.Reps)
	}
}

func (m *Model) renderFooter() string {
	if !m.active {
		return footerStyle.Render("n freestyle  1-9 template  q quit")
	}
	done, total := setCounts(m.session)
	parts := []string{
		fmt.Sprintf("Sets %d/%d", done, total),
		fmt.Sprintf("Exercises %d", len(m.session.Exercises)),
		"a add  s set  d drop  p part  x done  w/r edit  f finish  c cancel",
	}
	return footerStyle.Render(strings.Join(parts, "  |  "))
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
