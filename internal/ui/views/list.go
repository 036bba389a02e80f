package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mvailla/tido/internal/model"
	"github.com/mvailla/tido/internal/notify"
	"github.com/mvailla/tido/internal/store"
	"github.com/mvailla/tido/internal/ui/theme"
)

// ListMode represents the current input mode of the list view
type ListMode int

const (
	ListModeNormal ListMode = iota
	ListModeAdd
)

// Notice is emitted after a mutation so the root model can show a
// transient status line.
type Notice struct {
	Message string
}

// ListView displays the task list with a three-way filter
type ListView struct {
	store    *store.Store
	notifier *notify.Notifier

	width  int
	height int

	snapshot     model.Snapshot
	filter       model.Filter
	visible      []model.Task
	cursor       int
	scrollOffset int

	mode  ListMode
	input textinput.Model
}

// NewListView creates a new list view. The filter always starts at All;
// it is never persisted.
func NewListView(st *store.Store, notifier *notify.Notifier) ListView {
	ti := textinput.New()
	ti.Placeholder = "New task..."
	ti.CharLimit = 256

	v := ListView{
		store:    st,
		notifier: notifier,
		filter:   model.FilterAll,
		input:    ti,
	}
	v.setSnapshot(st.Snapshot())
	return v
}

// Init initializes the view
func (v ListView) Init() tea.Cmd {
	return nil
}

// IsInputMode reports whether the view is capturing text input
func (v ListView) IsInputMode() bool {
	return v.mode == ListModeAdd
}

// Filter returns the currently active filter
func (v ListView) Filter() model.Filter {
	return v.filter
}

// Aggregates returns the counts for the current snapshot
func (v ListView) Aggregates() model.Aggregates {
	return v.snapshot.Aggregates
}

// SetSize updates the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	v.input.Width = width - 6
	v.ensureCursorVisible()
	return v
}

func (v *ListView) setSnapshot(snap model.Snapshot) {
	v.snapshot = snap
	v.applyFilter()
}

// applyFilter re-derives the visible list from the snapshot and clamps
// the cursor.
func (v *ListView) applyFilter() {
	v.visible = model.FilterTasks(v.snapshot.Tasks, v.filter)
	if v.cursor >= len(v.visible) {
		v.cursor = len(v.visible) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureCursorVisible()
}

func (v *ListView) setFilter(f model.Filter) {
	v.filter = f
	v.cursor = 0
	v.scrollOffset = 0
	v.applyFilter()
}

// visibleRowCount returns how many task rows fit on screen
func (v ListView) visibleRowCount() int {
	// Reserve 2 lines for the filter tabs and 2 for the footer message
	rows := v.height - 4
	if v.mode == ListModeAdd {
		rows -= 3
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *ListView) ensureCursorVisible() {
	rows := v.visibleRowCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+rows {
		v.scrollOffset = v.cursor - rows + 1
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// Update handles messages
func (v ListView) Update(msg tea.Msg) (ListView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.mode == ListModeAdd {
			return v.handleAddMode(msg)
		}
		return v.handleNormalMode(msg)
	}

	if v.mode == ListModeAdd {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v ListView) handleNormalMode(msg tea.KeyMsg) (ListView, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
			v.ensureCursorVisible()
		}
	case "down", "j":
		if v.cursor < len(v.visible)-1 {
			v.cursor++
			v.ensureCursorVisible()
		}
	case "g":
		v.cursor = 0
		v.ensureCursorVisible()
	case "G":
		if len(v.visible) > 0 {
			v.cursor = len(v.visible) - 1
			v.ensureCursorVisible()
		}

	case "a":
		v.mode = ListModeAdd
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink

	case "tab", " ":
		if len(v.visible) > 0 {
			v.setSnapshot(v.store.Toggle(v.visible[v.cursor].ID))
		}

	case "d":
		if len(v.visible) > 0 {
			task := v.visible[v.cursor]
			snap, removed := v.store.Delete(task.ID)
			v.setSnapshot(snap)
			if removed {
				return v, v.notifyRemoved(task.Text)
			}
		}

	case "1":
		v.setFilter(model.FilterAll)
	case "2":
		v.setFilter(model.FilterActive)
	case "3":
		v.setFilter(model.FilterCompleted)
	case "f":
		v.setFilter(v.filter.Next())
	}

	return v, nil
}

func (v ListView) handleAddMode(msg tea.KeyMsg) (ListView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := v.input.Value()
		v.mode = ListModeNormal
		v.input.Blur()

		snap, added := v.store.Add(text)
		v.setSnapshot(snap)
		if !added {
			// Empty or whitespace-only input: silently rejected
			return v, nil
		}
		v.cursor = 0
		v.ensureCursorVisible()
		return v, v.notifyAdded(snap.Tasks[0].Text)

	case "esc":
		v.mode = ListModeNormal
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// notifyAdded sends the desktop notice off the event loop and surfaces
// a status line.
func (v ListView) notifyAdded(text string) tea.Cmd {
	notifier := v.notifier
	return func() tea.Msg {
		notifier.TaskAdded(text)
		return Notice{Message: fmt.Sprintf("Added %q", text)}
	}
}

func (v ListView) notifyRemoved(text string) tea.Cmd {
	notifier := v.notifier
	return func() tea.Msg {
		notifier.TaskRemoved(text)
		return Notice{Message: fmt.Sprintf("Removed %q", text)}
	}
}

// View renders the list
func (v ListView) View() string {
	styles := theme.Current.Styles

	var b strings.Builder

	b.WriteString(v.renderFilterTabs())
	b.WriteString("\n\n")

	if v.mode == ListModeAdd {
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n\n")
	}

	if len(v.visible) == 0 {
		b.WriteString(styles.EmptyState.Render(emptyStateMessage(v.filter)))
	} else {
		rows := v.visibleRowCount()
		end := v.scrollOffset + rows
		if end > len(v.visible) {
			end = len(v.visible)
		}
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderTask(v.visible[i], i == v.cursor))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	if footer := footerMessage(v.snapshot.Aggregates); footer != "" {
		b.WriteString("\n\n")
		if v.snapshot.Aggregates.Active == 0 {
			b.WriteString(styles.Celebrate.Render(footer))
		} else {
			b.WriteString(styles.Remaining.Render(footer))
		}
	}

	return b.String()
}

func (v ListView) renderFilterTabs() string {
	styles := theme.Current.Styles

	var tabs []string
	for _, f := range []model.Filter{model.FilterAll, model.FilterActive, model.FilterCompleted} {
		label := f.String()
		switch f {
		case model.FilterAll:
			label = fmt.Sprintf("%s (%d)", label, v.snapshot.Aggregates.Total)
		case model.FilterActive:
			label = fmt.Sprintf("%s (%d)", label, v.snapshot.Aggregates.Active)
		case model.FilterCompleted:
			label = fmt.Sprintf("%s (%d)", label, v.snapshot.Aggregates.Completed)
		}
		if f == v.filter {
			tabs = append(tabs, styles.FilterActive.Render(label))
		} else {
			tabs = append(tabs, styles.FilterInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v ListView) renderTask(task model.Task, isCursor bool) string {
	styles := theme.Current.Styles

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[✓]"
	}

	text := task.Text
	maxText := v.width - 24
	if runes := []rune(text); maxText > 0 && len(runes) > maxText {
		text = string(runes[:maxText-1]) + "…"
	}

	line := fmt.Sprintf("%s %s", styles.Checkbox.Render(checkbox), text)
	line += styles.Timestamp.Render("  " + task.FormatCreatedAt())

	switch {
	case isCursor:
		return styles.TaskCursor.Render(line)
	case task.Completed:
		return styles.TaskDone.Render(line)
	default:
		return styles.TaskNormal.Render(line)
	}
}

// emptyStateMessage maps the active filter to the message shown when
// the filtered list is empty.
func emptyStateMessage(filter model.Filter) string {
	switch filter {
	case model.FilterActive:
		return "No active tasks."
	case model.FilterCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks yet. Press 'a' to add one."
	}
}

// footerMessage returns the footer line, or "" when the list is empty.
func footerMessage(agg model.Aggregates) string {
	if agg.Total == 0 {
		return ""
	}
	if agg.Active == 0 {
		return "All tasks complete! 🎉"
	}
	if agg.Active == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", agg.Active)
}
