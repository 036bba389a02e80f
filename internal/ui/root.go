package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mvailla/tido/internal/app"
	"github.com/mvailla/tido/internal/ui/theme"
	"github.com/mvailla/tido/internal/ui/views"
)

// RootModel is the main application model
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	listView    views.ListView
	helpVisible bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:      application,
		keys:     DefaultKeyMap(),
		help:     h,
		listView: views.NewListView(application.Store, application.Notifier),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.listView.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for the header and footer chrome
		m.listView = m.listView.SetSize(m.width, m.height-4)
		return m, nil

	case tea.KeyMsg:
		// Clear transient messages on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits outside input mode
			if msg.String() == "ctrl+c" || !m.listView.IsInputMode() {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			name := theme.Cycle()
			m.statusMsg = "Theme: " + name
			return m, nil
		}

		if !m.listView.IsInputMode() && key.Matches(msg, m.keys.Help) {
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil
		}

	case views.Notice:
		m.statusMsg = msg.Message
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.listView, cmd = m.listView.Update(msg)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	content := m.listView.View()
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	title := styles.Header.Render("tido")
	return title + "\n"
}

func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	var b strings.Builder
	switch {
	case m.errorMsg != "":
		b.WriteString(styles.StatusErr.Render(m.errorMsg))
		b.WriteString("\n")
	case m.statusMsg != "":
		b.WriteString(styles.Status.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
