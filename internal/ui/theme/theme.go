package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Task rows
	TaskNormal lipgloss.Style
	TaskCursor lipgloss.Style
	TaskDone   lipgloss.Style
	Checkbox   lipgloss.Style
	Timestamp  lipgloss.Style

	// Filter tabs
	FilterActive   lipgloss.Style
	FilterInactive lipgloss.Style

	// Messages
	EmptyState lipgloss.Style
	Remaining  lipgloss.Style
	Celebrate  lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style

	// Input
	InputFocused lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskCursor: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		Checkbox: lipgloss.NewStyle().
			Foreground(t.Success),

		Timestamp: lipgloss.NewStyle().
			Foreground(t.Subtle),

		FilterActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		FilterInactive: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		EmptyState: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Padding(1, 2),

		Remaining: lipgloss.NewStyle().
			Foreground(t.Info),

		Celebrate: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),

		StatusErr: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Cycle switches to the next available theme and returns its name
func Cycle() string {
	themes := Available()
	for i, t := range themes {
		if t.Name == Current.Theme.Name {
			next := themes[(i+1)%len(themes)]
			SetTheme(next)
			return next.Name
		}
	}
	SetTheme(themes[0])
	return themes[0].Name
}
