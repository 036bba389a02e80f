package ui

// Messages for inter-component communication

// StatusMsg contains a transient status message to display
type StatusMsg struct {
	Message string
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
