package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvailla/tido/internal/app"
	"github.com/mvailla/tido/internal/config"
	"github.com/mvailla/tido/internal/ui"
	"github.com/mvailla/tido/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "version":
			fmt.Printf("tido v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	configFlag := flag.String("config", "", "Config file path")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox)")
	flag.Parse()

	if err := runTUI(*configFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `tido - a small task list for the terminal

Usage:
  tido                  Start the TUI
  tido add <task>       Quick add a task
  tido version          Show version
  tido help             Show this help

TUI Options:
  --config <path>   Config file (default ~/.config/tido/config.toml)
  --theme <name>    Theme (nord, dracula, gruvbox)

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom

  Actions:      a             Add new task
                tab/space     Toggle done
                d             Delete task

  Filters:      1/2/3         All / Active / Completed
                f             Cycle filter

  General:      ?             Help
                ctrl+t        Cycle theme
                q             Quit`

	fmt.Println(help)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tido add <task>")
		fmt.Fprintln(os.Stderr, "Example: tido add \"Buy groceries\"")
		os.Exit(1)
	}

	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Quick add shares the slot lock with a running TUI; no instance
	// lock is needed.
	application, err := app.New(app.Options{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	text := strings.Join(args, " ")
	snap, added := application.Store.Add(text)
	if !added {
		fmt.Fprintln(os.Stderr, "Nothing to add: task text is empty")
		os.Exit(1)
	}

	task := snap.Tasks[0]
	application.Notifier.TaskAdded(task.Text)
	fmt.Printf("Added: %s\n", task.Text)
	fmt.Printf("Tasks: %d total, %d active\n", snap.Aggregates.Total, snap.Aggregates.Active)
}

func runTUI(configPath, themeName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	application, err := app.New(app.Options{Config: cfg, SingleInstance: true})
	if err != nil {
		return err
	}
	defer application.Close()

	// Flag wins over config file
	name := cfg.Theme
	if themeName != "" {
		name = themeName
	}
	if t, ok := theme.ByName(name); ok {
		theme.SetTheme(t)
	}

	model := ui.NewRootModel(application)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
