package app

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/mvailla/tido/internal/config"
	"github.com/mvailla/tido/internal/notify"
	"github.com/mvailla/tido/internal/store"
)

// App holds the application state and dependencies
type App struct {
	Store    *store.Store
	Notifier *notify.Notifier
	Logger   *log.Logger
	Config   *config.Config

	logFile  *os.File
	lockFile *flock.Flock
}

// Options controls how the App is assembled
type Options struct {
	Config *config.Config

	// SingleInstance acquires an exclusive lock on the data dir. The
	// TUI sets this; the quick-add CLI does not (its writes are already
	// serialized by the slot lock).
	SingleInstance bool
}

// New creates a new application instance
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Notifier: notify.NewNotifier(cfg.Notifications),
	}

	if err := app.openLogger(); err != nil {
		return nil, err
	}

	if opts.SingleInstance {
		if err := app.acquireLock(); err != nil {
			app.closeLogger()
			return nil, err
		}
	}

	st, err := store.Open(cfg.SlotPath(), app.Logger)
	if err != nil {
		app.releaseLock()
		app.closeLogger()
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}
	app.Store = st

	return app, nil
}

// openLogger writes structured logs to a file in the data dir. The
// terminal belongs to the TUI, so nothing may log to stderr.
func (a *App) openLogger() error {
	f, err := os.OpenFile(a.Config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f

	logger := log.New(f)
	logger.SetReportTimestamp(true)
	if level, err := log.ParseLevel(a.Config.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	a.Logger = logger
	return nil
}

func (a *App) closeLogger() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of tido is already running")
	}
	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	a.releaseLock()
	a.closeLogger()
	return nil
}
