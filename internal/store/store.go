// Package store owns the canonical task list and its JSON slot on disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mvailla/tido/internal/model"
)

// taskRecord is the persisted form of a task. CreatedAt travels as an
// RFC3339 string and is reconstructed into a time.Time on load.
type taskRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// Store holds the ordered task list (newest first) and overwrites the
// slot file after every mutation. There is exactly one mutator context,
// so no in-process locking is needed; the flock guards the slot against
// a concurrent quick-add from a second process.
type Store struct {
	path   string
	tasks  []model.Task
	flk    *flock.Flock
	logger *log.Logger
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tido"
	}
	return filepath.Join(home, ".local", "share", "tido")
}

// DefaultSlotPath returns the default tasks file path
func DefaultSlotPath() string {
	return filepath.Join(DefaultDataDir(), "tasks.json")
}

// Open loads the slot at path. A missing file yields an empty list; a
// malformed or invalid file is logged and also yields an empty list.
// Open never returns a parse failure to the caller and never rewrites
// the slot during load.
func Open(path string, logger *log.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if logger == nil {
		logger = log.New(os.Stderr)
	}

	s := &Store{
		path:   path,
		flk:    flock.New(path + ".lock"),
		logger: logger,
	}
	s.tasks = s.load()
	return s, nil
}

// load reads and validates the slot, falling back to an empty list on
// any failure.
func (s *Store) load() []model.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read tasks file, starting empty", "path", s.path, "err", err)
		}
		return nil
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("tasks file is malformed, starting empty", "path", s.path, "err", err)
		return nil
	}

	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		task, err := rec.toTask()
		if err != nil {
			s.logger.Warn("tasks file failed validation, starting empty", "path", s.path, "record", i, "err", err)
			return nil
		}
		if seen[task.ID] {
			s.logger.Warn("tasks file has duplicate id, starting empty", "path", s.path, "id", task.ID)
			return nil
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks
}

func (r taskRecord) toTask() (model.Task, error) {
	if r.ID == "" {
		return model.Task{}, fmt.Errorf("missing id")
	}
	if r.Text == "" {
		return model.Task{}, fmt.Errorf("task %s: missing text", r.ID)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: bad created_at: %w", r.ID, err)
	}
	return model.Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		CreatedAt: createdAt,
	}, nil
}

// Add creates a task from text and prepends it to the list. Text that
// is empty after trimming is rejected as a no-op. Returns the new
// snapshot and whether a task was created.
func (s *Store) Add(text string) (model.Snapshot, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Snapshot(), false
	}

	task := model.Task{
		ID:        uuid.New().String(),
		Text:      text,
		Completed: false,
		CreatedAt: time.Now(),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persist()
	return s.Snapshot(), true
}

// Toggle flips the completed flag of the task with the given id. An
// unknown id is a no-op, not an error.
func (s *Store) Toggle(id string) model.Snapshot {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persist()
			break
		}
	}
	return s.Snapshot()
}

// Delete removes the task with the given id. An unknown id is a no-op.
// Returns the new snapshot and whether a task was removed.
func (s *Store) Delete(id string) (model.Snapshot, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist()
			return s.Snapshot(), true
		}
	}
	return s.Snapshot(), false
}

// Tasks returns a copy of the current list, newest first
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Snapshot returns the current list and its aggregates
func (s *Store) Snapshot() model.Snapshot {
	tasks := s.Tasks()
	return model.Snapshot{
		Tasks:      tasks,
		Aggregates: model.Aggregate(tasks),
	}
}

// Path returns the slot file path
func (s *Store) Path() string {
	return s.path
}

// persist serializes the full list and overwrites the slot. Writes are
// best-effort: failures are logged, never propagated.
func (s *Store) persist() {
	records := make([]taskRecord, len(s.tasks))
	for i, t := range s.tasks {
		records[i] = taskRecord{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.Format(time.RFC3339Nano),
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.logger.Error("could not marshal tasks", "err", err)
		return
	}
	data = append(data, '\n')

	if err := s.flk.Lock(); err != nil {
		s.logger.Error("could not lock tasks file", "path", s.path, "err", err)
		return
	}
	defer s.flk.Unlock()

	// Write to a temp file and rename so a crash mid-write cannot leave
	// a truncated slot behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		s.logger.Error("could not write tasks file", "path", s.path, "err", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("could not replace tasks file", "path", s.path, "err", err)
	}
}
