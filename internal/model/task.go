package model

import (
	"time"
)

// Filter selects which tasks are shown
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// String returns the display name for a filter
func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Next returns the next filter in the all → active → completed cycle
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Task represents a todo item
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// FormatCreatedAt returns the creation time in the short form shown
// next to each task (month/day plus hour:minute).
func (t *Task) FormatCreatedAt() string {
	return t.CreatedAt.Format("Jan 2 15:04")
}

// Aggregates holds the derived counts for a task list.
// Total == Active + Completed always holds.
type Aggregates struct {
	Total     int
	Active    int
	Completed int
}

// Snapshot is the authoritative state returned by every store mutation.
// The view layer re-derives its display from a snapshot rather than
// holding a reference into the store.
type Snapshot struct {
	Tasks      []Task
	Aggregates Aggregates
}

// FilterTasks returns the tasks matching filter, preserving relative
// order. The input is never mutated; FilterAll returns the input as-is.
func FilterTasks(tasks []Task, filter Filter) []Task {
	switch filter {
	case FilterActive:
		var out []Task
		for _, t := range tasks {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out
	case FilterCompleted:
		var out []Task
		for _, t := range tasks {
			if t.Completed {
				out = append(out, t)
			}
		}
		return out
	default:
		return tasks
	}
}

// Aggregate computes the derived counts for tasks
func Aggregate(tasks []Task) Aggregates {
	agg := Aggregates{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			agg.Completed++
		} else {
			agg.Active++
		}
	}
	return agg
}
