package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestAddNewestFirst(t *testing.T) {
	s := openTestStore(t)

	texts := []string{"Buy milk", "Walk dog", "Write report"}
	for _, text := range texts {
		if _, ok := s.Add(text); !ok {
			t.Fatalf("Add(%q) rejected", text)
		}
	}

	tasks := s.Tasks()
	if len(tasks) != len(texts) {
		t.Fatalf("task count: got %d, want %d", len(tasks), len(texts))
	}
	// Newest first: reverse of insertion order
	for i, task := range tasks {
		want := texts[len(texts)-1-i]
		if task.Text != want {
			t.Errorf("tasks[%d].Text: got %q, want %q", i, task.Text, want)
		}
		if task.Completed {
			t.Errorf("tasks[%d] created completed", i)
		}
		if task.ID == "" {
			t.Errorf("tasks[%d] has empty id", i)
		}
	}
}

func TestAddTrimsText(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.Add("  Buy milk  "); !ok {
		t.Fatal("Add rejected trimmable text")
	}
	if got := s.Tasks()[0].Text; got != "Buy milk" {
		t.Errorf("text not trimmed: got %q", got)
	}
}

func TestAddRejectsEmptyInput(t *testing.T) {
	s := openTestStore(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		snap, ok := s.Add(text)
		if ok {
			t.Errorf("Add(%q) accepted", text)
		}
		if len(snap.Tasks) != 0 {
			t.Errorf("Add(%q) changed list length to %d", text, len(snap.Tasks))
		}
	}
}

func TestAddUniqueIDs(t *testing.T) {
	s := openTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s.Add("task")
	}
	for _, task := range s.Tasks() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestToggleInvolution(t *testing.T) {
	s := openTestStore(t)
	s.Add("Buy milk")
	id := s.Tasks()[0].ID

	snap := s.Toggle(id)
	if !snap.Tasks[0].Completed {
		t.Fatal("first toggle did not complete task")
	}
	if snap.Aggregates.Completed != 1 || snap.Aggregates.Active != 0 {
		t.Errorf("aggregates after toggle: %+v", snap.Aggregates)
	}

	snap = s.Toggle(id)
	if snap.Tasks[0].Completed {
		t.Fatal("second toggle did not restore task")
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	s := openTestStore(t)
	s.Add("Buy milk")

	snap := s.Toggle("nope")
	if len(snap.Tasks) != 1 || snap.Tasks[0].Completed {
		t.Errorf("unknown toggle changed state: %+v", snap.Tasks)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	s.Add("A")
	s.Add("B")
	id := s.Tasks()[1].ID // "A"

	snap, ok := s.Delete(id)
	if !ok {
		t.Fatal("Delete reported no-op for existing task")
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].Text != "B" {
		t.Errorf("list after delete: %+v", snap.Tasks)
	}

	if _, ok := s.Delete("nope"); ok {
		t.Error("Delete reported removal for unknown id")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Add("A")
	s.Add("B")
	s.Toggle(s.Tasks()[0].ID) // complete "B"
	want := s.Tasks()

	reopened, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got := reopened.Tasks()

	if len(got) != len(want) {
		t.Fatalf("task count after reload: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("tasks[%d].ID: got %s, want %s", i, got[i].ID, want[i].ID)
		}
		if got[i].Text != want[i].Text {
			t.Errorf("tasks[%d].Text: got %q, want %q", i, got[i].Text, want[i].Text)
		}
		if got[i].Completed != want[i].Completed {
			t.Errorf("tasks[%d].Completed: got %v, want %v", i, got[i].Completed, want[i].Completed)
		}
		if !got[i].CreatedAt.Equal(want[i].CreatedAt) {
			t.Errorf("tasks[%d].CreatedAt: got %v, want %v", i, got[i].CreatedAt, want[i].CreatedAt)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := openTestStore(t)
	if len(s.Tasks()) != 0 {
		t.Errorf("missing file should yield empty list, got %d tasks", len(s.Tasks()))
	}
}

func TestOpenMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json{"},
		{"wrong shape", `{"tasks": "nope"}`},
		{"missing id", `[{"text": "A", "completed": false, "created_at": "2026-01-02T15:04:05Z"}]`},
		{"missing text", `[{"id": "t1", "completed": false, "created_at": "2026-01-02T15:04:05Z"}]`},
		{"bad timestamp", `[{"id": "t1", "text": "A", "completed": false, "created_at": "yesterday"}]`},
		{"duplicate ids", `[{"id": "t1", "text": "A", "completed": false, "created_at": "2026-01-02T15:04:05Z"},
			{"id": "t1", "text": "B", "completed": false, "created_at": "2026-01-02T15:04:05Z"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			s, err := Open(path, testLogger())
			if err != nil {
				t.Fatalf("Open returned error for malformed file: %v", err)
			}
			if len(s.Tasks()) != 0 {
				t.Errorf("malformed file should yield empty list, got %d tasks", len(s.Tasks()))
			}
		})
	}
}

func TestOpenDoesNotRewriteSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := []byte("not json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Open(path, testLogger()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(after) != string(content) {
		t.Error("Open rewrote the slot during load")
	}
}

func TestPersistOverwritesWholeSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Add("A")
	s.Add("B")
	id := s.Tasks()[0].ID
	s.Delete(id)

	reopened, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	tasks := reopened.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "A" {
		t.Errorf("slot content after delete: %+v", tasks)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := openTestStore(t)
	s.Add("A")

	snap := s.Snapshot()
	snap.Tasks[0].Text = "mutated"

	if s.Tasks()[0].Text != "A" {
		t.Error("snapshot aliases store state")
	}
}

func TestScenarioAddToggleFilterDelete(t *testing.T) {
	s := openTestStore(t)

	s.Add("A")
	snap, _ := s.Add("B")

	if snap.Tasks[0].Text != "B" || snap.Tasks[1].Text != "A" {
		t.Fatalf("expected [B A], got %+v", snap.Tasks)
	}

	bID := snap.Tasks[0].ID
	snap = s.Toggle(bID)
	if snap.Aggregates.Completed != 1 || snap.Aggregates.Active != 1 || snap.Aggregates.Total != 2 {
		t.Fatalf("aggregates after toggle: %+v", snap.Aggregates)
	}

	snap, _ = s.Delete(bID)
	snap, _ = s.Delete(snap.Tasks[0].ID)
	if snap.Aggregates.Total != 0 {
		t.Fatalf("expected empty list, got %+v", snap)
	}
}

func TestCreatedAtRoundTripPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	s, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Add("A")
	created := s.Tasks()[0].CreatedAt

	reopened, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got := reopened.Tasks()[0].CreatedAt
	if !got.Equal(created) {
		t.Errorf("CreatedAt drifted across round trip: got %v, want %v", got, created)
	}
	if got.Sub(created) > time.Microsecond || created.Sub(got) > time.Microsecond {
		t.Errorf("CreatedAt precision lost: got %v, want %v", got, created)
	}
}
