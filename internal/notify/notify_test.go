package notify

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want []string
	}{
		{
			name: "normal with body",
			n: Notification{
				Title:   "Task added",
				Body:    "Buy milk",
				Urgency: UrgencyNormal,
				Timeout: 5 * time.Second,
			},
			want: []string{"-u", "normal", "-t", "5000", "-a", "tido", "Task added", "Buy milk"},
		},
		{
			name: "critical with icon",
			n: Notification{
				Title:   "Task removed",
				Body:    "Buy milk",
				Urgency: UrgencyCritical,
				Icon:    "user-trash-symbolic",
			},
			want: []string{"-u", "critical", "-i", "user-trash-symbolic", "-a", "tido", "Task removed", "Buy milk"},
		},
		{
			name: "low, no body",
			n: Notification{
				Title:   "hello",
				Urgency: UrgencyLow,
			},
			want: []string{"-u", "low", "-a", "tido", "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildArgs(tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildArgs: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisabledNotifierDoesNotRun(t *testing.T) {
	n := NewNotifier(false)
	if err := n.TaskAdded("Buy milk"); err != nil {
		t.Errorf("disabled notifier returned error: %v", err)
	}
	if n.IsEnabled() {
		t.Error("IsEnabled true after NewNotifier(false)")
	}

	n.SetEnabled(true)
	if !n.IsEnabled() {
		t.Error("IsEnabled false after SetEnabled(true)")
	}
}
