// Package notify sends transient desktop notifications via notify-send.
package notify

import (
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	cmd := exec.Command("notify-send", buildArgs(notification)...)
	return cmd.Run()
}

// buildArgs translates a notification into notify-send arguments
func buildArgs(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tido")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	return args
}

// TaskAdded sends the confirmation notice for a newly created task
func (n *Notifier) TaskAdded(text string) error {
	return n.Send(Notification{
		Title:   "Task added",
		Body:    text,
		Urgency: UrgencyNormal,
		Timeout: 5 * time.Second,
		Icon:    "checkbox-symbolic",
	})
}

// TaskRemoved sends the destructive-styled notice for a deleted task
func (n *Notifier) TaskRemoved(text string) error {
	return n.Send(Notification{
		Title:   "Task removed",
		Body:    text,
		Urgency: UrgencyCritical,
		Timeout: 5 * time.Second,
		Icon:    "user-trash-symbolic",
	})
}
