// Package push delivers platform notifications for triggered reminders.
//
// The push channel is optional: when it is not configured, or its setup
// fails at startup, the engine degrades to in-app presentation only. That
// degradation is never surfaced to the user as an error.
package push

import "context"

// Sender delivers one reminder notification to the user's device.
type Sender interface {
	Send(ctx context.Context, title, body string, data map[string]string) error
}
