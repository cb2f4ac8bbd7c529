// File: services/chat/errors.go
package chat

import (
	"fmt"
	"time"
)

// WindowExpiredError reports a cancellation attempt made after the
// allowed window closed. Deadline is the instant the window closed.
type WindowExpiredError struct {
	UserID   string
	Deadline time.Time
}

func (e *WindowExpiredError) Error() string {
	return fmt.Sprintf("cancellation window for %s expired at %s", e.UserID, e.Deadline.Format(time.RFC3339))
}

// AlreadyCancelledError reports a cancellation attempt against a
// record that is no longer active.
type AlreadyCancelledError struct {
	UserID string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("record %s is already cancelled", e.UserID)
}
