package calendar

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed failure from the Google Calendar API.
type Error struct {
	StatusCode int
	Reason     string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("calendar API error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("calendar API error: status=%d reason=%s", e.StatusCode, e.Reason)
}

// IsAuthExpired reports whether err is the provider's "token invalid"
// signal. Only this code is retried by the token-refresh wrapper.
func IsAuthExpired(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err means the calendar event no longer exists
// on the provider side. Google returns 410 Gone for already-deleted events.
func IsNotFound(err error) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.StatusCode == http.StatusNotFound || ce.StatusCode == http.StatusGone
}
