package bookingflow

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure for callers that map it to an HTTP
// status or a user-facing message.
type Kind string

const (
	KindNotFound                Kind = "NotFound"
	KindUnauthorized            Kind = "Unauthorized"
	KindCredentialMissing       Kind = "CredentialMissing"
	KindCredentialRefreshFailed Kind = "CredentialRefreshFailed"
	KindCalendarError           Kind = "CalendarError"
	KindPersistenceError        Kind = "PersistenceError"
)

// Error is a terminal workflow failure. Best-effort steps (notification,
// enrichment) never produce one; their failures surface as Result warnings.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the workflow error kind, or "" for other errors.
func KindOf(err error) Kind {
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return wfErr.Kind
	}
	return ""
}
