package calendar

import "time"

// EventSpec describes the calendar event to create. ConferenceRequestID is
// the caller-chosen idempotency key for conferencing-room creation, so a
// retried insert never produces a duplicate Meet room.
type EventSpec struct {
	Summary             string
	Description         string
	Start               time.Time
	End                 time.Time
	AttendeeEmails      []string
	ConferenceRequestID string
}

// CreatedEvent is the provider's response to a successful insert. MeetLink
// is empty when conferencing-room creation failed; callers treat that as a
// non-fatal missing field.
type CreatedEvent struct {
	EventID  string
	MeetLink string
}

type insertEventRequest struct {
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Start       eventDateTime   `json:"start"`
	End         eventDateTime   `json:"end"`
	Attendees   []eventAttendee `json:"attendees,omitempty"`
	Conference  *conferenceData `json:"conferenceData,omitempty"`
}

type eventDateTime struct {
	DateTime string `json:"dateTime"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type conferenceData struct {
	CreateRequest conferenceCreateRequest `json:"createRequest"`
}

type conferenceCreateRequest struct {
	RequestID string `json:"requestId"`
}

type insertEventResponse struct {
	ID          string `json:"id"`
	HangoutLink string `json:"hangoutLink"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
