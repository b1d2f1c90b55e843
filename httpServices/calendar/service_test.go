package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInsertEvent(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	var gotBody insertEventRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("conferenceDataVersion")
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"evt-123","hangoutLink":"https://meet.google.com/abc-defg-hij"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	spec := EventSpec{
		Summary:             "Alice - Intro call",
		Description:         "Looking forward",
		Start:               time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		End:                 time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		AttendeeEmails:      []string{"a@x.com", "host@example.com"},
		ConferenceRequestID: "10-1748772000000",
	}

	created, err := client.InsertEvent(context.Background(), "token-1", spec)
	if err != nil {
		t.Fatalf("InsertEvent() error = %v", err)
	}
	if created.EventID != "evt-123" {
		t.Errorf("EventID = %q, want %q", created.EventID, "evt-123")
	}
	if created.MeetLink != "https://meet.google.com/abc-defg-hij" {
		t.Errorf("MeetLink = %q", created.MeetLink)
	}

	if gotPath != "/calendars/primary/events" {
		t.Errorf("path = %q, want %q", gotPath, "/calendars/primary/events")
	}
	if gotQuery != "1" {
		t.Errorf("conferenceDataVersion = %q, want %q", gotQuery, "1")
	}
	if gotAuth != "Bearer token-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer token-1")
	}
	if gotBody.Summary != spec.Summary {
		t.Errorf("summary = %q, want %q", gotBody.Summary, spec.Summary)
	}
	if gotBody.Start.DateTime != "2025-06-01T10:00:00Z" {
		t.Errorf("start = %q, want RFC3339", gotBody.Start.DateTime)
	}
	if len(gotBody.Attendees) != 2 || gotBody.Attendees[0].Email != "a@x.com" {
		t.Errorf("attendees = %+v", gotBody.Attendees)
	}
	if gotBody.Conference == nil || gotBody.Conference.CreateRequest.RequestID != "10-1748772000000" {
		t.Errorf("conference data = %+v", gotBody.Conference)
	}
}

func TestInsertEventAuthExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.InsertEvent(context.Background(), "stale", EventSpec{Summary: "x"})
	if !IsAuthExpired(err) {
		t.Fatalf("IsAuthExpired(%v) = false, want true", err)
	}

	var calErr *Error
	if !errors.As(err, &calErr) {
		t.Fatalf("error %v is not *Error", err)
	}
	if calErr.Reason != "Invalid Credentials" {
		t.Errorf("Reason = %q, want %q", calErr.Reason, "Invalid Credentials")
	}
}

func TestInsertEventNoMeetLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"evt-456"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	created, err := client.InsertEvent(context.Background(), "token-1", EventSpec{Summary: "x"})
	if err != nil {
		t.Fatalf("InsertEvent() error = %v", err)
	}
	if created.MeetLink != "" {
		t.Errorf("MeetLink = %q, want empty when provider omits hangoutLink", created.MeetLink)
	}
}

func TestDeleteEvent(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err := client.DeleteEvent(context.Background(), "token-1", "evt-123"); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != "/calendars/primary/events/evt-123" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestDeleteEventGone(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
		err := client.DeleteEvent(context.Background(), "token-1", "evt-123")
		if !IsNotFound(err) {
			t.Errorf("status %d: IsNotFound(%v) = false, want true", status, err)
		}
		server.Close()
	}
}
