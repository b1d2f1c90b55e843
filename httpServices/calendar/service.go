package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/calendar/v3"

// calendarID "primary" targets the host's default calendar.
const calendarID = "primary"

// Client is a thin typed wrapper over the Google Calendar v3 event-insert
// and event-delete operations. Each call takes the bearer credential
// explicitly so the token-refresh wrapper can rebind it on retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InsertEvent creates a calendar event with an auto-generated Meet link.
func (c *Client) InsertEvent(ctx context.Context, accessToken string, spec EventSpec) (*CreatedEvent, error) {
	reqBody := insertEventRequest{
		Summary:     spec.Summary,
		Description: spec.Description,
		Start:       eventDateTime{DateTime: spec.Start.Format(time.RFC3339)},
		End:         eventDateTime{DateTime: spec.End.Format(time.RFC3339)},
	}
	for _, email := range spec.AttendeeEmails {
		reqBody.Attendees = append(reqBody.Attendees, eventAttendee{Email: email})
	}
	if spec.ConferenceRequestID != "" {
		reqBody.Conference = &conferenceData{
			CreateRequest: conferenceCreateRequest{RequestID: spec.ConferenceRequestID},
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	// conferenceDataVersion=1 asks the provider to create the Meet room.
	endpoint := fmt.Sprintf("%s/calendars/%s/events?conferenceDataVersion=1", c.baseURL, calendarID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var created insertEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode event response: %w", err)
	}

	return &CreatedEvent{
		EventID:  created.ID,
		MeetLink: created.HangoutLink,
	}, nil
}

// DeleteEvent removes a calendar event by provider event id.
func (c *Client) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s", c.baseURL, calendarID, url.PathEscape(eventID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	return nil
}

func apiError(resp *http.Response) error {
	calErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return calErr
	}

	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		calErr.Reason = envelope.Error.Message
	}

	return calErr
}
