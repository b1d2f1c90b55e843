package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	bookingModel "meetly/models/booking"
	eventModel "meetly/models/event"
)

const defaultBaseURL = "https://api.sendgrid.com"

// Client sends booking notification emails to hosts through the SendGrid
// v3 mail-send API.
type Client struct {
	apiKey     string
	fromEmail  string
	baseURL    string
	httpClient *http.Client
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

func NewClient(apiKey, fromEmail string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type sendGridEmail struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []emailContent    `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendBookingNotification emails the host about a freshly persisted
// booking. Exactly one send is attempted; the caller treats failure as
// non-fatal.
func (c *Client) SendBookingNotification(ctx context.Context, b *bookingModel.Booking, ev *eventModel.Event) error {
	if !c.Configured() {
		return fmt.Errorf("mailer not configured: missing API key")
	}

	subject := fmt.Sprintf("New booking: %s - %s", b.Name, ev.Title)
	payload := sendGridEmail{
		Personalizations: []personalization{
			{To: []emailAddress{{Email: ev.User.Email, Name: ev.User.Name}}},
		},
		From:    emailAddress{Email: c.fromEmail},
		Subject: subject,
		Content: []emailContent{
			{Type: "text/html", Value: buildBookingEmailBody(b, ev)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid API error: status %d", resp.StatusCode)
	}

	return nil
}

func buildBookingEmailBody(b *bookingModel.Booking, ev *eventModel.Event) string {
	var sb strings.Builder

	date := b.StartTime.Format("Monday, January 2, 2006")
	window := fmt.Sprintf("%s - %s", b.StartTime.Format("03:04 PM"), b.EndTime.Format("03:04 PM"))

	sb.WriteString(fmt.Sprintf("<h2>New booking for %s</h2>", ev.Title))
	sb.WriteString(fmt.Sprintf("<p><strong>%s</strong> (%s) booked a slot.</p>", b.Name, b.Email))
	sb.WriteString(fmt.Sprintf("<p>%s<br/>%s</p>", date, window))

	if b.AdditionalInfo != "" {
		sb.WriteString(fmt.Sprintf("<p><strong>Additional info:</strong> %s</p>", b.AdditionalInfo))
	}

	if len(b.Answers) > 0 {
		sb.WriteString("<h3>Additional Questions &amp; Answers</h3><ul>")
		for _, q := range ev.Questions {
			if a, ok := b.Answers[q]; ok {
				if a == "" {
					a = "-"
				}
				sb.WriteString(fmt.Sprintf("<li><strong>%s</strong><br/>%s</li>", q, a))
			}
		}
		sb.WriteString("</ul>")
	}

	if b.LinkedinURL != nil && *b.LinkedinURL != "" {
		sb.WriteString(fmt.Sprintf(`<p>LinkedIn: <a href="%s">%s</a></p>`, *b.LinkedinURL, *b.LinkedinURL))
	}

	if b.MeetLink != "" {
		sb.WriteString(fmt.Sprintf(`<p><a href="%s">Join Google Meet</a></p>`, b.MeetLink))
	}

	return sb.String()
}
