package booking

import (
	"fmt"
	"net/mail"
	"time"
)

// BookingCreateRequest represents the request payload for booking a slot.
// Answers keys are the event's question prompts.
type BookingCreateRequest struct {
	EventID        uint              `json:"event_id" validate:"required"`
	Name           string            `json:"name" validate:"required,min=1,max=255"`
	Email          string            `json:"email" validate:"required,email"`
	StartTime      time.Time         `json:"start_time" validate:"required"`
	EndTime        time.Time         `json:"end_time" validate:"required"`
	AdditionalInfo string            `json:"additional_info" validate:"omitempty"`
	Answers        map[string]string `json:"answers" validate:"omitempty"`
	LinkedinURL    string            `json:"linkedin_url" validate:"omitempty,max=2048"`
}

func (b BookingCreateRequest) Validate() error {
	if b.EventID == 0 {
		return fmt.Errorf("event_id is required")
	}
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if b.Email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(b.Email); err != nil {
		return fmt.Errorf("email is invalid")
	}
	if b.StartTime.IsZero() || b.EndTime.IsZero() {
		return fmt.Errorf("start_time and end_time are required")
	}
	if !b.StartTime.Before(b.EndTime) {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}
