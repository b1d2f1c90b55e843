package booking

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"meetly/models/event"
	"meetly/models/user"
)

// Booking is the authoritative record of a booked slot. A row is only ever
// inserted after the Google Calendar event was created, so GoogleEventID is
// always set. AugmentedNote and LinkedinSummary start empty and are filled
// in once by the enrichment step after the booking is already durable.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for events relationship
	EventID uint        `gorm:"not null;index" json:"event_id"`
	Event   event.Event `gorm:"foreignKey:EventID" json:"event"`

	// Host id, denormalized from the event for listing queries
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);not null" json:"email"`
	StartTime      time.Time `gorm:"not null;index" json:"start_time"`
	EndTime        time.Time `gorm:"not null" json:"end_time"`
	AdditionalInfo string    `gorm:"type:text" json:"additional_info"`
	Answers        AnswerMap `gorm:"type:json" json:"answers"`
	LinkedinURL    *string   `gorm:"type:varchar(2048)" json:"linkedin_url,omitempty"`

	GoogleEventID string `gorm:"type:varchar(255);not null" json:"google_event_id"`
	MeetLink      string `gorm:"type:varchar(2048)" json:"meet_link"`

	AugmentedNote   string `gorm:"type:text" json:"augmented_note"`
	LinkedinSummary string `gorm:"type:text" json:"linkedin_summary"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AnswerMap stores the question -> answer mapping as a JSON column.
// Keys are the question prompts; order is irrelevant.
type AnswerMap map[string]string

// Scan implements the Scanner interface for database deserialization
func (am *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*am = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, am)
}

// Value implements the driver Valuer interface for database serialization
func (am AnswerMap) Value() (driver.Value, error) {
	if am == nil {
		return nil, nil
	}
	return json.Marshal(am)
}
