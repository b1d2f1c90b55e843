package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"meetly/httpServices/calendar"
	"meetly/httpServices/identity"
	"meetly/logger"
	bookingModel "meetly/models/booking"
	eventModel "meetly/models/event"
	userModel "meetly/models/user"
	"meetly/services/tokenrefresh"
	bookingTypes "meetly/types/booking"

	"gorm.io/gorm"
)

// Store is the persistence surface the workflow needs. The GORM-backed
// implementation lives in the database package.
type Store interface {
	FindEventWithHost(ctx context.Context, eventID uint) (*eventModel.Event, error)
	FindUserByIdentityID(ctx context.Context, identityID string) (*userModel.User, error)
	FindBookingWithHost(ctx context.Context, bookingID uint) (*bookingModel.Booking, error)
	CreateBooking(ctx context.Context, b *bookingModel.Booking) error
	UpdateBookingEnrichment(ctx context.Context, bookingID uint, note, summary string) error
	DeleteBooking(ctx context.Context, bookingID uint) error
}

// Calendar creates and deletes provider events with an explicit bearer
// credential per call.
type Calendar interface {
	InsertEvent(ctx context.Context, accessToken string, spec calendar.EventSpec) (*calendar.CreatedEvent, error)
	DeleteEvent(ctx context.Context, accessToken, eventID string) error
}

// Notifier sends the host one email about a persisted booking.
type Notifier interface {
	SendBookingNotification(ctx context.Context, b *bookingModel.Booking, ev *eventModel.Event) error
}

// Enricher generates the host-facing note and attendee summary from the
// answers mapping and optional LinkedIn URL.
type Enricher interface {
	Generate(ctx context.Context, answers map[string]string, linkedinURL string) (note, summary string, err error)
}

// Result is a successful booking outcome. Warnings carry best-effort
// failures (notification, enrichment) that never affect Success.
type Result struct {
	Success  bool                  `json:"success"`
	Booking  *bookingModel.Booking `json:"booking"`
	MeetLink string                `json:"meet_link"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Service orchestrates the booking workflow: resolve the host's delegated
// credential, mutate their Google Calendar with a single transparent
// refresh-retry, persist the authoritative booking row, then run
// best-effort notification and enrichment.
type Service struct {
	store    Store
	tokens   tokenrefresh.TokenSource
	calendar Calendar
	notifier Notifier
	enricher Enricher

	calendarTimeout time.Duration
	notifyTimeout   time.Duration
	enrichTimeout   time.Duration
}

func NewService(store Store, tokens tokenrefresh.TokenSource, cal Calendar, notifier Notifier, enricher Enricher) *Service {
	return &Service{
		store:           store,
		tokens:          tokens,
		calendar:        cal,
		notifier:        notifier,
		enricher:        enricher,
		calendarTimeout: 15 * time.Second,
		notifyTimeout:   10 * time.Second,
		enrichTimeout:   30 * time.Second,
	}
}

// CreateBooking books a slot: it creates the Google Calendar event on the
// host's behalf (refreshing an expired token once), persists the booking
// row, and dispatches notification and enrichment concurrently. Once the
// row is written the booking is successful no matter what the best-effort
// steps do.
func (s *Service) CreateBooking(ctx context.Context, req bookingTypes.BookingCreateRequest) (*Result, error) {
	ev, err := s.store.FindEventWithHost(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(KindNotFound, "Event not found", err)
		}
		return nil, newError(KindPersistenceError, "Failed to load event", err)
	}
	host := &ev.User

	spec := calendar.EventSpec{
		Summary:        fmt.Sprintf("%s - %s", req.Name, ev.Title),
		Description:    req.AdditionalInfo,
		Start:          req.StartTime,
		End:            req.EndTime,
		AttendeeEmails: []string{req.Email, host.Email},
		// Deterministic per call so client-side retries within this call
		// cannot create duplicate Meet rooms.
		ConferenceRequestID: fmt.Sprintf("%d-%d", ev.ID, time.Now().UnixMilli()),
	}

	var created *calendar.CreatedEvent
	calCtx, cancel := context.WithTimeout(ctx, s.calendarTimeout)
	defer cancel()
	err = tokenrefresh.Do(calCtx, s.tokens, host.IdentityID, func(ctx context.Context, accessToken string) error {
		res, insertErr := s.calendar.InsertEvent(ctx, accessToken, spec)
		if insertErr != nil {
			return insertErr
		}
		created = res
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrCredentialMissing):
			return nil, newError(KindCredentialMissing, "Event host has not connected Google Calendar", err)
		case errors.Is(err, tokenrefresh.ErrRefreshFailed):
			return nil, newError(KindCredentialRefreshFailed,
				"Failed to refresh Google Calendar access. Please reconnect your Google Calendar.", err)
		default:
			return nil, newError(KindCalendarError, "Failed to create calendar event", err)
		}
	}

	b := &bookingModel.Booking{
		EventID:        ev.ID,
		UserID:         ev.UserID,
		Name:           req.Name,
		Email:          req.Email,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AdditionalInfo: req.AdditionalInfo,
		Answers:        req.Answers,
		GoogleEventID:  created.EventID,
		MeetLink:       created.MeetLink,
	}
	if req.LinkedinURL != "" {
		b.LinkedinURL = &req.LinkedinURL
	}

	// Durability point: after this write the booking is successful.
	if err := s.store.CreateBooking(ctx, b); err != nil {
		logger.Error(fmt.Sprintf("Booking insert failed after calendar event %s was created", created.EventID), err)
		return nil, newError(KindPersistenceError, "Failed to save booking", err)
	}
	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", b.ID))

	result := &Result{Success: true, Booking: b, MeetLink: b.MeetLink}
	result.Warnings = s.runPostBookingSteps(ctx, b, ev)
	return result, nil
}

// runPostBookingSteps dispatches notification and enrichment concurrently;
// neither depends on the other's outcome. Failures are logged and returned
// as warnings, never as errors.
func (s *Service) runPostBookingSteps(ctx context.Context, b *bookingModel.Booking, ev *eventModel.Event) []string {
	var (
		mu       sync.Mutex
		warnings []string
		wg       sync.WaitGroup
	)
	warn := func(msg string) {
		mu.Lock()
		warnings = append(warnings, msg)
		mu.Unlock()
	}

	if s.notifier != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
			defer cancel()
			if err := s.notifier.SendBookingNotification(nCtx, b, ev); err != nil {
				logger.Error("Failed to send booking notification email", err)
				warn("notification failed: " + err.Error())
			}
		}()
	}

	if s.enricher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ctx.Err() != nil {
				// Request canceled before enrichment started; the booking
				// stays durable with empty enrichment fields.
				return
			}
			eCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
			defer cancel()

			linkedinURL := ""
			if b.LinkedinURL != nil {
				linkedinURL = *b.LinkedinURL
			}
			note, summary, err := s.enricher.Generate(eCtx, b.Answers, linkedinURL)
			if err != nil {
				logger.Error("Failed to generate AI notes", err)
				warn("enrichment failed: " + err.Error())
				return
			}
			if note == "" && summary == "" {
				return
			}
			if err := s.store.UpdateBookingEnrichment(ctx, b.ID, note, summary); err != nil {
				logger.Error("Failed to save AI notes", err)
				warn("enrichment persist failed: " + err.Error())
				return
			}
			b.AugmentedNote = note
			b.LinkedinSummary = summary
		}()
	}

	wg.Wait()
	return warnings
}

// CancelBooking removes a booking on behalf of the host who owns its
// event. The provider-side delete is best-effort: a missing remote event
// or any non-credential calendar failure never blocks removal of the local
// row, so a stale booking can always be cleaned up.
func (s *Service) CancelBooking(ctx context.Context, requesterIdentityID string, bookingID uint) error {
	requester, err := s.store.FindUserByIdentityID(ctx, requesterIdentityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindUnauthorized, "User not found", err)
		}
		return newError(KindPersistenceError, "Failed to load user", err)
	}

	b, err := s.store.FindBookingWithHost(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(KindNotFound, "Meeting not found or unauthorized", err)
		}
		return newError(KindPersistenceError, "Failed to load booking", err)
	}
	if b.UserID != requester.ID {
		return newError(KindNotFound, "Meeting not found or unauthorized", nil)
	}
	host := &b.User

	calCtx, cancel := context.WithTimeout(ctx, s.calendarTimeout)
	defer cancel()
	err = tokenrefresh.Do(calCtx, s.tokens, host.IdentityID, func(ctx context.Context, accessToken string) error {
		return s.calendar.DeleteEvent(ctx, accessToken, b.GoogleEventID)
	})
	if err != nil {
		switch {
		case calendar.IsNotFound(err):
			logger.Warning(fmt.Sprintf("Calendar event %s already gone on provider side", b.GoogleEventID))
		case errors.Is(err, tokenrefresh.ErrRefreshFailed):
			return newError(KindCredentialRefreshFailed,
				"Failed to refresh Google Calendar access. Please reconnect your Google Calendar.", err)
		default:
			// The local record stays authoritative.
			logger.Error("Failed to delete event from Google Calendar", err)
		}
	}

	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		return newError(KindPersistenceError, "Failed to delete booking", err)
	}
	logger.Success(fmt.Sprintf("Booking %d cancelled", bookingID))

	return nil
}
