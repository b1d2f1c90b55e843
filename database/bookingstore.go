package database

import (
	"context"

	bookingModel "meetly/models/booking"
	eventModel "meetly/models/event"
	userModel "meetly/models/user"

	"gorm.io/gorm"
)

// BookingStore is the GORM-backed persistence layer used by the booking
// workflow. Not-found conditions surface as gorm.ErrRecordNotFound.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) FindEventWithHost(ctx context.Context, eventID uint) (*eventModel.Event, error) {
	var ev eventModel.Event
	if err := s.db.WithContext(ctx).Preload("User").First(&ev, eventID).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *BookingStore) FindUserByIdentityID(ctx context.Context, identityID string) (*userModel.User, error) {
	var u userModel.User
	if err := s.db.WithContext(ctx).Where("identity_id = ?", identityID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *BookingStore) FindBookingWithHost(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.db.WithContext(ctx).Preload("User").Preload("Event").First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) CreateBooking(ctx context.Context, b *bookingModel.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *BookingStore) UpdateBookingEnrichment(ctx context.Context, bookingID uint, note, summary string) error {
	return s.db.WithContext(ctx).
		Model(&bookingModel.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"augmented_note":   note,
			"linkedin_summary": summary,
		}).Error
}

func (s *BookingStore) DeleteBooking(ctx context.Context, bookingID uint) error {
	return s.db.WithContext(ctx).Delete(&bookingModel.Booking{}, bookingID).Error
}
