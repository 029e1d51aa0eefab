package broker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/albatrip/travel-backend/internal/models"
)

// BookingCreatedEvent is emitted after a booking transaction commits
type BookingCreatedEvent struct {
	EventType      string     `json:"event_type"`
	BookingID      uuid.UUID  `json:"booking_id"`
	PackageID      uuid.UUID  `json:"package_id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	BookingDate    string     `json:"booking_date"`
	TravelerCount  int        `json:"traveler_count"`
	GuestFullName  string     `json:"guest_full_name"`
	WhatsappNumber string     `json:"whatsapp_number"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// BookingStatusChangedEvent is emitted after an admin advances a booking
// through its status machine
type BookingStatusChangedEvent struct {
	EventType  string               `json:"event_type"`
	BookingID  uuid.UUID            `json:"booking_id"`
	PackageID  uuid.UUID            `json:"package_id"`
	FromStatus models.BookingStatus `json:"from_status"`
	ToStatus   models.BookingStatus `json:"to_status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// EventPublisher publishes booking domain events for downstream consumers
// (the WhatsApp contact desk, notification workers). A nil *EventPublisher
// is a no-op so event publishing can be left unconfigured.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishBookingCreated publishes a booking.created event
func (ep *EventPublisher) PublishBookingCreated(ctx context.Context, booking *models.Booking) error {
	if ep == nil || ep.producer == nil {
		return nil
	}

	event := BookingCreatedEvent{
		EventType:      "booking.created",
		BookingID:      booking.ID,
		PackageID:      booking.PackageID,
		UserID:         booking.UserID,
		BookingDate:    booking.BookingDate.Format(models.DateLayout),
		TravelerCount:  booking.TravelerCount,
		GuestFullName:  booking.GuestFullName,
		WhatsappNumber: booking.WhatsappNumber,
		OccurredAt:     time.Now().UTC(),
	}
	return ep.producer.PublishEvent(ctx, "booking-"+booking.ID.String(), event)
}

// PublishBookingStatusChanged publishes a booking.status_changed event
func (ep *EventPublisher) PublishBookingStatusChanged(ctx context.Context, booking *models.Booking, from models.BookingStatus) error {
	if ep == nil || ep.producer == nil {
		return nil
	}

	event := BookingStatusChangedEvent{
		EventType:  "booking.status_changed",
		BookingID:  booking.ID,
		PackageID:  booking.PackageID,
		FromStatus: from,
		ToStatus:   booking.Status,
		OccurredAt: time.Now().UTC(),
	}
	return ep.producer.PublishEvent(ctx, "booking-"+booking.ID.String(), event)
}
