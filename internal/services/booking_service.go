package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/broker"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/metrics"
	"github.com/albatrip/travel-backend/internal/models"
	"github.com/albatrip/travel-backend/pkg/validator"
)

// BookingService is the single mutating entry point for reservations. It
// validates the request shape, resolves the target package, and delegates the
// atomic decrement-and-insert to the booking repository.
type BookingService struct {
	bookings       *database.BookingRepository
	packages       *database.PackageRepository
	phoneValidator *validator.PhoneValidator
	events         *broker.EventPublisher
	logger         *logrus.Logger
}

// NewBookingService creates a new BookingService. events may be nil when no
// broker is configured.
func NewBookingService(
	bookings *database.BookingRepository,
	packages *database.PackageRepository,
	phoneValidator *validator.PhoneValidator,
	events *broker.EventPublisher,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:       bookings,
		packages:       packages,
		phoneValidator: phoneValidator,
		events:         events,
		logger:         logger,
	}
}

// Create validates and persists a booking. userID is nil for guest checkouts;
// idempotencyKey comes from the Idempotency-Key header when the client sent
// one. The returned bool is true when the request was replayed from an
// earlier booking with the same key.
func (s *BookingService) Create(
	ctx context.Context,
	req *models.CreateBookingRequest,
	userID *uuid.UUID,
	idempotencyKey *string,
	deviceInfo json.RawMessage,
) (*models.Booking, bool, error) {
	// Shape validation fails fast before touching storage.
	date, err := req.Validate()
	if err != nil {
		metrics.BookingFailuresTotal.WithLabelValues("validation").Inc()
		return nil, false, apperrors.Validation(err.Error())
	}

	phone, err := s.phoneValidator.Validate(req.WhatsappNumber)
	if err != nil {
		metrics.BookingFailuresTotal.WithLabelValues("validation").Inc()
		return nil, false, apperrors.Validation("whatsapp_number: " + err.Error())
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		metrics.BookingFailuresTotal.WithLabelValues("validation").Inc()
		return nil, false, apperrors.Validation("package_id must be a valid UUID")
	}

	pkg, err := s.packages.GetBookable(ctx, packageID)
	if err != nil {
		metrics.BookingFailuresTotal.WithLabelValues("package_not_found").Inc()
		return nil, false, err
	}
	if !pkg.Bookable() {
		metrics.BookingFailuresTotal.WithLabelValues("package_not_found").Inc()
		return nil, false, apperrors.NotFound("package not found")
	}

	adults, children, infants := req.TravelerCounts()
	booking := &models.Booking{
		PackageID:      packageID,
		UserID:         userID,
		IdempotencyKey: idempotencyKey,
		BookingDate:    date,
		GuestFullName:  req.FullName,
		WhatsappNumber: phone,
		Adults:         adults,
		Children:       children,
		Infants:        infants,
		TravelerCount:  adults + children + infants,
		Note:           req.Note,
		DeviceInfo:     deviceInfo,
	}

	created, replayed, err := s.bookings.CreateWithDecrement(ctx, booking)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.CodeNotFound:
			metrics.BookingFailuresTotal.WithLabelValues("not_available").Inc()
		case apperrors.CodeConflict:
			metrics.BookingFailuresTotal.WithLabelValues("insufficient_capacity").Inc()
		default:
			metrics.BookingFailuresTotal.WithLabelValues("internal").Inc()
		}
		return nil, false, err
	}

	if replayed {
		metrics.BookingsReplayedTotal.Inc()
		return created, true, nil
	}

	metrics.BookingsCreatedTotal.Inc()
	metrics.TravelersBookedTotal.Add(float64(created.TravelerCount))

	// Event publishing is best-effort: the booking is committed and the
	// response must not depend on the broker.
	if err := s.events.PublishBookingCreated(ctx, created); err != nil {
		s.logger.WithError(err).WithField("booking_id", created.ID).
			Warn("Failed to publish booking.created event")
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     created.ID,
		"package_id":     created.PackageID,
		"booking_date":   created.BookingDate.Format(models.DateLayout),
		"traveler_count": created.TravelerCount,
	}).Info("Booking created")

	return created, false, nil
}

// GetByID returns one booking
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// ListByUser returns the bookings of one user
func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// List returns all bookings for the admin console
func (s *BookingService) List(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookings.List(ctx, status)
}

// UpdateStatus advances a booking through its status machine. Illegal
// transitions fail with Conflict. Cancelling never restores the availability
// ledger; admins correct inventory manually when they intend to re-sell.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, next models.BookingStatus) (*models.Booking, error) {
	if !next.Valid() {
		return nil, apperrors.Validation("unknown booking status")
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict("cannot transition booking from " + string(booking.Status) + " to " + string(next))
	}

	from := booking.Status
	updated, err := s.bookings.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishBookingStatusChanged(ctx, updated, from); err != nil {
		s.logger.WithError(err).WithField("booking_id", updated.ID).
			Warn("Failed to publish booking.status_changed event")
	}

	return updated, nil
}
