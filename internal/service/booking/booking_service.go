package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/kafka"
	"github.com/skylift/skybook/internal/payments"
	"github.com/skylift/skybook/internal/realtime"
	"github.com/skylift/skybook/internal/repository"
	"github.com/skylift/skybook/pkg/logger"
)

var (
	ErrPaymentNotSucceeded = errors.New("payment has not succeeded")
	ErrInvalidPaymentRef   = fmt.Errorf("invalid payment reference: %w", domain.ErrValidation)
)

type BookingUseCase interface {
	CreatePaymentIntent(ctx context.Context, input CreateIntentInput) (*payments.Intent, error)
	ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (*domain.Booking, error)
	ConfirmBookingPayLater(ctx context.Context, input ConfirmBookingInput) (*domain.Booking, error)
	VerifyFlight(ctx context.Context, flightID int64, returnFlightID *int64) (*VerifyResult, error)
	List(ctx context.Context) ([]domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, []domain.Passenger, error)
	Cancel(ctx context.Context, reference string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateIntentInput struct {
	FlightID       int64  `json:"flight_id"`
	ReturnFlightID *int64 `json:"return_flight_id,omitempty"`
	PassengerCount int    `json:"passenger_count"`
}

type PassengerInput struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Type           string     `json:"type"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Nationality    string     `json:"nationality"`
	PassportNumber string     `json:"passport_number,omitempty"`
}

type ConfirmBookingInput struct {
	PaymentReference string           `json:"payment_reference"`
	FlightID         int64            `json:"flight_id"`
	ReturnFlightID   *int64           `json:"return_flight_id,omitempty"`
	ContactName      string           `json:"contact_name"`
	ContactEmail     string           `json:"contact_email"`
	ContactPhone     string           `json:"contact_phone"`
	Passengers       []PassengerInput `json:"passengers"`
	TravelDate       *time.Time       `json:"travel_date,omitempty"`
	ReturnDate       *time.Time       `json:"return_date,omitempty"`
}

type VerifyResult struct {
	Available bool          `json:"available"`
	Seats     map[int64]int `json:"seats"`
}

type BookingService struct {
	bookings    repository.BookingRepository
	flights     repository.FlightRepository
	provider    payments.Provider
	producer    Producer
	broadcaster realtime.Broadcaster
	eventsTopic string
}

type BookingServiceOption func(*BookingService)

func WithBroadcaster(b realtime.Broadcaster) BookingServiceOption {
	return func(s *BookingService) {
		s.broadcaster = b
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	provider payments.Provider,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		flights:     flights,
		provider:    provider,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreatePaymentIntent prices the trip from the flight rows, never from the
// client. The seat counts read here are advisory; the authoritative check
// happens under lock at confirmation time.
func (s *BookingService) CreatePaymentIntent(ctx context.Context, input CreateIntentInput) (*payments.Intent, error) {
	if input.PassengerCount <= 0 {
		return nil, fmt.Errorf("passenger_count must be positive: %w", domain.ErrValidation)
	}

	total, err := s.tripPrice(ctx, input.FlightID, input.ReturnFlightID, input.PassengerCount)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"flight_id":       fmt.Sprint(input.FlightID),
		"passenger_count": fmt.Sprint(input.PassengerCount),
	}
	if input.ReturnFlightID != nil {
		metadata["return_flight_id"] = fmt.Sprint(*input.ReturnFlightID)
	}
	return s.provider.CreateIntent(ctx, total, metadata)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (*domain.Booking, error) {
	if err := validateConfirmInput(input); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(input.PaymentReference, "pi_") {
		return nil, ErrInvalidPaymentRef
	}

	intent, err := s.provider.RetrieveIntent(ctx, input.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	if intent.Status != payments.StatusSucceeded {
		return nil, fmt.Errorf("payment %s status is %s: %w", intent.ID, intent.Status, ErrPaymentNotSucceeded)
	}

	// If the insert below fails after the payment succeeded, no refund is
	// issued automatically. TODO: wire a refund on create() failure.
	return s.create(ctx, input, domain.BookingStatusConfirmed, intent.ID)
}

func (s *BookingService) ConfirmBookingPayLater(ctx context.Context, input ConfirmBookingInput) (*domain.Booking, error) {
	if err := validateConfirmInput(input); err != nil {
		return nil, err
	}
	return s.create(ctx, input, domain.BookingStatusPending, "")
}

func (s *BookingService) create(ctx context.Context, input ConfirmBookingInput, status domain.BookingStatus, paymentIntentID string) (*domain.Booking, error) {
	total, err := s.tripPrice(ctx, input.FlightID, input.ReturnFlightID, len(input.Passengers))
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:       NewReference(),
		FlightID:        input.FlightID,
		ReturnFlightID:  input.ReturnFlightID,
		TotalPriceCents: total,
		Status:          status,
		PassengerCount:  len(input.Passengers),
		ContactName:     input.ContactName,
		ContactEmail:    input.ContactEmail,
		ContactPhone:    input.ContactPhone,
		PaymentIntentID: paymentIntentID,
		TravelDate:      input.TravelDate,
		ReturnDate:      input.ReturnDate,
	}

	passengers := make([]domain.Passenger, len(input.Passengers))
	for i, p := range input.Passengers {
		passengers[i] = domain.Passenger{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Type:           domain.PassengerType(p.Type),
			DateOfBirth:    p.DateOfBirth,
			Nationality:    p.Nationality,
			PassportNumber: p.PassportNumber,
		}
	}

	if err := s.bookings.CreateWithPassengers(ctx, booking, passengers); err != nil {
		return nil, err
	}

	s.emit(ctx, "booking_created", booking)
	return booking, nil
}

// VerifyFlight reads current seat counts with no locks and reports whether
// at least one seat is free on every leg. The result can go stale immediately;
// the authoritative check runs under lock at confirmation time.
func (s *BookingService) VerifyFlight(ctx context.Context, flightID int64, returnFlightID *int64) (*VerifyResult, error) {
	ids := []int64{flightID}
	if returnFlightID != nil {
		ids = append(ids, *returnFlightID)
	}

	seats, err := s.bookings.SeatsAvailable(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Available: true, Seats: seats}
	for _, available := range seats {
		if available < 1 {
			result.Available = false
		}
	}
	return result, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*domain.Booking, []domain.Passenger, error) {
	return s.bookings.GetByReference(ctx, reference)
}

func (s *BookingService) Cancel(ctx context.Context, reference string) (*domain.Booking, error) {
	booking, err := s.bookings.Cancel(ctx, reference)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "booking_cancelled", booking)
	return booking, nil
}

func (s *BookingService) tripPrice(ctx context.Context, flightID int64, returnFlightID *int64, passengerCount int) (int64, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return 0, fmt.Errorf("flight %d: %w", flightID, err)
	}
	total := flight.PriceCents * int64(passengerCount)

	if returnFlightID != nil {
		returnFlight, err := s.flights.GetByID(ctx, *returnFlightID)
		if err != nil {
			return 0, fmt.Errorf("return flight %d: %w", *returnFlightID, err)
		}
		total += returnFlight.PriceCents * int64(passengerCount)
	}
	return total, nil
}

// emit publishes the booking event and triggers the dashboard broadcast.
// Both are fire-and-forget relative to the HTTP response.
func (s *BookingService) emit(ctx context.Context, eventType string, booking *domain.Booking) {
	event := kafka.BookingEvent{
		Type:            eventType,
		Reference:       booking.Reference,
		FlightID:        booking.FlightID,
		ReturnFlightID:  booking.ReturnFlightID,
		ContactName:     booking.ContactName,
		ContactEmail:    booking.ContactEmail,
		PassengerCount:  booking.PassengerCount,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
	}

	if s.producer != nil && s.eventsTopic != "" {
		if err := s.producer.Publish(ctx, s.eventsTopic, booking.Reference, event); err != nil {
			logger.Warn("publish booking event failed", "reference", booking.Reference, "err", err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.NotifyNewBooking(event)
	}
}

// NewReference generates a BOOK-###### reference. Uniqueness is probabilistic
// only; the reference is a customer-facing handle, not a primary key.
func NewReference() string {
	return fmt.Sprintf("BOOK-%06d", rand.IntN(1000000))
}

func validateConfirmInput(input ConfirmBookingInput) error {
	required := map[string]string{
		"contact_name":  input.ContactName,
		"contact_email": input.ContactEmail,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required: %w", field, domain.ErrValidation)
		}
	}
	if input.FlightID == 0 {
		return fmt.Errorf("flight_id is required: %w", domain.ErrValidation)
	}
	if input.ReturnFlightID != nil && *input.ReturnFlightID == input.FlightID {
		return fmt.Errorf("return_flight_id must differ from flight_id: %w", domain.ErrValidation)
	}
	if len(input.Passengers) == 0 {
		return fmt.Errorf("at least one passenger is required: %w", domain.ErrValidation)
	}
	for i, p := range input.Passengers {
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return fmt.Errorf("passenger %d: first and last name are required: %w", i+1, domain.ErrValidation)
		}
		switch domain.PassengerType(p.Type) {
		case domain.PassengerTypeAdult, domain.PassengerTypeChild, domain.PassengerTypeInfant:
		default:
			return fmt.Errorf("passenger %d: type must be adult, child or infant: %w", i+1, domain.ErrValidation)
		}
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
