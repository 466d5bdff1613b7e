package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PassengerType string

const (
	PassengerTypeAdult  PassengerType = "adult"
	PassengerTypeChild  PassengerType = "child"
	PassengerTypeInfant PassengerType = "infant"
)

type Booking struct {
	ID              int64         `json:"id"`
	Reference       string        `json:"booking_reference"`
	FlightID        int64         `json:"flight_id"`
	ReturnFlightID  *int64        `json:"return_flight_id,omitempty"`
	TotalPriceCents int64         `json:"total_price_cents"`
	Status          BookingStatus `json:"status"`
	PassengerCount  int           `json:"passenger_count"`
	ContactName     string        `json:"contact_name"`
	ContactEmail    string        `json:"contact_email"`
	ContactPhone    string        `json:"contact_phone"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	TravelDate      *time.Time    `json:"travel_date,omitempty"`
	ReturnDate      *time.Time    `json:"return_date,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type Passenger struct {
	ID             int64         `json:"id"`
	BookingID      int64         `json:"booking_id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Type           PassengerType `json:"type"`
	DateOfBirth    *time.Time    `json:"date_of_birth,omitempty"`
	Nationality    string        `json:"nationality"`
	PassportNumber string        `json:"passport_number,omitempty"`
}
