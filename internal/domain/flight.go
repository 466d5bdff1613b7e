package domain

import "time"

type FlightType string

const (
	FlightTypePlane      FlightType = "plane"
	FlightTypeHelicopter FlightType = "helicopter"
)

type Flight struct {
	ID                  int64      `json:"id"`
	FlightNumber        string     `json:"flight_number"`
	Type                FlightType `json:"type"`
	DepartureLocationID int64      `json:"departure_location_id"`
	ArrivalLocationID   int64      `json:"arrival_location_id"`
	DepartureTime       time.Time  `json:"departure_time"`
	ArrivalTime         time.Time  `json:"arrival_time"`
	PriceCents          int64      `json:"price_cents"`
	SeatsAvailable      int        `json:"seats_available"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type Location struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	City    string `json:"city"`
	Country string `json:"country"`
}
