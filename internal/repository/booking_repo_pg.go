package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/internal/domain"
)

type BookingRepository interface {
	// CreateWithPassengers inserts the booking, its passengers, the seat
	// decrement on every referenced flight and a dashboard notification in a
	// single transaction. Seat counts are re-read under a row lock, so a
	// concurrent confirmation against the same flight serializes here.
	CreateWithPassengers(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error
	List(ctx context.Context) ([]domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, []domain.Passenger, error)
	Cancel(ctx context.Context, reference string) (*domain.Booking, error)
	SeatsAvailable(ctx context.Context, flightIDs []int64) (map[int64]int, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, booking_reference, flight_id, return_flight_id, total_price_cents, status, passenger_count, contact_name, contact_email, contact_phone, payment_intent_id, travel_date, return_date, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.Reference, &b.FlightID, &b.ReturnFlightID, &b.TotalPriceCents, &b.Status, &b.PassengerCount, &b.ContactName, &b.ContactEmail, &b.ContactPhone, &b.PaymentIntentID, &b.TravelDate, &b.ReturnDate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) CreateWithPassengers(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	flightIDs := []int64{booking.FlightID}
	if booking.ReturnFlightID != nil {
		flightIDs = append(flightIDs, *booking.ReturnFlightID)
	}
	// Lock in id order so two bookings over the same pair cannot deadlock.
	sort.Slice(flightIDs, func(i, j int) bool { return flightIDs[i] < flightIDs[j] })

	for _, id := range flightIDs {
		var available int
		if err := tx.QueryRow(ctx, `SELECT seats_available FROM flights WHERE id=$1 FOR UPDATE`, id).Scan(&available); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("flight %d: %w", id, ErrNotFound)
			}
			return err
		}
		if available < booking.PassengerCount {
			return fmt.Errorf("flight %d has %d seats left: %w", id, available, ErrInsufficientSeats)
		}
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (booking_reference, flight_id, return_flight_id, total_price_cents, status, passenger_count, contact_name, contact_email, contact_phone, payment_intent_id, travel_date, return_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.FlightID, booking.ReturnFlightID, booking.TotalPriceCents, booking.Status, booking.PassengerCount, booking.ContactName, booking.ContactEmail, booking.ContactPhone, booking.PaymentIntentID, booking.TravelDate, booking.ReturnDate).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	for i := range passengers {
		p := &passengers[i]
		p.BookingID = booking.ID
		if err := tx.QueryRow(ctx, `INSERT INTO passengers (booking_id, first_name, last_name, type, date_of_birth, nationality, passport_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			p.BookingID, p.FirstName, p.LastName, p.Type, p.DateOfBirth, p.Nationality, p.PassportNumber).Scan(&p.ID); err != nil {
			return err
		}
	}

	for _, id := range flightIDs {
		if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - $1, updated_at = now() WHERE id=$2`, booking.PassengerCount, id); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO notifications (type, message, booking_id) VALUES ($1, $2, $3)`,
		"new_booking",
		fmt.Sprintf("New booking %s for %d passenger(s)", booking.Reference, booking.PassengerCount),
		booking.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, []domain.Passenger, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_reference=$1`, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, booking_id, first_name, last_name, type, date_of_birth, nationality, passport_number FROM passengers WHERE booking_id=$1 ORDER BY id`, b.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var passengers []domain.Passenger
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.LastName, &p.Type, &p.DateOfBirth, &p.Nationality, &p.PassportNumber); err != nil {
			return nil, nil, err
		}
		passengers = append(passengers, p)
	}
	return b, passengers, rows.Err()
}

// Cancel flips the booking to cancelled and gives the seats back, atomically.
// Cancelling an already cancelled booking is a no-op.
func (r *PGBookingRepository) Cancel(ctx context.Context, reference string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	b, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_reference=$1 FOR UPDATE`, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status == domain.BookingStatusCancelled {
		return b, tx.Commit(ctx)
	}

	flightIDs := []int64{b.FlightID}
	if b.ReturnFlightID != nil {
		flightIDs = append(flightIDs, *b.ReturnFlightID)
	}
	for _, id := range flightIDs {
		if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available + $1, updated_at = now() WHERE id=$2`, b.PassengerCount, id); err != nil {
			return nil, err
		}
	}

	b, err = scanBooking(tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE booking_reference=$2 RETURNING `+bookingColumns, domain.BookingStatusCancelled, reference))
	if err != nil {
		return nil, err
	}
	return b, tx.Commit(ctx)
}

// SeatsAvailable is the advisory pre-check read. No locks on purpose: the
// authoritative check happens inside CreateWithPassengers.
func (r *PGBookingRepository) SeatsAvailable(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	rows, err := r.db.Query(ctx, `SELECT id, seats_available FROM flights WHERE id = ANY($1)`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make(map[int64]int, len(flightIDs))
	for rows.Next() {
		var id int64
		var available int
		if err := rows.Scan(&id, &available); err != nil {
			return nil, err
		}
		seats[id] = available
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range flightIDs {
		if _, ok := seats[id]; !ok {
			return nil, fmt.Errorf("flight %d: %w", id, ErrNotFound)
		}
	}
	return seats, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
