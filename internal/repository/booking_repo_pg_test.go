package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests drive the real transaction against PostgreSQL. Set
// TEST_POSTGRES_DSN to run them, e.g.
// TEST_POSTGRES_DSN="host=localhost port=5432 user=postgres password=postgres dbname=skybook_test sslmode=disable"
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	require.NoError(t, Migrate(dsn, "../../migrations"))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE notifications, passengers, bookings, flights, locations RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func seedFlight(t *testing.T, pool *pgxpool.Pool, seats int) int64 {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO locations (code, city, country) VALUES ('KTM', 'Kathmandu', 'Nepal'), ('PKR', 'Pokhara', 'Nepal')`)
	require.NoError(t, err)

	var id int64
	err = pool.QueryRow(ctx, `INSERT INTO flights (flight_number, type, departure_location_id, arrival_location_id, departure_time, arrival_time, price_cents, seats_available)
		VALUES ('SK101', 'plane', 1, 2, $1, $2, 10000, $3) RETURNING id`,
		time.Now().Add(24*time.Hour), time.Now().Add(25*time.Hour), seats).Scan(&id)
	require.NoError(t, err)
	return id
}

func seatsLeft(t *testing.T, pool *pgxpool.Pool, flightID int64) int {
	t.Helper()
	var seats int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT seats_available FROM flights WHERE id=$1`, flightID).Scan(&seats))
	return seats
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n))
	return n
}

func testBooking(flightID int64, reference string, passengerCount int) (*domain.Booking, []domain.Passenger) {
	b := &domain.Booking{
		Reference:       reference,
		FlightID:        flightID,
		TotalPriceCents: int64(passengerCount) * 10000,
		Status:          domain.BookingStatusConfirmed,
		PassengerCount:  passengerCount,
		ContactName:     "Jane Smith",
		ContactEmail:    "jane@example.com",
	}
	passengers := make([]domain.Passenger, passengerCount)
	for i := range passengers {
		passengers[i] = domain.Passenger{
			FirstName: fmt.Sprintf("Passenger%d", i+1),
			LastName:  "Smith",
			Type:      domain.PassengerTypeAdult,
		}
	}
	return b, passengers
}

func TestCreateWithPassengers_DecrementsSeats(t *testing.T) {
	pool := testPool(t)
	repo := NewBookingRepository(pool)
	flightID := seedFlight(t, pool, 5)

	booking, passengers := testBooking(flightID, "BOOK-000001", 2)
	require.NoError(t, repo.CreateWithPassengers(context.Background(), booking, passengers))

	assert.Equal(t, 3, seatsLeft(t, pool, flightID))
	assert.Equal(t, 1, countRows(t, pool, "bookings"))
	assert.Equal(t, 2, countRows(t, pool, "passengers"))
	assert.Equal(t, 1, countRows(t, pool, "notifications"))
	assert.NotZero(t, booking.ID)
}

func TestCreateWithPassengers_InsufficientSeatsRollsBack(t *testing.T) {
	pool := testPool(t)
	repo := NewBookingRepository(pool)
	flightID := seedFlight(t, pool, 1)

	booking, passengers := testBooking(flightID, "BOOK-000002", 2)
	err := repo.CreateWithPassengers(context.Background(), booking, passengers)

	assert.ErrorIs(t, err, ErrInsufficientSeats)
	// The whole transaction rolls back: no booking, passenger or
	// notification rows, and the seat count is untouched.
	assert.Equal(t, 1, seatsLeft(t, pool, flightID))
	assert.Equal(t, 0, countRows(t, pool, "bookings"))
	assert.Equal(t, 0, countRows(t, pool, "passengers"))
	assert.Equal(t, 0, countRows(t, pool, "notifications"))
}

func TestCreateWithPassengers_ConcurrentOverDemand(t *testing.T) {
	pool := testPool(t)
	repo := NewBookingRepository(pool)
	flightID := seedFlight(t, pool, 1)

	const attempts = 4
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			booking, passengers := testBooking(flightID, fmt.Sprintf("BOOK-10000%d", i), 1)
			errs[i] = repo.CreateWithPassengers(context.Background(), booking, passengers)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientSeats)
		}
	}
	// The row lock serializes the confirmations: exactly one wins the seat.
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, seatsLeft(t, pool, flightID))
	assert.Equal(t, 1, countRows(t, pool, "bookings"))
}
