package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/internal/domain"
)

type FlightFilter struct {
	DepartureLocationID int64
	ArrivalLocationID   int64
	Date                *time.Time
	Type                domain.FlightType
}

type FlightRepository interface {
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	ListAll(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, type, departure_location_id, arrival_location_id, departure_time, arrival_time, price_cents, seats_available, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.FlightNumber, &f.Type, &f.DepartureLocationID, &f.ArrivalLocationID, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.SeatsAvailable, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	args := []any{}
	i := 1
	if filter.DepartureLocationID != 0 {
		query += fmt.Sprintf(" AND departure_location_id=$%d", i)
		args = append(args, filter.DepartureLocationID)
		i++
	}
	if filter.ArrivalLocationID != 0 {
		query += fmt.Sprintf(" AND arrival_location_id=$%d", i)
		args = append(args, filter.ArrivalLocationID)
		i++
	}
	if filter.Date != nil {
		query += fmt.Sprintf(" AND departure_time::date = $%d::date", i)
		args = append(args, *filter.Date)
		i++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type=$%d", i)
		args = append(args, filter.Type)
		i++
	}
	query += " ORDER BY departure_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) ListAll(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, type, departure_location_id, arrival_location_id, departure_time, arrival_time, price_cents, seats_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Type, flight.DepartureLocationID, flight.ArrivalLocationID, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.SeatsAvailable).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET flight_number=$1, type=$2, departure_location_id=$3, arrival_location_id=$4, departure_time=$5, arrival_time=$6, price_cents=$7, seats_available=$8, updated_at=now() WHERE id=$9`,
		flight.FlightNumber, flight.Type, flight.DepartureLocationID, flight.ArrivalLocationID, flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.SeatsAvailable, flight.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
