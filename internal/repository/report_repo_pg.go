package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/internal/domain"
)

type ReportRepository interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

// DashboardStats runs the read-only aggregates behind the admin dashboard.
// These reads are unsynchronized with concurrent bookings, which is fine for
// reporting.
func (r *PGReportRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats

	if err := r.db.QueryRow(ctx, `SELECT
		count(*),
		count(*) FILTER (WHERE status='pending'),
		count(*) FILTER (WHERE created_at::date = now()::date),
		coalesce(sum(total_price_cents) FILTER (WHERE status='confirmed'), 0)
		FROM bookings`).
		Scan(&stats.TotalBookings, &stats.PendingBookings, &stats.BookingsToday, &stats.ConfirmedRevenueCents); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights WHERE departure_time > now()`).
		Scan(&stats.UpcomingFlights); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		coalesce(sum(total_price_cents), 0), count(*)
		FROM bookings
		WHERE status='confirmed' AND created_at > now() - interval '6 months'
		GROUP BY month ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats.MonthlyRevenue = make([]domain.MonthlyRevenue, 0)
	for rows.Next() {
		var m domain.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenueCents, &m.Bookings); err != nil {
			return nil, err
		}
		stats.MonthlyRevenue = append(stats.MonthlyRevenue, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer recent.Close()
	stats.RecentBookings = make([]domain.Booking, 0)
	for recent.Next() {
		b, err := scanBooking(recent)
		if err != nil {
			return nil, err
		}
		stats.RecentBookings = append(stats.RecentBookings, *b)
	}
	return &stats, recent.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
