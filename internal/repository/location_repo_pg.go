package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/internal/domain"
)

type LocationRepository interface {
	List(ctx context.Context) ([]domain.Location, error)
}

type PGLocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) LocationRepository {
	return &PGLocationRepository{db: db}
}

func (r *PGLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, city, country FROM locations ORDER BY city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.City, &l.Country); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

var _ LocationRepository = (*PGLocationRepository)(nil)
