package flights

import (
	"context"
	"fmt"

	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/repository"
	"github.com/skylift/skybook/pkg/logger"
)

type FlightUseCase interface {
	Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
	ListAll(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	Locations(ctx context.Context) ([]domain.Location, error)
}

type Cache interface {
	GetFlights(ctx context.Context, key string) ([]domain.Flight, error)
	SetFlights(ctx context.Context, key string, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo      repository.FlightRepository
	locations repository.LocationRepository
	cache     Cache
}

func NewFlightService(repo repository.FlightRepository, locations repository.LocationRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, locations: locations, cache: cache}
}

func (s *FlightService) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	key := cacheKey(filter)
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, key, flights); err != nil {
			logger.Warn("flight cache write failed", "err", err)
		}
	}
	return flights, nil
}

func (s *FlightService) ListAll(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.ListAll(ctx)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := validateFlight(flight); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := validateFlight(flight); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Locations(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		logger.Warn("flight cache invalidation failed", "err", err)
	}
}

func validateFlight(f *domain.Flight) error {
	if f.FlightNumber == "" {
		return fmt.Errorf("flight number is required: %w", domain.ErrValidation)
	}
	if f.Type != domain.FlightTypePlane && f.Type != domain.FlightTypeHelicopter {
		return fmt.Errorf("type must be plane or helicopter: %w", domain.ErrValidation)
	}
	if f.SeatsAvailable < 0 {
		return fmt.Errorf("seats_available must not be negative: %w", domain.ErrValidation)
	}
	if !f.ArrivalTime.After(f.DepartureTime) {
		return fmt.Errorf("arrival time must be after departure time: %w", domain.ErrValidation)
	}
	return nil
}

func cacheKey(filter repository.FlightFilter) string {
	date := ""
	if filter.Date != nil {
		date = filter.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%d:%d:%s:%s", filter.DepartureLocationID, filter.ArrivalLocationID, date, filter.Type)
}

var _ FlightUseCase = (*FlightService)(nil)
