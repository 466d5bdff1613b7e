package reports

import (
	"context"

	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/repository"
)

type ReportUseCase interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type ReportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.repo.DashboardStats(ctx)
}

var _ ReportUseCase = (*ReportService)(nil)
