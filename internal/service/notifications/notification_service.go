package notifications

import (
	"context"
	"time"

	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/repository"
)

type NotificationUseCase interface {
	List(ctx context.Context, unseenOnly bool) ([]domain.Notification, error)
	MarkSeen(ctx context.Context, id int64) error
	MarkAllSeen(ctx context.Context) (int64, error)
	Cleanup(ctx context.Context) (int64, error)
}

type NotificationService struct {
	repo      repository.NotificationRepository
	retention time.Duration
}

func NewNotificationService(repo repository.NotificationRepository, retention time.Duration) *NotificationService {
	return &NotificationService{repo: repo, retention: retention}
}

func (s *NotificationService) List(ctx context.Context, unseenOnly bool) ([]domain.Notification, error) {
	return s.repo.List(ctx, unseenOnly)
}

func (s *NotificationService) MarkSeen(ctx context.Context, id int64) error {
	return s.repo.MarkSeen(ctx, id)
}

func (s *NotificationService) MarkAllSeen(ctx context.Context) (int64, error) {
	return s.repo.MarkAllSeen(ctx)
}

// Cleanup deletes seen notifications older than the retention window. Runs
// from the admin endpoint and from the worker sweep.
func (s *NotificationService) Cleanup(ctx context.Context) (int64, error) {
	return s.repo.DeleteSeenOlderThan(ctx, time.Now().Add(-s.retention))
}

var _ NotificationUseCase = (*NotificationService)(nil)
