package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skylift/skybook/internal/domain"
)

type NotificationRepository interface {
	List(ctx context.Context, unseenOnly bool) ([]domain.Notification, error)
	MarkSeen(ctx context.Context, id int64) error
	MarkAllSeen(ctx context.Context) (int64, error)
	// DeleteSeenOlderThan removes seen notifications created before the cutoff.
	DeleteSeenOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type PGNotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) NotificationRepository {
	return &PGNotificationRepository{db: db}
}

func (r *PGNotificationRepository) List(ctx context.Context, unseenOnly bool) ([]domain.Notification, error) {
	query := `SELECT id, type, message, booking_id, seen, created_at FROM notifications`
	if unseenOnly {
		query += ` WHERE NOT seen`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.BookingID, &n.Seen, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PGNotificationRepository) MarkSeen(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE notifications SET seen=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGNotificationRepository) MarkAllSeen(ctx context.Context) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE notifications SET seen=true WHERE NOT seen`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PGNotificationRepository) DeleteSeenOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE seen AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ NotificationRepository = (*PGNotificationRepository)(nil)
