package realtime

import (
	"github.com/pusher/pusher-http-go/v5"
	"github.com/skylift/skybook/config"
	"github.com/skylift/skybook/pkg/logger"
)

const (
	bookingsChannel = "bookings"
	newNotification = "new-notification"
)

// Broadcaster pushes dashboard events to connected clients. Fire-and-forget:
// errors are logged, never surfaced to the booking flow.
type Broadcaster interface {
	NotifyNewBooking(payload any)
}

type PusherBroadcaster struct {
	client *pusher.Client
}

func NewPusherBroadcaster(cfg config.PusherConfig) *PusherBroadcaster {
	return &PusherBroadcaster{
		client: &pusher.Client{
			AppID:   cfg.AppID,
			Key:     cfg.Key,
			Secret:  cfg.Secret,
			Cluster: cfg.Cluster,
		},
	}
}

func (b *PusherBroadcaster) NotifyNewBooking(payload any) {
	if err := b.client.Trigger(bookingsChannel, newNotification, payload); err != nil {
		logger.Warn("pusher trigger failed", "err", err)
	}
}

var _ Broadcaster = (*PusherBroadcaster)(nil)
