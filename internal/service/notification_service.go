package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/QuiambaoMichael/safetap-backend/internal/events"
)

// NotificationService is an internal observer that writes an audit line for
// every concern event. It consumes the same subscription API as external
// connections; any failure here is logged and dropped, never surfaced.
type NotificationService struct {
	broadcaster *events.Broadcaster
	logger      *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(broadcaster *events.Broadcaster, logger *zap.Logger) *NotificationService {
	return &NotificationService{broadcaster: broadcaster, logger: logger}
}

// Run subscribes to the broadcaster and logs events until the context is
// cancelled.
func (n *NotificationService) Run(ctx context.Context) {
	obs := n.broadcaster.Subscribe()
	defer n.broadcaster.Unsubscribe(obs)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-obs.Events():
			if !ok {
				return
			}
			n.logger.Info("concern event",
				zap.String("event_id", event.ID),
				zap.String("kind", string(event.Kind)),
				zap.String("concern_id", event.Concern.ID),
				zap.String("status", string(event.Concern.Status)),
			)
		}
	}
}
