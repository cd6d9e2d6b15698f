package worker

import (
	"context"

	"github.com/QuiambaoMichael/safetap-backend/internal/service"
)

// StartNotificationWorker runs the audit observer in the background.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	go notificationService.Run(ctx)
}
