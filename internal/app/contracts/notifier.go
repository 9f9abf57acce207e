package contracts

import (
	"context"
	"edulink-service/internal/app/models"
)

// DeliveryPublisher hands a per-channel delivery off to the message queue
// consumed by the external email/SMS/push workers.
type DeliveryPublisher interface {
	PublishDelivery(ctx context.Context, notification *models.Notification, channel models.NotificationChannel) error
}

// DispatchInput describes a domain event to notify a recipient about.
type DispatchInput struct {
	RecipientID string
	Type        models.NotificationType
	Title       string
	Message     string
	Channels    []models.NotificationChannel
}

// NotificationDispatcher is the fire-and-forget entry point used by the
// booking and payment usecases. Failures are logged by the caller, never
// propagated into the originating transition.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, input DispatchInput) (*models.Notification, error)
}
