package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
	"time"
)

type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) (string, error)
	FindByID(ctx context.Context, notificationID string) (*models.Notification, error)
	Update(ctx context.Context, notification *models.Notification) error
	FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, int, error)
	FindPendingExpired(ctx context.Context, now time.Time) ([]models.Notification, error)
}

type NotificationUsecase interface {
	NotificationDispatcher

	Create(ctx context.Context, request *requests.CreateNotification) (*models.Notification, error)
	FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, int, error)
	MarkAsRead(ctx context.Context, notificationID, actorID string) (*models.Notification, error)
	MarkAsClicked(ctx context.Context, notificationID, actorID string) (*models.Notification, error)
	Dismiss(ctx context.Context, notificationID, actorID string) (*models.Notification, error)
	Retry(ctx context.Context, notificationID string) (*models.Notification, error)
	CleanupExpired(ctx context.Context) (int, error)
}
