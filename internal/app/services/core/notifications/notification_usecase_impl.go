package notifications

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	Publisher              contracts.DeliveryPublisher
	Log                    *zap.Logger
}

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	publisher contracts.DeliveryPublisher,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		Publisher:              publisher,
		Log:                    logger,
	}
}

func (uc *notificationUsecase) Create(ctx context.Context, request *requests.CreateNotification) (*models.Notification, error) {
	channels := make([]models.NotificationChannel, 0, len(request.Channels))
	for _, c := range request.Channels {
		channels = append(channels, models.NotificationChannel(c))
	}

	notification := uc.build(contracts.DispatchInput{
		RecipientID: request.RecipientID,
		Type:        models.NotificationType(request.Type),
		Title:       request.Title,
		Message:     request.Message,
		Channels:    channels,
	})
	if request.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, request.ExpiresAt)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		notification.ExpiresAt = expiresAt
	}

	return uc.store(ctx, notification)
}

// Dispatch is the entry point used by the booking and payment usecases
// when a lifecycle event needs to reach a user.
func (uc *notificationUsecase) Dispatch(ctx context.Context, input contracts.DispatchInput) (*models.Notification, error) {
	return uc.store(ctx, uc.build(input))
}

func (uc *notificationUsecase) FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, int, error) {
	return uc.NotificationRepository.FindAllByRecipient(ctx, recipientID, unreadOnly, pagination)
}

// MarkAsRead is idempotent: reading an already read notification changes
// nothing.
func (uc *notificationUsecase) MarkAsRead(ctx context.Context, notificationID, actorID string) (*models.Notification, error) {
	notification, err := uc.loadOwned(ctx, notificationID, actorID)
	if err != nil {
		return nil, err
	}
	if notification.ReadAt != nil {
		return notification, nil
	}

	now := time.Now()
	notification.ReadAt = &now
	notification.Status = models.NotificationStatusRead
	notification.Touch(now)

	if err := uc.NotificationRepository.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (uc *notificationUsecase) MarkAsClicked(ctx context.Context, notificationID, actorID string) (*models.Notification, error) {
	notification, err := uc.loadOwned(ctx, notificationID, actorID)
	if err != nil {
		return nil, err
	}
	if notification.ClickedAt != nil {
		return notification, nil
	}

	now := time.Now()
	notification.ClickedAt = &now
	// A click implies the notification was read.
	if notification.ReadAt == nil {
		notification.ReadAt = &now
		notification.Status = models.NotificationStatusRead
	}
	notification.Touch(now)

	if err := uc.NotificationRepository.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (uc *notificationUsecase) Dismiss(ctx context.Context, notificationID, actorID string) (*models.Notification, error) {
	notification, err := uc.loadOwned(ctx, notificationID, actorID)
	if err != nil {
		return nil, err
	}
	if notification.DismissedAt != nil {
		return notification, nil
	}

	now := time.Now()
	notification.DismissedAt = &now
	notification.Touch(now)

	if err := uc.NotificationRepository.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Retry re-queues the failed channels of a failed notification. The next
// attempt is scheduled with exponential backoff on the retry count.
func (uc *notificationUsecase) Retry(ctx context.Context, notificationID string) (*models.Notification, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	notification, err := uc.findByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !notification.CanRetry() {
		return nil, exceptions.ErrNotificationNotRetryable()
	}

	notification.RetryCount++
	uc.deliver(ctx, notification)

	now := time.Now()
	if notification.Status == models.NotificationStatusFailed {
		nextRetry := now.Add(notification.BackoffDelay(constvars.NotificationBackoffBaseInMin))
		notification.NextRetryAt = &nextRetry
	} else {
		notification.NextRetryAt = nil
	}
	notification.Touch(now)

	if err := uc.NotificationRepository.Update(ctx, notification); err != nil {
		return nil, err
	}

	uc.Log.Info("notificationUsecase.Retry processed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("notification_id", notificationID),
		zap.Int("retry_count", notification.RetryCount),
	)
	return notification, nil
}

// CleanupExpired sweeps pending notifications past their expiry and
// returns how many were expired.
func (uc *notificationUsecase) CleanupExpired(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	now := time.Now()
	expired, err := uc.NotificationRepository.FindPendingExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	cleaned := 0
	for i := range expired {
		notification := &expired[i]
		notification.Status = models.NotificationStatusExpired
		notification.Touch(now)
		if err := uc.NotificationRepository.Update(ctx, notification); err != nil {
			uc.Log.Error("notificationUsecase.CleanupExpired error updating notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("notification_id", notification.ID),
				zap.Error(err),
			)
			continue
		}
		cleaned++
	}

	uc.Log.Info("notificationUsecase.CleanupExpired succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCount, cleaned),
	)
	return cleaned, nil
}

func (uc *notificationUsecase) build(input contracts.DispatchInput) *models.Notification {
	channels := input.Channels
	if len(channels) == 0 {
		channels = []models.NotificationChannel{models.ChannelPush}
	}

	deliveries := make([]models.ChannelDelivery, 0, len(channels))
	for _, c := range channels {
		deliveries = append(deliveries, models.ChannelDelivery{
			Channel: c,
			Status:  models.NotificationStatusPending,
		})
	}

	now := time.Now()
	notification := &models.Notification{
		RecipientID: input.RecipientID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
		Channels:    deliveries,
		Status:      models.NotificationStatusPending,
		MaxRetries:  constvars.DefaultMaxRetries,
		ExpiresAt:   now.AddDate(0, 0, constvars.NotificationExpiryInDays),
	}
	notification.Touch(now)
	return notification
}

func (uc *notificationUsecase) store(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	notificationID, err := uc.NotificationRepository.Insert(ctx, notification)
	if err != nil {
		return nil, err
	}
	notification.ID = notificationID

	uc.deliver(ctx, notification)
	if err := uc.NotificationRepository.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// deliver hands every pending or failed channel to the queue and records
// the per-channel outcome on the model. The caller persists the result.
func (uc *notificationUsecase) deliver(ctx context.Context, notification *models.Notification) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	now := time.Now()
	anyFailed := false

	for i := range notification.Channels {
		delivery := &notification.Channels[i]
		if delivery.Status != models.NotificationStatusPending && delivery.Status != models.NotificationStatusFailed {
			continue
		}

		delivery.LastAttemptAt = &now
		if err := uc.Publisher.PublishDelivery(ctx, notification, delivery.Channel); err != nil {
			anyFailed = true
			delivery.Status = models.NotificationStatusFailed
			delivery.Error = err.Error()
			uc.Log.Error("notificationUsecase error publishing delivery",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("notification_id", notification.ID),
				zap.String(constvars.LoggingChannelKey, string(delivery.Channel)),
				zap.Error(err),
			)
			continue
		}
		delivery.Status = models.NotificationStatusSent
		delivery.Error = ""
	}

	if anyFailed {
		notification.Status = models.NotificationStatusFailed
	} else {
		notification.Status = models.NotificationStatusSent
	}
	notification.Touch(now)
}

func (uc *notificationUsecase) findByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	notification, err := uc.NotificationRepository.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, exceptions.ErrResourceNotFound("notification")
	}
	return notification, nil
}

func (uc *notificationUsecase) loadOwned(ctx context.Context, notificationID, actorID string) (*models.Notification, error) {
	notification, err := uc.findByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID != actorID {
		return nil, exceptions.ErrRoleForbidden(nil)
	}
	return notification, nil
}
