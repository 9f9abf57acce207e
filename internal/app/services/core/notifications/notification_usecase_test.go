package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, notification *models.Notification) (string, error) {
	args := m.Called(ctx, notification)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, int, error) {
	args := m.Called(ctx, recipientID, unreadOnly, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) FindPendingExpired(ctx context.Context, now time.Time) ([]models.Notification, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

type MockDeliveryPublisher struct {
	mock.Mock
}

func (m *MockDeliveryPublisher) PublishDelivery(ctx context.Context, notification *models.Notification, channel models.NotificationChannel) error {
	args := m.Called(ctx, notification, channel)
	return args.Error(0)
}

func storedNotification(status models.NotificationStatus) *models.Notification {
	return &models.Notification{
		ID:          "notification-1",
		RecipientID: "user-1",
		Type:        models.NotificationBookingConfirmed,
		Title:       "Booking confirmed",
		Message:     "Your seat is reserved",
		Channels: []models.ChannelDelivery{
			{Channel: models.ChannelPush, Status: status},
		},
		Status:     status,
		MaxRetries: constvars.DefaultMaxRetries,
		ExpiresAt:  time.Now().AddDate(0, 0, constvars.NotificationExpiryInDays),
	}
}

func TestNotificationUsecase_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes every requested channel and marks the notification sent", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notificationRepo.On("Insert", ctx, mock.AnythingOfType("*models.Notification")).Return("notification-1", nil)
		publisher.On("PublishDelivery", ctx, mock.AnythingOfType("*models.Notification"), models.ChannelEmail).Return(nil)
		publisher.On("PublishDelivery", ctx, mock.AnythingOfType("*models.Notification"), models.ChannelPush).Return(nil)
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

		notification, err := usecase.Dispatch(ctx, contracts.DispatchInput{
			RecipientID: "user-1",
			Type:        models.NotificationBookingConfirmed,
			Title:       "Booking confirmed",
			Message:     "Your seat is reserved",
			Channels:    []models.NotificationChannel{models.ChannelEmail, models.ChannelPush},
		})

		assert.Nil(t, err)
		assert.Equal(t, "notification-1", notification.ID)
		assert.Equal(t, models.NotificationStatusSent, notification.Status)
		assert.Len(t, notification.Channels, 2)
		for _, delivery := range notification.Channels {
			assert.Equal(t, models.NotificationStatusSent, delivery.Status)
			assert.NotNil(t, delivery.LastAttemptAt)
		}
		assert.Equal(t, constvars.DefaultMaxRetries, notification.MaxRetries)
		publisher.AssertExpectations(t)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Defaults to the push channel when none is given", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notificationRepo.On("Insert", ctx, mock.AnythingOfType("*models.Notification")).Return("notification-1", nil)
		publisher.On("PublishDelivery", ctx, mock.AnythingOfType("*models.Notification"), models.ChannelPush).Return(nil)
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

		notification, err := usecase.Dispatch(ctx, contracts.DispatchInput{
			RecipientID: "user-1",
			Type:        models.NotificationPaymentCompleted,
			Title:       "Payment received",
			Message:     "Thanks",
		})

		assert.Nil(t, err)
		assert.Len(t, notification.Channels, 1)
		assert.Equal(t, models.ChannelPush, notification.Channels[0].Channel)
	})

	t.Run("Records the per channel error when the queue rejects a delivery", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notificationRepo.On("Insert", ctx, mock.AnythingOfType("*models.Notification")).Return("notification-1", nil)
		publisher.On("PublishDelivery", ctx, mock.AnythingOfType("*models.Notification"), models.ChannelEmail).Return(errors.New("broker unavailable"))
		publisher.On("PublishDelivery", ctx, mock.AnythingOfType("*models.Notification"), models.ChannelPush).Return(nil)
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

		notification, err := usecase.Dispatch(ctx, contracts.DispatchInput{
			RecipientID: "user-1",
			Type:        models.NotificationBookingCancelled,
			Title:       "Booking cancelled",
			Message:     "Sorry",
			Channels:    []models.NotificationChannel{models.ChannelEmail, models.ChannelPush},
		})

		assert.Nil(t, err)
		assert.Equal(t, models.NotificationStatusFailed, notification.Status)
		assert.Equal(t, models.NotificationStatusFailed, notification.Channels[0].Status)
		assert.Equal(t, "broker unavailable", notification.Channels[0].Error)
		assert.Equal(t, models.NotificationStatusSent, notification.Channels[1].Status)
	})
}

func TestNotificationUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Honours an explicit expiry", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notificationRepo.On("Insert", ctx, mock.AnythingOfType("*models.Notification")).Return("notification-1", nil)
		publisher.On("PublishDelivery", ctx, mock.AnythingOfType("*models.Notification"), models.ChannelEmail).Return(nil)
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

		notification, err := usecase.Create(ctx, &requests.CreateNotification{
			RecipientID: "user-1",
			Type:        "session_reminder",
			Title:       "Session tomorrow",
			Message:     "Starts at 10:00",
			Channels:    []string{"email"},
			ExpiresAt:   "2026-09-02T10:00:00Z",
		})

		assert.Nil(t, err)
		assert.Equal(t, 2026, notification.ExpiresAt.Year())
		assert.Equal(t, time.September, notification.ExpiresAt.Month())
	})

	t.Run("Rejects an unparseable expiry", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification, err := usecase.Create(ctx, &requests.CreateNotification{
			RecipientID: "user-1",
			Type:        "session_reminder",
			Title:       "Session tomorrow",
			Message:     "Starts at 10:00",
			Channels:    []string{"email"},
			ExpiresAt:   "tomorrow",
		})

		assert.Nil(t, notification)
		assert.NotNil(t, err)
		notificationRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestNotificationUsecase_ReadClickDismiss(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks an unread notification read", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification := storedNotification(models.NotificationStatusSent)
		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)
		notificationRepo.On("Update", ctx, notification).Return(nil)

		result, err := usecase.MarkAsRead(ctx, "notification-1", "user-1")

		assert.Nil(t, err)
		assert.NotNil(t, result.ReadAt)
		assert.Equal(t, models.NotificationStatusRead, result.Status)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Reading twice changes nothing", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		readAt := time.Now().Add(-time.Hour)
		notification := storedNotification(models.NotificationStatusRead)
		notification.ReadAt = &readAt
		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)

		result, err := usecase.MarkAsRead(ctx, "notification-1", "user-1")

		assert.Nil(t, err)
		assert.Equal(t, readAt, *result.ReadAt)
		notificationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("A click implies a read", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification := storedNotification(models.NotificationStatusSent)
		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)
		notificationRepo.On("Update", ctx, notification).Return(nil)

		result, err := usecase.MarkAsClicked(ctx, "notification-1", "user-1")

		assert.Nil(t, err)
		assert.NotNil(t, result.ClickedAt)
		assert.NotNil(t, result.ReadAt)
		assert.Equal(t, models.NotificationStatusRead, result.Status)
	})

	t.Run("Dismiss is idempotent", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		dismissedAt := time.Now().Add(-time.Hour)
		notification := storedNotification(models.NotificationStatusRead)
		notification.DismissedAt = &dismissedAt
		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)

		result, err := usecase.Dismiss(ctx, "notification-1", "user-1")

		assert.Nil(t, err)
		assert.Equal(t, dismissedAt, *result.DismissedAt)
		notificationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Only the recipient can touch a notification", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notificationRepo.On("FindByID", ctx, "notification-1").Return(storedNotification(models.NotificationStatusSent), nil)

		result, err := usecase.MarkAsRead(ctx, "notification-1", "user-2")

		assert.Nil(t, result)
		assert.Equal(t, constvars.ErrClientNotAuthorized, err.(*exceptions.CustomError).ClientMessage)
	})
}

func TestNotificationUsecase_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("A successful retry clears the schedule", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification := storedNotification(models.NotificationStatusFailed)
		notification.Channels[0].Error = "broker unavailable"
		notification.RetryCount = 1
		nextRetry := time.Now()
		notification.NextRetryAt = &nextRetry

		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)
		publisher.On("PublishDelivery", ctx, notification, models.ChannelPush).Return(nil)
		notificationRepo.On("Update", ctx, notification).Return(nil)

		result, err := usecase.Retry(ctx, "notification-1")

		assert.Nil(t, err)
		assert.Equal(t, 2, result.RetryCount)
		assert.Equal(t, models.NotificationStatusSent, result.Status)
		assert.Equal(t, models.NotificationStatusSent, result.Channels[0].Status)
		assert.Equal(t, "", result.Channels[0].Error)
		assert.Nil(t, result.NextRetryAt)
	})

	t.Run("A failed retry backs off exponentially", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification := storedNotification(models.NotificationStatusFailed)
		notification.RetryCount = 1

		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)
		publisher.On("PublishDelivery", ctx, notification, models.ChannelPush).Return(errors.New("still down"))
		notificationRepo.On("Update", ctx, notification).Return(nil)

		before := time.Now()
		result, err := usecase.Retry(ctx, "notification-1")

		assert.Nil(t, err)
		assert.Equal(t, 2, result.RetryCount)
		assert.Equal(t, models.NotificationStatusFailed, result.Status)
		assert.NotNil(t, result.NextRetryAt)
		// retry_count 2 gives 2^2 * 5 = 20 minutes.
		assert.True(t, result.NextRetryAt.After(before.Add(19*time.Minute)))
		assert.True(t, result.NextRetryAt.Before(before.Add(21*time.Minute)))
	})

	t.Run("Skips channels that already went out", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification := storedNotification(models.NotificationStatusFailed)
		notification.Channels = []models.ChannelDelivery{
			{Channel: models.ChannelEmail, Status: models.NotificationStatusSent},
			{Channel: models.ChannelPush, Status: models.NotificationStatusFailed, Error: "device gone"},
		}
		notification.RetryCount = 0

		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)
		publisher.On("PublishDelivery", ctx, notification, models.ChannelPush).Return(nil)
		notificationRepo.On("Update", ctx, notification).Return(nil)

		result, err := usecase.Retry(ctx, "notification-1")

		assert.Nil(t, err)
		assert.Equal(t, models.NotificationStatusSent, result.Status)
		publisher.AssertNotCalled(t, "PublishDelivery", mock.Anything, mock.Anything, models.ChannelEmail)
	})

	t.Run("Rejects a retry once the budget is spent", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notification := storedNotification(models.NotificationStatusFailed)
		notification.RetryCount = constvars.DefaultMaxRetries
		notificationRepo.On("FindByID", ctx, "notification-1").Return(notification, nil)

		result, err := usecase.Retry(ctx, "notification-1")

		assert.Nil(t, result)
		assert.Equal(t, constvars.ErrClientRetryExhausted, err.(*exceptions.CustomError).ClientMessage)
		publisher.AssertNotCalled(t, "PublishDelivery", mock.Anything, mock.Anything, mock.Anything)
		notificationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Rejects a retry of a delivered notification", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		notificationRepo.On("FindByID", ctx, "notification-1").Return(storedNotification(models.NotificationStatusSent), nil)

		result, err := usecase.Retry(ctx, "notification-1")

		assert.Nil(t, result)
		assert.Equal(t, constvars.ErrClientRetryExhausted, err.(*exceptions.CustomError).ClientMessage)
	})
}

func TestNotificationUsecase_CleanupExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("Expires every pending notification past its deadline", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		expired := []models.Notification{
			{ID: "notification-1", Status: models.NotificationStatusPending},
			{ID: "notification-2", Status: models.NotificationStatusPending},
		}
		notificationRepo.On("FindPendingExpired", ctx, mock.AnythingOfType("time.Time")).Return(expired, nil)
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

		cleaned, err := usecase.CleanupExpired(ctx)

		assert.Nil(t, err)
		assert.Equal(t, 2, cleaned)
		notificationRepo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("A single bad document does not stop the sweep", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepository)
		publisher := new(MockDeliveryPublisher)
		usecase := NewNotificationUsecase(notificationRepo, publisher, zap.NewNop())

		expired := []models.Notification{
			{ID: "notification-1", Status: models.NotificationStatusPending},
			{ID: "notification-2", Status: models.NotificationStatusPending},
		}
		notificationRepo.On("FindPendingExpired", ctx, mock.AnythingOfType("time.Time")).Return(expired, nil)
		notificationRepo.On("Update", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.ID == "notification-1"
		})).Return(errors.New("write conflict"))
		notificationRepo.On("Update", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.ID == "notification-2"
		})).Return(nil)

		cleaned, err := usecase.CleanupExpired(ctx)

		assert.Nil(t, err)
		assert.Equal(t, 1, cleaned)
	})
}
