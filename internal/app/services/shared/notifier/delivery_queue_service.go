package notifier

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DeliveryMessage is the payload handed to the external delivery workers.
type DeliveryMessage struct {
	NotificationID string    `json:"notification_id"`
	RecipientID    string    `json:"recipient_id"`
	Type           string    `json:"type"`
	Channel        string    `json:"channel"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
	FailedCount    int       `json:"failed_count"`
}

// Service publishes notification deliveries to a durable RabbitMQ queue
// with a dead-letter queue and publisher confirms. A token-bucket limiter
// keeps cleanup sweeps and retries from flooding the broker.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	limiter   *rate.Limiter
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName, dlqName string, publishRatePerSecond int) (contracts.DeliveryPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, name := range []string{queueName, dlqName} {
		_, err = ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	if publishRatePerSecond <= 0 {
		publishRatePerSecond = 10
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		limiter:   rate.NewLimiter(rate.Limit(publishRatePerSecond), publishRatePerSecond),
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

func (s *Service) PublishDelivery(ctx context.Context, notification *models.Notification, channel models.NotificationChannel) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := DeliveryMessage{
		NotificationID: notification.ID,
		RecipientID:    notification.RecipientID,
		Type:           string(notification.Type),
		Channel:        string(channel),
		Title:          notification.Title,
		Message:        notification.Message,
		EnqueuedAt:     time.Now(),
		FailedCount:    notification.RetryCount,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	// Publishes and confirm waits are serialized; the channel is not
	// safe for concurrent use.
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx,
		"",          // default exchange
		s.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	select {
	case confirmation := <-s.confirms:
		if !confirmation.Ack {
			s.log.Error("Delivery publish was nacked by broker",
				zap.String(constvars.LoggingQueueKey, s.queueName),
				zap.String("notification_id", notification.ID),
			)
			return exceptions.ErrRabbitMQPublishMessage(nil, s.queueName)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	s.log.Debug("Delivery published",
		zap.String(constvars.LoggingQueueKey, s.queueName),
		zap.String("notification_id", notification.ID),
		zap.String(constvars.LoggingChannelKey, string(channel)),
	)
	return nil
}
