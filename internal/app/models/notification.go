package models

import (
	"math"
	"time"
)

type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "pending"
	NotificationStatusSent      NotificationStatus = "sent"
	NotificationStatusDelivered NotificationStatus = "delivered"
	NotificationStatusRead      NotificationStatus = "read"
	NotificationStatusFailed    NotificationStatus = "failed"
	NotificationStatusExpired   NotificationStatus = "expired"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
	ChannelPush  NotificationChannel = "push"
)

type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingRefunded  NotificationType = "booking_refunded"
	NotificationPaymentCompleted NotificationType = "payment_completed"
	NotificationPaymentFailed    NotificationType = "payment_failed"
	NotificationSessionReminder  NotificationType = "session_reminder"
	NotificationForumReply       NotificationType = "forum_reply"
)

type ChannelDelivery struct {
	Channel       NotificationChannel `json:"channel" bson:"channel"`
	Status        NotificationStatus  `json:"status" bson:"status"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty" bson:"last_attempt_at,omitempty"`
	Error         string              `json:"error,omitempty" bson:"error,omitempty"`
}

type Notification struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	RecipientID string              `json:"recipient_id" bson:"recipient_id"`
	Type        NotificationType    `json:"type" bson:"type"`
	Title       string              `json:"title" bson:"title"`
	Message     string              `json:"message" bson:"message"`
	Channels    []ChannelDelivery   `json:"channels" bson:"channels"`
	Status      NotificationStatus  `json:"status" bson:"status"`
	RetryCount  int                 `json:"retry_count" bson:"retry_count"`
	MaxRetries  int                 `json:"max_retries" bson:"max_retries"`
	NextRetryAt *time.Time          `json:"next_retry_at,omitempty" bson:"next_retry_at,omitempty"`
	ExpiresAt   time.Time           `json:"expires_at" bson:"expires_at"`
	ReadAt      *time.Time          `json:"read_at,omitempty" bson:"read_at,omitempty"`
	ClickedAt   *time.Time          `json:"clicked_at,omitempty" bson:"clicked_at,omitempty"`
	DismissedAt *time.Time          `json:"dismissed_at,omitempty" bson:"dismissed_at,omitempty"`
	TimeModel   `bson:",inline"`
}

func (n *Notification) CanRetry() bool {
	return n.Status == NotificationStatusFailed && n.RetryCount < n.MaxRetries
}

func (n *Notification) IsExpired(now time.Time) bool {
	return n.Status == NotificationStatusPending && now.After(n.ExpiresAt)
}

// BackoffDelay returns 2^retry_count * 5 minutes.
func (n *Notification) BackoffDelay(baseMinutes int) time.Duration {
	return time.Duration(math.Pow(2, float64(n.RetryCount))*float64(baseMinutes)) * time.Minute
}
