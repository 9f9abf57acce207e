package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusProcessing    PaymentStatus = "processing"
	PaymentStatusCompleted     PaymentStatus = "completed"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusCancelled     PaymentStatus = "cancelled"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

type RefundDetails struct {
	Amount      float64   `json:"amount" bson:"amount"`
	Reason      string    `json:"reason" bson:"reason"`
	ProcessedBy string    `json:"processed_by" bson:"processed_by"`
	ProcessedAt time.Time `json:"processed_at" bson:"processed_at"`
}

type FailureDetails struct {
	Code         string     `json:"code,omitempty" bson:"code,omitempty"`
	Message      string     `json:"message,omitempty" bson:"message,omitempty"`
	Reason       string     `json:"reason,omitempty" bson:"reason,omitempty"`
	RetryCount   int        `json:"retry_count" bson:"retry_count"`
	MaxRetries   int        `json:"max_retries" bson:"max_retries"`
	LastFailedAt *time.Time `json:"last_failed_at,omitempty" bson:"last_failed_at,omitempty"`
}

type WebhookEvent struct {
	EventType  string                 `json:"event_type" bson:"event_type"`
	EventData  map[string]interface{} `json:"event_data,omitempty" bson:"event_data,omitempty"`
	ReceivedAt time.Time              `json:"received_at" bson:"received_at"`
}

// Payment is one settlement attempt against a Booking. AmountNet is
// derived, never stored independently of gross and fee.
type Payment struct {
	ID                    string         `json:"id" bson:"_id,omitempty"`
	BookingID             string         `json:"booking_id" bson:"booking_id"`
	TransactionID         string         `json:"transaction_id" bson:"transaction_id"`
	PayerID               string         `json:"payer_id" bson:"payer_id"`
	RecipientID           string         `json:"recipient_id" bson:"recipient_id"`
	Method                string         `json:"payment_method" bson:"payment_method"`
	Provider              string         `json:"provider,omitempty" bson:"provider,omitempty"`
	ProviderTransactionID string         `json:"provider_transaction_id,omitempty" bson:"provider_transaction_id,omitempty"`
	Currency              string         `json:"currency" bson:"currency"`
	AmountGross           float64        `json:"amount_gross" bson:"amount_gross"`
	AmountFee             float64        `json:"amount_fee" bson:"amount_fee"`
	AmountNet             float64        `json:"amount_net" bson:"amount_net"`
	Status                PaymentStatus  `json:"payment_status" bson:"payment_status"`
	RefundDetails         *RefundDetails `json:"refund_details,omitempty" bson:"refund_details,omitempty"`
	FailureDetails        FailureDetails `json:"failure_details" bson:"failure_details"`
	WebhookEvents         []WebhookEvent `json:"webhook_events,omitempty" bson:"webhook_events,omitempty"`
	CompletedAt           *time.Time     `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	TimeModel             `bson:",inline"`
}

func (p *Payment) RecomputeNet() {
	p.AmountNet = p.AmountGross - p.AmountFee
}

func (p *Payment) CanRetry() bool {
	return p.Status == PaymentStatusFailed && p.FailureDetails.RetryCount < p.FailureDetails.MaxRetries
}

// CanRefund holds for completed payments within the refund policy window
// that carry no prior refund.
func (p *Payment) CanRefund(now time.Time, window time.Duration) bool {
	if p.Status != PaymentStatusCompleted || p.RefundDetails != nil || p.CompletedAt == nil {
		return false
	}
	return now.Sub(*p.CompletedAt) <= window
}
