package requests

type CreatePayment struct {
	BookingID   string  `json:"booking_id" validate:"required"`
	AmountGross float64 `json:"amount_gross" validate:"omitempty,gt=0"`
	AmountFee   float64 `json:"amount_fee" validate:"gte=0"`
	Method      string  `json:"payment_method" validate:"required,oneof=card bank_transfer wallet cash"`
	Provider    string  `json:"provider"`
	Currency    string  `json:"currency"`
}

type CompletePayment struct {
	ProviderTransactionID string `json:"provider_transaction_id" validate:"required"`
}

type FailPayment struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason" validate:"required"`
}

type RefundPayment struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required"`
}

type PaymentWebhook struct {
	PaymentID string                 `json:"payment_id" validate:"required"`
	EventType string                 `json:"event_type" validate:"required"`
	EventData map[string]interface{} `json:"event_data"`
}
