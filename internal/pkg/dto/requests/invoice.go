package requests

type CreateInvoice struct {
	BookingID      string  `json:"booking_id" validate:"required"`
	TaxRate        float64 `json:"tax_rate" validate:"gte=0,max=1"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
	DueInDays      int     `json:"due_in_days" validate:"omitempty,gt=0"`
	Notes          string  `json:"notes"`
}

type InvoicePayment struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	TransactionID string  `json:"transaction_id"`
	Notes         string  `json:"notes"`
}

type CancelInvoice struct {
	Reason string `json:"reason" validate:"required"`
}

type RefundInvoice struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required"`
}
