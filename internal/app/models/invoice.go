package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusViewed        InvoiceStatus = "viewed"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusRefunded      InvoiceStatus = "refunded"
)

type InvoiceLineItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Amount      float64 `json:"amount" bson:"amount"`
}

type InvoiceCustomer struct {
	UserID   string `json:"user_id" bson:"user_id"`
	FullName string `json:"full_name" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
}

type InvoicePaymentRecord struct {
	Amount        float64   `json:"amount" bson:"amount"`
	PaymentMethod string    `json:"payment_method" bson:"payment_method"`
	TransactionID string    `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	PaidAt        time.Time `json:"paid_at" bson:"paid_at"`
}

type InvoiceAuditEntry struct {
	Action string    `json:"action" bson:"action"`
	Actor  string    `json:"actor,omitempty" bson:"actor,omitempty"`
	Notes  string    `json:"notes,omitempty" bson:"notes,omitempty"`
	At     time.Time `json:"at" bson:"at"`
}

// Invoice is a billing document snapshotted from a Booking at creation.
// Its payment_history ledger is tracked independently of the Payment
// entity; the two are reconciled manually.
type Invoice struct {
	ID             string                 `json:"id" bson:"_id,omitempty"`
	InvoiceNumber  string                 `json:"invoice_number" bson:"invoice_number"`
	BookingID      string                 `json:"booking_id" bson:"booking_id"`
	Customer       InvoiceCustomer        `json:"customer" bson:"customer"`
	LineItems      []InvoiceLineItem      `json:"line_items" bson:"line_items"`
	SubtotalAmount float64                `json:"subtotal_amount" bson:"subtotal_amount"`
	TotalTaxAmount float64                `json:"total_tax_amount" bson:"total_tax_amount"`
	DiscountAmount float64                `json:"discount_amount" bson:"discount_amount"`
	TotalAmount    float64                `json:"total_amount" bson:"total_amount"`
	AmountPaid     float64                `json:"amount_paid" bson:"amount_paid"`
	PaymentHistory []InvoicePaymentRecord `json:"payment_history,omitempty" bson:"payment_history,omitempty"`
	AuditTrail     []InvoiceAuditEntry    `json:"audit_trail,omitempty" bson:"audit_trail,omitempty"`
	Status         InvoiceStatus          `json:"status" bson:"status"`
	Notes          string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	IssuedAt       time.Time              `json:"issued_at" bson:"issued_at"`
	DueDate        time.Time              `json:"due_date" bson:"due_date"`
	TimeModel      `bson:",inline"`
}

// IsOverdue is a read-time virtual; the stored status only flips to
// overdue on the next save.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return now.After(inv.DueDate) && inv.AmountPaid < inv.TotalAmount &&
		inv.Status != InvoiceStatusCancelled && inv.Status != InvoiceStatusRefunded
}

func (inv *Invoice) RecomputeTotal() {
	inv.TotalAmount = inv.SubtotalAmount + inv.TotalTaxAmount - inv.DiscountAmount
}
