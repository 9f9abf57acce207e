package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

type BookingPaymentStatus string

const (
	BookingPaymentPending       BookingPaymentStatus = "pending"
	BookingPaymentPaid          BookingPaymentStatus = "paid"
	BookingPaymentFailed        BookingPaymentStatus = "failed"
	BookingPaymentRefunded      BookingPaymentStatus = "refunded"
	BookingPaymentPartialRefund BookingPaymentStatus = "partial_refund"
)

type AttendanceStatus string

const (
	AttendanceConfirmed AttendanceStatus = "confirmed"
	AttendanceAttended  AttendanceStatus = "attended"
	AttendanceAbsent    AttendanceStatus = "absent"
)

type BookingParticipant struct {
	Name             string           `json:"name" bson:"name"`
	Email            string           `json:"email,omitempty" bson:"email,omitempty"`
	AttendanceStatus AttendanceStatus `json:"attendance_status" bson:"attendance_status"`
}

type CancellationDetails struct {
	CancelledAt        time.Time `json:"cancelled_at" bson:"cancelled_at"`
	CancelledBy        string    `json:"cancelled_by" bson:"cancelled_by"`
	CancellationReason string    `json:"cancellation_reason" bson:"cancellation_reason"`
	RefundProcessed    bool      `json:"refund_processed" bson:"refund_processed"`
	RefundAmount       float64   `json:"refund_amount,omitempty" bson:"refund_amount,omitempty"`
}

type RescheduleEntry struct {
	FromSessionID string    `json:"from_session_id" bson:"from_session_id"`
	ToSessionID   string    `json:"to_session_id" bson:"to_session_id"`
	Reason        string    `json:"reason" bson:"reason"`
	RescheduledBy string    `json:"rescheduled_by" bson:"rescheduled_by"`
	RescheduledAt time.Time `json:"rescheduled_at" bson:"rescheduled_at"`
}

// Booking reserves participant slots in one Session. TutorID and the
// amounts are denormalized from the session at creation time.
type Booking struct {
	ID                  string               `json:"id" bson:"_id,omitempty"`
	BookingReference    string               `json:"booking_reference" bson:"booking_reference"`
	SessionID           string               `json:"session_id" bson:"session_id"`
	StudentID           string               `json:"student_id" bson:"student_id"`
	TutorID             string               `json:"tutor_id" bson:"tutor_id"`
	Participants        []BookingParticipant `json:"participants" bson:"participants"`
	TotalParticipants   int                  `json:"total_participants" bson:"total_participants"`
	BookingStatus       BookingStatus        `json:"booking_status" bson:"booking_status"`
	PaymentStatus       BookingPaymentStatus `json:"payment_status" bson:"payment_status"`
	AmountTotal         float64              `json:"amount_total" bson:"amount_total"`
	AmountPaid          float64              `json:"amount_paid" bson:"amount_paid"`
	Notes               string               `json:"notes,omitempty" bson:"notes,omitempty"`
	CompletionNotes     string               `json:"completion_notes,omitempty" bson:"completion_notes,omitempty"`
	CancellationDetails *CancellationDetails `json:"cancellation_details,omitempty" bson:"cancellation_details,omitempty"`
	RescheduleHistory   []RescheduleEntry    `json:"reschedule_history,omitempty" bson:"reschedule_history,omitempty"`
	TimeModel           `bson:",inline"`
}

func (b *Booking) IsActive() bool {
	return b.BookingStatus == BookingStatusPending || b.BookingStatus == BookingStatusConfirmed
}

// DerivePaymentStatus applies the save-time payment status rule: paid once
// amount_paid covers amount_total, partial_refund while partially covered,
// unchanged otherwise.
func (b *Booking) DerivePaymentStatus() {
	switch {
	case b.AmountTotal > 0 && b.AmountPaid >= b.AmountTotal:
		b.PaymentStatus = BookingPaymentPaid
	case b.AmountPaid > 0 && b.AmountPaid < b.AmountTotal:
		b.PaymentStatus = BookingPaymentPartialRefund
	}
}
