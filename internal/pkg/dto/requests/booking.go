package requests

type BookingParticipant struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateBooking struct {
	SessionID    string               `json:"session_id" validate:"required"`
	Participants []BookingParticipant `json:"participants" validate:"omitempty,dive"`
	Notes        string               `json:"notes"`
}

type CancelBooking struct {
	CancellationReason string `json:"cancellation_reason" validate:"required"`
}

type RefundBooking struct {
	RefundAmount float64 `json:"refund_amount" validate:"required,gt=0"`
}

type CompleteBooking struct {
	Notes string `json:"notes"`
}

type RescheduleBooking struct {
	NewSessionID string `json:"new_session_id" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
}
