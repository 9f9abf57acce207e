package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) (string, error)
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	FindAll(ctx context.Context, filter *requests.BookingListFilter, pagination *requests.Pagination) ([]models.Booking, int, error)
	CountActiveBySessionID(ctx context.Context, sessionID string) (int64, error)
}

type BookingUsecase interface {
	Create(ctx context.Context, studentID string, request *requests.CreateBooking) (*models.Booking, error)
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindAll(ctx context.Context, filter *requests.BookingListFilter, pagination *requests.Pagination) ([]models.Booking, int, error)
	Confirm(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason, actorID string) (*models.Booking, error)
	ProcessRefund(ctx context.Context, bookingID string, amount float64, actorID string) (*models.Booking, error)
	MarkCompleted(ctx context.Context, bookingID, notes, actorID string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	Reschedule(ctx context.Context, bookingID, newSessionID, reason, actorID string) (*models.Booking, error)

	// SyncPaymentStatus is the payment ledger's propagation hook: it sets
	// amount_paid, derives payment_status, and auto-confirms a pending
	// booking that became fully paid.
	SyncPaymentStatus(ctx context.Context, bookingID string, status models.BookingPaymentStatus, amountPaid float64) (*models.Booking, error)
}
