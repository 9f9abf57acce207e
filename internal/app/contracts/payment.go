package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
)

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.Payment) (string, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	FindAllByBookingID(ctx context.Context, bookingID string) ([]models.Payment, error)
	SumCompletedGrossByBookingID(ctx context.Context, bookingID string) (float64, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Payment, int, error)
}

type PaymentUsecase interface {
	Create(ctx context.Context, actorID string, request *requests.CreatePayment) (*models.Payment, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Payment, int, error)
	MarkCompleted(ctx context.Context, paymentID, providerTransactionID string) (*models.Payment, error)
	MarkFailed(ctx context.Context, paymentID string, request *requests.FailPayment) (*models.Payment, error)
	Retry(ctx context.Context, paymentID string) (*models.Payment, error)
	ProcessRefund(ctx context.Context, paymentID string, amount float64, reason, actorID string) (*models.Payment, error)
	HandleWebhook(ctx context.Context, request *requests.PaymentWebhook) (*models.Payment, error)
}
