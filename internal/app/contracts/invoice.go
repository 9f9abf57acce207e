package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
)

type InvoiceRepository interface {
	Insert(ctx context.Context, invoice *models.Invoice) (string, error)
	FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	FindByBookingID(ctx context.Context, bookingID string) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Invoice, int, error)
	CountIssuedSince(ctx context.Context, monthStart int64) (int64, error)
}

type InvoiceUsecase interface {
	Create(ctx context.Context, actorID string, request *requests.CreateInvoice) (*models.Invoice, error)
	FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Invoice, int, error)
	AddPayment(ctx context.Context, invoiceID string, request *requests.InvoicePayment) (*models.Invoice, error)
	MarkAsSent(ctx context.Context, invoiceID, actorID string) (*models.Invoice, error)
	MarkAsViewed(ctx context.Context, invoiceID, actorID string) (*models.Invoice, error)
	Cancel(ctx context.Context, invoiceID, reason, actorID string) (*models.Invoice, error)
	ProcessRefund(ctx context.Context, invoiceID string, amount float64, reason, actorID string) (*models.Invoice, error)
}
