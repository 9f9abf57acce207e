package invoices

import (
	"context"
	"edulink-service/internal/app/config"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type invoiceUsecase struct {
	InvoiceRepository contracts.InvoiceRepository
	BookingRepository contracts.BookingRepository
	UserRepository    contracts.UserRepository
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewInvoiceUsecase(
	invoiceRepository contracts.InvoiceRepository,
	bookingRepository contracts.BookingRepository,
	userRepository contracts.UserRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.InvoiceUsecase {
	return &invoiceUsecase{
		InvoiceRepository: invoiceRepository,
		BookingRepository: bookingRepository,
		UserRepository:    userRepository,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

// Create snapshots the booking into a billing document. Later changes to
// the booking never rewrite an issued invoice.
func (uc *invoiceUsecase) Create(ctx context.Context, actorID string, request *requests.CreateInvoice) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("invoiceUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, request.BookingID),
	)

	booking, err := uc.BookingRepository.FindByID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrResourceNotFound("booking")
	}

	existing, err := uc.InvoiceRepository.FindByBookingID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrInvoiceAlreadyExists()
	}

	student, err := uc.UserRepository.FindByID(ctx, booking.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, exceptions.ErrResourceNotFound("user")
	}

	taxRate := request.TaxRate
	if taxRate == 0 {
		taxRate = uc.InternalConfig.Billing.TaxRate
	}
	dueInDays := request.DueInDays
	if dueInDays == 0 {
		dueInDays = uc.InternalConfig.Billing.InvoiceDueInDays
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	issuedThisMonth, err := uc.InvoiceRepository.CountIssuedSince(ctx, monthStart.Unix())
	if err != nil {
		return nil, err
	}

	unitPrice := booking.AmountTotal
	if booking.TotalParticipants > 0 {
		unitPrice = booking.AmountTotal / float64(booking.TotalParticipants)
	}

	invoice := &models.Invoice{
		InvoiceNumber: utils.GenerateInvoiceNumber(issuedThisMonth + 1),
		BookingID:     booking.ID,
		Customer: models.InvoiceCustomer{
			UserID:   student.ID,
			FullName: student.FullName,
			Email:    student.Email,
		},
		LineItems: []models.InvoiceLineItem{
			{
				Description: fmt.Sprintf("Tutoring booking %s", booking.BookingReference),
				Quantity:    booking.TotalParticipants,
				UnitPrice:   unitPrice,
				Amount:      booking.AmountTotal,
			},
		},
		SubtotalAmount: booking.AmountTotal,
		TotalTaxAmount: booking.AmountTotal * taxRate,
		DiscountAmount: request.DiscountAmount,
		Status:         models.InvoiceStatusDraft,
		Notes:          request.Notes,
		IssuedAt:       now,
		DueDate:        now.AddDate(0, 0, dueInDays),
		AuditTrail: []models.InvoiceAuditEntry{
			{Action: "created", Actor: actorID, At: now},
		},
	}
	invoice.RecomputeTotal()
	invoice.Touch(now)

	invoiceID, err := uc.InvoiceRepository.Insert(ctx, invoice)
	if err != nil {
		return nil, err
	}
	invoice.ID = invoiceID

	uc.Log.Info("invoiceUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	invoice, err := uc.InvoiceRepository.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, exceptions.ErrResourceNotFound("invoice")
	}
	return invoice, nil
}

func (uc *invoiceUsecase) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Invoice, int, error) {
	return uc.InvoiceRepository.FindAll(ctx, pagination)
}

func (uc *invoiceUsecase) AddPayment(ctx context.Context, invoiceID string, request *requests.InvoicePayment) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	invoice, err := uc.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusCancelled || invoice.Status == models.InvoiceStatusRefunded {
		return nil, exceptions.ErrInvoiceNotPayable()
	}
	if invoice.AmountPaid+request.Amount > invoice.TotalAmount {
		return nil, exceptions.ErrInvoiceOverpayment()
	}

	now := time.Now()
	invoice.PaymentHistory = append(invoice.PaymentHistory, models.InvoicePaymentRecord{
		Amount:        request.Amount,
		PaymentMethod: request.PaymentMethod,
		TransactionID: request.TransactionID,
		Notes:         request.Notes,
		PaidAt:        now,
	})
	invoice.AmountPaid += request.Amount
	if invoice.AmountPaid >= invoice.TotalAmount {
		invoice.Status = models.InvoiceStatusPaid
	} else {
		invoice.Status = models.InvoiceStatusPartiallyPaid
	}
	invoice.AuditTrail = append(invoice.AuditTrail, models.InvoiceAuditEntry{
		Action: "payment_added",
		Notes:  fmt.Sprintf("%.2f via %s", request.Amount, request.PaymentMethod),
		At:     now,
	})

	if err := uc.save(ctx, invoice, now); err != nil {
		return nil, err
	}

	uc.Log.Info("invoiceUsecase.AddPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
		zap.Float64("amount", request.Amount),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) MarkAsSent(ctx context.Context, invoiceID, actorID string) (*models.Invoice, error) {
	invoice, err := uc.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceStatusDraft {
		return nil, exceptions.ErrInvoiceInvalidTransition(string(invoice.Status), "send")
	}

	now := time.Now()
	invoice.Status = models.InvoiceStatusSent
	invoice.AuditTrail = append(invoice.AuditTrail, models.InvoiceAuditEntry{Action: "sent", Actor: actorID, At: now})

	if err := uc.save(ctx, invoice, now); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (uc *invoiceUsecase) MarkAsViewed(ctx context.Context, invoiceID, actorID string) (*models.Invoice, error) {
	invoice, err := uc.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	// Viewing is one way and idempotent: only a sent invoice moves, a
	// viewed one stays viewed.
	if invoice.Status == models.InvoiceStatusViewed {
		return invoice, nil
	}
	if invoice.Status != models.InvoiceStatusSent {
		return nil, exceptions.ErrInvoiceInvalidTransition(string(invoice.Status), "view")
	}

	now := time.Now()
	invoice.Status = models.InvoiceStatusViewed
	invoice.AuditTrail = append(invoice.AuditTrail, models.InvoiceAuditEntry{Action: "viewed", Actor: actorID, At: now})

	if err := uc.save(ctx, invoice, now); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (uc *invoiceUsecase) Cancel(ctx context.Context, invoiceID, reason, actorID string) (*models.Invoice, error) {
	invoice, err := uc.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid || invoice.Status == models.InvoiceStatusRefunded ||
		invoice.Status == models.InvoiceStatusCancelled {
		return nil, exceptions.ErrInvoiceNotCancellable()
	}

	now := time.Now()
	invoice.Status = models.InvoiceStatusCancelled
	invoice.AuditTrail = append(invoice.AuditTrail, models.InvoiceAuditEntry{
		Action: "cancelled",
		Actor:  actorID,
		Notes:  reason,
		At:     now,
	})
	invoice.Touch(now)

	if err := uc.InvoiceRepository.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (uc *invoiceUsecase) ProcessRefund(ctx context.Context, invoiceID string, amount float64, reason, actorID string) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	invoice, err := uc.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceStatusPaid {
		return nil, exceptions.ErrInvoiceNotRefundable()
	}
	if amount > invoice.AmountPaid {
		return nil, exceptions.ErrRefundExceedsAmountPaid()
	}

	now := time.Now()
	invoice.AmountPaid -= amount
	if invoice.AmountPaid > 0 {
		invoice.Status = models.InvoiceStatusPartiallyPaid
	} else {
		invoice.Status = models.InvoiceStatusRefunded
	}
	invoice.AuditTrail = append(invoice.AuditTrail, models.InvoiceAuditEntry{
		Action: "refunded",
		Actor:  actorID,
		Notes:  fmt.Sprintf("%.2f: %s", amount, reason),
		At:     now,
	})
	invoice.Touch(now)

	if err := uc.InvoiceRepository.Update(ctx, invoice); err != nil {
		return nil, err
	}

	uc.Log.Info("invoiceUsecase.ProcessRefund succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
		zap.Float64("refund_amount", amount),
	)
	return invoice, nil
}

// save applies the lazy overdue flip on the way out: an unpaid invoice
// past its due date is stored as overdue.
func (uc *invoiceUsecase) save(ctx context.Context, invoice *models.Invoice, now time.Time) error {
	if invoice.IsOverdue(now) && invoice.Status != models.InvoiceStatusPaid {
		invoice.Status = models.InvoiceStatusOverdue
	}
	invoice.Touch(now)
	return uc.InvoiceRepository.Update(ctx, invoice)
}
