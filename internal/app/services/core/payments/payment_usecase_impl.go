package payments

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

// Webhook event types recognized from the payment provider. Anything
// else is recorded on the payment but drives no state change.
const (
	webhookEventCompleted = "payment.completed"
	webhookEventFailed    = "payment.failed"
	webhookEventRefunded  = "payment.refunded"
)

// Actor recorded on refunds driven by provider webhooks.
const providerActor = "provider"

type paymentUsecase struct {
	PaymentRepository contracts.PaymentRepository
	BookingUsecase    contracts.BookingUsecase
	Dispatcher        contracts.NotificationDispatcher
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	bookingUsecase contracts.BookingUsecase,
	dispatcher contracts.NotificationDispatcher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PaymentRepository: paymentRepository,
		BookingUsecase:    bookingUsecase,
		Dispatcher:        dispatcher,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

func (uc *paymentUsecase) Create(ctx context.Context, actorID string, request *requests.CreatePayment) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("paymentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, request.BookingID),
	)

	booking, err := uc.BookingUsecase.FindByID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}

	amountGross := request.AmountGross
	if amountGross == 0 {
		amountGross = booking.AmountTotal
	}
	currency := request.Currency
	if currency == "" {
		currency = uc.InternalConfig.Billing.DefaultCurrencyCode
	}

	payment := &models.Payment{
		BookingID:     booking.ID,
		TransactionID: utils.GenerateTransactionID(),
		PayerID:       booking.StudentID,
		RecipientID:   booking.TutorID,
		Method:        request.Method,
		Provider:      request.Provider,
		Currency:      currency,
		AmountGross:   amountGross,
		AmountFee:     request.AmountFee,
		Status:        models.PaymentStatusPending,
		FailureDetails: models.FailureDetails{
			MaxRetries: constvars.DefaultMaxRetries,
		},
	}
	payment.RecomputeNet()
	payment.Touch(time.Now())

	paymentID, err := uc.PaymentRepository.Insert(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = paymentID

	uc.Log.Info("paymentUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
	)
	return payment, nil
}

func (uc *paymentUsecase) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrResourceNotFound("payment")
	}
	return payment, nil
}

func (uc *paymentUsecase) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Payment, int, error) {
	return uc.PaymentRepository.FindAll(ctx, pagination)
}

func (uc *paymentUsecase) MarkCompleted(ctx context.Context, paymentID, providerTransactionID string) (*models.Payment, error) {
	payment, err := uc.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := uc.complete(ctx, payment, providerTransactionID); err != nil {
		return nil, err
	}
	return payment, nil
}

func (uc *paymentUsecase) MarkFailed(ctx context.Context, paymentID string, request *requests.FailPayment) (*models.Payment, error) {
	payment, err := uc.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := uc.fail(ctx, payment, request.Code, request.Message, request.Reason); err != nil {
		return nil, err
	}
	return payment, nil
}

// Retry moves a failed payment back to pending for another settlement
// attempt. The retry budget is consumed by failures, not by retries.
func (uc *paymentUsecase) Retry(ctx context.Context, paymentID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	payment, err := uc.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.CanRetry() {
		return nil, exceptions.ErrRetryExhausted()
	}

	payment.Status = models.PaymentStatusPending
	payment.Touch(time.Now())
	if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.Retry queued",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.Int("retry_count", payment.FailureDetails.RetryCount),
	)
	return payment, nil
}

func (uc *paymentUsecase) ProcessRefund(ctx context.Context, paymentID string, amount float64, reason, actorID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	payment, err := uc.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.RefundDetails != nil {
		return nil, exceptions.ErrRefundAlreadyProcessed()
	}
	refundWindow := time.Duration(uc.InternalConfig.Billing.RefundWindowInDays) * 24 * time.Hour
	if !payment.CanRefund(time.Now(), refundWindow) {
		return nil, exceptions.ErrPaymentNotRefundable()
	}
	if amount > payment.AmountGross {
		return nil, exceptions.ErrRefundExceedsAmountPaid()
	}

	if err := uc.refund(ctx, payment, amount, reason, actorID); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.ProcessRefund succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.Float64("refund_amount", amount),
	)
	return payment, nil
}

// HandleWebhook appends the provider event to the payment's event log
// and drives the matching state change. Replayed events are recorded but
// change nothing.
func (uc *paymentUsecase) HandleWebhook(ctx context.Context, request *requests.PaymentWebhook) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("paymentUsecase.HandleWebhook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
		zap.String(constvars.LoggingEventTypeKey, request.EventType),
	)

	payment, err := uc.FindByID(ctx, request.PaymentID)
	if err != nil {
		return nil, err
	}

	payment.WebhookEvents = append(payment.WebhookEvents, models.WebhookEvent{
		EventType:  request.EventType,
		EventData:  request.EventData,
		ReceivedAt: time.Now(),
	})

	switch request.EventType {
	case webhookEventCompleted:
		if payment.Status == models.PaymentStatusCompleted {
			break
		}
		providerTransactionID, _ := request.EventData["provider_transaction_id"].(string)
		return payment, uc.complete(ctx, payment, providerTransactionID)
	case webhookEventFailed:
		if payment.Status == models.PaymentStatusFailed {
			break
		}
		code, _ := request.EventData["code"].(string)
		message, _ := request.EventData["message"].(string)
		return payment, uc.fail(ctx, payment, code, message, "provider reported failure")
	case webhookEventRefunded:
		if payment.RefundDetails != nil || payment.Status != models.PaymentStatusCompleted {
			break
		}
		amount, _ := request.EventData["amount"].(float64)
		if amount <= 0 || amount > payment.AmountGross {
			amount = payment.AmountGross
		}
		reason, _ := request.EventData["reason"].(string)
		return payment, uc.refund(ctx, payment, amount, reason, providerActor)
	}

	payment.Touch(time.Now())
	if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (uc *paymentUsecase) complete(ctx context.Context, payment *models.Payment, providerTransactionID string) error {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	if payment.Status != models.PaymentStatusPending && payment.Status != models.PaymentStatusProcessing {
		return exceptions.ErrPaymentInvalidTransition(string(payment.Status), "complete")
	}

	now := time.Now()
	payment.Status = models.PaymentStatusCompleted
	payment.ProviderTransactionID = providerTransactionID
	payment.CompletedAt = &now
	payment.RecomputeNet()
	payment.Touch(now)

	if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return err
	}

	uc.propagate(ctx, payment.BookingID, "")

	uc.Log.Info("paymentUsecase payment completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
	)

	uc.notify(ctx, payment.PayerID, models.NotificationPaymentCompleted,
		"Payment received",
		fmt.Sprintf("Your payment of %.2f %s has been received.", payment.AmountGross, payment.Currency),
	)
	return nil
}

func (uc *paymentUsecase) refund(ctx context.Context, payment *models.Payment, amount float64, reason, actorID string) error {
	now := time.Now()
	payment.RefundDetails = &models.RefundDetails{
		Amount:      amount,
		Reason:      reason,
		ProcessedBy: actorID,
		ProcessedAt: now,
	}
	if amount >= payment.AmountGross {
		payment.Status = models.PaymentStatusRefunded
	} else {
		payment.Status = models.PaymentStatusPartialRefund
	}
	payment.Touch(now)

	if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return err
	}

	// The refunded payment no longer counts as completed, so the
	// booking's amount_paid drops to the remaining completed sum.
	bookingStatus := models.BookingPaymentRefunded
	if payment.Status == models.PaymentStatusPartialRefund {
		bookingStatus = models.BookingPaymentPartialRefund
	}
	uc.propagate(ctx, payment.BookingID, bookingStatus)

	uc.notify(ctx, payment.PayerID, models.NotificationBookingRefunded,
		"Payment refunded",
		fmt.Sprintf("A refund of %.2f %s has been issued for transaction %s.", amount, payment.Currency, payment.TransactionID),
	)
	return nil
}

func (uc *paymentUsecase) fail(ctx context.Context, payment *models.Payment, code, message, reason string) error {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	if payment.Status == models.PaymentStatusCompleted || payment.Status == models.PaymentStatusRefunded ||
		payment.Status == models.PaymentStatusPartialRefund {
		return exceptions.ErrPaymentInvalidTransition(string(payment.Status), "fail")
	}

	now := time.Now()
	payment.Status = models.PaymentStatusFailed
	payment.FailureDetails.Code = code
	payment.FailureDetails.Message = message
	payment.FailureDetails.Reason = reason
	payment.FailureDetails.RetryCount++
	payment.FailureDetails.LastFailedAt = &now
	payment.Touch(now)

	if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		return err
	}

	uc.Log.Info("paymentUsecase payment failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.Int("retry_count", payment.FailureDetails.RetryCount),
	)

	uc.notify(ctx, payment.PayerID, models.NotificationPaymentFailed,
		"Payment failed",
		fmt.Sprintf("Your payment attempt for transaction %s failed.", payment.TransactionID),
	)
	return nil
}

// propagate re-syncs the booking with the ledger. amount_paid is always
// the sum of completed payments; an empty status lets the booking derive
// its own payment status from that sum.
func (uc *paymentUsecase) propagate(ctx context.Context, bookingID string, status models.BookingPaymentStatus) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	sum, err := uc.PaymentRepository.SumCompletedGrossByBookingID(ctx, bookingID)
	if err == nil {
		_, err = uc.BookingUsecase.SyncPaymentStatus(ctx, bookingID, status, sum)
	}
	if err != nil {
		uc.Log.Error("paymentUsecase error propagating payment status to booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) notify(ctx context.Context, recipientID string, notificationType models.NotificationType, title, message string) {
	if uc.Dispatcher == nil {
		return
	}

	_, err := uc.Dispatcher.Dispatch(ctx, contracts.DispatchInput{
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Channels:    []models.NotificationChannel{models.ChannelEmail},
	})
	if err != nil {
		requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
		uc.Log.Error("paymentUsecase error dispatching notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRecipientIDKey, recipientID),
			zap.Error(err),
		)
	}
}
