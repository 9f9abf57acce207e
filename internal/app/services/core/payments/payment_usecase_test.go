package payments

import (
	"context"
	"edulink-service/internal/app/config"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindAllByBookingID(ctx context.Context, bookingID string) ([]models.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumCompletedGrossByBookingID(ctx context.Context, bookingID string) (float64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Payment, int, error) {
	args := m.Called(ctx, pagination)
	return args.Get(0).([]models.Payment), args.Int(1), args.Error(2)
}

type MockBookingUsecase struct {
	mock.Mock
}

func (m *MockBookingUsecase) Create(ctx context.Context, studentID string, request *requests.CreateBooking) (*models.Booking, error) {
	args := m.Called(ctx, studentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) FindAll(ctx context.Context, filter *requests.BookingListFilter, pagination *requests.Pagination) ([]models.Booking, int, error) {
	args := m.Called(ctx, filter, pagination)
	return args.Get(0).([]models.Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingUsecase) Confirm(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) Cancel(ctx context.Context, bookingID, reason, actorID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) ProcessRefund(ctx context.Context, bookingID string, amount float64, actorID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, amount, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) MarkCompleted(ctx context.Context, bookingID, notes, actorID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, notes, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) MarkNoShow(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) Reschedule(ctx context.Context, bookingID, newSessionID, reason, actorID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, newSessionID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingUsecase) SyncPaymentStatus(ctx context.Context, bookingID string, status models.BookingPaymentStatus, amountPaid float64) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, status, amountPaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, input contracts.DispatchInput) (*models.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Billing: config.Billing{
			RefundWindowInDays:  30,
			DefaultCurrencyCode: "USD",
		},
	}
}

func newPaymentUsecaseForTest(
	paymentRepo *MockPaymentRepository,
	bookingUsecase *MockBookingUsecase,
	dispatcher *MockDispatcher,
) contracts.PaymentUsecase {
	return NewPaymentUsecase(paymentRepo, bookingUsecase, dispatcher, testInternalConfig(), zap.NewNop())
}

func TestPaymentUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("net amount is gross minus fee", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, new(MockDispatcher))

		bookingUsecase.On("FindByID", ctx, "booking-1").Return(&models.Booking{
			ID:          "booking-1",
			StudentID:   "student-1",
			TutorID:     "tutor-1",
			AmountTotal: 100,
		}, nil)
		paymentRepo.On("Insert", ctx, mock.AnythingOfType("*models.Payment")).Return("payment-1", nil)

		payment, err := uc.Create(ctx, "student-1", &requests.CreatePayment{
			BookingID:   "booking-1",
			AmountGross: 100,
			AmountFee:   5,
			Method:      "card",
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(100), payment.AmountGross)
		assert.Equal(t, float64(5), payment.AmountFee)
		assert.Equal(t, float64(95), payment.AmountNet)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)
		assert.Equal(t, "student-1", payment.PayerID)
		assert.Equal(t, "tutor-1", payment.RecipientID)
		assert.Equal(t, constvars.DefaultMaxRetries, payment.FailureDetails.MaxRetries)
	})

	t.Run("defaults gross to the booking total and currency to config", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, new(MockDispatcher))

		bookingUsecase.On("FindByID", ctx, "booking-1").Return(&models.Booking{
			ID:          "booking-1",
			AmountTotal: 75,
		}, nil)
		paymentRepo.On("Insert", ctx, mock.AnythingOfType("*models.Payment")).Return("payment-1", nil)

		payment, err := uc.Create(ctx, "student-1", &requests.CreatePayment{
			BookingID: "booking-1",
			Method:    "bank_transfer",
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(75), payment.AmountGross)
		assert.Equal(t, "USD", payment.Currency)
	})
}

func TestPaymentUsecase_MarkCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("completes a pending payment and syncs the booking", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, dispatcher)

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:          "payment-1",
			BookingID:   "booking-1",
			PayerID:     "student-1",
			AmountGross: 100,
			AmountFee:   5,
			Status:      models.PaymentStatusPending,
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		paymentRepo.On("SumCompletedGrossByBookingID", ctx, "booking-1").Return(float64(100), nil)
		bookingUsecase.On("SyncPaymentStatus", ctx, "booking-1", models.BookingPaymentStatus(""), float64(100)).Return(&models.Booking{}, nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		payment, err := uc.MarkCompleted(ctx, "payment-1", "prov-tx-1")

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
		assert.Equal(t, "prov-tx-1", payment.ProviderTransactionID)
		assert.NotNil(t, payment.CompletedAt)
		assert.Equal(t, float64(95), payment.AmountNet)
		bookingUsecase.AssertExpectations(t)
	})

	t.Run("a completed payment cannot complete again", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:     "payment-1",
			Status: models.PaymentStatusCompleted,
		}, nil)

		_, err := uc.MarkCompleted(ctx, "payment-1", "prov-tx-1")

		assert.Error(t, err)
		paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPaymentUsecase_RetryBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("each failure consumes one retry", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), dispatcher)

		payment := &models.Payment{
			ID:     "payment-1",
			Status: models.PaymentStatusPending,
			FailureDetails: models.FailureDetails{
				MaxRetries: constvars.DefaultMaxRetries,
			},
		}
		paymentRepo.On("FindByID", ctx, "payment-1").Return(payment, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		failed, err := uc.MarkFailed(ctx, "payment-1", &requests.FailPayment{Reason: "card declined"})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusFailed, failed.Status)
		assert.Equal(t, 1, failed.FailureDetails.RetryCount)
		assert.NotNil(t, failed.FailureDetails.LastFailedAt)
	})

	t.Run("retry moves a failed payment back to pending", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:     "payment-1",
			Status: models.PaymentStatusFailed,
			FailureDetails: models.FailureDetails{
				RetryCount: 2,
				MaxRetries: 3,
			},
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

		payment, err := uc.Retry(ctx, "payment-1")

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)
	})

	t.Run("retry is refused once the budget is exhausted", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:     "payment-1",
			Status: models.PaymentStatusFailed,
			FailureDetails: models.FailureDetails{
				RetryCount: 3,
				MaxRetries: 3,
			},
		}, nil)

		_, err := uc.Retry(ctx, "payment-1")

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.ErrClientRetryExhausted, customErr.ClientMessage)
		paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPaymentUsecase_ProcessRefund(t *testing.T) {
	ctx := context.Background()

	completedPayment := func(completedAt time.Time) *models.Payment {
		return &models.Payment{
			ID:          "payment-1",
			BookingID:   "booking-1",
			PayerID:     "student-1",
			AmountGross: 100,
			AmountFee:   5,
			Status:      models.PaymentStatusCompleted,
			CompletedAt: &completedAt,
		}
	}

	t.Run("a full refund within the window succeeds", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, dispatcher)

		paymentRepo.On("FindByID", ctx, "payment-1").Return(completedPayment(time.Now().Add(-24*time.Hour)), nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		paymentRepo.On("SumCompletedGrossByBookingID", ctx, "booking-1").Return(float64(0), nil)
		bookingUsecase.On("SyncPaymentStatus", ctx, "booking-1", models.BookingPaymentRefunded, float64(0)).Return(&models.Booking{}, nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		payment, err := uc.ProcessRefund(ctx, "payment-1", 100, "duplicate charge", "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
		assert.Equal(t, float64(100), payment.RefundDetails.Amount)
		assert.Equal(t, "admin-1", payment.RefundDetails.ProcessedBy)
		bookingUsecase.AssertExpectations(t)
	})

	t.Run("a partial refund keeps partial_refund status", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, dispatcher)

		paymentRepo.On("FindByID", ctx, "payment-1").Return(completedPayment(time.Now().Add(-24*time.Hour)), nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		paymentRepo.On("SumCompletedGrossByBookingID", ctx, "booking-1").Return(float64(0), nil)
		bookingUsecase.On("SyncPaymentStatus", ctx, "booking-1", models.BookingPaymentPartialRefund, float64(0)).Return(&models.Booking{}, nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		payment, err := uc.ProcessRefund(ctx, "payment-1", 40, "partial goodwill", "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPartialRefund, payment.Status)
	})

	t.Run("refuses a refund outside the policy window", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(completedPayment(time.Now().Add(-31*24*time.Hour)), nil)

		_, err := uc.ProcessRefund(ctx, "payment-1", 100, "too late", "admin-1")

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.ErrClientPaymentNotRefundable, customErr.ClientMessage)
	})

	t.Run("refuses a second refund", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		refunded := completedPayment(time.Now().Add(-24 * time.Hour))
		refunded.RefundDetails = &models.RefundDetails{Amount: 100}
		paymentRepo.On("FindByID", ctx, "payment-1").Return(refunded, nil)

		_, err := uc.ProcessRefund(ctx, "payment-1", 50, "again", "admin-1")

		assert.Error(t, err)
	})

	t.Run("refuses a refund above the gross amount", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(completedPayment(time.Now().Add(-24*time.Hour)), nil)

		_, err := uc.ProcessRefund(ctx, "payment-1", 150, "too much", "admin-1")

		assert.Error(t, err)
	})
}

func TestPaymentUsecase_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("a completed event settles a pending payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, dispatcher)

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:        "payment-1",
			BookingID: "booking-1",
			Status:    models.PaymentStatusPending,
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		paymentRepo.On("SumCompletedGrossByBookingID", ctx, "booking-1").Return(float64(100), nil)
		bookingUsecase.On("SyncPaymentStatus", ctx, "booking-1", models.BookingPaymentStatus(""), float64(100)).Return(&models.Booking{}, nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		payment, err := uc.HandleWebhook(ctx, &requests.PaymentWebhook{
			PaymentID: "payment-1",
			EventType: "payment.completed",
			EventData: map[string]interface{}{"provider_transaction_id": "prov-tx-9"},
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
		assert.Equal(t, "prov-tx-9", payment.ProviderTransactionID)
		assert.Len(t, payment.WebhookEvents, 1)
	})

	t.Run("a replayed completed event is recorded but changes nothing", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, new(MockDispatcher))

		completedAt := time.Now()
		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:          "payment-1",
			BookingID:   "booking-1",
			Status:      models.PaymentStatusCompleted,
			CompletedAt: &completedAt,
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

		payment, err := uc.HandleWebhook(ctx, &requests.PaymentWebhook{
			PaymentID: "payment-1",
			EventType: "payment.completed",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
		assert.Len(t, payment.WebhookEvents, 1)
		bookingUsecase.AssertNotCalled(t, "SyncPaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a refunded event refunds a completed payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, dispatcher)

		completedAt := time.Now().Add(-24 * time.Hour)
		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:          "payment-1",
			BookingID:   "booking-1",
			PayerID:     "student-1",
			AmountGross: 100,
			Status:      models.PaymentStatusCompleted,
			CompletedAt: &completedAt,
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		paymentRepo.On("SumCompletedGrossByBookingID", ctx, "booking-1").Return(float64(0), nil)
		bookingUsecase.On("SyncPaymentStatus", ctx, "booking-1", models.BookingPaymentRefunded, float64(0)).Return(&models.Booking{}, nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		payment, err := uc.HandleWebhook(ctx, &requests.PaymentWebhook{
			PaymentID: "payment-1",
			EventType: "payment.refunded",
			EventData: map[string]interface{}{"amount": float64(100), "reason": "provider chargeback"},
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
		assert.Equal(t, float64(100), payment.RefundDetails.Amount)
		assert.Equal(t, "provider chargeback", payment.RefundDetails.Reason)
		assert.Equal(t, "provider", payment.RefundDetails.ProcessedBy)
		assert.Len(t, payment.WebhookEvents, 1)
		bookingUsecase.AssertExpectations(t)
	})

	t.Run("a partial refunded event keeps partial_refund status", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		dispatcher := new(MockDispatcher)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, dispatcher)

		completedAt := time.Now().Add(-24 * time.Hour)
		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:          "payment-1",
			BookingID:   "booking-1",
			AmountGross: 100,
			Status:      models.PaymentStatusCompleted,
			CompletedAt: &completedAt,
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)
		paymentRepo.On("SumCompletedGrossByBookingID", ctx, "booking-1").Return(float64(0), nil)
		bookingUsecase.On("SyncPaymentStatus", ctx, "booking-1", models.BookingPaymentPartialRefund, float64(0)).Return(&models.Booking{}, nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("contracts.DispatchInput")).Return(&models.Notification{}, nil)

		payment, err := uc.HandleWebhook(ctx, &requests.PaymentWebhook{
			PaymentID: "payment-1",
			EventType: "payment.refunded",
			EventData: map[string]interface{}{"amount": float64(40)},
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPartialRefund, payment.Status)
		assert.Equal(t, float64(40), payment.RefundDetails.Amount)
	})

	t.Run("a replayed refunded event is recorded but changes nothing", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		bookingUsecase := new(MockBookingUsecase)
		uc := newPaymentUsecaseForTest(paymentRepo, bookingUsecase, new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:            "payment-1",
			BookingID:     "booking-1",
			AmountGross:   100,
			Status:        models.PaymentStatusRefunded,
			RefundDetails: &models.RefundDetails{Amount: 100},
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

		payment, err := uc.HandleWebhook(ctx, &requests.PaymentWebhook{
			PaymentID: "payment-1",
			EventType: "payment.refunded",
			EventData: map[string]interface{}{"amount": float64(100)},
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
		assert.Equal(t, float64(100), payment.RefundDetails.Amount)
		assert.Len(t, payment.WebhookEvents, 1)
		bookingUsecase.AssertNotCalled(t, "SyncPaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an unknown event only appends to the event log", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		uc := newPaymentUsecaseForTest(paymentRepo, new(MockBookingUsecase), new(MockDispatcher))

		paymentRepo.On("FindByID", ctx, "payment-1").Return(&models.Payment{
			ID:     "payment-1",
			Status: models.PaymentStatusPending,
		}, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

		payment, err := uc.HandleWebhook(ctx, &requests.PaymentWebhook{
			PaymentID: "payment-1",
			EventType: "payment.disputed",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)
		assert.Len(t, payment.WebhookEvents, 1)
	})
}
