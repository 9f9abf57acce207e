package invoices

import (
	"context"
	"edulink-service/internal/app/config"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Insert(ctx context.Context, invoice *models.Invoice) (string, error) {
	args := m.Called(ctx, invoice)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Invoice, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, pagination *requests.Pagination) ([]models.Invoice, int, error) {
	args := m.Called(ctx, pagination)
	return args.Get(0).([]models.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepository) CountIssuedSince(ctx context.Context, monthStart int64) (int64, error) {
	args := m.Called(ctx, monthStart)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Insert(ctx context.Context, booking *models.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, filter *requests.BookingListFilter, pagination *requests.Pagination) ([]models.Booking, int, error) {
	args := m.Called(ctx, filter, pagination)
	return args.Get(0).([]models.Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepository) CountActiveBySessionID(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Billing: config.Billing{
			TaxRate:             0.1,
			InvoiceDueInDays:    7,
			DefaultCurrencyCode: "USD",
		},
	}
}

func newInvoiceUsecaseForTest(
	invoiceRepo *MockInvoiceRepository,
	bookingRepo *MockBookingRepository,
	userRepo *MockUserRepository,
) contracts.InvoiceUsecase {
	return NewInvoiceUsecase(invoiceRepo, bookingRepo, userRepo, testInternalConfig(), zap.NewNop())
}

func TestInvoiceUsecase_Create(t *testing.T) {
	ctx := context.Background()

	booking := &models.Booking{
		ID:                "booking-1",
		BookingReference:  "EDU-20260901-ABC123",
		StudentID:         "student-1",
		AmountTotal:       200,
		TotalParticipants: 2,
	}
	student := &models.User{
		ID:       "student-1",
		FullName: "Alice Tan",
		Email:    "alice@example.com",
	}

	t.Run("snapshots the booking and numbers within the month", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, bookingRepo, userRepo)

		bookingRepo.On("FindByID", ctx, "booking-1").Return(booking, nil)
		invoiceRepo.On("FindByBookingID", ctx, "booking-1").Return(nil, nil)
		userRepo.On("FindByID", ctx, "student-1").Return(student, nil)
		invoiceRepo.On("CountIssuedSince", ctx, mock.AnythingOfType("int64")).Return(int64(4), nil)
		invoiceRepo.On("Insert", ctx, mock.AnythingOfType("*models.Invoice")).Return("invoice-1", nil)

		invoice, err := uc.Create(ctx, "admin-1", &requests.CreateInvoice{BookingID: "booking-1"})

		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%s-00005", time.Now().Format("200601")), invoice.InvoiceNumber)
		assert.Equal(t, "Alice Tan", invoice.Customer.FullName)
		assert.Len(t, invoice.LineItems, 1)
		assert.Equal(t, 2, invoice.LineItems[0].Quantity)
		assert.Equal(t, float64(100), invoice.LineItems[0].UnitPrice)
		assert.Equal(t, float64(200), invoice.SubtotalAmount)
		assert.Equal(t, float64(20), invoice.TotalTaxAmount)
		assert.Equal(t, float64(220), invoice.TotalAmount)
		assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
		assert.Len(t, invoice.AuditTrail, 1)
		assert.Equal(t, "created", invoice.AuditTrail[0].Action)
	})

	t.Run("one invoice per booking", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		bookingRepo := new(MockBookingRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, bookingRepo, new(MockUserRepository))

		bookingRepo.On("FindByID", ctx, "booking-1").Return(booking, nil)
		invoiceRepo.On("FindByBookingID", ctx, "booking-1").Return(&models.Invoice{ID: "invoice-1"}, nil)

		_, err := uc.Create(ctx, "admin-1", &requests.CreateInvoice{BookingID: "booking-1"})

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.ErrClientInvoiceAlreadyExists, customErr.ClientMessage)
		invoiceRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("a discount reduces the total", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, bookingRepo, userRepo)

		bookingRepo.On("FindByID", ctx, "booking-1").Return(booking, nil)
		invoiceRepo.On("FindByBookingID", ctx, "booking-1").Return(nil, nil)
		userRepo.On("FindByID", ctx, "student-1").Return(student, nil)
		invoiceRepo.On("CountIssuedSince", ctx, mock.AnythingOfType("int64")).Return(int64(0), nil)
		invoiceRepo.On("Insert", ctx, mock.AnythingOfType("*models.Invoice")).Return("invoice-1", nil)

		invoice, err := uc.Create(ctx, "admin-1", &requests.CreateInvoice{
			BookingID:      "booking-1",
			DiscountAmount: 50,
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(170), invoice.TotalAmount)
	})
}

func TestInvoiceUsecase_AddPayment(t *testing.T) {
	ctx := context.Background()

	sentInvoice := func() *models.Invoice {
		return &models.Invoice{
			ID:          "invoice-1",
			Status:      models.InvoiceStatusSent,
			TotalAmount: 220,
			DueDate:     time.Now().AddDate(0, 0, 7),
		}
	}

	t.Run("a partial payment marks the invoice partially paid", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(sentInvoice(), nil)
		invoiceRepo.On("Update", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)

		invoice, err := uc.AddPayment(ctx, "invoice-1", &requests.InvoicePayment{
			Amount:        100,
			PaymentMethod: "card",
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(100), invoice.AmountPaid)
		assert.Equal(t, models.InvoiceStatusPartiallyPaid, invoice.Status)
		assert.Len(t, invoice.PaymentHistory, 1)
	})

	t.Run("full payment marks the invoice paid", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(sentInvoice(), nil)
		invoiceRepo.On("Update", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)

		invoice, err := uc.AddPayment(ctx, "invoice-1", &requests.InvoicePayment{
			Amount:        220,
			PaymentMethod: "bank_transfer",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
	})

	t.Run("rejects a payment that would overpay", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		partiallyPaid := sentInvoice()
		partiallyPaid.AmountPaid = 200
		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(partiallyPaid, nil)

		_, err := uc.AddPayment(ctx, "invoice-1", &requests.InvoicePayment{
			Amount:        50,
			PaymentMethod: "card",
		})

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.ErrClientInvoiceOverpayment, customErr.ClientMessage)
		invoiceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("a cancelled invoice accepts no payment", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		cancelled := sentInvoice()
		cancelled.Status = models.InvoiceStatusCancelled
		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(cancelled, nil)

		_, err := uc.AddPayment(ctx, "invoice-1", &requests.InvoicePayment{
			Amount:        10,
			PaymentMethod: "card",
		})

		assert.Error(t, err)
	})

	t.Run("an unpaid invoice past due flips to overdue on save", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		pastDue := sentInvoice()
		pastDue.DueDate = time.Now().AddDate(0, 0, -1)
		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(pastDue, nil)
		invoiceRepo.On("Update", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)

		invoice, err := uc.AddPayment(ctx, "invoice-1", &requests.InvoicePayment{
			Amount:        100,
			PaymentMethod: "card",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusOverdue, invoice.Status)
	})
}

func TestInvoiceUsecase_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("draft sends, sent views, viewing is idempotent", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoice := &models.Invoice{
			ID:          "invoice-1",
			Status:      models.InvoiceStatusDraft,
			TotalAmount: 100,
			DueDate:     time.Now().AddDate(0, 0, 7),
		}
		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(invoice, nil)
		invoiceRepo.On("Update", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)

		sent, err := uc.MarkAsSent(ctx, "invoice-1", "admin-1")
		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusSent, sent.Status)

		viewed, err := uc.MarkAsViewed(ctx, "invoice-1", "student-1")
		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusViewed, viewed.Status)

		viewedAgain, err := uc.MarkAsViewed(ctx, "invoice-1", "student-1")
		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusViewed, viewedAgain.Status)
	})

	t.Run("only a draft invoice can be sent", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(&models.Invoice{
			ID:     "invoice-1",
			Status: models.InvoiceStatusPaid,
		}, nil)

		_, err := uc.MarkAsSent(ctx, "invoice-1", "admin-1")

		assert.Error(t, err)
	})

	t.Run("a paid invoice cannot be cancelled", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(&models.Invoice{
			ID:     "invoice-1",
			Status: models.InvoiceStatusPaid,
		}, nil)

		_, err := uc.Cancel(ctx, "invoice-1", "mistake", "admin-1")

		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.Equal(t, constvars.ErrClientInvoiceNotCancellable, customErr.ClientMessage)
	})

	t.Run("refund requires a paid invoice and respects amount paid", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(&models.Invoice{
			ID:          "invoice-1",
			Status:      models.InvoiceStatusPaid,
			TotalAmount: 220,
			AmountPaid:  220,
		}, nil)
		invoiceRepo.On("Update", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)

		invoice, err := uc.ProcessRefund(ctx, "invoice-1", 220, "course cancelled", "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusRefunded, invoice.Status)
		assert.Equal(t, float64(0), invoice.AmountPaid)
	})

	t.Run("a partial refund leaves the invoice partially paid", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(&models.Invoice{
			ID:          "invoice-1",
			Status:      models.InvoiceStatusPaid,
			TotalAmount: 100,
			AmountPaid:  100,
		}, nil)
		invoiceRepo.On("Update", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)

		invoice, err := uc.ProcessRefund(ctx, "invoice-1", 40, "one session refunded", "admin-1")

		assert.NoError(t, err)
		assert.Equal(t, models.InvoiceStatusPartiallyPaid, invoice.Status)
		assert.Equal(t, float64(60), invoice.AmountPaid)
	})

	t.Run("refund cannot exceed the amount paid", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		uc := newInvoiceUsecaseForTest(invoiceRepo, new(MockBookingRepository), new(MockUserRepository))

		invoiceRepo.On("FindByID", ctx, "invoice-1").Return(&models.Invoice{
			ID:          "invoice-1",
			Status:      models.InvoiceStatusPaid,
			TotalAmount: 220,
			AmountPaid:  100,
		}, nil)

		_, err := uc.ProcessRefund(ctx, "invoice-1", 150, "too much", "admin-1")

		assert.Error(t, err)
	})
}
