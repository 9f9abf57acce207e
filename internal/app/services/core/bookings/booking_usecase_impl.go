package bookings

import (
	"context"
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

type bookingEvent string

const (
	eventConfirm    bookingEvent = "confirm"
	eventCancel     bookingEvent = "cancel"
	eventComplete   bookingEvent = "complete"
	eventNoShow     bookingEvent = "no_show"
	eventReschedule bookingEvent = "reschedule"
)

// bookingTransitions is the single source of truth for the booking state
// machine. An absent entry is an illegal transition.
var bookingTransitions = map[models.BookingStatus]map[bookingEvent]models.BookingStatus{
	models.BookingStatusPending: {
		eventConfirm:    models.BookingStatusConfirmed,
		eventCancel:     models.BookingStatusCancelled,
		eventReschedule: models.BookingStatusPending,
	},
	models.BookingStatusConfirmed: {
		eventCancel:     models.BookingStatusCancelled,
		eventComplete:   models.BookingStatusCompleted,
		eventNoShow:     models.BookingStatusNoShow,
		eventReschedule: models.BookingStatusConfirmed,
	},
}

type bookingUsecase struct {
	BookingRepository contracts.BookingRepository
	SessionRepository contracts.SessionRepository
	UserRepository    contracts.UserRepository
	CapacityManager   contracts.SessionCapacityManager
	Dispatcher        contracts.NotificationDispatcher
	Log               *zap.Logger
}

func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	sessionRepository contracts.SessionRepository,
	userRepository contracts.UserRepository,
	capacityManager contracts.SessionCapacityManager,
	dispatcher contracts.NotificationDispatcher,
	logger *zap.Logger,
) contracts.BookingUsecase {
	return &bookingUsecase{
		BookingRepository: bookingRepository,
		SessionRepository: sessionRepository,
		UserRepository:    userRepository,
		CapacityManager:   capacityManager,
		Dispatcher:        dispatcher,
		Log:               logger,
	}
}

func (uc *bookingUsecase) Create(ctx context.Context, studentID string, request *requests.CreateBooking) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("bookingUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, studentID),
		zap.String(constvars.LoggingSessionIDKey, request.SessionID),
	)

	session, err := uc.SessionRepository.FindByID(ctx, request.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrResourceNotFound("session")
	}
	if !session.IsBookable() {
		return nil, exceptions.ErrSessionNotBookable()
	}

	participants := make([]models.BookingParticipant, 0, len(request.Participants))
	for _, p := range request.Participants {
		participants = append(participants, models.BookingParticipant{
			Name:             p.Name,
			Email:            p.Email,
			AttendanceStatus: models.AttendanceConfirmed,
		})
	}
	if len(participants) == 0 {
		// A booking without an explicit participant list books one seat
		// for the student themselves.
		student, err := uc.UserRepository.FindByID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, exceptions.ErrResourceNotFound("user")
		}
		participants = append(participants, models.BookingParticipant{
			Name:             student.FullName,
			Email:            student.Email,
			AttendanceStatus: models.AttendanceConfirmed,
		})
	}

	if !session.HasCapacityFor(len(participants)) {
		return nil, exceptions.ErrSessionCapacityExceeded()
	}

	reference, err := utils.GenerateBookingReference()
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		BookingReference:  reference,
		SessionID:         session.ID,
		StudentID:         studentID,
		TutorID:           session.TutorID,
		Participants:      participants,
		TotalParticipants: len(participants),
		BookingStatus:     models.BookingStatusPending,
		PaymentStatus:     models.BookingPaymentPending,
		AmountTotal:       session.PricePerParticipant * float64(len(participants)),
		AmountPaid:        0,
		Notes:             request.Notes,
	}
	booking.Touch(time.Now())

	bookingID, err := uc.BookingRepository.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = bookingID

	uc.Log.Info("bookingUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingReferenceKey, reference),
		zap.Int(constvars.LoggingParticipantsKey, len(participants)),
	)
	return booking, nil
}

func (uc *bookingUsecase) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrResourceNotFound("booking")
	}
	return booking, nil
}

func (uc *bookingUsecase) FindAll(ctx context.Context, filter *requests.BookingListFilter, pagination *requests.Pagination) ([]models.Booking, int, error) {
	return uc.BookingRepository.FindAll(ctx, filter, pagination)
}

func (uc *bookingUsecase) Confirm(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := transition(booking, eventConfirm); err != nil {
		return nil, err
	}

	// Seats are taken before the booking is persisted so a full session
	// rejects the confirmation instead of overbooking.
	if err := uc.CapacityManager.AddParticipants(ctx, booking.SessionID, booking.TotalParticipants); err != nil {
		return nil, err
	}

	booking.Touch(time.Now())
	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.Confirm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	uc.notify(ctx, booking.StudentID, models.NotificationBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Your booking %s has been confirmed.", booking.BookingReference),
	)
	return booking, nil
}

func (uc *bookingUsecase) Cancel(ctx context.Context, bookingID, reason, actorID string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	wasConfirmed := booking.BookingStatus == models.BookingStatusConfirmed
	if err := transition(booking, eventCancel); err != nil {
		return nil, err
	}

	now := time.Now()
	booking.CancellationDetails = &models.CancellationDetails{
		CancelledAt:        now,
		CancelledBy:        actorID,
		CancellationReason: reason,
	}
	booking.Touch(now)

	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}

	// Seats held by a confirmed booking go back to the session. The
	// booking is already cancelled at this point; a failed release is
	// logged and corrected out of band.
	if wasConfirmed {
		if err := uc.CapacityManager.ReleaseParticipants(ctx, booking.SessionID, booking.TotalParticipants); err != nil {
			uc.Log.Error("bookingUsecase.Cancel error releasing session seats",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBookingIDKey, bookingID),
				zap.String(constvars.LoggingSessionIDKey, booking.SessionID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("bookingUsecase.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	uc.notify(ctx, booking.StudentID, models.NotificationBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Your booking %s has been cancelled.", booking.BookingReference),
	)
	return booking, nil
}

// ProcessRefund records the refund decision for a cancelled booking. It
// runs at most once per booking.
func (uc *bookingUsecase) ProcessRefund(ctx context.Context, bookingID string, amount float64, actorID string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookingStatus != models.BookingStatusCancelled || booking.CancellationDetails == nil {
		return nil, exceptions.ErrBookingInvalidTransition(string(booking.BookingStatus), "refund")
	}
	if booking.CancellationDetails.RefundProcessed {
		return nil, exceptions.ErrRefundAlreadyProcessed()
	}
	if amount > booking.AmountPaid {
		return nil, exceptions.ErrRefundExceedsAmountPaid()
	}

	booking.CancellationDetails.RefundProcessed = true
	booking.CancellationDetails.RefundAmount = amount
	if amount >= booking.AmountPaid {
		booking.PaymentStatus = models.BookingPaymentRefunded
	} else {
		booking.PaymentStatus = models.BookingPaymentPartialRefund
	}
	booking.Touch(time.Now())

	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.ProcessRefund succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.Float64("refund_amount", amount),
	)

	uc.notify(ctx, booking.StudentID, models.NotificationBookingRefunded,
		"Refund processed",
		fmt.Sprintf("A refund of %.2f has been processed for booking %s.", amount, booking.BookingReference),
	)
	return booking, nil
}

func (uc *bookingUsecase) MarkCompleted(ctx context.Context, bookingID, notes, actorID string) (*models.Booking, error) {
	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := transition(booking, eventComplete); err != nil {
		return nil, err
	}

	booking.CompletionNotes = notes
	for i := range booking.Participants {
		if booking.Participants[i].AttendanceStatus == models.AttendanceConfirmed {
			booking.Participants[i].AttendanceStatus = models.AttendanceAttended
		}
	}
	booking.Touch(time.Now())

	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// MarkNoShow closes out a confirmed booking whose participants never
// turned up. The session still happened, so the seats are not released.
func (uc *bookingUsecase) MarkNoShow(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := transition(booking, eventNoShow); err != nil {
		return nil, err
	}

	for i := range booking.Participants {
		if booking.Participants[i].AttendanceStatus == models.AttendanceConfirmed {
			booking.Participants[i].AttendanceStatus = models.AttendanceAbsent
		}
	}
	booking.Touch(time.Now())

	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (uc *bookingUsecase) Reschedule(ctx context.Context, bookingID, newSessionID, reason, actorID string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := transition(booking, eventReschedule); err != nil {
		return nil, err
	}

	newSession, err := uc.SessionRepository.FindByID(ctx, newSessionID)
	if err != nil {
		return nil, err
	}
	if newSession == nil {
		return nil, exceptions.ErrResourceNotFound("session")
	}
	if !newSession.IsBookable() {
		return nil, exceptions.ErrSessionNotBookable()
	}
	if !newSession.HasCapacityFor(booking.TotalParticipants) {
		return nil, exceptions.ErrSessionCapacityExceeded()
	}

	// A confirmed booking moves its seats from the old session to the
	// new one; a pending booking holds no seats yet.
	if booking.BookingStatus == models.BookingStatusConfirmed {
		if err := uc.CapacityManager.AddParticipants(ctx, newSessionID, booking.TotalParticipants); err != nil {
			return nil, err
		}
		if err := uc.CapacityManager.ReleaseParticipants(ctx, booking.SessionID, booking.TotalParticipants); err != nil {
			uc.Log.Error("bookingUsecase.Reschedule error releasing old session seats",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBookingIDKey, bookingID),
				zap.String(constvars.LoggingSessionIDKey, booking.SessionID),
				zap.Error(err),
			)
		}
	}

	now := time.Now()
	booking.RescheduleHistory = append(booking.RescheduleHistory, models.RescheduleEntry{
		FromSessionID: booking.SessionID,
		ToSessionID:   newSessionID,
		Reason:        reason,
		RescheduledBy: actorID,
		RescheduledAt: now,
	})
	booking.SessionID = newSessionID
	booking.TutorID = newSession.TutorID
	booking.Touch(now)

	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.Reschedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingSessionIDKey, newSessionID),
	)
	return booking, nil
}

// SyncPaymentStatus is called by the payment ledger after every ledger
// change. The amount paid always mirrors the sum of completed payments;
// the status argument overrides derivation for refunds.
func (uc *bookingUsecase) SyncPaymentStatus(ctx context.Context, bookingID string, status models.BookingPaymentStatus, amountPaid float64) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	booking, err := uc.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	booking.AmountPaid = amountPaid
	if status != "" {
		booking.PaymentStatus = status
	} else {
		booking.DerivePaymentStatus()
	}

	// A pending booking that became fully paid confirms itself.
	if booking.BookingStatus == models.BookingStatusPending && booking.PaymentStatus == models.BookingPaymentPaid {
		if err := uc.CapacityManager.AddParticipants(ctx, booking.SessionID, booking.TotalParticipants); err != nil {
			uc.Log.Error("bookingUsecase.SyncPaymentStatus error taking session seats",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBookingIDKey, bookingID),
				zap.Error(err),
			)
		} else {
			booking.BookingStatus = models.BookingStatusConfirmed
			uc.notify(ctx, booking.StudentID, models.NotificationBookingConfirmed,
				"Booking confirmed",
				fmt.Sprintf("Your booking %s has been confirmed.", booking.BookingReference),
			)
		}
	}

	booking.Touch(time.Now())
	if err := uc.BookingRepository.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// notify is fire and forget; a dispatch failure never rolls back the
// transition that triggered it.
func (uc *bookingUsecase) notify(ctx context.Context, recipientID string, notificationType models.NotificationType, title, message string) {
	if uc.Dispatcher == nil {
		return
	}

	_, err := uc.Dispatcher.Dispatch(ctx, contracts.DispatchInput{
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Channels:    []models.NotificationChannel{models.ChannelEmail, models.ChannelPush},
	})
	if err != nil {
		requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
		uc.Log.Error("bookingUsecase error dispatching notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRecipientIDKey, recipientID),
			zap.Error(err),
		)
	}
}

func transition(booking *models.Booking, event bookingEvent) error {
	next, ok := bookingTransitions[booking.BookingStatus][event]
	if !ok {
		return exceptions.ErrBookingInvalidTransition(string(booking.BookingStatus), string(event))
	}
	booking.BookingStatus = next
	return nil
}
