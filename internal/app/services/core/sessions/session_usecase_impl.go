package sessions

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type sessionUsecase struct {
	SessionRepository contracts.SessionRepository
	BookingRepository contracts.BookingRepository
	Log               *zap.Logger
}

func NewSessionUsecase(
	sessionRepository contracts.SessionRepository,
	bookingRepository contracts.BookingRepository,
	logger *zap.Logger,
) contracts.SessionUsecase {
	return &sessionUsecase{
		SessionRepository: sessionRepository,
		BookingRepository: bookingRepository,
		Log:               logger,
	}
}

func (uc *sessionUsecase) Create(ctx context.Context, tutorID string, request *requests.CreateSession) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("sessionUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, tutorID),
	)

	scheduledDate, err := time.Parse(time.DateOnly, request.ScheduledDate)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	session := &models.Session{
		TutorID:             tutorID,
		Title:               request.Title,
		Description:         request.Description,
		Subject:             request.Subject,
		ScheduledDate:       scheduledDate,
		StartTime:           request.StartTime,
		EndTime:             request.EndTime,
		MaxParticipants:     request.MaxParticipants,
		CurrentParticipants: 0,
		PricePerParticipant: request.PricePerParticipant,
		Status:              models.SessionStatusDraft,
	}
	session.Touch(time.Now())

	sessionID, err := uc.SessionRepository.Insert(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	uc.Log.Info("sessionUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	return session, nil
}

func (uc *sessionUsecase) Update(ctx context.Context, sessionID, actorID string, request *requests.UpdateSession) (*models.Session, error) {
	session, err := uc.loadOwned(ctx, sessionID, actorID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusDraft && session.Status != models.SessionStatusPublished {
		return nil, exceptions.ErrSessionInvalidTransition(string(session.Status), "update")
	}

	if request.Title != "" {
		session.Title = request.Title
	}
	if request.Description != "" {
		session.Description = request.Description
	}
	if request.Subject != "" {
		session.Subject = request.Subject
	}
	if request.ScheduledDate != "" {
		scheduledDate, err := time.Parse(time.DateOnly, request.ScheduledDate)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		session.ScheduledDate = scheduledDate
	}
	if request.StartTime != "" {
		session.StartTime = request.StartTime
	}
	if request.EndTime != "" {
		session.EndTime = request.EndTime
	}
	if request.MaxParticipants != nil {
		// Capacity can never shrink below seats already taken.
		if *request.MaxParticipants < session.CurrentParticipants {
			return nil, exceptions.ErrSessionCapacityExceeded()
		}
		session.MaxParticipants = *request.MaxParticipants
	}
	if request.PricePerParticipant != nil {
		session.PricePerParticipant = *request.PricePerParticipant
	}
	session.Touch(time.Now())

	if err := uc.SessionRepository.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *sessionUsecase) Publish(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	return uc.changeStatus(ctx, sessionID, actorID, "publish", models.SessionStatusPublished, models.SessionStatusDraft)
}

func (uc *sessionUsecase) Cancel(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	return uc.changeStatus(ctx, sessionID, actorID, "cancel", models.SessionStatusCancelled,
		models.SessionStatusDraft, models.SessionStatusPublished, models.SessionStatusInProgress)
}

func (uc *sessionUsecase) Complete(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	return uc.changeStatus(ctx, sessionID, actorID, "complete", models.SessionStatusCompleted,
		models.SessionStatusPublished, models.SessionStatusInProgress)
}

func (uc *sessionUsecase) Delete(ctx context.Context, sessionID, actorID string) error {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("sessionUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	if _, err := uc.loadOwned(ctx, sessionID, actorID); err != nil {
		return err
	}

	activeBookings, err := uc.BookingRepository.CountActiveBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if activeBookings > 0 {
		return exceptions.ErrSessionHasActiveBookings()
	}

	return uc.SessionRepository.DeleteByID(ctx, sessionID)
}

func (uc *sessionUsecase) FindByID(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := uc.SessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrResourceNotFound("session")
	}
	return session, nil
}

func (uc *sessionUsecase) FindAll(ctx context.Context, filter *requests.SessionListFilter, pagination *requests.Pagination) ([]models.Session, int, error) {
	return uc.SessionRepository.FindAll(ctx, filter, pagination)
}

// AddParticipants takes seats on a session when a booking is confirmed.
func (uc *sessionUsecase) AddParticipants(ctx context.Context, sessionID string, count int) error {
	session, err := uc.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.HasCapacityFor(count) {
		return exceptions.ErrSessionCapacityExceeded()
	}

	session.CurrentParticipants += count
	session.Touch(time.Now())
	return uc.SessionRepository.Update(ctx, session)
}

// ReleaseParticipants gives seats back when a confirmed booking is
// cancelled or rescheduled away.
func (uc *sessionUsecase) ReleaseParticipants(ctx context.Context, sessionID string, count int) error {
	session, err := uc.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.CurrentParticipants-count < 0 {
		return exceptions.ErrSessionNoParticipants()
	}

	session.CurrentParticipants -= count
	session.Touch(time.Now())
	return uc.SessionRepository.Update(ctx, session)
}

func (uc *sessionUsecase) loadOwned(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	session, err := uc.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.TutorID != actorID {
		return nil, exceptions.ErrRoleForbidden(nil)
	}
	return session, nil
}

func (uc *sessionUsecase) changeStatus(ctx context.Context, sessionID, actorID, event string, to models.SessionStatus, allowedFrom ...models.SessionStatus) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	session, err := uc.loadOwned(ctx, sessionID, actorID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, from := range allowedFrom {
		if session.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, exceptions.ErrSessionInvalidTransition(string(session.Status), event)
	}

	session.Status = to
	session.Touch(time.Now())
	if err := uc.SessionRepository.Update(ctx, session); err != nil {
		return nil, err
	}

	uc.Log.Info("sessionUsecase status changed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String("event", event),
	)
	return session, nil
}
