package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
)

type SessionRepository interface {
	Insert(ctx context.Context, session *models.Session) (string, error)
	FindByID(ctx context.Context, sessionID string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	DeleteByID(ctx context.Context, sessionID string) error
	FindAll(ctx context.Context, filter *requests.SessionListFilter, pagination *requests.Pagination) ([]models.Session, int, error)
}

// SessionCapacityManager guards the 0 <= current_participants <=
// max_participants invariant. Both operations load, check, and persist in
// two steps; concurrent confirmations can overbook a session, which is an
// accepted gap of the request-scoped design.
type SessionCapacityManager interface {
	AddParticipants(ctx context.Context, sessionID string, count int) error
	ReleaseParticipants(ctx context.Context, sessionID string, count int) error
}

type SessionUsecase interface {
	SessionCapacityManager

	Create(ctx context.Context, tutorID string, request *requests.CreateSession) (*models.Session, error)
	Update(ctx context.Context, sessionID, actorID string, request *requests.UpdateSession) (*models.Session, error)
	Publish(ctx context.Context, sessionID, actorID string) (*models.Session, error)
	Cancel(ctx context.Context, sessionID, actorID string) (*models.Session, error)
	Complete(ctx context.Context, sessionID, actorID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID, actorID string) error
	FindByID(ctx context.Context, sessionID string) (*models.Session, error)
	FindAll(ctx context.Context, filter *requests.SessionListFilter, pagination *requests.Pagination) ([]models.Session, int, error)
}
