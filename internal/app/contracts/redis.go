package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"time"
)

type RedisRepository interface {
	CreateAuthSession(ctx context.Context, session *models.AuthSession, expiry time.Duration) error
	GetAuthSession(ctx context.Context, sessionID string) (*models.AuthSession, error)
	DeleteAuthSession(ctx context.Context, sessionID string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
