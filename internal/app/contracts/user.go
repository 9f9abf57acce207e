package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/dto/responses"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteByID(ctx context.Context, userID string) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*responses.Profile, error)
	UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.Profile, error)
	UploadAvatar(ctx context.Context, userID, fileName, contentType string, data []byte) (*responses.Attachment, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.Register) (*responses.Profile, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, sessionID string) error
}
