package users

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/dto/responses"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const avatarURLExpiry = 15 * time.Minute

type userUsecase struct {
	UserRepository contracts.UserRepository
	Storage        contracts.StorageService
	Log            *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	storage contracts.StorageService,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		Storage:        storage,
		Log:            logger,
	}
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*responses.Profile, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrResourceNotFound("user")
	}
	return uc.buildProfile(ctx, user), nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.Profile, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("userUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrResourceNotFound("user")
	}

	if request.FullName != "" {
		user.FullName = request.FullName
	}
	if request.Bio != "" {
		user.Bio = request.Bio
	}
	user.Touch(time.Now())

	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return uc.buildProfile(ctx, user), nil
}

func (uc *userUsecase) UploadAvatar(ctx context.Context, userID, fileName, contentType string, data []byte) (*responses.Attachment, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("userUsecase.UploadAvatar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrResourceNotFound("user")
	}

	objectName := utils.GenerateObjectName("avatar", userID, filepath.Ext(fileName))
	if err := uc.Storage.Upload(ctx, objectName, contentType, data); err != nil {
		uc.Log.Error("userUsecase.UploadAvatar error storing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	user.AvatarObject = objectName
	user.Touch(time.Now())
	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	url, err := uc.Storage.PresignedURL(ctx, objectName, avatarURLExpiry)
	if err != nil {
		return nil, err
	}
	return &responses.Attachment{ObjectName: objectName, URL: url}, nil
}

func (uc *userUsecase) buildProfile(ctx context.Context, user *models.User) *responses.Profile {
	profile := &responses.Profile{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		Bio:      user.Bio,
	}
	if user.AvatarObject != "" {
		// A failed presign only drops the avatar from the profile.
		if url, err := uc.Storage.PresignedURL(ctx, user.AvatarObject, avatarURLExpiry); err == nil {
			profile.AvatarURL = url
		}
	}
	return profile
}
