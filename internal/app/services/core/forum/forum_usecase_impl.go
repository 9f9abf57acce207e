package forum

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/dto/responses"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const attachmentURLExpiry = time.Hour

type forumUsecase struct {
	ForumRepository contracts.ForumRepository
	Storage         contracts.StorageService
	Dispatcher      contracts.NotificationDispatcher
	Log             *zap.Logger
}

func NewForumUsecase(
	forumRepository contracts.ForumRepository,
	storage contracts.StorageService,
	dispatcher contracts.NotificationDispatcher,
	logger *zap.Logger,
) contracts.ForumUsecase {
	return &forumUsecase{
		ForumRepository: forumRepository,
		Storage:         storage,
		Dispatcher:      dispatcher,
		Log:             logger,
	}
}

func (uc *forumUsecase) CreatePost(ctx context.Context, authorID string, request *requests.CreateForumPost) (*models.ForumPost, error) {
	post := &models.ForumPost{
		AuthorID: authorID,
		Title:    request.Title,
		Content:  request.Content,
		Tags:     request.Tags,
	}
	post.Touch(time.Now())

	postID, err := uc.ForumRepository.InsertPost(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = postID
	return post, nil
}

func (uc *forumUsecase) GetPost(ctx context.Context, postID string) (*models.ForumPost, error) {
	return uc.findPost(ctx, postID)
}

func (uc *forumUsecase) ListPosts(ctx context.Context, filter *requests.ForumListFilter, pagination *requests.Pagination) ([]models.ForumPost, int, error) {
	return uc.ForumRepository.FindAllPosts(ctx, filter, pagination)
}

func (uc *forumUsecase) UpdatePost(ctx context.Context, postID, actorID string, request *requests.UpdateForumPost) (*models.ForumPost, error) {
	post, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, exceptions.ErrRoleForbidden(nil)
	}

	if request.Title != "" {
		post.Title = request.Title
	}
	if request.Content != "" {
		post.Content = request.Content
	}
	if request.Tags != nil {
		post.Tags = request.Tags
	}
	post.Touch(time.Now())

	if err := uc.ForumRepository.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *forumUsecase) DeletePost(ctx context.Context, postID, actorID, actorRole string) error {
	post, err := uc.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID && actorRole != constvars.RoleAdmin {
		return exceptions.ErrRoleForbidden(nil)
	}
	return uc.ForumRepository.DeletePostByID(ctx, postID)
}

func (uc *forumUsecase) CreateReply(ctx context.Context, postID, authorID string, request *requests.CreateForumReply) (*models.ForumReply, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	post, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	reply := &models.ForumReply{
		PostID:   postID,
		AuthorID: authorID,
		Content:  request.Content,
	}
	reply.Touch(time.Now())

	replyID, err := uc.ForumRepository.InsertReply(ctx, reply)
	if err != nil {
		return nil, err
	}
	reply.ID = replyID

	post.ReplyCount++
	post.Touch(time.Now())
	if err := uc.ForumRepository.UpdatePost(ctx, post); err != nil {
		uc.Log.Error("forumUsecase.CreateReply error updating reply count",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("post_id", postID),
			zap.Error(err),
		)
	}

	// Replying to your own post needs no notification.
	if uc.Dispatcher != nil && post.AuthorID != authorID {
		_, err := uc.Dispatcher.Dispatch(ctx, contracts.DispatchInput{
			RecipientID: post.AuthorID,
			Type:        models.NotificationForumReply,
			Title:       "New reply to your post",
			Message:     fmt.Sprintf("Someone replied to your post %q.", post.Title),
			Channels:    []models.NotificationChannel{models.ChannelPush},
		})
		if err != nil {
			uc.Log.Error("forumUsecase.CreateReply error dispatching notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRecipientIDKey, post.AuthorID),
				zap.Error(err),
			)
		}
	}
	return reply, nil
}

func (uc *forumUsecase) ListReplies(ctx context.Context, postID string, pagination *requests.Pagination) ([]models.ForumReply, int, error) {
	if _, err := uc.findPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return uc.ForumRepository.FindRepliesByPostID(ctx, postID, pagination)
}

// ToggleVote adds the actor's vote, or removes it when already present.
func (uc *forumUsecase) ToggleVote(ctx context.Context, postID, actorID string) (*models.ForumPost, error) {
	post, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	voted := false
	for i, voterID := range post.VoterIDs {
		if voterID == actorID {
			post.VoterIDs = append(post.VoterIDs[:i], post.VoterIDs[i+1:]...)
			voted = true
			break
		}
	}
	if !voted {
		post.VoterIDs = append(post.VoterIDs, actorID)
	}
	post.VoteCount = len(post.VoterIDs)
	post.Touch(time.Now())

	if err := uc.ForumRepository.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *forumUsecase) UploadAttachment(ctx context.Context, postID, actorID, fileName, contentType string, data []byte) (*responses.Attachment, error) {
	post, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, exceptions.ErrRoleForbidden(nil)
	}

	objectName := utils.GenerateObjectName("forum", actorID, filepath.Ext(fileName))
	if err := uc.Storage.Upload(ctx, objectName, contentType, data); err != nil {
		return nil, err
	}

	post.AttachmentObject = objectName
	post.Touch(time.Now())
	if err := uc.ForumRepository.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	url, err := uc.Storage.PresignedURL(ctx, objectName, attachmentURLExpiry)
	if err != nil {
		return nil, err
	}
	return &responses.Attachment{ObjectName: objectName, URL: url}, nil
}

func (uc *forumUsecase) findPost(ctx context.Context, postID string) (*models.ForumPost, error) {
	post, err := uc.ForumRepository.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, exceptions.ErrResourceNotFound("post")
	}
	return post, nil
}
