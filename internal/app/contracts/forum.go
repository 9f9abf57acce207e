package contracts

import (
	"context"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/dto/responses"
)

type ForumRepository interface {
	InsertPost(ctx context.Context, post *models.ForumPost) (string, error)
	FindPostByID(ctx context.Context, postID string) (*models.ForumPost, error)
	UpdatePost(ctx context.Context, post *models.ForumPost) error
	DeletePostByID(ctx context.Context, postID string) error
	FindAllPosts(ctx context.Context, filter *requests.ForumListFilter, pagination *requests.Pagination) ([]models.ForumPost, int, error)
	InsertReply(ctx context.Context, reply *models.ForumReply) (string, error)
	FindRepliesByPostID(ctx context.Context, postID string, pagination *requests.Pagination) ([]models.ForumReply, int, error)
}

type ForumUsecase interface {
	CreatePost(ctx context.Context, authorID string, request *requests.CreateForumPost) (*models.ForumPost, error)
	GetPost(ctx context.Context, postID string) (*models.ForumPost, error)
	ListPosts(ctx context.Context, filter *requests.ForumListFilter, pagination *requests.Pagination) ([]models.ForumPost, int, error)
	UpdatePost(ctx context.Context, postID, actorID string, request *requests.UpdateForumPost) (*models.ForumPost, error)
	DeletePost(ctx context.Context, postID, actorID, actorRole string) error
	CreateReply(ctx context.Context, postID, authorID string, request *requests.CreateForumReply) (*models.ForumReply, error)
	ListReplies(ctx context.Context, postID string, pagination *requests.Pagination) ([]models.ForumReply, int, error)
	ToggleVote(ctx context.Context, postID, actorID string) (*models.ForumPost, error)
	UploadAttachment(ctx context.Context, postID, actorID, fileName, contentType string, data []byte) (*responses.Attachment, error)
}
