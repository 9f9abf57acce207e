package forum

import (
	"context"
	"testing"
	"time"

	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) InsertPost(ctx context.Context, post *models.ForumPost) (string, error) {
	args := m.Called(ctx, post)
	return args.String(0), args.Error(1)
}

func (m *MockForumRepository) FindPostByID(ctx context.Context, postID string) (*models.ForumPost, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumPost), args.Error(1)
}

func (m *MockForumRepository) UpdatePost(ctx context.Context, post *models.ForumPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockForumRepository) DeletePostByID(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockForumRepository) FindAllPosts(ctx context.Context, filter *requests.ForumListFilter, pagination *requests.Pagination) ([]models.ForumPost, int, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.ForumPost), args.Int(1), args.Error(2)
}

func (m *MockForumRepository) InsertReply(ctx context.Context, reply *models.ForumReply) (string, error) {
	args := m.Called(ctx, reply)
	return args.String(0), args.Error(1)
}

func (m *MockForumRepository) FindRepliesByPostID(ctx context.Context, postID string, pagination *requests.Pagination) ([]models.ForumReply, int, error) {
	args := m.Called(ctx, postID, pagination)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.ForumReply), args.Int(1), args.Error(2)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, objectName, contentType string, data []byte) error {
	args := m.Called(ctx, objectName, contentType, data)
	return args.Error(0)
}

func (m *MockStorageService) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
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

func storedPost() *models.ForumPost {
	return &models.ForumPost{
		ID:       "post-1",
		AuthorID: "user-1",
		Title:    "How do I prepare for the calculus exam?",
		Content:  "Looking for practice material.",
		Tags:     []string{"math"},
	}
}

func TestForumUsecase_Posts(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a post", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		forumRepo.On("InsertPost", ctx, mock.AnythingOfType("*models.ForumPost")).Return("post-1", nil)

		post, err := usecase.CreatePost(ctx, "user-1", &requests.CreateForumPost{
			Title:   "How do I prepare for the calculus exam?",
			Content: "Looking for practice material.",
			Tags:    []string{"math"},
		})

		assert.Nil(t, err)
		assert.Equal(t, "post-1", post.ID)
		assert.Equal(t, "user-1", post.AuthorID)
		assert.Equal(t, 0, post.VoteCount)
	})

	t.Run("Only the author can edit a post", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		forumRepo.On("FindPostByID", ctx, "post-1").Return(storedPost(), nil)

		post, err := usecase.UpdatePost(ctx, "post-1", "user-2", &requests.UpdateForumPost{Title: "Hijack"})

		assert.Nil(t, post)
		assert.Equal(t, constvars.ErrClientNotAuthorized, err.(*exceptions.CustomError).ClientMessage)
		forumRepo.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything)
	})

	t.Run("An admin can delete someone else's post", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		forumRepo.On("FindPostByID", ctx, "post-1").Return(storedPost(), nil)
		forumRepo.On("DeletePostByID", ctx, "post-1").Return(nil)

		err := usecase.DeletePost(ctx, "post-1", "moderator-1", constvars.RoleAdmin)

		assert.Nil(t, err)
		forumRepo.AssertExpectations(t)
	})

	t.Run("A stranger cannot delete a post", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		forumRepo.On("FindPostByID", ctx, "post-1").Return(storedPost(), nil)

		err := usecase.DeletePost(ctx, "post-1", "user-2", constvars.RoleStudent)

		assert.Equal(t, constvars.ErrClientNotAuthorized, err.(*exceptions.CustomError).ClientMessage)
		forumRepo.AssertNotCalled(t, "DeletePostByID", mock.Anything, mock.Anything)
	})

	t.Run("A missing post maps to not found", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		forumRepo.On("FindPostByID", ctx, "missing").Return(nil, nil)

		post, err := usecase.GetPost(ctx, "missing")

		assert.Nil(t, post)
		assert.Equal(t, constvars.StatusNotFound, err.(*exceptions.CustomError).StatusCode)
	})
}

func TestForumUsecase_Replies(t *testing.T) {
	ctx := context.Background()

	t.Run("A reply bumps the count and notifies the author", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		post := storedPost()
		forumRepo.On("FindPostByID", ctx, "post-1").Return(post, nil)
		forumRepo.On("InsertReply", ctx, mock.AnythingOfType("*models.ForumReply")).Return("reply-1", nil)
		forumRepo.On("UpdatePost", ctx, post).Return(nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(input contracts.DispatchInput) bool {
			return input.RecipientID == "user-1" && input.Type == models.NotificationForumReply
		})).Return(&models.Notification{ID: "notification-1"}, nil)

		reply, err := usecase.CreateReply(ctx, "post-1", "user-2", &requests.CreateForumReply{
			Content: "Past papers from the library helped me.",
		})

		assert.Nil(t, err)
		assert.Equal(t, "reply-1", reply.ID)
		assert.Equal(t, 1, post.ReplyCount)
		dispatcher.AssertExpectations(t)
	})

	t.Run("Replying to your own post skips the notification", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		post := storedPost()
		forumRepo.On("FindPostByID", ctx, "post-1").Return(post, nil)
		forumRepo.On("InsertReply", ctx, mock.AnythingOfType("*models.ForumReply")).Return("reply-1", nil)
		forumRepo.On("UpdatePost", ctx, post).Return(nil)

		_, err := usecase.CreateReply(ctx, "post-1", "user-1", &requests.CreateForumReply{
			Content: "Answering my own question.",
		})

		assert.Nil(t, err)
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})
}

func TestForumUsecase_ToggleVote(t *testing.T) {
	ctx := context.Background()

	t.Run("First toggle adds the vote, second removes it", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		post := storedPost()
		forumRepo.On("FindPostByID", ctx, "post-1").Return(post, nil)
		forumRepo.On("UpdatePost", ctx, post).Return(nil)

		voted, err := usecase.ToggleVote(ctx, "post-1", "user-2")
		assert.Nil(t, err)
		assert.Equal(t, 1, voted.VoteCount)
		assert.Contains(t, voted.VoterIDs, "user-2")

		unvoted, err := usecase.ToggleVote(ctx, "post-1", "user-2")
		assert.Nil(t, err)
		assert.Equal(t, 0, unvoted.VoteCount)
		assert.NotContains(t, unvoted.VoterIDs, "user-2")
	})

	t.Run("Votes from different users accumulate", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		post := storedPost()
		forumRepo.On("FindPostByID", ctx, "post-1").Return(post, nil)
		forumRepo.On("UpdatePost", ctx, post).Return(nil)

		_, err := usecase.ToggleVote(ctx, "post-1", "user-2")
		assert.Nil(t, err)
		voted, err := usecase.ToggleVote(ctx, "post-1", "user-3")
		assert.Nil(t, err)

		assert.Equal(t, 2, voted.VoteCount)
	})
}

func TestForumUsecase_UploadAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the object and returns a presigned link", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		post := storedPost()
		forumRepo.On("FindPostByID", ctx, "post-1").Return(post, nil)
		storage.On("Upload", ctx, mock.AnythingOfType("string"), "application/pdf", []byte("pdf-bytes")).Return(nil)
		forumRepo.On("UpdatePost", ctx, post).Return(nil)
		storage.On("PresignedURL", ctx, mock.AnythingOfType("string"), time.Hour).Return("https://storage.local/forum/object", nil)

		attachment, err := usecase.UploadAttachment(ctx, "post-1", "user-1", "notes.pdf", "application/pdf", []byte("pdf-bytes"))

		assert.Nil(t, err)
		assert.NotEmpty(t, attachment.ObjectName)
		assert.Equal(t, "https://storage.local/forum/object", attachment.URL)
		assert.Equal(t, attachment.ObjectName, post.AttachmentObject)
		storage.AssertExpectations(t)
	})

	t.Run("Only the author can attach files", func(t *testing.T) {
		forumRepo := new(MockForumRepository)
		storage := new(MockStorageService)
		dispatcher := new(MockDispatcher)
		usecase := NewForumUsecase(forumRepo, storage, dispatcher, zap.NewNop())

		forumRepo.On("FindPostByID", ctx, "post-1").Return(storedPost(), nil)

		attachment, err := usecase.UploadAttachment(ctx, "post-1", "user-2", "notes.pdf", "application/pdf", []byte("pdf-bytes"))

		assert.Nil(t, attachment)
		assert.Equal(t, constvars.ErrClientNotAuthorized, err.(*exceptions.CustomError).ClientMessage)
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
