package controllers

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/config"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/dto/requests"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ForumController struct {
	Log            *zap.Logger
	ForumUsecase   contracts.ForumUsecase
	InternalConfig *config.InternalConfig
}

var (
	forumControllerInstance *ForumController
	onceForumController     sync.Once
)

func NewForumController(logger *zap.Logger, forumUsecase contracts.ForumUsecase, internalConfig *config.InternalConfig) *ForumController {
	onceForumController.Do(func() {
		forumControllerInstance = &ForumController{
			Log:            logger,
			ForumUsecase:   forumUsecase,
			InternalConfig: internalConfig,
		}
	})
	return forumControllerInstance
}

func (ctrl *ForumController) CreatePost(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ForumController.CreatePost called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CreateForumPost)
	if err := json.NewDecoder(r.Body).Decode(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	authorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ForumUsecase.CreatePost(ctx, authorID, reqPayload)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ForumPostCreatedSuccessMessage, result)
}

func (ctrl *ForumController) GetPostByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ForumUsecase.GetPost(ctx, chi.URLParam(r, "postID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, result)
}

func (ctrl *ForumController) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	filter := utils.BuildForumListRequest(r)
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, total, err := ctrl.ForumUsecase.ListPosts(ctx, filter, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, paginationResponse, result)
}

func (ctrl *ForumController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	reqPayload := new(requests.UpdateForumPost)
	if err := json.NewDecoder(r.Body).Decode(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ForumUsecase.UpdatePost(ctx, chi.URLParam(r, "postID"), actorID, reqPayload)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, result)
}

func (ctrl *ForumController) DeletePost(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ForumController.DeletePost called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actorID, actorRole := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := ctrl.ForumUsecase.DeletePost(ctx, chi.URLParam(r, "postID"), actorID, actorRole); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ForumPostDeletedSuccessMessage, nil)
}

func (ctrl *ForumController) CreateReply(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ForumController.CreateReply called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CreateForumReply)
	if err := json.NewDecoder(r.Body).Decode(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	authorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ForumUsecase.CreateReply(ctx, chi.URLParam(r, "postID"), authorID, reqPayload)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ForumReplyCreatedSuccessMessage, result)
}

func (ctrl *ForumController) GetPostReplies(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, total, err := ctrl.ForumUsecase.ListReplies(ctx, chi.URLParam(r, "postID"), pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, paginationResponse, result)
}

func (ctrl *ForumController) ToggleVote(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ForumUsecase.ToggleVote(ctx, chi.URLParam(r, "postID"), actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ForumVoteToggledSuccessMessage, result)
}

func (ctrl *ForumController) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ForumController.UploadAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	data, fileName, contentType, err := readUploadedFile(r, ctrl.InternalConfig.App.RequestBodyLimitInMegabyte)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.ForumUsecase.UploadAttachment(ctx, chi.URLParam(r, "postID"), actorID, fileName, contentType, data)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AttachmentUploadedSuccessMessage, result)
}
