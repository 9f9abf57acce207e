package controllers

import (
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/app/models"
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

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
}

var (
	notificationControllerInstance *NotificationController
	onceNotificationController     sync.Once
)

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase) *NotificationController {
	onceNotificationController.Do(func() {
		notificationControllerInstance = &NotificationController{
			Log:                 logger,
			NotificationUsecase: notificationUsecase,
		}
	})
	return notificationControllerInstance
}

func (ctrl *NotificationController) CreateNotification(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("NotificationController.CreateNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CreateNotification)
	if err := json.NewDecoder(r.Body).Decode(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.NotificationUsecase.Create(ctx, reqPayload)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.NotificationCreatedSuccessMessage, result)
}

func (ctrl *NotificationController) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	actorID, _ := actorFromContext(r)
	unreadOnly := r.URL.Query().Get("unread_only") == "true"
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, total, err := ctrl.NotificationUsecase.FindAllByRecipient(ctx, actorID, unreadOnly, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, paginationResponse, result)
}

func (ctrl *NotificationController) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctrl.mark(w, r, constvars.NotificationMarkedReadMessage, ctrl.NotificationUsecase.MarkAsRead)
}

func (ctrl *NotificationController) MarkNotificationClicked(w http.ResponseWriter, r *http.Request) {
	ctrl.mark(w, r, constvars.NotificationMarkedClickedMessage, ctrl.NotificationUsecase.MarkAsClicked)
}

func (ctrl *NotificationController) DismissNotification(w http.ResponseWriter, r *http.Request) {
	ctrl.mark(w, r, constvars.NotificationDismissedMessage, ctrl.NotificationUsecase.Dismiss)
}

func (ctrl *NotificationController) RetryNotification(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("NotificationController.RetryNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.NotificationUsecase.Retry(ctx, chi.URLParam(r, "notificationID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationRetryQueuedMessage, result)
}

func (ctrl *NotificationController) CleanupExpiredNotifications(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("NotificationController.CleanupExpiredNotifications called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cleaned, err := ctrl.NotificationUsecase.CleanupExpired(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationCleanupSuccessMessage, map[string]int{"expired": cleaned})
}

func (ctrl *NotificationController) mark(
	w http.ResponseWriter,
	r *http.Request,
	successMessage string,
	operation func(ctx context.Context, notificationID, actorID string) (*models.Notification, error),
) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := operation(ctx, chi.URLParam(r, "notificationID"), actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, result)
}
