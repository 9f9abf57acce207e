package controllers

import (
	"context"
	"edulink-service/internal/app/contracts"
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

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
}

var (
	bookingControllerInstance *BookingController
	onceBookingController     sync.Once
)

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase) *BookingController {
	onceBookingController.Do(func() {
		bookingControllerInstance = &BookingController{
			Log:            logger,
			BookingUsecase: bookingUsecase,
		}
	})
	return bookingControllerInstance
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BookingController.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CreateBooking)
	if err := json.NewDecoder(r.Body).Decode(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	studentID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.Create(ctx, studentID, reqPayload)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookingCreatedSuccessMessage, result)
}

func (ctrl *BookingController) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.FindByID(ctx, chi.URLParam(r, "bookingID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, result)
}

func (ctrl *BookingController) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	filter := utils.BuildBookingListRequest(r)
	pagination := utils.BuildPaginationRequest(r)

	// Students and tutors only ever see their own bookings; admins see
	// everything.
	actorID, actorRole := actorFromContext(r)
	switch actorRole {
	case constvars.RoleStudent:
		filter.StudentID = actorID
	case constvars.RoleTutor:
		filter.TutorID = actorID
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, total, err := ctrl.BookingUsecase.FindAll(ctx, filter, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, paginationResponse, result)
}

func (ctrl *BookingController) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BookingController.ConfirmBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.Confirm(ctx, chi.URLParam(r, "bookingID"), actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingConfirmedSuccessMessage, result)
}

func (ctrl *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BookingController.CancelBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CancelBooking)
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

	result, err := ctrl.BookingUsecase.Cancel(ctx, chi.URLParam(r, "bookingID"), reqPayload.CancellationReason, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingCancelledSuccessMessage, result)
}

func (ctrl *BookingController) RefundBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BookingController.RefundBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.RefundBooking)
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

	result, err := ctrl.BookingUsecase.ProcessRefund(ctx, chi.URLParam(r, "bookingID"), reqPayload.RefundAmount, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingRefundSuccessMessage, result)
}

func (ctrl *BookingController) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	reqPayload := new(requests.CompleteBooking)
	if err := json.NewDecoder(r.Body).Decode(reqPayload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.MarkCompleted(ctx, chi.URLParam(r, "bookingID"), reqPayload.Notes, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingCompletedSuccessMessage, result)
}

func (ctrl *BookingController) MarkBookingNoShow(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BookingController.MarkBookingNoShow called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.MarkNoShow(ctx, chi.URLParam(r, "bookingID"), actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingNoShowSuccessMessage, result)
}

func (ctrl *BookingController) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BookingController.RescheduleBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.RescheduleBooking)
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

	result, err := ctrl.BookingUsecase.Reschedule(ctx, chi.URLParam(r, "bookingID"), reqPayload.NewSessionID, reqPayload.Reason, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingRescheduledSuccessMessage, result)
}
