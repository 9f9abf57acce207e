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

type InvoiceController struct {
	Log            *zap.Logger
	InvoiceUsecase contracts.InvoiceUsecase
}

var (
	invoiceControllerInstance *InvoiceController
	onceInvoiceController     sync.Once
)

func NewInvoiceController(logger *zap.Logger, invoiceUsecase contracts.InvoiceUsecase) *InvoiceController {
	onceInvoiceController.Do(func() {
		invoiceControllerInstance = &InvoiceController{
			Log:            logger,
			InvoiceUsecase: invoiceUsecase,
		}
	})
	return invoiceControllerInstance
}

func (ctrl *InvoiceController) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("InvoiceController.CreateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CreateInvoice)
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

	result, err := ctrl.InvoiceUsecase.Create(ctx, actorID, reqPayload)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.InvoiceCreatedSuccessMessage, result)
}

func (ctrl *InvoiceController) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.InvoiceUsecase.FindByID(ctx, chi.URLParam(r, "invoiceID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, result)
}

func (ctrl *InvoiceController) GetAllInvoices(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, total, err := ctrl.InvoiceUsecase.FindAll(ctx, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ResponseSuccess, paginationResponse, result)
}

func (ctrl *InvoiceController) AddInvoicePayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("InvoiceController.AddInvoicePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.InvoicePayment)
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

	result, err := ctrl.InvoiceUsecase.AddPayment(ctx, chi.URLParam(r, "invoiceID"), reqPayload)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoicePaymentSuccessMessage, result)
}

func (ctrl *InvoiceController) MarkInvoiceSent(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.InvoiceUsecase.MarkAsSent(ctx, chi.URLParam(r, "invoiceID"), actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceMarkedSentSuccessMessage, result)
}

func (ctrl *InvoiceController) MarkInvoiceViewed(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	actorID, _ := actorFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.InvoiceUsecase.MarkAsViewed(ctx, chi.URLParam(r, "invoiceID"), actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceMarkedViewedSuccessMessage, result)
}

func (ctrl *InvoiceController) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("InvoiceController.CancelInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.CancelInvoice)
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

	result, err := ctrl.InvoiceUsecase.Cancel(ctx, chi.URLParam(r, "invoiceID"), reqPayload.Reason, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceCancelledSuccessMessage, result)
}

func (ctrl *InvoiceController) RefundInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.ContextRequestIDKey).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("InvoiceController.RefundInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	reqPayload := new(requests.RefundInvoice)
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

	result, err := ctrl.InvoiceUsecase.ProcessRefund(ctx, chi.URLParam(r, "invoiceID"), reqPayload.Amount, reqPayload.Reason, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InvoiceRefundProcessedMessage, result)
}
