package routers

import (
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"
	"edulink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachInvoiceRoutes(router chi.Router, middlewares *middlewares.Middlewares, invoiceController *controllers.InvoiceController) {
	adminOnly := middlewares.RequireRoles(constvars.RoleAdmin)

	router.With(middlewares.Authenticate).Get("/", invoiceController.GetAllInvoices)
	router.With(middlewares.Authenticate).Get("/{invoiceID}", invoiceController.GetInvoiceByID)
	router.With(middlewares.Authenticate).Post("/{invoiceID}/view", invoiceController.MarkInvoiceViewed)

	router.With(middlewares.Authenticate, adminOnly).Post("/", invoiceController.CreateInvoice)
	router.With(middlewares.Authenticate, adminOnly).Post("/{invoiceID}/payment", invoiceController.AddInvoicePayment)
	router.With(middlewares.Authenticate, adminOnly).Post("/{invoiceID}/send", invoiceController.MarkInvoiceSent)
	router.With(middlewares.Authenticate, adminOnly).Post("/{invoiceID}/cancel", invoiceController.CancelInvoice)
	router.With(middlewares.Authenticate, adminOnly).Post("/{invoiceID}/refund", invoiceController.RefundInvoice)
}
