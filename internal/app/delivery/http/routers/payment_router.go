package routers

import (
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"
	"edulink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	adminOnly := middlewares.RequireRoles(constvars.RoleAdmin)

	// Provider callbacks carry no bearer token.
	router.Post("/webhook", paymentController.HandleWebhook)

	router.With(middlewares.Authenticate).Post("/", paymentController.CreatePayment)
	router.With(middlewares.Authenticate).Get("/", paymentController.GetAllPayments)
	router.With(middlewares.Authenticate).Get("/{paymentID}", paymentController.GetPaymentByID)

	router.With(middlewares.Authenticate, adminOnly).Post("/{paymentID}/complete", paymentController.CompletePayment)
	router.With(middlewares.Authenticate, adminOnly).Post("/{paymentID}/fail", paymentController.FailPayment)
	router.With(middlewares.Authenticate, adminOnly).Post("/{paymentID}/retry", paymentController.RetryPayment)
	router.With(middlewares.Authenticate, adminOnly).Post("/{paymentID}/refund", paymentController.RefundPayment)
}
