package routers

import (
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"
	"edulink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, middlewares *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	adminOnly := middlewares.RequireRoles(constvars.RoleAdmin)

	router.With(middlewares.Authenticate).Get("/", notificationController.GetMyNotifications)
	router.With(middlewares.Authenticate).Post("/{notificationID}/read", notificationController.MarkNotificationRead)
	router.With(middlewares.Authenticate).Post("/{notificationID}/click", notificationController.MarkNotificationClicked)
	router.With(middlewares.Authenticate).Post("/{notificationID}/dismiss", notificationController.DismissNotification)

	router.With(middlewares.Authenticate, adminOnly).Post("/", notificationController.CreateNotification)
	router.With(middlewares.Authenticate, adminOnly).Post("/{notificationID}/retry", notificationController.RetryNotification)
	router.With(middlewares.Authenticate, adminOnly).Post("/cleanup", notificationController.CleanupExpiredNotifications)
}
