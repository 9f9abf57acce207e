package routers

import (
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"
	"edulink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	tutorOnly := middlewares.RequireRoles(constvars.RoleTutor, constvars.RoleAdmin)
	adminOnly := middlewares.RequireRoles(constvars.RoleAdmin)

	router.With(middlewares.Authenticate).Post("/", bookingController.CreateBooking)
	router.With(middlewares.Authenticate).Get("/", bookingController.GetAllBookings)
	router.With(middlewares.Authenticate).Get("/{bookingID}", bookingController.GetBookingByID)
	router.With(middlewares.Authenticate).Post("/{bookingID}/cancel", bookingController.CancelBooking)
	router.With(middlewares.Authenticate).Post("/{bookingID}/reschedule", bookingController.RescheduleBooking)

	router.With(middlewares.Authenticate, tutorOnly).Post("/{bookingID}/confirm", bookingController.ConfirmBooking)
	router.With(middlewares.Authenticate, tutorOnly).Post("/{bookingID}/complete", bookingController.CompleteBooking)
	router.With(middlewares.Authenticate, tutorOnly).Post("/{bookingID}/no-show", bookingController.MarkBookingNoShow)

	router.With(middlewares.Authenticate, adminOnly).Post("/{bookingID}/refund", bookingController.RefundBooking)
}
