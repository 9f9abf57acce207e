package routers

import (
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"
	"edulink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, middlewares *middlewares.Middlewares, sessionController *controllers.SessionController) {
	tutorOnly := middlewares.RequireRoles(constvars.RoleTutor, constvars.RoleAdmin)

	router.With(middlewares.Authenticate).Get("/", sessionController.GetAllSessions)
	router.With(middlewares.Authenticate).Get("/{sessionID}", sessionController.GetSessionByID)

	router.With(middlewares.Authenticate, tutorOnly).Post("/", sessionController.CreateSession)
	router.With(middlewares.Authenticate, tutorOnly).Put("/{sessionID}", sessionController.UpdateSession)
	router.With(middlewares.Authenticate, tutorOnly).Post("/{sessionID}/publish", sessionController.PublishSession)
	router.With(middlewares.Authenticate, tutorOnly).Post("/{sessionID}/cancel", sessionController.CancelSession)
	router.With(middlewares.Authenticate, tutorOnly).Post("/{sessionID}/complete", sessionController.CompleteSession)
	router.With(middlewares.Authenticate, tutorOnly).Delete("/{sessionID}", sessionController.DeleteSession)
}
