package middlewares

import (
	"context"
	"edulink-service/internal/pkg/constvars"
	"edulink-service/internal/pkg/exceptions"
	"edulink-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"
)

// Authenticate validates the bearer JWT, resolves the login session from
// Redis, and stores the actor's identity on the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		sessionID, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.RedisRepository.GetAuthSession(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if session == nil || time.Now().After(session.ExpiresAt) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalidOrExpired(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.ContextUserIDKey, session.UserID)
		ctx = context.WithValue(ctx, constvars.ContextUserRoleKey, session.Role)
		ctx = context.WithValue(ctx, constvars.ContextSessionIDKey, session.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles guards an endpoint behind one or more roles. It must run
// after Authenticate.
func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorRole, _ := r.Context().Value(constvars.ContextUserRoleKey).(string)
			for _, role := range roles {
				if actorRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleForbidden(nil))
		})
	}
}
