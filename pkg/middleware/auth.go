package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/deal-mirror-api/internal/domain"
	"github.com/vfg2006/deal-mirror-api/internal/usecases/authenticating"
	"github.com/vfg2006/deal-mirror-api/pkg/apiErrors"
	"github.com/vfg2006/deal-mirror-api/pkg/log"
)

type contextKey string

const (
	ContextKeyAdmin contextKey = "admin"
)

// AuthMiddleware exige "Authorization: Bearer <jwt>" de administrador.
// Com auth nil, toda requisição é recusada.
func AuthMiddleware(auth authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context()).WithField("path", r.URL.Path)

			if auth == nil {
				apiErrors.WriteEnvelope(w, apiErrors.ErrInvalidToken, "admin authentication is not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteEnvelope(w, apiErrors.ErrInvalidToken, "authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteEnvelope(w, apiErrors.ErrInvalidToken, "bearer token is required")
				return
			}

			claims, err := auth.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				logger.WithError(err).Warn("Token de administrador recusado")

				switch {
				case errors.Is(err, authenticating.ErrExpiredToken):
					apiErrors.WriteEnvelope(w, apiErrors.ErrExpiredToken, "token expired")
				case errors.Is(err, authenticating.ErrNotAdmin):
					apiErrors.WriteEnvelope(w, apiErrors.ErrInsufficientPrivilege, "admin role required")
				default:
					apiErrors.WriteEnvelope(w, apiErrors.ErrInvalidToken, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext retorna as claims deixadas pelo AuthMiddleware
func AdminFromContext(ctx context.Context) (*domain.AdminClaims, bool) {
	claims, ok := ctx.Value(ContextKeyAdmin).(*domain.AdminClaims)
	return claims, ok
}
