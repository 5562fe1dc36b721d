package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"textgraph/domain/core/entities"
	"textgraph/pkg/common"
	apperrors "textgraph/pkg/errors"
)

// HeaderAPIKey carries the raw credential; HeaderApplication the tenant name.
const (
	HeaderAPIKey      = "X-API-Key"
	HeaderApplication = "X-Application"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticator resolves a raw API key to its principal
type Authenticator interface {
	Authenticate(ctx context.Context, rawKey string) (*entities.Principal, error)
}

// Authenticate validates the X-API-Key header on every request and attaches
// the resolved principal to the context. A key bound to an application only
// passes when the X-Application header names that application.
func Authenticate(auth Authenticator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawKey := r.Header.Get(HeaderAPIKey)
			if rawKey == "" {
				common.RespondError(w, apperrors.NewUnauthorizedError("missing API key"))
				return
			}

			principal, err := auth.Authenticate(r.Context(), rawKey)
			if err != nil {
				if !apperrors.IsUnauthorized(err) {
					logger.Error("authentication lookup failed", zap.Error(err))
					err = apperrors.NewUnauthorizedError("invalid API key")
				}
				common.RespondError(w, err)
				return
			}

			if application := r.Header.Get(HeaderApplication); principal.Application != "" && application != principal.Application {
				common.RespondError(w, apperrors.NewUnauthorizedError("API key is not authorized for this application"))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal attached by Authenticate
func PrincipalFromContext(ctx context.Context) (*entities.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*entities.Principal)
	return principal, ok
}
