package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/web"
)

type contextKey string

const userContextKey contextKey = "bazaar.user"

// UserFrom returns the authenticated user stored by RequireRole.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// RequireRole authenticates the bearer token and enforces the service
// audience's role before the handler runs.
func RequireRole(svc *Service, role domain.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := uuid.New().String()

			token := bearerToken(r)
			user, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				web.WriteError(w, logger, traceID, err)
				return
			}

			if user.Role != role {
				web.WriteError(w, logger, traceID,
					apperrors.NewForbiddenError("access denied: "+string(role)+" role required"))
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
