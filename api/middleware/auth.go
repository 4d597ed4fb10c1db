package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/api/responses"
	pkgAuth "github.com/dev-arham/ecommerce-server/pkg/auth"
	"github.com/dev-arham/ecommerce-server/pkg/auth/session"
	"github.com/dev-arham/ecommerce-server/pkg/config"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

// AccessTokenCookie is the cookie mobile/web clients use as an alternative to
// the Authorization header.
const AccessTokenCookie = "accessToken"

// RefreshTokenCookie holds the refresh token for browser clients.
const RefreshTokenCookie = "refreshToken"

// AccountResolver loads the account referenced by a verified token. The
// returned record must never carry the password hash into handlers.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates a bearer or cookie token, confirms the session is alive,
// resolves the account, and seeds the request context.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, resolver AccountResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			var account *models.User
			if resolver != nil {
				account, err = resolver.ResolveAccount(r.Context(), claims.UserID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "unknown account"))
					return
				}
			}

			ctx := WithUser(r.Context(), account)
			ctx = context.WithValue(ctx, ctxUserID, claims.UserID.String())
			ctx = WithSessionID(ctx, claims.ID)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  claims.UserID.String(),
					"is_admin": claims.IsAdmin,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
