// Package auth authenticates API callers from their bearer token.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	"trainhub/pkg/platform/httputil"
	"trainhub/pkg/requestcontext"
)

// JWTValidator checks a raw token and returns its claims.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims is what the middleware needs from a validated token.
type JWTClaims struct {
	UserID string
	Roles  []string
	JTI    string
}

const bearerPrefix = "Bearer "

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, description string) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
		Error:            string(dErrors.CodeUnauthorized),
		ErrorDescription: description,
	})
}

// RequireAuth validates the bearer token and stores the actor in the request context.
// Unknown roles in the token are dropped rather than rejected.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token", "request_id", requestID)
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token", "error", err, "request_id", requestID)
				unauthorized(w, "Invalid or expired token")
				return
			}
			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid subject", "request_id", requestID)
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithActor(ctx, userID, id.ParseRoles(claims.Roles))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
