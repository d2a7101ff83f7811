package admin

import (
	"log/slog"
	"net/http"

	id "trainhub/pkg/domain"
	request "trainhub/pkg/platform/middleware/request"
	"trainhub/pkg/requestcontext"
)

// RequireRole lets the request through only when the authenticated actor holds role.
// It must run after auth.RequireAuth.
func RequireRole(role id.Role, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !id.HasRole(requestcontext.Roles(ctx), role) {
				logger.WarnContext(ctx, "forbidden - missing role",
					"required_role", string(role),
					"user_id", requestcontext.UserID(ctx).String(),
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"` + string(role) + ` role required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
