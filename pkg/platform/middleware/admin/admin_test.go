package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "trainhub/pkg/domain"
	"trainhub/pkg/requestcontext"
)

func TestRequireRole(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RequireRole(id.RoleRH, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("allows the role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/x", nil)
		req = req.WithContext(requestcontext.WithActor(req.Context(), id.UserID(uuid.New()), []id.Role{id.RoleConsultant, id.RoleRH}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/x", nil)
		req = req.WithContext(requestcontext.WithActor(req.Context(), id.UserID(uuid.New()), []id.Role{id.RoleCoach}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "rh role required")
	})

	t.Run("forbids anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/x", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
