package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "trainhub/pkg/domain"
	"trainhub/pkg/requestcontext"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(userID id.UserID) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if !userID.IsNil() {
		req = req.WithContext(requestcontext.WithActor(req.Context(), userID, nil))
	}
	return req
}

func TestLimitPerActor(t *testing.T) {
	h := PerMinute(2)(okHandler())
	alice := id.UserID(uuid.New())
	bob := id.UserID(uuid.New())

	for range 2 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestAs(alice))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, requestAs(alice))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, requestAs(bob))
	assert.Equal(t, http.StatusOK, w.Code, "another user from the same IP keeps its own budget")
}

func TestKeyByActor(t *testing.T) {
	uid := id.UserID(uuid.New())
	key, err := KeyByActor(requestAs(uid))
	require.NoError(t, err)
	assert.Equal(t, "user:"+uid.String(), key)

	key, err = KeyByActor(requestAs(id.UserID{}))
	require.NoError(t, err)
	assert.Equal(t, "ip:10.0.0.1", key)
}

func TestDisabledLimit(t *testing.T) {
	h := PerMinute(0)(okHandler())
	for range 5 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestAs(id.UserID{}))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
