package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestMiddlewarePassesRequestThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware("test"))
	var hasSpan bool
	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		hasSpan = trace.SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/1", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, hasSpan)
}
