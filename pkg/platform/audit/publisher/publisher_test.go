package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "trainhub/pkg/domain"
	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/platform/audit/store/memory"
	"trainhub/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error { return errors.New("disk full") }

func TestEmit(t *testing.T) {
	userID := id.UserID(uuid.New())
	fixed := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), fixed), "req-42")

	t.Run("fills timestamp, request id and category", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		metrics := NewMetrics(prometheus.NewRegistry())
		p := New(store, WithMetrics(metrics))

		err := p.Emit(ctx, audit.Event{UserID: userID, Subject: "interest-1", Action: string(audit.EventUserArchived)})
		require.NoError(t, err)

		events, err := store.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, fixed, events[0].Timestamp)
		assert.Equal(t, "req-42", events[0].RequestID)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EventsEmitted.WithLabelValues("compliance")))
	})

	t.Run("rejects events without action or subject", func(t *testing.T) {
		p := New(memory.NewInMemoryStore())
		assert.Error(t, p.Emit(ctx, audit.Event{Subject: "x"}))
		assert.Error(t, p.Emit(ctx, audit.Event{Action: "x"}))
	})

	t.Run("store failure is returned and counted", func(t *testing.T) {
		metrics := NewMetrics(prometheus.NewRegistry())
		p := New(failingStore{}, WithMetrics(metrics))

		err := p.Emit(ctx, audit.Event{Subject: "s", Action: "a"})
		require.Error(t, err)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PersistFailures))
	})
}
