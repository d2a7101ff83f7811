package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/platform/circuit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSource struct {
	mu        sync.Mutex
	entries   []audit.OutboxEntry
	published map[uuid.UUID]bool
}

func newFakeSource(n int) *fakeSource {
	s := &fakeSource{published: make(map[uuid.UUID]bool)}
	for i := 0; i < n; i++ {
		s.entries = append(s.entries, audit.OutboxEntry{
			ID:          uuid.New(),
			AggregateID: "user-1",
			Payload:     []byte{byte(i)},
		})
	}
	return s
}

func (s *fakeSource) FetchUnpublished(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []audit.OutboxEntry
	for _, e := range s.entries {
		if !s.published[e.ID] && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeSource) MarkPublished(_ context.Context, entryID uuid.UUID, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[entryID] = true
	return nil
}

func (s *fakeSource) remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) - len(s.published)
}

type fakeSink struct {
	mu       sync.Mutex
	payloads [][]byte
	failAt   int
}

func (s *fakeSink) Publish(_ context.Context, _ string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.payloads) == s.failAt {
		return errors.New("broker unavailable")
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

func TestRelayOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a batch in order and marks entries", func(t *testing.T) {
		source := newFakeSource(5)
		sink := &fakeSink{}
		w := NewWorker(source, sink, WithBatchSize(3))

		n, err := w.RelayOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 2, source.remaining())

		n, err = w.RelayOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, [][]byte{{0}, {1}, {2}, {3}, {4}}, sink.payloads)
	})

	t.Run("stops at the first sink failure", func(t *testing.T) {
		source := newFakeSource(4)
		sink := &fakeSink{failAt: 2}
		w := NewWorker(source, sink)

		n, err := w.RelayOnce(ctx)
		require.Error(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, source.remaining())
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	source := newFakeSource(2)
	w := NewWorker(source, &fakeSink{}, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return source.remaining() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestSinkBreaker(t *testing.T) {
	ctx := context.Background()
	breaker := circuit.New("test-sink", circuit.WithFailureThreshold(2))
	w := NewWorker(newFakeSource(0), &fakeSink{}, WithBreaker(breaker), WithInterval(time.Hour))

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	w.record(ctx, ticker, errors.New("broker unavailable"))
	assert.False(t, breaker.IsOpen())
	w.record(ctx, ticker, errors.New("broker unavailable"))
	assert.True(t, breaker.IsOpen())

	w.record(ctx, ticker, nil)
	assert.False(t, breaker.IsOpen())
}

func TestRunKeepsRelayingAfterSinkRecovers(t *testing.T) {
	source := newFakeSource(3)
	sink := &flakySink{failures: 1}
	w := NewWorker(source, sink,
		WithInterval(5*time.Millisecond),
		WithBreaker(circuit.New("test-sink", circuit.WithFailureThreshold(5))),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return source.remaining() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

type flakySink struct {
	mu       sync.Mutex
	failures int
}

func (s *flakySink) Publish(context.Context, string, []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("leader not available")
	}
	return nil
}
