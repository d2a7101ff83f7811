// Package worker relays audit events from the transactional outbox to a message
// sink. Delivery is at-least-once: an entry is marked published only after the
// sink acknowledged it.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/platform/circuit"
)

// Source yields outbox entries that have not been relayed yet.
type Source interface {
	FetchUnpublished(ctx context.Context, limit int) ([]audit.OutboxEntry, error)
	MarkPublished(ctx context.Context, entryID uuid.UUID, at time.Time) error
}

// Sink publishes one payload keyed by aggregate (user) id.
type Sink interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
	// openBackoff multiplies the poll interval while the sink's breaker is open.
	openBackoff = 10
)

type Worker struct {
	source    Source
	sink      Sink
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
	breaker   *circuit.Breaker
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

// WithBreaker replaces the default sink breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(w *Worker) {
		if b != nil {
			w.breaker = b
		}
	}
}

func NewWorker(source Source, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		source:    source,
		sink:      sink,
		logger:    slog.New(slog.DiscardHandler),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
		breaker:   circuit.New("outbox-sink"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls the outbox until ctx is cancelled. Relay errors are logged and retried
// on the next tick; while the sink breaker is open the poll interval is stretched.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, err := w.RelayOnce(ctx)
			if ctx.Err() != nil {
				continue
			}
			w.record(ctx, ticker, err)
		}
	}
}

func (w *Worker) record(ctx context.Context, ticker *time.Ticker, err error) {
	if err != nil {
		w.logger.WarnContext(ctx, "outbox relay failed", "error", err)
		if _, change := w.breaker.RecordFailure(); change.Opened {
			w.logger.ErrorContext(ctx, "outbox sink unavailable, slowing relay", "breaker", w.breaker.Name())
			ticker.Reset(w.interval * openBackoff)
		}
		return
	}
	if _, change := w.breaker.RecordSuccess(); change.Closed {
		w.logger.InfoContext(ctx, "outbox sink recovered", "breaker", w.breaker.Name())
		ticker.Reset(w.interval)
	}
}

// RelayOnce publishes one batch and returns how many entries were relayed.
// It stops at the first sink failure so ordering per aggregate is preserved.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	entries, err := w.source.FetchUnpublished(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch outbox: %w", err)
	}

	relayed := 0
	for _, entry := range entries {
		if err := w.sink.Publish(ctx, entry.AggregateID, entry.Payload); err != nil {
			return relayed, fmt.Errorf("publish outbox entry %s: %w", entry.ID, err)
		}
		if err := w.source.MarkPublished(ctx, entry.ID, time.Now()); err != nil {
			return relayed, fmt.Errorf("mark outbox entry %s: %w", entry.ID, err)
		}
		relayed++
	}
	return relayed, nil
}
