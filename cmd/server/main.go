package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"trainhub/internal/enrollment/handler"
	enrollmetrics "trainhub/internal/enrollment/metrics"
	"trainhub/internal/enrollment/service"
	"trainhub/internal/enrollment/store/memory"
	pgstore "trainhub/internal/enrollment/store/postgres"
	"trainhub/internal/platform/config"
	"trainhub/internal/platform/httpserver"
	"trainhub/internal/platform/jwttoken"
	"trainhub/internal/platform/kafka"
	"trainhub/internal/platform/logger"
	"trainhub/internal/platform/metrics"
	"trainhub/internal/platform/postgres"
	platformredis "trainhub/internal/platform/redis"
	"trainhub/internal/platform/router"
	"trainhub/internal/settings"
	audit "trainhub/pkg/platform/audit"
	"trainhub/pkg/platform/audit/publisher"
	auditmemory "trainhub/pkg/platform/audit/store/memory"
	auditpg "trainhub/pkg/platform/audit/store/postgres"
	"trainhub/pkg/platform/audit/worker"
)

const (
	auditTopicPartitions  = 3
	auditTopicReplication = 1
)

// main wires the enrollment engine, its backing stores and the HTTP server.
// Business rules live in internal/enrollment.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trainhub: %v\n", err)
		os.Exit(1)
	}
}

// engine is the persistence side of the service: transactions, the audit sink
// and an optional outbox relay.
type engine struct {
	tx       service.StoreTx
	audit    audit.Store
	seed     seeder
	relay    *worker.Worker
	checks   map[string]router.HealthCheck
	shutdown []func()
}

func (e *engine) close() {
	for i := len(e.shutdown) - 1; i >= 0; i-- {
		e.shutdown[i]()
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	eng, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer eng.close()

	if err := applySeed(ctx, eng.seed, cfg.Seed); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}

	flags, err := buildSettings(ctx, cfg, log, eng)
	if err != nil {
		return err
	}

	svc, err := service.New(eng.tx, flags,
		service.WithLogger(log),
		service.WithMetrics(enrollmetrics.New(reg)),
		service.WithAuditPublisher(publisher.New(eng.audit,
			publisher.WithLogger(log),
			publisher.WithMetrics(publisher.NewMetrics(reg)),
		)),
	)
	if err != nil {
		return fmt.Errorf("build enrollment service: %w", err)
	}

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, jwttoken.DefaultIssuer, jwttoken.DefaultAudience)
	enrollment := handler.New(svc, log, jwttoken.NewJWTServiceAdapter(jwtService), cfg.Server.RateLimitPerMinute)

	opts := []router.Option{router.WithMetrics(metrics.New(reg), reg)}
	for name, check := range eng.checks {
		opts = append(opts, router.WithHealthCheck(name, check))
	}
	srv := httpserver.New(cfg.Server.Addr, router.New(log, []router.Routes{enrollment}, opts...))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	if eng.relay != nil {
		g.Go(func() error {
			if err := eng.relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox relay: %w", err)
			}
			return nil
		})
	}

	log.InfoContext(ctx, "trainhub started", "addr", cfg.Server.Addr, "persistent", cfg.Database.URL != "")
	return g.Wait()
}

func buildEngine(ctx context.Context, cfg config.Config, log *slog.Logger) (*engine, error) {
	eng := &engine{checks: map[string]router.HealthCheck{}}

	if cfg.Database.URL == "" {
		store := memory.New(memory.WithTimeout(cfg.Database.TxTimeout))
		eng.tx = store
		eng.audit = auditmemory.NewInMemoryStore()
		eng.seed = memorySeeder{putUser: store.PutUser, putSession: store.PutSession}
		if len(cfg.Kafka.Brokers) > 0 {
			log.WarnContext(ctx, "kafka brokers ignored: the audit relay needs the postgres outbox")
		}
		return eng, nil
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	eng.shutdown = append(eng.shutdown, func() { _ = db.Close() })
	if err := postgres.Migrate(ctx, db); err != nil {
		eng.close()
		return nil, err
	}

	outbox := auditpg.New(db)
	eng.tx = pgstore.NewTx(db, cfg.Database.TxTimeout)
	eng.audit = outbox
	eng.seed = pgstore.New(db)
	eng.checks["postgres"] = pingDB(db)

	producer, err := kafka.NewProducer(cfg.Kafka, log)
	if err != nil {
		eng.close()
		return nil, err
	}
	if producer == nil {
		return eng, nil
	}
	eng.shutdown = append(eng.shutdown, producer.Close)
	if err := producer.EnsureTopic(ctx, auditTopicPartitions, auditTopicReplication); err != nil {
		eng.close()
		return nil, err
	}
	eng.checks["kafka"] = producer.Health
	eng.relay = worker.NewWorker(outbox, producer,
		worker.WithLogger(log),
		worker.WithInterval(cfg.Kafka.OutboxPollInterval),
		worker.WithBatchSize(cfg.Kafka.OutboxBatchSize),
	)
	return eng, nil
}

func buildSettings(ctx context.Context, cfg config.Config, log *slog.Logger, eng *engine) (service.Settings, error) {
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.InfoContext(ctx, "runtime settings kept in process", "coach_validation_only", cfg.Enrollment.CoachValidationOnly)
		return settings.NewStatic(cfg.Enrollment.CoachValidationOnly), nil
	}
	eng.shutdown = append(eng.shutdown, func() { _ = client.Close() })
	eng.checks["redis"] = client.Health
	return settings.NewRedis(client.Client, cfg.Enrollment.CoachValidationOnly), nil
}

func pingDB(db *sql.DB) router.HealthCheck {
	return db.PingContext
}
