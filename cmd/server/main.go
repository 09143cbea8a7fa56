// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	auditkafka "github.com/tech920/motor-claim-decision-api-sub000/internal/audit/kafka"
	auditmemory "github.com/tech920/motor-claim-decision-api-sub000/internal/audit/store/memory"
	auditpostgres "github.com/tech920/motor-claim-decision-api-sub000/internal/audit/store/postgres"
	claimsmetrics "github.com/tech920/motor-claim-decision-api-sub000/internal/claims/metrics"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/ports"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/service"
	claimsmemory "github.com/tech920/motor-claim-decision-api-sub000/internal/claims/store/memory"
	claimspostgres "github.com/tech920/motor-claim-decision-api-sub000/internal/claims/store/postgres"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/store/rediscache"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/decision"
	decisionmetrics "github.com/tech920/motor-claim-decision-api-sub000/internal/decision/metrics"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/extract"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/insurer"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/llm/gemini"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/config"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/httpserver"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/logger"
	platformredis "github.com/tech920/motor-claim-decision-api-sub000/internal/platform/redis"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/ratelimit"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/refdata"
	httptransport "github.com/tech920/motor-claim-decision-api-sub000/internal/transport/http"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/requestcontext"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	health := map[string]httptransport.HealthChecker{}

	// Reference data is optional: without the table, the vehicle-demanded
	// license type comes only from the records themselves.
	var vehicles *refdata.Table
	if cfg.RefDataPath != "" {
		table, err := refdata.Load(cfg.RefDataPath)
		if err != nil {
			log.Warn("vehicle reference table unavailable",
				slog.String("path", cfg.RefDataPath),
				slog.String("error", err.Error()),
			)
		} else {
			vehicles = table
			log.Info("vehicle reference table loaded", slog.Int("entries", table.Size()))
		}
	}

	var (
		caseStore  ports.CaseStore
		auditStore audit.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		caseStore = claimspostgres.New(db)
		auditStore = auditpostgres.New(db)
		health["postgres"] = dbHealth{db}
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
		caseStore = claimsmemory.New()
		auditStore = auditmemory.New()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var cache ports.ResultCache
	limiterStore := ratelimit.Store(ratelimit.NewMemoryStore())
	if redisClient != nil {
		defer redisClient.Close()
		cache = rediscache.New(redisClient, log)
		limiterStore = ratelimit.NewRedisStore(redisClient)
		health["redis"] = redisClient
	}
	limiter := ratelimit.NewMiddleware(limiterStore, cfg.RateLimit, cfg.RateLimitWindow, log)

	var sink audit.Sink
	kafkaPublisher, err := auditkafka.New(cfg.Kafka)
	if err != nil {
		return err
	}
	if kafkaPublisher != nil {
		defer kafkaPublisher.Close()
		sink = kafkaPublisher
	}

	// Audit events flow through a channel so request handling never waits on
	// the outbox or Kafka.
	inbox := make(chan audit.Event, 256)
	worker := audit.NewWorker(auditStore, sink, inbox, log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", slog.String("error", err.Error()))
		}
	}()

	source, err := gemini.New(ctx, cfg.Gemini, log)
	if err != nil {
		return err
	}
	defer source.Close()

	classifier := insurer.NewClassifier(insurer.Profile{
		Brand:          cfg.PrimaryCarrierBrand,
		ArabicFullName: cfg.PrimaryCarrierArabicName,
	})
	engine := decision.NewEngine(classifier, log, decisionmetrics.New())

	opts := []service.Option{
		service.WithAuditPublisher(channelPublisher{inbox: inbox}),
		service.WithMetrics(claimsmetrics.New()),
		service.WithWorkers(cfg.DecisionWorkers),
	}
	if cache != nil {
		opts = append(opts, service.WithResultCache(cache, cfg.ResultCacheTTL))
	}
	claims, err := service.New(
		extract.NewNormalizer(vehicles),
		engine,
		source,
		caseStore,
		log,
		opts...,
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Claims:        claims,
		Logger:        log,
		JWTSigningKey: cfg.JWTSigningKey,
		RateLimit:     limiter,
		Health:        health,
	})
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("claims server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-workerDone
	return nil
}

// channelPublisher hands events to the audit worker without blocking claim
// processing longer than the channel send.
type channelPublisher struct {
	inbox chan<- audit.Event
}

func (p channelPublisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type dbHealth struct{ db *sql.DB }

func (h dbHealth) Health(ctx context.Context) error { return h.db.PingContext(ctx) }
