package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	compliancehandler "payequity/internal/compliance/handler"
	compliancemetrics "payequity/internal/compliance/metrics"
	complianceservice "payequity/internal/compliance/service"
	httpapi "payequity/internal/http"
	"payequity/internal/platform/config"
	"payequity/internal/platform/httpserver"
	"payequity/internal/platform/logger"
	platformmetrics "payequity/internal/platform/metrics"
	"payequity/internal/platform/postgres"
	"payequity/internal/platform/redis"
	"payequity/internal/report/cache"
	reporthandler "payequity/internal/report/handler"
	reportmetrics "payequity/internal/report/metrics"
	"payequity/internal/report/ports"
	reportservice "payequity/internal/report/service"
	"payequity/internal/report/store"
	audit "payequity/pkg/platform/audit"
	compliancepub "payequity/pkg/platform/audit/publishers/compliance"
	kafkapub "payequity/pkg/platform/audit/publishers/kafka"
	opspub "payequity/pkg/platform/audit/publishers/ops"
	"payequity/pkg/platform/audit/store/memory"
	auditpostgres "payequity/pkg/platform/audit/store/postgres"
	"payequity/pkg/platform/audit/worker"
	"payequity/pkg/platform/circuit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the compliance HTTP API",
	Long:  "Serves the analysis and report endpoints. Postgres, Redis and Kafka are used when configured through PAYEQUITY_* variables; otherwise everything is kept in memory.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides PAYEQUITY_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	checks := map[string]httpapi.HealthCheck{}
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	// Report storage
	pool, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	var reports ports.Store
	if pool != nil {
		cleanups = append(cleanups, pool.Close)
		checks["postgres"] = pool.Ping
		pgStore := store.NewPostgres(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return err
		}
		reports = pgStore
		log.Info("report store: postgres")
	} else {
		reports = store.NewInMemory()
		log.Warn("report store: in-memory, reports are lost on restart")
	}

	// Verdict cache
	var verdicts ports.VerdictCache = cache.NoopCache{}
	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc != nil {
		cleanups = append(cleanups, func() { _ = rc.Close() })
		checks["redis"] = rc.Health
		breaker := circuit.New("verdict-cache", circuit.WithFailureThreshold(3), circuit.WithCooldown(15*time.Second))
		verdicts = cache.NewGuarded(cache.NewRedis(rc.Client, cfg.Redis.VerdictTTL), breaker, log)
		log.Info("verdict cache: redis", "ttl", cfg.Redis.VerdictTTL)
	}

	// Audit sink
	sink, err := auditSink(ctx, cfg, pool, checks, &cleanups, log)
	if err != nil {
		return err
	}
	auditor := compliancepub.New(sink,
		compliancepub.WithLogger(log),
		compliancepub.WithMetrics(compliancepub.NewMetrics(reg)),
	)
	opsQueue := worker.New(sink, cfg.Audit.OpsQueueSize, log)
	sampler := opspub.NewSampler(1)
	sampler.SetRate(string(audit.EventReportViewed), cfg.Audit.OpsSampleRate)
	opsAuditor := opspub.New(opsQueue,
		opspub.WithSampler(sampler),
		opspub.WithLogger(log),
		opspub.WithMetrics(opspub.NewMetrics(reg)),
	)

	// Services
	analyzer := complianceservice.New(
		complianceservice.WithLogger(log),
		complianceservice.WithMetrics(compliancemetrics.New(reg)),
	)
	reportSvc, err := reportservice.New(reports, analyzer,
		reportservice.WithCache(verdicts),
		reportservice.WithAuditPublisher(auditor),
		reportservice.WithOpsPublisher(opsAuditor),
		reportservice.WithLogger(log),
		reportservice.WithMetrics(reportmetrics.New(reg)),
	)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:   log,
		Gatherer: reg,
		Metrics:  platformmetrics.New(reg),
		Checks:   checks,
		Handlers: []httpapi.Registrar{
			compliancehandler.New(analyzer, log),
			reporthandler.New(reportSvc, log),
		},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return opsQueue.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting payequity", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// auditSink picks where audit events go: Kafka when brokers are configured,
// then Postgres when a pool is open, else memory.
func auditSink(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, checks map[string]httpapi.HealthCheck, cleanups *[]func(), log *slog.Logger) (audit.Store, error) {
	if len(cfg.Kafka.Brokers) > 0 {
		client, err := kafkapub.NewClient(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		*cleanups = append(*cleanups, client.Close)
		checks["kafka"] = client.Ping
		log.Info("audit sink: kafka", "topic", cfg.Kafka.Topic)
		return kafkapub.New(client, cfg.Kafka.Topic), nil
	}
	if pool != nil {
		s := auditpostgres.New(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.Info("audit sink: postgres")
		return s, nil
	}
	log.Warn("audit sink: in-memory")
	return memory.NewInMemoryStore(), nil
}
