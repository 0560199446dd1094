package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/shuttleops/demand-scheduler/internal/config"
	"github.com/shuttleops/demand-scheduler/internal/domain"
	"github.com/shuttleops/demand-scheduler/internal/handler"
	"github.com/shuttleops/demand-scheduler/internal/health"
	"github.com/shuttleops/demand-scheduler/internal/infra/diagrecorder"
	"github.com/shuttleops/demand-scheduler/internal/infra/repository"
	"github.com/shuttleops/demand-scheduler/internal/infra/sheets"
	"github.com/shuttleops/demand-scheduler/internal/infra/workbook"
	"github.com/shuttleops/demand-scheduler/internal/observability/logging"
	"github.com/shuttleops/demand-scheduler/internal/observability/metrics"
	"github.com/shuttleops/demand-scheduler/internal/observability/middleware"
	"github.com/shuttleops/demand-scheduler/internal/service/refresh"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("demand-scheduler")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	slog.Info("configuration loaded",
		slog.String("source_sheet_id", cfg.Sheets.SourceSheetID),
		slog.String("dest_sheet_id", cfg.Sheets.DestSheetID),
		slog.String("backend", string(cfg.Sheets.Backend)),
	)

	refreshMetrics, err := metrics.NewRefreshMetrics()
	if err != nil {
		slog.Error("failed to initialize refresh metrics", slog.String("error", err.Error()))
		return 1
	}

	gateway, err := initGateway(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize spreadsheet gateway", slog.String("error", err.Error()))
		return 1
	}

	// Run diagnostics go to InfluxDB locally and BigQuery on gcloud
	recorder, err := diagrecorder.NewRecorder(ctx, diagrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize run diagnostics recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close run diagnostics recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Error("failed to initialize redis", slog.String("error", err.Error()))
		return 1
	}

	var reportRepo domain.RunReportRepository
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
		reportRepo = repository.NewRunReportRepository(redisClient)
	}

	refreshService := refresh.NewService(
		gateway,
		refresh.Settings{
			SourceSheetID: cfg.Sheets.SourceSheetID,
			DestSheetID:   cfg.Sheets.DestSheetID,
			Layout:        cfg.Layout,
		},
		reportRepo,
		recorder,
		refreshMetrics,
	)

	if len(os.Args) > 1 && os.Args[1] == "run" {
		return runOnce(ctx, refreshService)
	}

	return serve(ctx, cancel, cfg, refreshService, redisClient)
}

// runOnce performs a single refresh and maps its outcome to an exit code.
func runOnce(ctx context.Context, svc *refresh.Service) int {
	if _, err := svc.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "scheduler run failed", slog.String("error", err.Error()))
		return 1
	}

	slog.InfoContext(ctx, "scheduler run completed")
	return 0
}

func initGateway(ctx context.Context, cfg *config.Config) (domain.SpreadsheetGateway, error) {
	if cfg.Sheets.Backend == config.BackendWorkbook {
		return workbook.NewGateway(cfg.Sheets.WorkbookDir), nil
	}
	return sheets.NewGateway(ctx, cfg.Sheets.CredentialsFile)
}

// initRedis returns a nil client when the report store is not configured.
func initRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		slog.Warn("REDIS_ADDR not set, run reports will not be stored")
		return nil, nil
	}

	redisClient := newRedisClient(cfg)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
	)

	return redisClient, nil
}

func newRedisClient(cfg *config.RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}

func serve(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, svc *refresh.Service, redisClient *redis.Client) int {
	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/shuttleops/demand-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(Version)
	healthChecker.Register("redis", health.RedisCheck(redisClient))
	if cfg.Sheets.Backend == config.BackendWorkbook {
		healthChecker.Register("workbook_dir", health.DirCheck(cfg.Sheets.WorkbookDir))
	}
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.NewRefreshHandler(svc).Register(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
