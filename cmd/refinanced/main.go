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

	"github.com/bibbank/refinance-service/internal/application/usecase"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/service"
	"github.com/bibbank/refinance-service/internal/infrastructure/cache"
	"github.com/bibbank/refinance-service/internal/infrastructure/config"
	"github.com/bibbank/refinance-service/internal/infrastructure/kafka"
	"github.com/bibbank/refinance-service/internal/infrastructure/messaging"
	"github.com/bibbank/refinance-service/internal/infrastructure/metrics"
	"github.com/bibbank/refinance-service/internal/infrastructure/persistence/memory"
	pgRepo "github.com/bibbank/refinance-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/bibbank/refinance-service/internal/presentation/grpc"
	"github.com/bibbank/refinance-service/internal/presentation/rest"
	"github.com/bibbank/refinance-service/internal/presentation/rest/middleware"
	"github.com/bibbank/refinance-service/pkg/auth"
	pkgkafka "github.com/bibbank/refinance-service/pkg/kafka"
	"github.com/bibbank/refinance-service/pkg/observability"
	pkgpostgres "github.com/bibbank/refinance-service/pkg/postgres"
	"github.com/bibbank/refinance-service/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("refinance-service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	logger.Info("starting refinance-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	recorder, err := metrics.NewDecisionRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("init decision metrics: %w", err)
	}

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return err
	}

	checks := map[string]rest.ReadinessCheck{}

	// Storage.
	var repo port.ApplicationRepository
	if cfg.DB.Enabled() {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB.DSN(), pkgpostgres.PoolOptions{})
		dbCancel()
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		if err := pkgpostgres.RunMigrations(cfg.DB.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("connected to database")
		repo = pgRepo.NewApplicationRepo(pool)
		checks["database"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	} else {
		logger.Warn("DB_HOST not set, applications are kept in memory")
		repo = memory.NewApplicationRepo()
	}

	// Events.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.ServiceName,
			SASLEnabled:   cfg.Kafka.SASLMechanism != "",
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
			TLS:           cfg.Kafka.TLS,
		})
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		defer producer.Close()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events are logged only")
		publisher = messaging.NewLogEventPublisher(logger)
	}

	// Quote cache.
	var quoteCache port.QuoteCache
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		rc := cache.NewRedisQuoteCache(client)
		quoteCache = rc
		checks["cache"] = rc.Ping
	}

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:       cfg.Auth.JWTSecret,
		PublicKeyPEM: cfg.Auth.JWTPublicKey,
		Issuer:       cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("init JWT service: %w", err)
	}

	// Use cases.
	evaluator := service.NewEligibilityEvaluator(policy)
	quickQuote := usecase.NewQuickQuoteUseCase(service.NewQuickQuoteEstimator(policy), quoteCache, cfg.Redis.QuoteTTL, recorder, logger)
	getApp := usecase.NewGetApplicationUseCase(repo)
	listApps := usecase.NewListApplicationsUseCase(repo)
	evaluate := usecase.NewEvaluateEligibilityUseCase(evaluator, cfg.DefaultRatePercent, recorder)
	captureLead := usecase.NewCaptureLeadUseCase(quickQuote, repo, publisher)
	submit := usecase.NewSubmitApplicationUseCase(repo, publisher, evaluator, cfg.DefaultRatePercent, recorder)
	proceed := usecase.NewProceedToSubmissionUseCase(repo, publisher)
	reevaluate := usecase.NewReevaluateApplicationUseCase(repo, publisher, evaluator, recorder)
	updateStatus := usecase.NewUpdateApplicationStatusUseCase(repo, publisher)
	setLinkSent := usecase.NewSetLinkSentUseCase(repo, publisher)
	trash := usecase.NewTrashApplicationUseCase(repo, publisher)
	savings := usecase.NewCompareSavingsUseCase(service.NewSavingsCalculator())
	purge := usecase.NewPurgeTrashUseCase(repo, logger)

	// gRPC server.
	grpcHandler := grpcPresentation.NewRefinanceHandler(grpcPresentation.UseCases{
		Evaluate:     evaluate,
		QuickQuote:   quickQuote,
		CaptureLead:  captureLead,
		Submit:       submit,
		Proceed:      proceed,
		Get:          getApp,
		List:         listApps,
		Reevaluate:   reevaluate,
		UpdateStatus: updateStatus,
		SetLinkSent:  setLinkSent,
		Trash:        trash,
		Savings:      savings,
	}, logger)
	grpcServer, err := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, grpcPresentation.ServerOptions{
		TLS: tlsutil.Files{
			CertFile: cfg.TLS.CertFile,
			KeyFile:  cfg.TLS.KeyFile,
			CAFile:   cfg.TLS.CAFile,
		},
		Reflection: cfg.GRPCReflection,
	})
	if err != nil {
		return err
	}

	// HTTP server.
	restHandler := rest.NewHandler(rest.UseCases{
		Evaluate:     evaluate,
		QuickQuote:   quickQuote,
		CaptureLead:  captureLead,
		Submit:       submit,
		Proceed:      proceed,
		Get:          getApp,
		List:         listApps,
		Reevaluate:   reevaluate,
		UpdateStatus: updateStatus,
		SetLinkSent:  setLinkSent,
		Trash:        trash,
		Savings:      savings,
	}, logger)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(restHandler, rest.RouterConfig{
			JWT:     jwtSvc,
			Limiter: middleware.NewRateLimiter(cfg.QuickQuoteRPS, cfg.QuickQuoteBurst),
			Health:  rest.NewHealthHandler(cfg.ServiceName, checks, logger),
			Metrics: metricsHandler,
			Logger:  logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.ListenAndServe(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	go purgeLoop(ctx, purge, cfg.PurgeInterval, logger)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("refinance-service stopped")
	return runErr
}

// purgeLoop deletes expired trash on every tick until ctx is cancelled.
func purgeLoop(ctx context.Context, uc *usecase.PurgeTrashUseCase, every time.Duration, logger *slog.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				logger.ErrorContext(ctx, "trash purge failed", "error", err)
			}
		}
	}
}
