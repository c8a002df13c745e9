package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/centavo/installments/internal/application/usecase"
	"github.com/centavo/installments/internal/infrastructure/adapter"
	"github.com/centavo/installments/internal/infrastructure/config"
	"github.com/centavo/installments/internal/infrastructure/messaging"
	pgRepo "github.com/centavo/installments/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/centavo/installments/internal/presentation/grpc"
	"github.com/centavo/installments/internal/presentation/rest"
	"github.com/centavo/installments/pkg/auth"
	"github.com/centavo/installments/pkg/kafka"
	"github.com/centavo/installments/pkg/observability"
	pgutil "github.com/centavo/installments/pkg/postgres"
)

func main() {
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	logger.Info("starting installment service",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database -----------------------------------------------------------
	pgCfg := pgutil.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}

	if err := pgutil.RunMigrations(pgCfg.DSN(), "file://migrations"); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := pgutil.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// --- Metrics ------------------------------------------------------------
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()

	// --- Auth ---------------------------------------------------------------
	var jwtService *auth.JWTService
	if cfg.Auth.PublicKeyFile != "" {
		publicKey, err := auth.LoadKeyFromFile(cfg.Auth.PublicKeyFile)
		if err != nil {
			logger.Error("failed to load JWT public key", "error", err)
			os.Exit(1)
		}
		jwtService, err = auth.NewJWTService(auth.JWTConfig{
			PublicKeyPEM: string(publicKey),
			Issuer:       cfg.Auth.Issuer,
		})
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
		logger.Info("JWT validation enabled", "issuer", cfg.Auth.Issuer)
	}

	// --- Infrastructure adapters -------------------------------------------
	planRepo := pgRepo.NewPlanRepo(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)

	// Account directory, ledger and category store are stubbed until the
	// surrounding services expose their gRPC clients.
	accounts := adapter.NewStubAccountDirectory()
	ledger := adapter.NewStubLedgerPoster()
	categories := adapter.NewStubCategoryResolver()

	// --- Use cases ----------------------------------------------------------
	locks := usecase.NewPlanLocks()
	createUC := usecase.NewCreatePlanUseCase(planRepo, accounts, categories, publisher)
	getUC := usecase.NewGetPlanUseCase(planRepo)
	listUC := usecase.NewListPlansUseCase(planRepo)
	editUC := usecase.NewEditPlanUseCase(planRepo, publisher, locks)
	cancelUC := usecase.NewCancelPlanUseCase(planRepo, publisher, locks)
	paymentUC := usecase.NewRecordPaymentUseCase(planRepo, accounts, ledger, publisher, locks)

	// --- gRPC server --------------------------------------------------------
	handler := grpcPresentation.NewInstallmentHandler(
		createUC, getUC, listUC, editUC, cancelUC, paymentUC,
		jwtService != nil,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtService, grpcPresentation.ServerOptions{
		ServiceName: cfg.ServiceName,
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.Reflection,
	})

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			logger.Error("gRPC server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- HTTP health and metrics server -------------------------------------
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger, cfg.ServiceName)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: mux,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("installment service stopped")
}
