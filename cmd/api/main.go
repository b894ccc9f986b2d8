package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetadmin/config"
	_ "fleetadmin/docs"
	"fleetadmin/internal/adapters/auth"
	"fleetadmin/internal/adapters/email"
	"fleetadmin/internal/adapters/queue"
	"fleetadmin/internal/adapters/storage"
	apphttp "fleetadmin/internal/delivery/http"
	"fleetadmin/internal/delivery/http/controllers"
	"fleetadmin/internal/delivery/http/middleware"
	"fleetadmin/internal/domain"
	"fleetadmin/internal/repository/memory"
	"fleetadmin/internal/repository/postgres"
	"fleetadmin/internal/services"
)

// @title Fleet Admin API
// @version 1.0
// @description Back office API for the vehicle fleet and credit dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from /api/v1/auth/login
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.App.Environment, cfg.Log.Level)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped with error", "err", err)
		os.Exit(1)
	}
}

// repositories is the storage backend selected by DATA_PROVIDER.
type repositories struct {
	vehicles  domain.VehicleRepository
	customers domain.CustomerRepository
	contracts domain.ContractRepository
	payments  domain.PaymentRepository
	auditLogs domain.AuditLogRepository
	admins    domain.AdminRepository
	db        *sql.DB
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.App.DataProvider == config.ProviderMock {
		store := memory.NewSeededStore(time.Now().UTC())
		logger.Info("using mock data provider", "admin_email", memory.SeedAdminEmail)
		return &repositories{
			vehicles:  store.Vehicles(),
			customers: store.Customers(),
			contracts: store.Contracts(),
			payments:  store.Payments(),
			auditLogs: store.AuditLogs(),
			admins:    store.Admins(),
		}, nil
	}

	// The schema is not created here; apply migrations/*.sql beforehand,
	// e.g. psql "$DATABASE_URL" -f migrations/0001_init.sql.
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to PostgreSQL")
	return &repositories{
		vehicles:  postgres.NewVehicleRepository(db),
		customers: postgres.NewCustomerRepository(db),
		contracts: postgres.NewContractRepository(db),
		payments:  postgres.NewPaymentRepository(db),
		auditLogs: postgres.NewAuditLogRepository(db),
		admins:    postgres.NewAdminRepository(db),
		db:        db,
	}, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	var documents domain.DocumentStorage
	if cfg.S3.Enabled() {
		s3, err := storage.NewDocumentStorage(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("connect object storage: %w", err)
		}
		documents = s3
		logger.Info("connected to object storage", "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket)
	} else {
		logger.Warn("S3_ENDPOINT not set, contract document uploads are disabled")
	}

	var receipts domain.ReceiptNotifier
	if cfg.Redis.Enabled() {
		producer := queue.NewReceiptProducer(cfg.Redis)
		defer producer.Close()
		receipts = producer
		logger.Info("payment receipts are queued", "redis_addr", cfg.Redis.Addr)
	} else {
		mailer := email.NewMailer(cfg.Mailer, logger)
		receipts = services.NewReceiptMailer(mailer, email.NewTemplateRenderer(), logger)
		logger.Info("REDIS_ADDR not set, payment receipts are sent inline")
	}

	tokens := auth.NewJWT(cfg.Auth.JWTSecret)
	auditSvc := services.NewAuditService(repos.auditLogs, logger, cfg.App.Location())
	authSvc := services.NewAuthService(repos.admins, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, cfg.Auth.TokenTTL, auditSvc, logger)
	vehicleSvc := services.NewVehicleService(repos.vehicles, auditSvc)
	customerSvc := services.NewCustomerService(repos.customers, auditSvc)
	contractSvc := services.NewContractService(repos.contracts, repos.customers, repos.vehicles, documents, auditSvc, cfg.App.UploadTimeout)
	paymentSvc := services.NewPaymentService(repos.payments, repos.contracts, repos.customers, receipts, auditSvc, logger)

	if err := bootstrapAdmin(ctx, cfg, authSvc, logger); err != nil {
		return err
	}

	var pinger controllers.Pinger
	if repos.db != nil {
		pinger = repos.db
	}
	router := apphttp.NewRouter(apphttp.Controllers{
		Auth:      controllers.NewAuthController(logger, authSvc),
		Vehicles:  controllers.NewVehicleController(logger, vehicleSvc),
		Customers: controllers.NewCustomerController(logger, customerSvc),
		Contracts: controllers.NewContractController(logger, contractSvc),
		Payments:  controllers.NewPaymentController(logger, paymentSvc),
		AuditLogs: controllers.NewAuditLogController(logger, auditSvc),
		Health:    controllers.NewHealthController(logger, pinger, cfg.App.DataProvider),
	}, tokens, logger)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           middleware.CORS(cfg.App.AllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.App.UploadTimeout,
		WriteTimeout:      cfg.App.UploadTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", server.Addr, "env", cfg.App.Environment, "provider", cfg.App.DataProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// bootstrapAdmin creates the configured admin account. The mock provider falls back to the seed credentials.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, authSvc domain.AuthService, logger *slog.Logger) error {
	emailAddr, name, password := cfg.Auth.AdminEmail, cfg.Auth.AdminName, cfg.Auth.AdminPassword
	if emailAddr == "" && cfg.App.DataProvider == config.ProviderMock {
		emailAddr, name, password = memory.SeedAdminEmail, memory.SeedAdminName, memory.SeedAdminPassword
	}
	if emailAddr == "" {
		return nil
	}
	admin, err := authSvc.EnsureAdmin(ctx, emailAddr, name, password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Info("admin account ready", "email", admin.Email)
	return nil
}
