package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sahanmw/wrenchworks-backend/api/routes"
	"github.com/sahanmw/wrenchworks-backend/internal/auth"
	"github.com/sahanmw/wrenchworks-backend/internal/billing"
	"github.com/sahanmw/wrenchworks-backend/internal/customers"
	"github.com/sahanmw/wrenchworks-backend/internal/expenses"
	"github.com/sahanmw/wrenchworks-backend/internal/invoices"
	"github.com/sahanmw/wrenchworks-backend/internal/jobs"
	"github.com/sahanmw/wrenchworks-backend/internal/parts"
	"github.com/sahanmw/wrenchworks-backend/internal/reports"
	"github.com/sahanmw/wrenchworks-backend/internal/scan"
	"github.com/sahanmw/wrenchworks-backend/internal/tenants"
	"github.com/sahanmw/wrenchworks-backend/internal/users"
	"github.com/sahanmw/wrenchworks-backend/internal/vehicles"
	"github.com/sahanmw/wrenchworks-backend/pkg/auth/session"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	"github.com/sahanmw/wrenchworks-backend/pkg/db"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
	"github.com/sahanmw/wrenchworks-backend/pkg/metrics"
	"github.com/sahanmw/wrenchworks-backend/pkg/migrate"
	"github.com/sahanmw/wrenchworks-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// Dependency bootstrap runs under a watchdog so a hung database or
	// redis endpoint fails the boot instead of blocking forever.
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), cfg.App.StartupPing)
	defer cancelBoot()

	dbClient, err := db.New(bootCtx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(bootCtx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(bootCtx, cfg.Redis, logg)
	if err != nil {
		logg.Error(bootCtx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	tenantRepo := tenants.NewRepository(dbClient.DB())
	customerRepo := customers.NewRepository(dbClient.DB())
	vehicleRepo := vehicles.NewRepository(dbClient.DB())
	partRepo := parts.NewRepository(dbClient.DB())
	jobRepo := jobs.NewRepository(dbClient.DB())
	invoiceRepo := invoices.NewRepository(dbClient.DB())
	expenseRepo := expenses.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		BillingConfig:  cfg.Billing,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	vehicleService, err := vehicles.NewService(vehicleRepo, customerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create vehicle service", err)
		os.Exit(1)
	}

	partService, err := parts.NewService(partRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create parts service", err)
		os.Exit(1)
	}

	jobService, err := jobs.NewService(jobRepo, partRepo, invoiceRepo, vehicleRepo, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create job service", err)
		os.Exit(1)
	}

	invoiceService, err := invoices.NewService(invoiceRepo, jobRepo, vehicleRepo, customerRepo, tenantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}

	expenseService, err := expenses.NewService(expenseRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create expense service", err)
		os.Exit(1)
	}

	billingService, err := billing.NewService(expenseRepo, jobRepo, tenantRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create billing service", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(billingService, tenantRepo, cfg.Reports)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	tenantService, err := tenants.NewService(tenantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tenant service", err)
		os.Exit(1)
	}

	classifier, err := scan.NewClassifier(cfg.Scan)
	if err != nil {
		logg.Error(context.Background(), "failed to create scan classifier", err)
		os.Exit(1)
	}

	scanService, err := scan.NewService(classifier, vehicleRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create scan service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	handler := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		SessionManager: sessionManager,
		HTTPMetrics:    httpMetrics,

		AuthService:     authService,
		RegisterService: registerService,
		CustomerService: customerService,
		VehicleService:  vehicleService,
		PartService:     partService,
		JobService:      jobService,
		InvoiceService:  invoiceService,
		ExpenseService:  expenseService,
		BillingService:  billingService,
		ReportService:   reportService,
		TenantService:   tenantService,
		ScanService:     scanService,
		UserRepo:        userRepo,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
