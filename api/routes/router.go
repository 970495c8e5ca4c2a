package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sahanmw/wrenchworks-backend/api/controllers"
	"github.com/sahanmw/wrenchworks-backend/api/middleware"
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
	"github.com/sahanmw/wrenchworks-backend/internal/vehicles"
	"github.com/sahanmw/wrenchworks-backend/pkg/auth/session"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	"github.com/sahanmw/wrenchworks-backend/pkg/db"
	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
	"github.com/sahanmw/wrenchworks-backend/pkg/metrics"
	"github.com/sahanmw/wrenchworks-backend/pkg/redis"
)

type staffLister interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.User, error)
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionManager *session.Manager
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService     auth.Service
	RegisterService auth.RegisterService
	CustomerService customers.Service
	VehicleService  vehicles.Service
	PartService     parts.Service
	JobService      jobs.Service
	InvoiceService  invoices.Service
	ExpenseService  expenses.Service
	BillingService  billing.Service
	ReportService   reports.Service
	TenantService   tenants.Service
	ScanService     scan.Service
	UserRepo        staffLister
}

// NewRouter assembles the full HTTP surface.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg), middleware.Idempotency(d.Redis, logg)).
			Post("/register", controllers.AuthRegister(d.RegisterService, d.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(d.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))
		r.Use(middleware.TenantContext(logg))
		r.Use(middleware.Idempotency(d.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/me", controllers.AuthMe(logg))
		r.Post("/auth/reset-password", controllers.AuthResetPassword(d.AuthService, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(d.CustomerService, logg))
			r.Post("/", controllers.CustomerCreate(d.CustomerService, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(d.CustomerService, logg))
			r.Patch("/{customerId}", controllers.CustomerUpdate(d.CustomerService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(d.CustomerService, logg))
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.VehicleList(d.VehicleService, logg))
			r.Post("/", controllers.VehicleCreate(d.VehicleService, logg))
			r.Get("/lookup", controllers.VehicleLookupByPlate(d.VehicleService, logg))
			r.Get("/{vehicleId}", controllers.VehicleDetail(d.VehicleService, logg))
			r.Patch("/{vehicleId}", controllers.VehicleUpdate(d.VehicleService, logg))
			r.Delete("/{vehicleId}", controllers.VehicleDelete(d.VehicleService, logg))
		})

		r.Route("/parts", func(r chi.Router) {
			r.Get("/", controllers.PartList(d.PartService, logg))
			r.Post("/", controllers.PartCreate(d.PartService, logg))
			r.Get("/low-stock", controllers.PartLowStock(d.PartService, logg))
			r.Get("/{partId}", controllers.PartDetail(d.PartService, logg))
			r.Patch("/{partId}", controllers.PartUpdate(d.PartService, logg))
			r.Delete("/{partId}", controllers.PartDelete(d.PartService, logg))
			r.Post("/{partId}/adjust-stock", controllers.PartAdjustStock(d.PartService, logg))
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", controllers.JobList(d.JobService, logg))
			r.Post("/", controllers.JobCreate(d.JobService, logg))
			r.Get("/{jobId}", controllers.JobDetail(d.JobService, logg))
			r.Patch("/{jobId}", controllers.JobUpdate(d.JobService, logg))
			r.Delete("/{jobId}", controllers.JobDelete(d.JobService, logg))
			r.Patch("/{jobId}/status", controllers.JobChangeStatus(d.JobService, logg))
			r.Post("/{jobId}/archive", controllers.JobArchive(d.JobService, logg))
			r.Post("/{jobId}/parts", controllers.JobAddPart(d.JobService, logg))
			r.Delete("/{jobId}/parts/{lineId}", controllers.JobRemovePart(d.JobService, logg))
			r.Post("/{jobId}/labor", controllers.JobAddLabor(d.JobService, logg))
			r.Delete("/{jobId}/labor/{laborId}", controllers.JobRemoveLabor(d.JobService, logg))
			r.Get("/{jobId}/invoice", controllers.InvoiceByJobCard(d.InvoiceService, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(d.InvoiceService, logg))
			r.Get("/{invoiceId}", controllers.InvoiceDetail(d.InvoiceService, logg))
			r.Patch("/{invoiceId}/status", controllers.InvoiceSetStatus(d.InvoiceService, logg))
			r.Get("/{invoiceId}/pdf", controllers.InvoicePDF(d.InvoiceService, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", controllers.ExpenseList(d.ExpenseService, logg))
			r.Post("/", controllers.ExpenseCreate(d.ExpenseService, logg))
			r.Get("/{expenseId}", controllers.ExpenseDetail(d.ExpenseService, logg))
			r.Patch("/{expenseId}", controllers.ExpenseUpdate(d.ExpenseService, logg))
			r.Delete("/{expenseId}", controllers.ExpenseDelete(d.ExpenseService, logg))
		})

		r.Route("/billing", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.MemberRoleOwner, enums.MemberRoleManager))
			r.Get("/ledger", controllers.BillingLedger(d.BillingService, logg))
			r.Get("/summary", controllers.BillingSummary(d.BillingService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.MemberRoleOwner, enums.MemberRoleManager))
			r.Get("/financial", controllers.ReportFinancial(d.ReportService, logg))
			r.Get("/financial/pdf", controllers.ReportFinancialPDF(d.ReportService, logg))
			r.Get("/financial/xlsx", controllers.ReportFinancialXLSX(d.ReportService, logg))
		})

		r.Route("/tenants/me", func(r chi.Router) {
			r.Get("/", controllers.TenantProfile(d.TenantService, logg))
			r.With(middleware.RequireRoles(logg, enums.MemberRoleOwner, enums.MemberRoleManager)).
				Put("/settings", controllers.TenantUpdateSettings(d.TenantService, logg))
			r.Get("/users", controllers.StaffList(d.UserRepo, logg))
		})

		r.Post("/scan", controllers.ScanVehicle(d.ScanService, logg))
	})

	return r
}
