package invoices

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/documents"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

// Service exposes invoice read and payment-status operations. Invoice
// creation is not here: invoices come into existence inside the job
// completion transaction, never on demand.
type Service interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]models.Invoice, error)
	Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*models.Invoice, error)
	GetByJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (*models.Invoice, error)
	SetStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status enums.InvoiceStatus) (*models.Invoice, error)
	RenderPDF(ctx context.Context, w io.Writer, tenantID, invoiceID uuid.UUID) error
}

type jobDetailLoader interface {
	FindDetail(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error)
}

type vehicleLoader interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
}

type customerLoader interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error)
}

type tenantLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type service struct {
	repo      Repository
	jobs      jobDetailLoader
	vehicles  vehicleLoader
	customers customerLoader
	tenants   tenantLoader
}

// NewService constructs the invoice service.
func NewService(repo Repository, jobs jobDetailLoader, vehicles vehicleLoader, customers customerLoader, tenants tenantLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if jobs == nil {
		return nil, fmt.Errorf("job loader required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle loader required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant loader required")
	}
	return &service{
		repo:      repo,
		jobs:      jobs,
		vehicles:  vehicles,
		customers: customers,
		tenants:   tenants,
	}, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]models.Invoice, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice not found")
	}
	return invoice, nil
}

func (s *service) GetByJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByJobCard(ctx, tenantID, jobCardID)
	if err != nil {
		return nil, notFoundOr(err, "invoice not found")
	}
	return invoice, nil
}

// SetStatus flips the payment flag. Totals stay frozen regardless.
func (s *service) SetStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status enums.InvoiceStatus) (*models.Invoice, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid invoice status")
	}
	if err := s.repo.UpdateStatus(ctx, tenantID, invoiceID, status); err != nil {
		return nil, notFoundOr(err, "invoice not found")
	}
	invoice, err := s.repo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice not found")
	}
	return invoice, nil
}

// RenderPDF writes the invoice document. Line items come from the job
// card as it is now; the totals are the frozen invoice amounts.
func (s *service) RenderPDF(ctx context.Context, w io.Writer, tenantID, invoiceID uuid.UUID) error {
	invoice, err := s.repo.FindByID(ctx, tenantID, invoiceID)
	if err != nil {
		return notFoundOr(err, "invoice not found")
	}
	job, err := s.jobs.FindDetail(ctx, tenantID, invoice.JobCardID)
	if err != nil {
		return notFoundOr(err, "job card not found")
	}
	vehicle, err := s.vehicles.FindByID(ctx, tenantID, job.VehicleID)
	if err != nil {
		return notFoundOr(err, "vehicle not found")
	}
	customer, err := s.customers.FindByID(ctx, tenantID, vehicle.CustomerID)
	if err != nil {
		return notFoundOr(err, "customer not found")
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return notFoundOr(err, "workshop not found")
	}

	doc := documents.InvoiceDocument{
		WorkshopName: tenant.Name,
		CurrencyCode: tenant.CurrencyCode,
		InvoiceID:    invoice.ID.String(),
		CustomerName: customer.Name,
		VehiclePlate: vehicle.LicensePlate,
		Description:  job.Description,
		Status:       invoice.Status.String(),
		IssuedAt:     invoice.IssuedAt,
		Subtotal:     invoice.SubtotalLKR,
		Tax:          invoice.TaxLKR,
		Discount:     invoice.DiscountLKR,
		Total:        invoice.TotalAmountLKR,
	}
	for _, part := range job.Parts {
		doc.Parts = append(doc.Parts, documents.InvoiceLine{
			Description: part.Name,
			Quantity:    fmt.Sprintf("%d", part.Quantity),
			Amount:      part.LineTotal(),
		})
	}
	for _, labor := range job.Labor {
		doc.Labor = append(doc.Labor, documents.InvoiceLine{
			Description: labor.Description,
			Quantity:    labor.Hours.StringFixed(2) + " h",
			Amount:      labor.LineTotal(),
		})
	}

	if err := documents.RenderInvoicePDF(w, doc); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice pdf")
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
