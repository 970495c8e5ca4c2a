package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/internal/invoices"
	"github.com/sahanmw/wrenchworks-backend/internal/parts"
	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type vehicleLoader interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
}

// Service exposes job card lifecycle operations.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateJobInput) (*models.JobCard, error)
	Update(ctx context.Context, tenantID, jobID uuid.UUID, input UpdateJobInput) (*models.JobCard, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
	Get(ctx context.Context, tenantID, jobID uuid.UUID) (*JobCardDetail, error)
	List(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]models.JobCard, error)
	ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]models.JobCard, error)
	ChangeStatus(ctx context.Context, tenantID, jobID uuid.UUID, next enums.JobStatus) (*models.JobCard, error)
	Archive(ctx context.Context, tenantID, jobID uuid.UUID) (*models.JobCard, error)
	AddPart(ctx context.Context, tenantID, jobID uuid.UUID, input AddPartInput) (*models.JobPart, error)
	RemovePart(ctx context.Context, tenantID, jobID, partLineID uuid.UUID) error
	AddLabor(ctx context.Context, tenantID, jobID uuid.UUID, input AddLaborInput) (*models.JobLabor, error)
	RemoveLabor(ctx context.Context, tenantID, jobID, laborID uuid.UUID) error
}

// JobCardDetail is a job card with its line items and the derived
// efficiency figure.
type JobCardDetail struct {
	models.JobCard
	EfficiencyPct int `json:"efficiency_pct"`
}

// CreateJobInput holds the validated payload to open a job card.
type CreateJobInput struct {
	VehicleID            uuid.UUID
	Description          string
	AssignedTechnicianID *uuid.UUID
	Mileage              *int
	EstimatedHours       decimal.Decimal
	EstimatedCostLKR     decimal.Decimal
}

// UpdateJobInput holds optional mutation values for a job card. Status
// is deliberately absent: status moves through ChangeStatus only.
type UpdateJobInput struct {
	Description          *string
	TechnicianNotes      *string
	AssignedTechnicianID *uuid.UUID
	Mileage              *int
	EstimatedHours       *decimal.Decimal
	EstimatedCostLKR     *decimal.Decimal
}

// AddPartInput is the tagged payload for a job part line: an inventory
// reference or a custom free-form item, never both.
type AddPartInput struct {
	Kind     enums.JobPartKind
	PartID   *uuid.UUID
	Name     string
	Quantity int
	PriceLKR *decimal.Decimal
	CostLKR  *decimal.Decimal
}

// AddLaborInput holds a billable time entry.
type AddLaborInput struct {
	TechnicianID   *uuid.UUID
	TechnicianName *string
	Description    string
	Hours          decimal.Decimal
	HourlyRateLKR  decimal.Decimal
}

type service struct {
	repo        Repository
	partsRepo   parts.Repository
	invoiceRepo invoices.Repository
	vehicles    vehicleLoader
	tx          txRunner
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs the job card service.
func NewService(repo Repository, partsRepo parts.Repository, invoiceRepo invoices.Repository, vehicles vehicleLoader, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("job repository required")
	}
	if partsRepo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	if invoiceRepo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		partsRepo:   partsRepo,
		invoiceRepo: invoiceRepo,
		vehicles:    vehicles,
		tx:          tx,
		logg:        logg,
		now:         time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateJobInput) (*models.JobCard, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job description required")
	}
	if input.EstimatedHours.IsNegative() || input.EstimatedCostLKR.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimates cannot be negative")
	}
	if _, err := s.vehicles.FindByID(ctx, tenantID, input.VehicleID); err != nil {
		return nil, notFoundOr(err, "vehicle not found")
	}

	job := &models.JobCard{
		TenantID:             tenantID,
		VehicleID:            input.VehicleID,
		AssignedTechnicianID: input.AssignedTechnicianID,
		Status:               enums.JobStatusPending,
		Description:          description,
		Mileage:              input.Mileage,
		EstimatedHours:       input.EstimatedHours,
		EstimatedCostLKR:     input.EstimatedCostLKR,
	}
	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job card")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, tenantID, jobID uuid.UUID, input UpdateJobInput) (*models.JobCard, error) {
	job, err := s.repo.FindByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job card not found")
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "job description cannot be empty")
		}
		job.Description = description
	}
	if input.TechnicianNotes != nil {
		job.TechnicianNotes = input.TechnicianNotes
	}
	if input.AssignedTechnicianID != nil {
		job.AssignedTechnicianID = input.AssignedTechnicianID
	}
	if input.Mileage != nil {
		job.Mileage = input.Mileage
	}
	if input.EstimatedHours != nil {
		if input.EstimatedHours.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated hours cannot be negative")
		}
		job.EstimatedHours = *input.EstimatedHours
	}
	if input.EstimatedCostLKR != nil {
		if input.EstimatedCostLKR.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated cost cannot be negative")
		}
		job.EstimatedCostLKR = *input.EstimatedCostLKR
	}
	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job card")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID, jobID); err != nil {
		return notFoundOr(err, "job card not found")
	}
	if err := s.repo.Delete(ctx, tenantID, jobID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete job card")
	}
	return nil
}

func (s *service) Get(ctx context.Context, tenantID, jobID uuid.UUID) (*JobCardDetail, error) {
	job, err := s.repo.FindDetail(ctx, tenantID, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job card not found")
	}
	return &JobCardDetail{JobCard: *job, EfficiencyPct: EfficiencyPct(*job)}, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]models.JobCard, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID, includeArchived)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list job cards")
	}
	return rows, nil
}

func (s *service) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]models.JobCard, error) {
	rows, err := s.repo.ListByVehicle(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicle job cards")
	}
	return rows, nil
}

// ChangeStatus persists a status move with its lifecycle side effects.
// The status write and, on first completion, the invoice insert happen
// in one transaction: an invoice failure rolls the status change back.
func (s *service) ChangeStatus(ctx context.Context, tenantID, jobID uuid.UUID, next enums.JobStatus) (*models.JobCard, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job status")
	}

	var result *models.JobCard
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invoiceRepo := s.invoiceRepo.WithTx(tx)

		job, err := repo.FindByID(ctx, tenantID, jobID)
		if err != nil {
			return notFoundOr(err, "job card not found")
		}
		if job.Archived {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "archived job cards are read-only")
		}
		if job.Status == next {
			result = job
			return nil
		}

		prev := job.Status
		ApplyTransition(job, next, s.now())

		if next == enums.JobStatusCompleted && prev != enums.JobStatusCompleted {
			if err := s.generateInvoice(ctx, repo, invoiceRepo, job); err != nil {
				return err
			}
		}

		updated, err := repo.Update(ctx, job)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist status change")
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "change job status")
	}
	return result, nil
}

// generateInvoice creates the invoice for a freshly completed job,
// unless one already exists from an earlier completion.
func (s *service) generateInvoice(ctx context.Context, repo Repository, invoiceRepo invoices.Repository, job *models.JobCard) error {
	exists, err := invoiceRepo.ExistsForJobCard(ctx, job.TenantID, job.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing invoice")
	}
	if exists {
		return nil
	}

	detail, err := repo.FindDetail(ctx, job.TenantID, job.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job lines for invoice")
	}

	subtotal := decimal.Zero
	for _, part := range detail.Parts {
		subtotal = subtotal.Add(part.LineTotal())
	}
	for _, labor := range detail.Labor {
		subtotal = subtotal.Add(labor.LineTotal())
	}

	invoice := &models.Invoice{
		TenantID:       job.TenantID,
		JobCardID:      job.ID,
		SubtotalLKR:    subtotal,
		TaxLKR:         decimal.Zero,
		DiscountLKR:    decimal.Zero,
		TotalAmountLKR: subtotal,
		Status:         enums.InvoiceStatusUnpaid,
		IssuedAt:       s.now(),
	}
	if _, err := invoiceRepo.Create(ctx, invoice); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	s.logg.Info(s.logg.WithJobCardID(ctx, job.ID.String()), "invoice generated on completion")
	return nil
}

// Archive hides a completed job card. One-way.
func (s *service) Archive(ctx context.Context, tenantID, jobID uuid.UUID) (*models.JobCard, error) {
	job, err := s.repo.FindByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job card not found")
	}
	if job.Archived {
		return job, nil
	}
	if job.Status != enums.JobStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only completed job cards can be archived")
	}
	job.Archived = true
	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive job card")
	}
	return updated, nil
}

// AddPart appends a part line. Inventory lines reserve stock with a
// conditional decrement in the same transaction as the line insert;
// custom lines never touch stock.
func (s *service) AddPart(ctx context.Context, tenantID, jobID uuid.UUID, input AddPartInput) (*models.JobPart, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job part kind")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	job, err := s.repo.FindByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job card not found")
	}
	if job.Archived {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "archived job cards are read-only")
	}

	var result *models.JobPart
	switch input.Kind {
	case enums.JobPartKindInventory:
		if input.PartID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "part_id required for inventory lines")
		}
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			partsRepo := s.partsRepo.WithTx(tx)

			part, err := partsRepo.FindByID(ctx, tenantID, *input.PartID)
			if err != nil {
				return notFoundOr(err, "part not found")
			}
			ok, err := partsRepo.DecrementStock(ctx, tenantID, part.ID, input.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
					WithDetails(map[string]any{"part_id": part.ID, "requested": input.Quantity})
			}
			line := &models.JobPart{
				TenantID:       tenantID,
				JobCardID:      jobID,
				Kind:           enums.JobPartKindInventory,
				PartID:         &part.ID,
				Name:           part.Name,
				Quantity:       input.Quantity,
				PriceAtTimeLKR: part.PriceLKR,
				CostAtTimeLKR:  part.CostLKR,
			}
			created, err := repo.CreatePart(ctx, line)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job part line")
			}
			result = created
			return nil
		})
	case enums.JobPartKindCustom:
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required for custom lines")
		}
		if input.PriceLKR == nil || input.PriceLKR.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "non-negative price required for custom lines")
		}
		cost := decimal.Zero
		if input.CostLKR != nil {
			if input.CostLKR.IsNegative() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
			}
			cost = *input.CostLKR
		}
		line := &models.JobPart{
			TenantID:       tenantID,
			JobCardID:      jobID,
			Kind:           enums.JobPartKindCustom,
			Name:           name,
			Quantity:       input.Quantity,
			PriceAtTimeLKR: *input.PriceLKR,
			CostAtTimeLKR:  cost,
		}
		result, err = s.repo.CreatePart(ctx, line)
	}
	if err != nil {
		return nil, asServiceError(err, "add job part")
	}
	return result, nil
}

// RemovePart deletes a part line. Inventory lines restore the reserved
// stock unconditionally in the same transaction.
func (s *service) RemovePart(ctx context.Context, tenantID, jobID, partLineID uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		partsRepo := s.partsRepo.WithTx(tx)

		line, err := repo.FindPart(ctx, tenantID, jobID, partLineID)
		if err != nil {
			return notFoundOr(err, "job part line not found")
		}
		if err := repo.DeletePart(ctx, tenantID, line.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete job part line")
		}
		if line.Kind == enums.JobPartKindInventory && line.PartID != nil {
			if err := partsRepo.IncrementStock(ctx, tenantID, *line.PartID, line.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore stock")
			}
		}
		return nil
	})
	if err != nil {
		return asServiceError(err, "remove job part")
	}
	return nil
}

func (s *service) AddLabor(ctx context.Context, tenantID, jobID uuid.UUID, input AddLaborInput) (*models.JobLabor, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "labor description required")
	}
	if !input.Hours.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "labor hours must be positive")
	}
	if input.HourlyRateLKR.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hourly rate cannot be negative")
	}

	job, err := s.repo.FindByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job card not found")
	}
	if job.Archived {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "archived job cards are read-only")
	}

	labor := &models.JobLabor{
		TenantID:       tenantID,
		JobCardID:      jobID,
		TechnicianID:   input.TechnicianID,
		TechnicianName: input.TechnicianName,
		Description:    description,
		Hours:          input.Hours,
		HourlyRateLKR:  input.HourlyRateLKR,
	}
	created, err := s.repo.CreateLabor(ctx, labor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create labor entry")
	}
	return created, nil
}

func (s *service) RemoveLabor(ctx context.Context, tenantID, jobID, laborID uuid.UUID) error {
	if err := s.repo.DeleteLabor(ctx, tenantID, jobID, laborID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete labor entry")
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

// asServiceError keeps typed errors raised inside a transaction intact
// and wraps anything else as a dependency failure.
func asServiceError(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
