package jobs

import (
	"context"
	"io"
	"testing"
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
	"github.com/sahanmw/wrenchworks-backend/pkg/pagination"
)

type stubJobsRepo struct {
	jobs      map[uuid.UUID]*models.JobCard
	partLines map[uuid.UUID]*models.JobPart
	labor     map[uuid.UUID]*models.JobLabor
	updated   []models.JobCard
	updateErr error
}

func newStubJobsRepo() *stubJobsRepo {
	return &stubJobsRepo{
		jobs:      make(map[uuid.UUID]*models.JobCard),
		partLines: make(map[uuid.UUID]*models.JobPart),
		labor:     make(map[uuid.UUID]*models.JobLabor),
	}
}

func (s *stubJobsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubJobsRepo) Create(ctx context.Context, job *models.JobCard) (*models.JobCard, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	s.jobs[job.ID] = job
	return job, nil
}

func (s *stubJobsRepo) Update(ctx context.Context, job *models.JobCard) (*models.JobCard, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.jobs[job.ID] = job
	s.updated = append(s.updated, *job)
	return job, nil
}

func (s *stubJobsRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	delete(s.jobs, id)
	return nil
}

func (s *stubJobsRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *job
	return &clone, nil
}

func (s *stubJobsRepo) FindDetail(ctx context.Context, tenantID, id uuid.UUID) (*models.JobCard, error) {
	job, err := s.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	for _, line := range s.partLines {
		if line.JobCardID == id {
			job.Parts = append(job.Parts, *line)
		}
	}
	for _, entry := range s.labor {
		if entry.JobCardID == id {
			job.Labor = append(job.Labor, *entry)
		}
	}
	return job, nil
}

func (s *stubJobsRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]models.JobCard, error) {
	return nil, nil
}

func (s *stubJobsRepo) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]models.JobCard, error) {
	return nil, nil
}

func (s *stubJobsRepo) ListCompletedWithLines(ctx context.Context, tenantID uuid.UUID) ([]models.JobCard, error) {
	return nil, nil
}

func (s *stubJobsRepo) CreatePart(ctx context.Context, part *models.JobPart) (*models.JobPart, error) {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	s.partLines[part.ID] = part
	return part, nil
}

func (s *stubJobsRepo) FindPart(ctx context.Context, tenantID, jobCardID, partLineID uuid.UUID) (*models.JobPart, error) {
	line, ok := s.partLines[partLineID]
	if !ok || line.JobCardID != jobCardID {
		return nil, gorm.ErrRecordNotFound
	}
	return line, nil
}

func (s *stubJobsRepo) DeletePart(ctx context.Context, tenantID, partLineID uuid.UUID) error {
	delete(s.partLines, partLineID)
	return nil
}

func (s *stubJobsRepo) CreateLabor(ctx context.Context, labor *models.JobLabor) (*models.JobLabor, error) {
	if labor.ID == uuid.Nil {
		labor.ID = uuid.New()
	}
	s.labor[labor.ID] = labor
	return labor, nil
}

func (s *stubJobsRepo) DeleteLabor(ctx context.Context, tenantID, jobCardID, laborID uuid.UUID) error {
	delete(s.labor, laborID)
	return nil
}

type stubPartsRepo struct {
	parts map[uuid.UUID]*models.Part
}

func (s *stubPartsRepo) WithTx(tx *gorm.DB) parts.Repository { return s }

func (s *stubPartsRepo) Create(ctx context.Context, part *models.Part) (*models.Part, error) {
	return part, nil
}

func (s *stubPartsRepo) Update(ctx context.Context, part *models.Part) (*models.Part, error) {
	return part, nil
}

func (s *stubPartsRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error { return nil }

func (s *stubPartsRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Part, error) {
	part, ok := s.parts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *part
	return &clone, nil
}

func (s *stubPartsRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Part, error) {
	return nil, nil
}

func (s *stubPartsRepo) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]models.Part, error) {
	return nil, nil
}

func (s *stubPartsRepo) DecrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) (bool, error) {
	part, ok := s.parts[partID]
	if !ok || part.StockQuantity < quantity {
		return false, nil
	}
	part.StockQuantity -= quantity
	return true, nil
}

func (s *stubPartsRepo) IncrementStock(ctx context.Context, tenantID, partID uuid.UUID, quantity int) error {
	if part, ok := s.parts[partID]; ok {
		part.StockQuantity += quantity
	}
	return nil
}

type stubInvoiceRepo struct {
	created   []*models.Invoice
	createErr error
}

func (s *stubInvoiceRepo) WithTx(tx *gorm.DB) invoices.Repository { return s }

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	invoice.ID = uuid.New()
	s.created = append(s.created, invoice)
	return invoice, nil
}

func (s *stubInvoiceRepo) ExistsForJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (bool, error) {
	for _, invoice := range s.created {
		if invoice.JobCardID == jobCardID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubInvoiceRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInvoiceRepo) FindByJobCard(ctx context.Context, tenantID, jobCardID uuid.UUID) (*models.Invoice, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInvoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Invoice, error) {
	return nil, nil
}

func (s *stubInvoiceRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.InvoiceStatus) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubVehicleLoader struct {
	vehicles map[uuid.UUID]*models.Vehicle
}

func (s *stubVehicleLoader) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

type serviceFixture struct {
	svc      *service
	repo     *stubJobsRepo
	parts    *stubPartsRepo
	invoices *stubInvoiceRepo
	tenantID uuid.UUID
	now      time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	repo := newStubJobsRepo()
	partsRepo := &stubPartsRepo{parts: make(map[uuid.UUID]*models.Part)}
	invoiceRepo := &stubInvoiceRepo{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(repo, partsRepo, invoiceRepo,
		&stubVehicleLoader{vehicles: make(map[uuid.UUID]*models.Vehicle)},
		stubTxRunner{}, logg)
	if err != nil {
		t.Fatalf("unexpected error building service: %v", err)
	}

	fixture := &serviceFixture{
		svc:      svc.(*service),
		repo:     repo,
		parts:    partsRepo,
		invoices: invoiceRepo,
		tenantID: uuid.New(),
		now:      time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
	}
	fixture.svc.now = func() time.Time { return fixture.now }
	return fixture
}

func (f *serviceFixture) seedJob(status enums.JobStatus) *models.JobCard {
	job := &models.JobCard{
		ID:          uuid.New(),
		TenantID:    f.tenantID,
		VehicleID:   uuid.New(),
		Status:      status,
		Description: "brake overhaul",
		CreatedAt:   f.now.Add(-48 * time.Hour),
	}
	f.repo.jobs[job.ID] = job
	return job
}

func TestChangeStatusCompletionGeneratesInvoice(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusInProgress)

	f.repo.partLines[uuid.New()] = &models.JobPart{
		ID:             uuid.New(),
		JobCardID:      job.ID,
		Kind:           enums.JobPartKindInventory,
		Name:           "brake pads",
		Quantity:       2,
		PriceAtTimeLKR: decimal.RequireFromString("4500"),
		CostAtTimeLKR:  decimal.RequireFromString("3000"),
	}
	f.repo.labor[uuid.New()] = &models.JobLabor{
		ID:            uuid.New(),
		JobCardID:     job.ID,
		Description:   "fitting",
		Hours:         decimal.RequireFromString("1.5"),
		HourlyRateLKR: decimal.RequireFromString("2000"),
	}

	updated, err := f.svc.ChangeStatus(context.Background(), f.tenantID, job.ID, enums.JobStatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("expected completed_at set")
	}
	if len(f.invoices.created) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(f.invoices.created))
	}
	invoice := f.invoices.created[0]
	// 2 x 4500 + 1.5 x 2000 = 12000
	if !invoice.SubtotalLKR.Equal(decimal.RequireFromString("12000")) {
		t.Fatalf("expected subtotal 12000, got %s", invoice.SubtotalLKR)
	}
	if !invoice.TotalAmountLKR.Equal(invoice.SubtotalLKR) {
		t.Fatalf("expected total equal to subtotal, got %s", invoice.TotalAmountLKR)
	}
	if invoice.Status != enums.InvoiceStatusUnpaid {
		t.Fatalf("expected Unpaid, got %s", invoice.Status)
	}
}

func TestChangeStatusRecompletionDoesNotDuplicateInvoice(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusInProgress)

	if _, err := f.svc.ChangeStatus(context.Background(), f.tenantID, job.ID, enums.JobStatusCompleted); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if _, err := f.svc.ChangeStatus(context.Background(), f.tenantID, job.ID, enums.JobStatusInProgress); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := f.svc.ChangeStatus(context.Background(), f.tenantID, job.ID, enums.JobStatusCompleted); err != nil {
		t.Fatalf("second completion: %v", err)
	}

	if len(f.invoices.created) != 1 {
		t.Fatalf("expected invoice idempotence, got %d invoices", len(f.invoices.created))
	}
}

func TestChangeStatusInvoiceFailureAbortsTransition(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusInProgress)
	f.invoices.createErr = gorm.ErrInvalidDB

	_, err := f.svc.ChangeStatus(context.Background(), f.tenantID, job.ID, enums.JobStatusCompleted)
	if err == nil {
		t.Fatal("expected error from invoice failure")
	}
	if len(f.repo.updated) != 0 {
		t.Fatal("expected no status write after invoice failure")
	}
}

func TestChangeStatusArchivedJobRejected(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusCompleted)
	job.Archived = true

	_, err := f.svc.ChangeStatus(context.Background(), f.tenantID, job.ID, enums.JobStatusInProgress)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAddPartInventoryReservesStock(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusInProgress)
	partID := uuid.New()
	f.parts.parts[partID] = &models.Part{
		ID:            partID,
		TenantID:      f.tenantID,
		Name:          "oil filter",
		StockQuantity: 5,
		CostLKR:       decimal.RequireFromString("800"),
		PriceLKR:      decimal.RequireFromString("1200"),
	}

	line, err := f.svc.AddPart(context.Background(), f.tenantID, job.ID, AddPartInput{
		Kind:     enums.JobPartKindInventory,
		PartID:   &partID,
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.parts.parts[partID].StockQuantity != 2 {
		t.Fatalf("expected stock 2, got %d", f.parts.parts[partID].StockQuantity)
	}
	if !line.PriceAtTimeLKR.Equal(decimal.RequireFromString("1200")) {
		t.Fatalf("expected price snapshot 1200, got %s", line.PriceAtTimeLKR)
	}
	if !line.CostAtTimeLKR.Equal(decimal.RequireFromString("800")) {
		t.Fatalf("expected cost snapshot 800, got %s", line.CostAtTimeLKR)
	}
}

func TestAddPartInsufficientStockFailsWholeOperation(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusInProgress)
	partID := uuid.New()
	f.parts.parts[partID] = &models.Part{ID: partID, TenantID: f.tenantID, Name: "clutch", StockQuantity: 1}

	_, err := f.svc.AddPart(context.Background(), f.tenantID, job.ID, AddPartInput{
		Kind:     enums.JobPartKindInventory,
		PartID:   &partID,
		Quantity: 2,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if f.parts.parts[partID].StockQuantity != 1 {
		t.Fatalf("expected untouched stock, got %d", f.parts.parts[partID].StockQuantity)
	}
	if len(f.repo.partLines) != 0 {
		t.Fatal("expected no line item created")
	}
}

func TestAddPartCustomSkipsStock(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusPending)
	price := decimal.RequireFromString("950")

	line, err := f.svc.AddPart(context.Background(), f.tenantID, job.ID, AddPartInput{
		Kind:     enums.JobPartKindCustom,
		Name:     "salvaged alternator",
		Quantity: 1,
		PriceLKR: &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.PartID != nil {
		t.Fatal("expected custom line without part reference")
	}
	if !line.CostAtTimeLKR.IsZero() {
		t.Fatalf("expected zero cost default, got %s", line.CostAtTimeLKR)
	}
}

func TestRemovePartRestoresStock(t *testing.T) {
	f := newServiceFixture(t)
	job := f.seedJob(enums.JobStatusInProgress)
	partID := uuid.New()
	f.parts.parts[partID] = &models.Part{ID: partID, TenantID: f.tenantID, Name: "belt", StockQuantity: 4}

	line, err := f.svc.AddPart(context.Background(), f.tenantID, job.ID, AddPartInput{
		Kind:     enums.JobPartKindInventory,
		PartID:   &partID,
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("add part: %v", err)
	}
	if f.parts.parts[partID].StockQuantity != 1 {
		t.Fatalf("expected stock 1 after add, got %d", f.parts.parts[partID].StockQuantity)
	}

	if err := f.svc.RemovePart(context.Background(), f.tenantID, job.ID, line.ID); err != nil {
		t.Fatalf("remove part: %v", err)
	}
	if f.parts.parts[partID].StockQuantity != 4 {
		t.Fatalf("expected stock restored to 4, got %d", f.parts.parts[partID].StockQuantity)
	}
}

func TestArchiveOnlyFromCompleted(t *testing.T) {
	f := newServiceFixture(t)
	pending := f.seedJob(enums.JobStatusPending)

	if _, err := f.svc.Archive(context.Background(), f.tenantID, pending.ID); err == nil {
		t.Fatal("expected archive of pending job to fail")
	}

	completed := f.seedJob(enums.JobStatusCompleted)
	archived, err := f.svc.Archive(context.Background(), f.tenantID, completed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !archived.Archived {
		t.Fatal("expected archived flag set")
	}
}
