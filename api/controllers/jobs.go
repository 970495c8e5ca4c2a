package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	jobsvc "github.com/sahanmw/wrenchworks-backend/internal/jobs"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
)

type createJobRequest struct {
	VehicleID            uuid.UUID       `json:"vehicle_id" validate:"required"`
	Description          string          `json:"description" validate:"required"`
	AssignedTechnicianID *uuid.UUID      `json:"assigned_technician_id,omitempty"`
	Mileage              *int            `json:"mileage,omitempty" validate:"omitempty,min=0"`
	EstimatedHours       decimal.Decimal `json:"estimated_hours"`
	EstimatedCostLKR     decimal.Decimal `json:"estimated_cost_lkr"`
}

type updateJobRequest struct {
	Description          *string          `json:"description,omitempty"`
	TechnicianNotes      *string          `json:"technician_notes,omitempty"`
	AssignedTechnicianID *uuid.UUID       `json:"assigned_technician_id,omitempty"`
	Mileage              *int             `json:"mileage,omitempty" validate:"omitempty,min=0"`
	EstimatedHours       *decimal.Decimal `json:"estimated_hours,omitempty"`
	EstimatedCostLKR     *decimal.Decimal `json:"estimated_cost_lkr,omitempty"`
}

type changeJobStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type addJobPartRequest struct {
	Kind     string           `json:"kind" validate:"required"`
	PartID   *uuid.UUID       `json:"part_id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	PriceLKR *decimal.Decimal `json:"price_lkr,omitempty"`
	CostLKR  *decimal.Decimal `json:"cost_lkr,omitempty"`
}

type addJobLaborRequest struct {
	TechnicianID   *uuid.UUID      `json:"technician_id,omitempty"`
	TechnicianName *string         `json:"technician_name,omitempty"`
	Description    string          `json:"description" validate:"required"`
	Hours          decimal.Decimal `json:"hours"`
	HourlyRateLKR  decimal.Decimal `json:"hourly_rate_lkr"`
}

// JobCreate opens a job card against a registered vehicle.
func JobCreate(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createJobRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.Create(r.Context(), tenantID, jobsvc.CreateJobInput{
			VehicleID:            body.VehicleID,
			Description:          body.Description,
			AssignedTechnicianID: body.AssignedTechnicianID,
			Mileage:              body.Mileage,
			EstimatedHours:       body.EstimatedHours,
			EstimatedCostLKR:     body.EstimatedCostLKR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, job)
	}
}

// JobUpdate applies a partial update. Status moves through the
// dedicated status endpoint only.
func JobUpdate(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateJobRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.Update(r.Context(), tenantID, jobID, jobsvc.UpdateJobInput{
			Description:          body.Description,
			TechnicianNotes:      body.TechnicianNotes,
			AssignedTechnicianID: body.AssignedTechnicianID,
			Mileage:              body.Mileage,
			EstimatedHours:       body.EstimatedHours,
			EstimatedCostLKR:     body.EstimatedCostLKR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, job)
	}
}

// JobDelete removes a job card.
func JobDelete(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, jobID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// JobDetail returns one job card with its lines and efficiency figure.
func JobDetail(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), tenantID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// JobList returns job cards. Archived cards appear only when
// include_archived=true; a vehicle_id query narrows to one vehicle.
func JobList(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if raw := r.URL.Query().Get("vehicle_id"); raw != "" {
			vehicleID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id"))
				return
			}
			jobs, err := svc.ListByVehicle(r.Context(), tenantID, vehicleID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, jobs)
			return
		}

		includeArchived, err := validators.ParseQueryBool(r, "include_archived", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobs, err := svc.List(r.Context(), tenantID, includeArchived)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, jobs)
	}
}

// JobChangeStatus drives the job card lifecycle. Completing a card
// mints its invoice in the same transaction.
func JobChangeStatus(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body changeJobStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseJobStatus(strings.TrimSpace(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		job, err := svc.ChangeStatus(r.Context(), tenantID, jobID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, job)
	}
}

// JobArchive hides a completed job card from default listings.
func JobArchive(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.Archive(r.Context(), tenantID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, job)
	}
}

// JobAddPart attaches a part line: either an inventory reference that
// decrements stock, or a custom free-form item.
func JobAddPart(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addJobPartRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseJobPartKind(strings.TrimSpace(body.Kind))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid part kind"))
			return
		}

		line, err := svc.AddPart(r.Context(), tenantID, jobID, jobsvc.AddPartInput{
			Kind:     kind,
			PartID:   body.PartID,
			Name:     body.Name,
			Quantity: body.Quantity,
			PriceLKR: body.PriceLKR,
			CostLKR:  body.CostLKR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, line)
	}
}

// JobRemovePart detaches a part line and restores inventory stock for
// inventory-backed lines.
func JobRemovePart(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID, err := pathUUID(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemovePart(r.Context(), tenantID, jobID, lineID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// JobAddLabor attaches a billable time entry.
func JobAddLabor(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addJobLaborRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.AddLabor(r.Context(), tenantID, jobID, jobsvc.AddLaborInput{
			TechnicianID:   body.TechnicianID,
			TechnicianName: body.TechnicianName,
			Description:    body.Description,
			Hours:          body.Hours,
			HourlyRateLKR:  body.HourlyRateLKR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// JobRemoveLabor detaches a labor entry.
func JobRemoveLabor(svc jobsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "job service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := pathUUID(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		laborID, err := pathUUID(r, "laborId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveLabor(r.Context(), tenantID, jobID, laborID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
