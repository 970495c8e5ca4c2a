package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sahanmw/wrenchworks-backend/api/responses"
	"github.com/sahanmw/wrenchworks-backend/api/validators"
	partsvc "github.com/sahanmw/wrenchworks-backend/internal/parts"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/logger"
	"github.com/sahanmw/wrenchworks-backend/pkg/pagination"
)

type createPartRequest struct {
	Name          string          `json:"name" validate:"required"`
	PartNumber    *string         `json:"part_number,omitempty"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	MinStockLevel int             `json:"min_stock_level" validate:"min=0"`
	CostLKR       decimal.Decimal `json:"cost_lkr"`
	PriceLKR      decimal.Decimal `json:"price_lkr"`
}

type updatePartRequest struct {
	Name          *string          `json:"name,omitempty"`
	PartNumber    *string          `json:"part_number,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	MinStockLevel *int             `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	CostLKR       *decimal.Decimal `json:"cost_lkr,omitempty"`
	PriceLKR      *decimal.Decimal `json:"price_lkr,omitempty"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// PartCreate adds a part to the workshop's inventory.
func PartCreate(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createPartRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.Create(r.Context(), tenantID, partsvc.CreatePartInput{
			Name:          body.Name,
			PartNumber:    body.PartNumber,
			StockQuantity: body.StockQuantity,
			MinStockLevel: body.MinStockLevel,
			CostLKR:       body.CostLKR,
			PriceLKR:      body.PriceLKR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, part)
	}
}

// PartUpdate applies a partial update to an inventory part.
func PartUpdate(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := pathUUID(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePartRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.Update(r.Context(), tenantID, partID, partsvc.UpdatePartInput{
			Name:          body.Name,
			PartNumber:    body.PartNumber,
			StockQuantity: body.StockQuantity,
			MinStockLevel: body.MinStockLevel,
			CostLKR:       body.CostLKR,
			PriceLKR:      body.PriceLKR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, part)
	}
}

// PartDelete removes a part from inventory.
func PartDelete(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := pathUUID(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, partID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PartDetail returns one part.
func PartDetail(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := pathUUID(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.Get(r.Context(), tenantID, partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, part)
	}
}

// PartList returns one page of the inventory catalog, newest first.
func PartList(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), tenantID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PartLowStock returns parts at or below their minimum stock level.
func PartLowStock(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parts, err := svc.ListLowStock(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, parts)
	}
}

// PartAdjustStock applies a relative stock delta. Negative deltas that
// would take stock below zero are rejected.
func PartAdjustStock(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := pathUUID(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adjustStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.AdjustStock(r.Context(), tenantID, partID, body.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, part)
	}
}
