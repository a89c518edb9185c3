package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"github.com/zaikahq/zaika/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listDeliveriesHandler godoc
//
//	@Summary		List deliveries
//	@Description	List deliveries with optional filters and pagination
//	@Tags			deliveries
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Param			rider_id	query		string	false	"Rider ID"
//	@Param			status		query		string	false	"Delivery status"
//	@Success		200			{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/deliveries [get]
func (app *application) listDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.DeliveryFilter{}

	if v := r.URL.Query().Get("branch_id"); v != "" {
		branchID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		filter.BranchID = branchID
	}
	if v := r.URL.Query().Get("rider_id"); v != "" {
		riderID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		filter.RiderID = riderID
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.DeliveryStatus(v)
		if !status.Valid() {
			app.badRequestResponse(w, r, errors.New("unknown status"))
			return
		}
		filter.Status = status
	}

	page, pageSize := parsePagination(r)

	deliveries, total, err := app.deliveryService.ListDeliveries(r.Context(), filter, page, pageSize)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, paginate(deliveries, page, pageSize, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getDeliveryHandler godoc
//
//	@Summary		Get delivery
//	@Tags			deliveries
//	@Produce		json
//	@Param			delivery_id	path		string	true	"Delivery ID"
//	@Success		200			{object}	domain.Delivery
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/deliveries/{delivery_id} [get]
func (app *application) getDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "delivery_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	delivery, err := app.deliveryService.GetDelivery(r.Context(), deliveryID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, delivery); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AssignRiderRequest struct {
	RiderID string `json:"rider_id" validate:"required"`
}

// assignRiderHandler godoc
//
//	@Summary		Assign rider
//	@Description	Put an available rider on an unassigned delivery
//	@Tags			deliveries
//	@Accept			json
//	@Produce		json
//	@Param			delivery_id	path		string				true	"Delivery ID"
//	@Param			request		body		AssignRiderRequest	true	"Rider assignment"
//	@Success		200			{object}	domain.Delivery
//	@Failure		409			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/deliveries/{delivery_id}/assign [post]
func (app *application) assignRiderHandler(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "delivery_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req AssignRiderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	riderID, err := primitive.ObjectIDFromHex(req.RiderID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	actorID := ""
	if claims := claimsFromContext(r.Context()); claims != nil {
		actorID = claims.Subject
	}

	delivery, err := app.deliveryService.AssignRider(r.Context(), deliveryID, riderID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyAssigned), errors.Is(err, service.ErrRiderUnavailable):
			app.conflictResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, delivery); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted picked_up in_transit delivered cancelled"`
	Reason string `json:"reason" validate:"max=300"`
}

// updateDeliveryStatusHandler godoc
//
//	@Summary		Update delivery status
//	@Description	Advance a delivery along its stage chain
//	@Tags			deliveries
//	@Accept			json
//	@Produce		json
//	@Param			delivery_id	path		string						true	"Delivery ID"
//	@Param			request		body		UpdateDeliveryStatusRequest	true	"Status update request"
//	@Success		200			{object}	domain.Delivery
//	@Failure		409			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/deliveries/{delivery_id}/status [patch]
func (app *application) updateDeliveryStatusHandler(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "delivery_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	actorID := ""
	if claims := claimsFromContext(r.Context()); claims != nil {
		actorID = claims.Subject
	}

	delivery, err := app.deliveryService.UpdateStatus(r.Context(), deliveryID, domain.DeliveryStatus(req.Status), actorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTransition):
			app.conflictResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, delivery); err != nil {
		app.internalServerError(w, r, err)
	}
}
