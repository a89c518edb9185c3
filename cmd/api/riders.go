package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateRiderRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,pkphone"`
	BranchID string `json:"branch_id" validate:"required"`
}

// createRiderHandler godoc
//
//	@Summary		Create rider
//	@Tags			riders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRiderRequest	true	"Rider"
//	@Success		201		{object}	domain.Rider
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/riders [post]
func (app *application) createRiderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRiderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	branchID, err := primitive.ObjectIDFromHex(req.BranchID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	rider := &domain.Rider{
		Name:        req.Name,
		Phone:       normalizePhone(req.Phone),
		BranchID:    branchID,
		IsAvailable: true,
		Presence:    domain.RiderOffline,
	}

	if err := app.riderRepo.Create(r.Context(), rider); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, rider); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRidersHandler godoc
//
//	@Summary		List riders
//	@Tags			riders
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Param			available	query		bool	false	"Only assignable riders"
//	@Success		200			{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/riders [get]
func (app *application) listRidersHandler(w http.ResponseWriter, r *http.Request) {
	var branchID primitive.ObjectID
	if v := r.URL.Query().Get("branch_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		branchID = id
	}

	availableOnly, _ := strconv.ParseBool(r.URL.Query().Get("available"))

	riders, err := app.riderRepo.List(r.Context(), branchID, availableOnly)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, riders); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateRiderPresenceRequest struct {
	Presence    string           `json:"presence" validate:"required,oneof=online offline"`
	IsAvailable *bool            `json:"is_available"`
	Location    *domain.Location `json:"location"`
}

// updateRiderPresenceHandler godoc
//
//	@Summary		Update rider presence
//	@Description	Riders toggle online/offline and report their location
//	@Tags			riders
//	@Accept			json
//	@Produce		json
//	@Param			rider_id	path		string						true	"Rider ID"
//	@Param			request		body		UpdateRiderPresenceRequest	true	"Presence update"
//	@Success		200			{object}	domain.Rider
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/riders/{rider_id}/presence [patch]
func (app *application) updateRiderPresenceHandler(w http.ResponseWriter, r *http.Request) {
	riderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "rider_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	// riders may only touch their own record; managers and admins any
	if claims := claimsFromContext(r.Context()); claims != nil &&
		claims.Role == domain.RoleRider && claims.RiderID != riderID.Hex() {
		app.forbiddenResponse(w, r)
		return
	}

	var req UpdateRiderPresenceRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rider, err := app.riderRepo.GetByID(r.Context(), riderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	rider.Presence = domain.RiderPresence(req.Presence)
	if req.IsAvailable != nil {
		rider.IsAvailable = *req.IsAvailable
	}
	if req.Location != nil {
		rider.Location = req.Location
	}

	if err := app.riderRepo.Update(r.Context(), rider); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, rider); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myDeliveriesHandler godoc
//
//	@Summary		My deliveries
//	@Description	Deliveries assigned to the calling rider
//	@Tags			riders
//	@Produce		json
//	@Param			status	query		string	false	"Delivery status"
//	@Success		200		{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/riders/my-deliveries [get]
func (app *application) myDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.RiderID == "" {
		app.forbiddenResponse(w, r)
		return
	}

	riderID, err := primitive.ObjectIDFromHex(claims.RiderID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	filter := domain.DeliveryFilter{RiderID: riderID}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = domain.DeliveryStatus(v)
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

// riderStatsHandler godoc
//
//	@Summary		Rider stats
//	@Tags			riders
//	@Produce		json
//	@Param			rider_id	path		string	true	"Rider ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/riders/{rider_id}/stats [get]
func (app *application) riderStatsHandler(w http.ResponseWriter, r *http.Request) {
	riderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "rider_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	rider, err := app.riderRepo.GetByID(r.Context(), riderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"rider_id":         rider.ID.Hex(),
		"name":             rider.Name,
		"total_deliveries": rider.TotalDeliveries,
		"rating":           rider.Rating,
		"is_available":     rider.IsAvailable,
		"presence":         rider.Presence,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
