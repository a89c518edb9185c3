package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/geo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateBranchRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Address string  `json:"address" validate:"required,max=300"`
	Phone   string  `json:"phone" validate:"required,pkphone"`
	Lat     float64 `json:"lat" validate:"required,latitude"`
	Lon     float64 `json:"lon" validate:"required,longitude"`
}

// createBranchHandler godoc
//
//	@Summary		Create branch
//	@Tags			branches
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBranchRequest	true	"Branch"
//	@Success		201		{object}	domain.Branch
//	@Security		ApiKeyAuth
//	@Router			/branches [post]
func (app *application) createBranchHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateBranchRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	branch := &domain.Branch{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    normalizePhone(req.Phone),
		Location: domain.Location{Lat: req.Lat, Lon: req.Lon},
		IsActive: true,
	}

	if err := app.branchRepo.Create(r.Context(), branch); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, branch); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listBranchesHandler godoc
//
//	@Summary		List branches
//	@Tags			branches
//	@Produce		json
//	@Param			active	query		bool	false	"Only active branches"
//	@Success		200		{object}	map[string]interface{}
//	@Router			/branches [get]
func (app *application) listBranchesHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if v := r.URL.Query().Get("active"); v != "" {
		activeOnly, _ = strconv.ParseBool(v)
	}

	branches, err := app.branchRepo.List(r.Context(), activeOnly)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, branches); err != nil {
		app.internalServerError(w, r, err)
	}
}

type NearestBranchResponse struct {
	Branch     domain.Branch `json:"branch"`
	DistanceKm float64       `json:"distance_km"`
}

// nearestBranchHandler godoc
//
//	@Summary		Nearest branch
//	@Description	The active branch closest to the given coordinates
//	@Tags			branches
//	@Produce		json
//	@Param			lat	query		number	true	"Latitude"
//	@Param			lon	query		number	true	"Longitude"
//	@Success		200	{object}	NearestBranchResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/branches/nearest [get]
func (app *application) nearestBranchHandler(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		app.badRequestResponse(w, r, errors.New("lat and lon are required"))
		return
	}

	branches, err := app.branchRepo.List(r.Context(), true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if len(branches) == 0 {
		app.notFoundError(w, r, errors.New("no active branches"))
		return
	}

	nearest := branches[0]
	best := geo.Distance(lat, lon, nearest.Location.Lat, nearest.Location.Lon)
	for _, branch := range branches[1:] {
		if d := geo.Distance(lat, lon, branch.Location.Lat, branch.Location.Lon); d < best {
			nearest = branch
			best = d
		}
	}

	response := NearestBranchResponse{Branch: nearest, DistanceKm: best}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateBranchRequest struct {
	Name     *string  `json:"name" validate:"omitempty,max=100"`
	Address  *string  `json:"address" validate:"omitempty,max=300"`
	Phone    *string  `json:"phone" validate:"omitempty,pkphone"`
	Lat      *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon      *float64 `json:"lon" validate:"omitempty,longitude"`
	IsActive *bool    `json:"is_active"`
}

// updateBranchHandler godoc
//
//	@Summary		Update branch
//	@Tags			branches
//	@Accept			json
//	@Produce		json
//	@Param			branch_id	path		string				true	"Branch ID"
//	@Param			request		body		UpdateBranchRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Branch
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/branches/{branch_id} [patch]
func (app *application) updateBranchHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "branch_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateBranchRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	branch, err := app.branchRepo.GetByID(r.Context(), branchID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = normalizePhone(*req.Phone)
	}
	if req.Lat != nil {
		branch.Location.Lat = *req.Lat
	}
	if req.Lon != nil {
		branch.Location.Lon = *req.Lon
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := app.branchRepo.Update(r.Context(), branch); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, branch); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteBranchHandler godoc
//
//	@Summary		Delete branch
//	@Tags			branches
//	@Param			branch_id	path	string	true	"Branch ID"
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/branches/{branch_id} [delete]
func (app *application) deleteBranchHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "branch_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.branchRepo.Delete(r.Context(), branchID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
