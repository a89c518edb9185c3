package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type CreateStaffRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,pkphone"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin manager cashier kitchen rider"`
	BranchID string `json:"branch_id"`
	RiderID  string `json:"rider_id" validate:"required_if=Role rider"`
}

// createStaffHandler godoc
//
//	@Summary		Create staff member
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateStaffRequest	true	"Staff member"
//	@Success		201		{object}	domain.Staff
//	@Failure		409		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/staff [post]
func (app *application) createStaffHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	staff := &domain.Staff{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        normalizePhone(req.Phone),
		PasswordHash: hash,
		Role:         domain.StaffRole(req.Role),
		IsActive:     true,
	}

	if req.BranchID != "" {
		branchID, err := primitive.ObjectIDFromHex(req.BranchID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		staff.BranchID = branchID
	}

	// rider accounts log in as staff but act on a rider record
	if req.RiderID != "" {
		riderID, err := primitive.ObjectIDFromHex(req.RiderID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		if _, err := app.riderRepo.GetByID(r.Context(), riderID); err != nil {
			app.notFoundError(w, r, err)
			return
		}
		staff.RiderID = riderID
	}

	if err := app.staffRepo.Create(r.Context(), staff); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			app.conflictResponse(w, r, errors.New("email already registered"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listStaffHandler godoc
//
//	@Summary		List staff
//	@Tags			staff
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Success		200			{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/staff [get]
func (app *application) listStaffHandler(w http.ResponseWriter, r *http.Request) {
	var branchID primitive.ObjectID
	if v := r.URL.Query().Get("branch_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		branchID = id
	}

	staff, err := app.staffRepo.List(r.Context(), branchID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateStaffRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,pkphone"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin manager cashier kitchen rider"`
	BranchID *string `json:"branch_id"`
	IsActive *bool   `json:"is_active"`
}

// updateStaffHandler godoc
//
//	@Summary		Update staff member
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			staff_id	path		string				true	"Staff ID"
//	@Param			request		body		UpdateStaffRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Staff
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/staff/{staff_id} [patch]
func (app *application) updateStaffHandler(w http.ResponseWriter, r *http.Request) {
	staffID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "staff_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateStaffRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	staff, err := app.staffRepo.GetByID(r.Context(), staffID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = normalizePhone(*req.Phone)
	}
	if req.Role != nil {
		staff.Role = domain.StaffRole(*req.Role)
	}
	if req.BranchID != nil {
		branchID, err := primitive.ObjectIDFromHex(*req.BranchID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		staff.BranchID = branchID
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := app.staffRepo.Update(r.Context(), staff); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clockInHandler godoc
//
//	@Summary		Clock in
//	@Description	Start the caller's shift
//	@Tags			staff
//	@Produce		json
//	@Success		201	{object}	domain.Shift
//	@Failure		409	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/shifts/clock-in [post]
func (app *application) clockInHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		app.unauthorizedResponse(w, r, errors.New("missing claims"))
		return
	}

	staffID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if _, err := app.shiftRepo.GetOpenByStaff(r.Context(), staffID); err == nil {
		app.conflictResponse(w, r, errors.New("already clocked in"))
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		app.internalServerError(w, r, err)
		return
	}

	var branchID primitive.ObjectID
	if claims.BranchID != "" {
		branchID, _ = primitive.ObjectIDFromHex(claims.BranchID)
	}

	shift := &domain.Shift{
		StaffID:   staffID,
		BranchID:  branchID,
		ClockedIn: time.Now(),
	}

	if err := app.shiftRepo.Create(r.Context(), shift); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, shift); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clockOutHandler godoc
//
//	@Summary		Clock out
//	@Description	End the caller's open shift
//	@Tags			staff
//	@Produce		json
//	@Success		200	{object}	domain.Shift
//	@Failure		404	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/shifts/clock-out [post]
func (app *application) clockOutHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		app.unauthorizedResponse(w, r, errors.New("missing claims"))
		return
	}

	staffID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	shift, err := app.shiftRepo.GetOpenByStaff(r.Context(), staffID)
	if err != nil {
		app.notFoundError(w, r, errors.New("no open shift"))
		return
	}

	now := time.Now()
	if err := app.shiftRepo.ClockOut(r.Context(), shift.ID, now); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	shift.ClockedOut = &now

	if err := app.jsonRespone(w, http.StatusOK, shift); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listShiftsHandler godoc
//
//	@Summary		List shifts
//	@Tags			staff
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Param			from		query		string	false	"From date (YYYY-MM-DD)"
//	@Param			to			query		string	false	"To date (YYYY-MM-DD)"
//	@Success		200			{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/shifts [get]
func (app *application) listShiftsHandler(w http.ResponseWriter, r *http.Request) {
	var branchID primitive.ObjectID
	if v := r.URL.Query().Get("branch_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		branchID = id
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	shifts, err := app.shiftRepo.List(r.Context(), branchID, from, to)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, shifts); err != nil {
		app.internalServerError(w, r, err)
	}
}
