package main

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// loginHandler godoc
//
//	@Summary		Staff login
//	@Description	Exchange credentials for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		401		{object}	map[string]string
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	staff, err := app.staffRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		app.unauthorizedResponse(w, r, errors.New("invalid credentials"))
		return
	}

	if !staff.IsActive {
		app.unauthorizedResponse(w, r, errors.New("account is disabled"))
		return
	}

	if err := bcrypt.CompareHashAndPassword(staff.PasswordHash, []byte(req.Password)); err != nil {
		app.unauthorizedResponse(w, r, errors.New("invalid credentials"))
		return
	}

	branchID := ""
	if !staff.BranchID.IsZero() {
		branchID = staff.BranchID.Hex()
	}

	riderID := ""
	if !staff.RiderID.IsZero() {
		riderID = staff.RiderID.Hex()
	}

	token, err := app.authenticator.GenerateToken(staff.ID.Hex(), staff.Role, branchID, riderID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := LoginResponse{Token: token, Role: string(staff.Role)}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
