package main

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	ContactName string `json:"contact_name" validate:"max=100"`
	Phone       string `json:"phone" validate:"required,pkphone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"max=300"`
}

// createSupplierHandler godoc
//
//	@Summary		Create supplier
//	@Tags			backoffice
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSupplierRequest	true	"Supplier"
//	@Success		201		{object}	domain.Supplier
//	@Security		ApiKeyAuth
//	@Router			/suppliers [post]
func (app *application) createSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	supplier := &domain.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       normalizePhone(req.Phone),
		Email:       req.Email,
		Address:     req.Address,
	}

	if err := app.supplierRepo.Create(r.Context(), supplier); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, supplier); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listSuppliersHandler godoc
//
//	@Summary		List suppliers
//	@Tags			backoffice
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/suppliers [get]
func (app *application) listSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := app.supplierRepo.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, suppliers); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=150"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,pkphone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
}

// updateSupplierHandler godoc
//
//	@Summary		Update supplier
//	@Tags			backoffice
//	@Accept			json
//	@Produce		json
//	@Param			supplier_id	path		string					true	"Supplier ID"
//	@Param			request		body		UpdateSupplierRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Supplier
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/suppliers/{supplier_id} [patch]
func (app *application) updateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	supplierID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "supplier_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateSupplierRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	supplier, err := app.supplierRepo.GetByID(r.Context(), supplierID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		supplier.Phone = normalizePhone(*req.Phone)
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}

	if err := app.supplierRepo.Update(r.Context(), supplier); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, supplier); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteSupplierHandler godoc
//
//	@Summary		Delete supplier
//	@Tags			backoffice
//	@Param			supplier_id	path	string	true	"Supplier ID"
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/suppliers/{supplier_id} [delete]
func (app *application) deleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	supplierID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "supplier_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.supplierRepo.Delete(r.Context(), supplierID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
