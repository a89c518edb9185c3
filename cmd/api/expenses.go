package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateExpenseRequest struct {
	BranchID    string  `json:"branch_id" validate:"required"`
	Category    string  `json:"category" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
	SupplierID  string  `json:"supplier_id"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// createExpenseHandler godoc
//
//	@Summary		Record expense
//	@Tags			backoffice
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateExpenseRequest	true	"Expense"
//	@Success		201		{object}	domain.Expense
//	@Security		ApiKeyAuth
//	@Router			/expenses [post]
func (app *application) createExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
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

	expense := &domain.Expense{
		BranchID:    branchID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        time.Now(),
	}

	if req.Date != "" {
		date, _ := time.Parse("2006-01-02", req.Date)
		expense.Date = date
	}

	if req.SupplierID != "" {
		supplierID, err := primitive.ObjectIDFromHex(req.SupplierID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		if _, err := app.supplierRepo.GetByID(r.Context(), supplierID); err != nil {
			app.notFoundError(w, r, err)
			return
		}
		expense.SupplierID = supplierID
	}

	if err := app.expenseRepo.Create(r.Context(), expense); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, expense); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listExpensesHandler godoc
//
//	@Summary		List expenses
//	@Tags			backoffice
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Param			from		query		string	false	"From date (YYYY-MM-DD)"
//	@Param			to			query		string	false	"To date (YYYY-MM-DD)"
//	@Success		200			{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/expenses [get]
func (app *application) listExpensesHandler(w http.ResponseWriter, r *http.Request) {
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

	page, pageSize := parsePagination(r)

	expenses, total, err := app.expenseRepo.List(r.Context(), branchID, from, to, page, pageSize)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, paginate(expenses, page, pageSize, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateExpenseRequest struct {
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
}

// updateExpenseHandler godoc
//
//	@Summary		Update expense
//	@Tags			backoffice
//	@Accept			json
//	@Produce		json
//	@Param			expense_id	path		string					true	"Expense ID"
//	@Param			request		body		UpdateExpenseRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Expense
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/expenses/{expense_id} [patch]
func (app *application) updateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	expenseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "expense_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateExpenseRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	expense, err := app.expenseRepo.GetByID(r.Context(), expenseID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}

	if err := app.expenseRepo.Update(r.Context(), expense); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, expense); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteExpenseHandler godoc
//
//	@Summary		Delete expense
//	@Tags			backoffice
//	@Param			expense_id	path	string	true	"Expense ID"
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/expenses/{expense_id} [delete]
func (app *application) deleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	expenseID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "expense_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.expenseRepo.Delete(r.Context(), expenseID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
