package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateRefundRequest struct {
	OrderID      string  `json:"order_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Reason       string  `json:"reason" validate:"required,max=500"`
	RefundMethod string  `json:"refund_method" validate:"omitempty,oneof=cash card wallet"`
}

// createRefundHandler godoc
//
//	@Summary		Request refund
//	@Description	Open a refund request against a placed order
//	@Tags			refunds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRefundRequest	true	"Refund request"
//	@Success		201		{object}	domain.Refund
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/refunds [post]
func (app *application) createRefundHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRefundRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if order.Status == domain.OrderPending {
		app.badRequestResponse(w, r, errors.New("pending orders are cancelled, not refunded"))
		return
	}

	if req.Amount > order.Total {
		app.badRequestResponse(w, r, errors.New("refund amount exceeds the order total"))
		return
	}

	refundMethod := domain.PaymentMethod(req.RefundMethod)
	if refundMethod == "" {
		refundMethod = order.PaymentMethod
	}

	var requestedBy primitive.ObjectID
	if claims := claimsFromContext(r.Context()); claims != nil {
		requestedBy, _ = primitive.ObjectIDFromHex(claims.Subject)
	}

	refund := &domain.Refund{
		OrderID:       orderID,
		Amount:        req.Amount,
		Reason:        req.Reason,
		PaymentMethod: order.PaymentMethod,
		RefundMethod:  refundMethod,
		Status:        domain.RefundPending,
		RequestedBy:   requestedBy,
	}

	if err := app.refundRepo.Create(r.Context(), refund); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, refund); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRefundsHandler godoc
//
//	@Summary		List refunds
//	@Tags			refunds
//	@Produce		json
//	@Param			status	query		string	false	"Refund status"
//	@Success		200		{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/refunds [get]
func (app *application) listRefundsHandler(w http.ResponseWriter, r *http.Request) {
	status := domain.RefundStatus(r.URL.Query().Get("status"))

	page, pageSize := parsePagination(r)

	refunds, total, err := app.refundRepo.List(r.Context(), status, page, pageSize)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, paginate(refunds, page, pageSize, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// approveRefundHandler godoc
//
//	@Summary		Approve refund
//	@Description	Approve a pending refund request
//	@Tags			refunds
//	@Produce		json
//	@Param			refund_id	path		string	true	"Refund ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/refunds/{refund_id}/approve [post]
func (app *application) approveRefundHandler(w http.ResponseWriter, r *http.Request) {
	app.resolveRefund(w, r, domain.RefundApproved)
}

// rejectRefundHandler godoc
//
//	@Summary		Reject refund
//	@Description	Reject a pending refund request
//	@Tags			refunds
//	@Produce		json
//	@Param			refund_id	path		string	true	"Refund ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/refunds/{refund_id}/reject [post]
func (app *application) rejectRefundHandler(w http.ResponseWriter, r *http.Request) {
	app.resolveRefund(w, r, domain.RefundRejected)
}

// resolveRefund applies a terminal status; the repo guards against
// resolving an already-resolved refund.
func (app *application) resolveRefund(w http.ResponseWriter, r *http.Request, status domain.RefundStatus) {
	refundID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "refund_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var resolvedBy primitive.ObjectID
	if claims := claimsFromContext(r.Context()); claims != nil {
		resolvedBy, _ = primitive.ObjectIDFromHex(claims.Subject)
	}

	if err := app.refundRepo.UpdateStatus(r.Context(), refundID, status, resolvedBy); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"id":     refundID.Hex(),
		"status": status,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
