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

type OrderItemRequest struct {
	MenuItemID   string   `json:"menu_item_id" validate:"required"`
	Quantity     int      `json:"quantity" validate:"required,min=1"`
	Options      []string `json:"options"`
	Instructions string   `json:"instructions" validate:"max=500"`
}

type CreateOrderRequest struct {
	BranchID      string             `json:"branch_id" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	OrderType     string             `json:"order_type" validate:"required,oneof=dine_in takeaway delivery"`
	OrderSource   string             `json:"order_source" validate:"omitempty,oneof=pos online"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cash card wallet"`
	CustomerName  string             `json:"customer_name" validate:"max=100"`
	CustomerPhone string             `json:"customer_phone" validate:"omitempty,pkphone"`
	Address       string             `json:"address" validate:"required_if=OrderType delivery,max=300"`
	TableNumber   int                `json:"table_number" validate:"min=0"`
	SessionID     string             `json:"session_id"`
}

// createOrderHandler godoc
//
//	@Summary		Create order
//	@Description	Creates an order; items are priced from the catalog
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order request"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if req.OrderType == string(domain.OrderTypeDelivery) && req.CustomerPhone == "" {
		app.badRequestResponse(w, r, errors.New("customer_phone is required for delivery orders"))
		return
	}

	branchID, err := primitive.ObjectIDFromHex(req.BranchID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := primitive.ObjectIDFromHex(item.MenuItemID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		items = append(items, service.OrderItemInput{
			MenuItemID:   menuItemID,
			Quantity:     item.Quantity,
			Options:      item.Options,
			Instructions: item.Instructions,
		})
	}

	source := domain.OrderSource(req.OrderSource)
	if source == "" {
		source = domain.OrderSourceOnline
	}

	input := service.CreateOrderInput{
		BranchID:      branchID,
		Items:         items,
		OrderType:     domain.OrderType(req.OrderType),
		OrderSource:   source,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Customer: domain.Customer{
			Name:    req.CustomerName,
			Phone:   normalizePhone(req.CustomerPhone),
			Address: req.Address,
		},
		TableNumber: req.TableNumber,
	}

	if req.SessionID != "" {
		sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		input.SessionID = sessionID
	}

	order, err := app.orderService.CreateOrder(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrUnknownMenuItem),
			errors.Is(err, service.ErrItemUnavailable),
			errors.Is(err, service.ErrUnknownVariant),
			errors.Is(err, service.ErrVariantCount):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get order
//	@Description	Get a single order by ID
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	domain.Order
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	List orders with optional filters and pagination
//	@Tags			orders
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Param			status		query		string	false	"Order status"
//	@Param			order_type	query		string	false	"Order type"
//	@Param			page		query		int		false	"Page"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{}

	if v := r.URL.Query().Get("branch_id"); v != "" {
		branchID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		filter.BranchID = branchID
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.OrderStatus(v)
		if !status.Valid() {
			app.badRequestResponse(w, r, errors.New("unknown status"))
			return
		}
		filter.Statuses = []domain.OrderStatus{status}
	}
	if v := r.URL.Query().Get("order_type"); v != "" {
		filter.OrderType = domain.OrderType(v)
	}
	if v := r.URL.Query().Get("order_source"); v != "" {
		filter.OrderSource = domain.OrderSource(v)
	}
	if r.URL.Query().Get("from") != "" || r.URL.Query().Get("to") != "" {
		from, to, err := parseDateRange(r)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		filter.From = from
		filter.To = to
	}

	page, pageSize := parsePagination(r)

	orders, total, err := app.orderService.ListOrders(r.Context(), filter, page, pageSize)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, paginate(orders, page, pageSize, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready delivered cancelled"`
	Reason string `json:"reason" validate:"max=300"`
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Description	Advance an order through its lifecycle
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string						true	"Order ID"
//	@Param			request		body		UpdateOrderStatusRequest	true	"Status update request"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/orders/{order_id}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.applyOrderTransition(w, r, orderID, domain.OrderStatus(req.Status), req.Reason)
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,max=300"`
}

// cancelOrderHandler godoc
//
//	@Summary		Cancel order
//	@Description	Cancel an order that has not been prepared yet
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string				true	"Order ID"
//	@Param			request		body		CancelOrderRequest	true	"Cancellation reason"
//	@Success		200			{object}	domain.Order
//	@Failure		409			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/orders/{order_id}/cancel [post]
func (app *application) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req CancelOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.applyOrderTransition(w, r, orderID, domain.OrderCancelled, req.Reason)
}

func (app *application) applyOrderTransition(w http.ResponseWriter, r *http.Request, orderID primitive.ObjectID, next domain.OrderStatus, reason string) {
	actorID := ""
	if claims := claimsFromContext(r.Context()); claims != nil {
		actorID = claims.Subject
	}

	order, err := app.orderService.UpdateStatus(r.Context(), orderID, next, actorID, reason)
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

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// kitchenOrdersHandler godoc
//
//	@Summary		Kitchen queue
//	@Description	In-progress orders for a branch, oldest first
//	@Tags			kitchen
//	@Produce		json
//	@Param			branch_id	query		string	true	"Branch ID"
//	@Success		200			{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/kitchen/orders [get]
func (app *application) kitchenOrdersHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("branch_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	orders, err := app.orderService.KitchenOrders(r.Context(), branchID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// orderTimelineHandler godoc
//
//	@Summary		Order timeline
//	@Description	Status transition history for an order and its delivery
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	map[string]interface{}
//	@Router			/orders/{order_id}/timeline [get]
func (app *application) orderTimelineHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	timeline, err := app.auditService.Timeline(r.Context(), domain.EntityOrder, orderID.Hex(), 50)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// a delivery order's trail includes its delivery stages
	if delivery, err := app.deliveryService.GetDeliveryByOrder(r.Context(), orderID); err == nil {
		deliveryTrail, err := app.auditService.Timeline(r.Context(), domain.EntityDelivery, delivery.ID.Hex(), 50)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		timeline = append(timeline, deliveryTrail...)
	}

	if err := app.jsonRespone(w, http.StatusOK, timeline); err != nil {
		app.internalServerError(w, r, err)
	}
}
