package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/queue"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrUnknownMenuItem   = errors.New("unknown menu item")
	ErrItemUnavailable   = errors.New("menu item is not available")
	ErrUnknownVariant    = errors.New("unknown variant option")
	ErrVariantCount      = errors.New("variant selection out of group bounds")
)

type OrderService struct {
	orderRepo    repo.OrderRepository
	deliveryRepo repo.DeliveryRepository
	menuItemRepo repo.MenuItemRepository
	riderRepo    repo.RiderRepository
	broker       queue.Broker
	events       EventPublisher
	logger       *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	deliveryRepo repo.DeliveryRepository,
	menuItemRepo repo.MenuItemRepository,
	riderRepo repo.RiderRepository,
	broker queue.Broker,
	events EventPublisher,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		menuItemRepo: menuItemRepo,
		riderRepo:    riderRepo,
		broker:       broker,
		events:       events,
		logger:       logger,
	}
}

type OrderItemInput struct {
	MenuItemID   primitive.ObjectID
	Quantity     int
	Options      []string
	Instructions string
}

type CreateOrderInput struct {
	BranchID      primitive.ObjectID
	Items         []OrderItemInput
	OrderType     domain.OrderType
	OrderSource   domain.OrderSource
	PaymentMethod domain.PaymentMethod
	Customer      domain.Customer
	TableNumber   int
	SessionID     primitive.ObjectID
}

// CreateOrder prices the cart from the catalog, persists the order and, for
// delivery orders, its delivery record. Client-supplied prices are never
// trusted.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	subtotal := decimal.Zero

	for _, in := range input.Items {
		item, err := s.priceItem(ctx, in)
		if err != nil {
			return nil, err
		}

		linePrice := decimal.NewFromFloat(item.UnitPrice)
		for _, v := range item.Variants {
			linePrice = linePrice.Add(decimal.NewFromFloat(v.Price))
		}
		subtotal = subtotal.Add(linePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))

		items = append(items, *item)
	}

	order := &domain.Order{
		OrderNumber:   generateOrderNumber(),
		BranchID:      input.BranchID,
		Status:        domain.OrderPending,
		Items:         items,
		Subtotal:      subtotal.InexactFloat64(),
		Total:         subtotal.InexactFloat64(),
		OrderType:     input.OrderType,
		OrderSource:   input.OrderSource,
		PaymentMethod: input.PaymentMethod,
		Customer:      input.Customer,
		TableNumber:   input.TableNumber,
		SessionID:     input.SessionID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if input.OrderType == domain.OrderTypeDelivery {
		delivery := &domain.Delivery{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			BranchID:    order.BranchID,
			Status:      domain.DeliveryUnassigned,
			Address:     order.Customer.Address,
			Phone:       order.Customer.Phone,
		}
		if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
			return nil, fmt.Errorf("failed to create delivery for order: %w", err)
		}
	}

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType:  domain.EventOrderCreated,
		EntityType: domain.EntityOrder,
		EntityID:   order.ID.Hex(),
		NewStatus:  string(order.Status),
		Timestamp:  time.Now(),
	})
	s.events.Publish(domain.EventOrderCreated, order)

	s.logger.Infow("order created",
		"order_number", order.OrderNumber, "branch_id", order.BranchID.Hex(), "total", order.Total)

	return order, nil
}

func (s *OrderService) priceItem(ctx context.Context, in OrderItemInput) (*domain.OrderItem, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	menuItem, err := s.menuItemRepo.GetByID(ctx, in.MenuItemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownMenuItem
		}
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}

	if !menuItem.IsAvailable {
		return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, menuItem.Name)
	}

	variants, err := resolveVariants(menuItem, in.Options)
	if err != nil {
		return nil, err
	}

	return &domain.OrderItem{
		MenuItemID:   menuItem.ID.Hex(),
		Name:         menuItem.Name,
		UnitPrice:    menuItem.Price,
		Quantity:     in.Quantity,
		Variants:     variants,
		Instructions: in.Instructions,
	}, nil
}

// resolveVariants maps selected option names onto catalog variant options,
// enforcing each group's min/max selection bounds.
func resolveVariants(item *domain.MenuItem, options []string) ([]domain.OrderVariant, error) {
	if len(options) == 0 && len(item.VariantGroups) == 0 {
		return nil, nil
	}

	selected := make(map[string]bool, len(options))
	for _, name := range options {
		selected[name] = true
	}

	var variants []domain.OrderVariant
	matched := make(map[string]bool, len(options))

	for _, group := range item.VariantGroups {
		count := 0
		for _, opt := range group.Options {
			if selected[opt.Name] {
				variants = append(variants, domain.OrderVariant{Name: opt.Name, Price: opt.Price})
				matched[opt.Name] = true
				count++
			}
		}
		if count < group.Min || (group.Max > 0 && count > group.Max) {
			return nil, fmt.Errorf("%w: group %s wants %d-%d, got %d",
				ErrVariantCount, group.Name, group.Min, group.Max, count)
		}
	}

	for _, name := range options {
		if !matched[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
		}
	}

	return variants, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error) {
	return s.orderRepo.List(ctx, filter, page, pageSize)
}

// KitchenOrders returns the in-progress subset of a branch's orders,
// oldest first.
func (s *OrderService) KitchenOrders(ctx context.Context, branchID primitive.ObjectID) ([]domain.Order, error) {
	filter := domain.OrderFilter{
		BranchID: branchID,
		Statuses: domain.KitchenStatuses(),
	}

	orders, _, err := s.orderRepo.List(ctx, filter, 1, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitchen orders: %w", err)
	}

	// list is newest-first; the kitchen works oldest-first
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}

	return orders, nil
}

// UpdateStatus advances an order through its lifecycle. Transitions outside
// the lifecycle table are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, next domain.OrderStatus, actorID, reason string) (*domain.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	oldStatus := order.Status
	order.Status = next
	order.UpdatedAt = time.Now()

	if next == domain.OrderCancelled && order.OrderType == domain.OrderTypeDelivery {
		s.cancelLinkedDelivery(ctx, order, actorID, reason)
	}

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType:  domain.EventOrderStatusUpdated,
		EntityType: domain.EntityOrder,
		EntityID:   order.ID.Hex(),
		OldStatus:  string(oldStatus),
		NewStatus:  string(next),
		Reason:     reason,
		ActorID:    actorID,
		Timestamp:  time.Now(),
	})
	s.events.Publish(domain.EventOrderStatusUpdated, order)

	s.logger.Infow("order status updated",
		"order_number", order.OrderNumber, "old_status", oldStatus, "new_status", next)

	return order, nil
}

// cancelLinkedDelivery pulls a cancelled order's delivery out of the
// dispatch pipeline. A rider already on the delivery is freed.
func (s *OrderService) cancelLinkedDelivery(ctx context.Context, order *domain.Order, actorID, reason string) {
	delivery, err := s.deliveryRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logger.Errorw("failed to load delivery for cancelled order",
				"order_number", order.OrderNumber, "error", err)
		}
		return
	}

	if !delivery.Status.CanTransitionTo(domain.DeliveryCancelled) {
		return
	}

	oldStatus := delivery.Status
	delivery.Status = domain.DeliveryCancelled
	delivery.StampStatus(domain.DeliveryCancelled, time.Now())

	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		s.logger.Errorw("failed to cancel delivery for cancelled order",
			"delivery_id", delivery.ID.Hex(), "error", err)
		return
	}

	if !delivery.RiderID.IsZero() {
		if err := s.riderRepo.SetAvailability(ctx, delivery.RiderID, true); err != nil {
			s.logger.Errorw("failed to free rider", "rider_id", delivery.RiderID.Hex(), "error", err)
		}
	}

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType:  domain.EventDeliveryStatusUpdated,
		EntityType: domain.EntityDelivery,
		EntityID:   delivery.ID.Hex(),
		OldStatus:  string(oldStatus),
		NewStatus:  string(domain.DeliveryCancelled),
		Reason:     reason,
		ActorID:    actorID,
		Timestamp:  time.Now(),
	})
	s.events.Publish(domain.EventDeliveryStatusUpdated, delivery)

	s.logger.Infow("delivery cancelled with order",
		"delivery_id", delivery.ID.Hex(), "order_number", order.OrderNumber, "old_status", oldStatus)
}

func (s *OrderService) publishStatusEvent(ctx context.Context, event domain.StatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal status event", "entity_id", event.EntityID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueStatusEvents, payload); err != nil {
		// the audit trail is best-effort; the state change already landed
		s.logger.Errorw("failed to publish status event", "entity_id", event.EntityID, "error", err)
	}
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
