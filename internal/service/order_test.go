package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newOrderService(orders *mockOrderRepo, deliveries *mockDeliveryRepo, menu *mockMenuItemRepo, broker *mockBroker, events *eventRecorder) *OrderService {
	return NewOrderService(orders, deliveries, menu, &mockRiderRepo{}, broker, events, zap.NewNop().Sugar())
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	burgerID := primitive.NewObjectID()
	colaID := primitive.NewObjectID()

	burger := &domain.MenuItem{
		ID:          burgerID,
		Name:        "Zinger Burger",
		Price:       650,
		IsAvailable: true,
		VariantGroups: []domain.VariantGroup{
			{
				Name: "Extras",
				Min:  0,
				Max:  2,
				Options: []domain.VariantOption{
					{Name: "Extra Cheese", Price: 80},
					{Name: "Extra Patty", Price: 200},
				},
			},
		},
	}
	cola := &domain.MenuItem{ID: colaID, Name: "Cola", Price: 120, IsAvailable: true}

	orders := new(mockOrderRepo)
	deliveries := new(mockDeliveryRepo)
	menu := new(mockMenuItemRepo)
	broker := new(mockBroker)
	events := &eventRecorder{}

	menu.On("GetByID", mock.Anything, burgerID).Return(burger, nil)
	menu.On("GetByID", mock.Anything, colaID).Return(cola, nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

	svc := newOrderService(orders, deliveries, menu, broker, events)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		BranchID: primitive.NewObjectID(),
		Items: []OrderItemInput{
			{MenuItemID: burgerID, Quantity: 2, Options: []string{"Extra Cheese"}},
			{MenuItemID: colaID, Quantity: 3},
		},
		OrderType:     domain.OrderTypeDineIn,
		OrderSource:   domain.OrderSourcePOS,
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)

	// (650+80)*2 + 120*3
	assert.Equal(t, 1820.0, order.Subtotal)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Contains(t, order.OrderNumber, "ORD-")
	assert.Equal(t, []string{domain.EventOrderCreated}, events.events)

	// dine-in must not spawn a delivery
	deliveries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrderDeliveryTypeCreatesDelivery(t *testing.T) {
	itemID := primitive.NewObjectID()
	item := &domain.MenuItem{ID: itemID, Name: "Biryani", Price: 450, IsAvailable: true}

	orders := new(mockOrderRepo)
	deliveries := new(mockDeliveryRepo)
	menu := new(mockMenuItemRepo)
	broker := new(mockBroker)

	menu.On("GetByID", mock.Anything, itemID).Return(item, nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

	var created *domain.Delivery
	deliveries.On("Create", mock.Anything, mock.AnythingOfType("*domain.Delivery")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Delivery)
		}).
		Return(nil)

	svc := newOrderService(orders, deliveries, menu, broker, &eventRecorder{})

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		BranchID:      primitive.NewObjectID(),
		Items:         []OrderItemInput{{MenuItemID: itemID, Quantity: 1}},
		OrderType:     domain.OrderTypeDelivery,
		OrderSource:   domain.OrderSourceOnline,
		PaymentMethod: domain.PaymentCash,
		Customer:      domain.Customer{Name: "Ali", Phone: "03001234567", Address: "12-B Gulberg"},
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, domain.DeliveryUnassigned, created.Status)
	assert.Equal(t, order.OrderNumber, created.OrderNumber)
	assert.Equal(t, "12-B Gulberg", created.Address)
}

func TestCreateOrderRejections(t *testing.T) {
	soldOutID := primitive.NewObjectID()
	pizzaID := primitive.NewObjectID()
	missingID := primitive.NewObjectID()

	menu := new(mockMenuItemRepo)
	menu.On("GetByID", mock.Anything, soldOutID).Return(&domain.MenuItem{
		ID: soldOutID, Name: "Seekh Kebab", Price: 300, IsAvailable: false,
	}, nil)
	menu.On("GetByID", mock.Anything, pizzaID).Return(&domain.MenuItem{
		ID: pizzaID, Name: "Pizza", Price: 900, IsAvailable: true,
		VariantGroups: []domain.VariantGroup{
			{
				Name: "Size", Min: 1, Max: 1,
				Options: []domain.VariantOption{{Name: "Small"}, {Name: "Large", Price: 300}},
			},
		},
	}, nil)
	menu.On("GetByID", mock.Anything, missingID).Return(nil, repo.ErrNotFound)

	svc := newOrderService(new(mockOrderRepo), new(mockDeliveryRepo), menu, new(mockBroker), &eventRecorder{})

	tests := []struct {
		name    string
		items   []OrderItemInput
		wantErr error
	}{
		{"empty cart", nil, ErrEmptyOrder},
		{"unknown item", []OrderItemInput{{MenuItemID: missingID, Quantity: 1}}, ErrUnknownMenuItem},
		{"unavailable item", []OrderItemInput{{MenuItemID: soldOutID, Quantity: 1}}, ErrItemUnavailable},
		{"required variant missing", []OrderItemInput{{MenuItemID: pizzaID, Quantity: 1}}, ErrVariantCount},
		{"too many selections", []OrderItemInput{{MenuItemID: pizzaID, Quantity: 1, Options: []string{"Small", "Large"}}}, ErrVariantCount},
		{"unknown variant", []OrderItemInput{{MenuItemID: pizzaID, Quantity: 1, Options: []string{"Small", "Stuffed Crust"}}}, ErrUnknownVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
				BranchID:      primitive.NewObjectID(),
				Items:         tt.items,
				OrderType:     domain.OrderTypeTakeaway,
				OrderSource:   domain.OrderSourcePOS,
				PaymentMethod: domain.PaymentCash,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	orderID := primitive.NewObjectID()

	t.Run("valid transition", func(t *testing.T) {
		orders := new(mockOrderRepo)
		broker := new(mockBroker)
		events := &eventRecorder{}

		orders.On("GetByID", mock.Anything, orderID).Return(&domain.Order{
			ID: orderID, OrderNumber: "ORD-20260901-AB12CD", Status: domain.OrderPending,
		}, nil)
		orders.On("UpdateStatus", mock.Anything, orderID, domain.OrderPreparing).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := newOrderService(orders, new(mockDeliveryRepo), new(mockMenuItemRepo), broker, events)

		order, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderPreparing, "staff-1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPreparing, order.Status)
		assert.Equal(t, []string{domain.EventOrderStatusUpdated}, events.events)
	})

	t.Run("skipping a stage is rejected", func(t *testing.T) {
		orders := new(mockOrderRepo)
		orders.On("GetByID", mock.Anything, orderID).Return(&domain.Order{
			ID: orderID, Status: domain.OrderPending,
		}, nil)

		svc := newOrderService(orders, new(mockDeliveryRepo), new(mockMenuItemRepo), new(mockBroker), &eventRecorder{})

		_, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderReady, "staff-1", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelling a prepared order is rejected", func(t *testing.T) {
		orders := new(mockOrderRepo)
		orders.On("GetByID", mock.Anything, orderID).Return(&domain.Order{
			ID: orderID, Status: domain.OrderReady,
		}, nil)

		svc := newOrderService(orders, new(mockDeliveryRepo), new(mockMenuItemRepo), new(mockBroker), &eventRecorder{})

		_, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderCancelled, "staff-1", "customer changed mind")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCancelOrderCascadesToDelivery(t *testing.T) {
	orderID := primitive.NewObjectID()
	deliveryID := primitive.NewObjectID()
	riderID := primitive.NewObjectID()

	t.Run("assigned delivery is cancelled and the rider freed", func(t *testing.T) {
		orders := new(mockOrderRepo)
		deliveries := new(mockDeliveryRepo)
		riders := new(mockRiderRepo)
		broker := new(mockBroker)
		events := &eventRecorder{}

		orders.On("GetByID", mock.Anything, orderID).Return(&domain.Order{
			ID: orderID, OrderNumber: "ORD-20260901-AB12CD",
			OrderType: domain.OrderTypeDelivery, Status: domain.OrderPreparing,
		}, nil)
		orders.On("UpdateStatus", mock.Anything, orderID, domain.OrderCancelled).Return(nil)
		deliveries.On("GetByOrderID", mock.Anything, orderID).Return(&domain.Delivery{
			ID: deliveryID, OrderID: orderID, RiderID: riderID,
			Status: domain.DeliveryAssigned,
		}, nil)
		deliveries.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Delivery) bool {
			return d.ID == deliveryID && d.Status == domain.DeliveryCancelled
		})).Return(nil)
		riders.On("SetAvailability", mock.Anything, riderID, true).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := NewOrderService(orders, deliveries, new(mockMenuItemRepo), riders, broker, events, zap.NewNop().Sugar())

		order, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderCancelled, "staff-1", "customer no-show")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCancelled, order.Status)
		deliveries.AssertExpectations(t)
		riders.AssertExpectations(t)
		assert.Equal(t, []string{domain.EventDeliveryStatusUpdated, domain.EventOrderStatusUpdated}, events.events)
	})

	t.Run("unassigned delivery is cancelled without touching riders", func(t *testing.T) {
		orders := new(mockOrderRepo)
		deliveries := new(mockDeliveryRepo)
		riders := new(mockRiderRepo)
		broker := new(mockBroker)

		orders.On("GetByID", mock.Anything, orderID).Return(&domain.Order{
			ID: orderID, OrderType: domain.OrderTypeDelivery, Status: domain.OrderPending,
		}, nil)
		orders.On("UpdateStatus", mock.Anything, orderID, domain.OrderCancelled).Return(nil)
		deliveries.On("GetByOrderID", mock.Anything, orderID).Return(&domain.Delivery{
			ID: deliveryID, OrderID: orderID, Status: domain.DeliveryUnassigned,
		}, nil)
		deliveries.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Delivery) bool {
			return d.Status == domain.DeliveryCancelled
		})).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := NewOrderService(orders, deliveries, new(mockMenuItemRepo), riders, broker, &eventRecorder{}, zap.NewNop().Sugar())

		_, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderCancelled, "staff-1", "")
		require.NoError(t, err)
		riders.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dine-in cancellation leaves deliveries alone", func(t *testing.T) {
		orders := new(mockOrderRepo)
		deliveries := new(mockDeliveryRepo)
		broker := new(mockBroker)

		orders.On("GetByID", mock.Anything, orderID).Return(&domain.Order{
			ID: orderID, OrderType: domain.OrderTypeDineIn, Status: domain.OrderPending,
		}, nil)
		orders.On("UpdateStatus", mock.Anything, orderID, domain.OrderCancelled).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := newOrderService(orders, deliveries, new(mockMenuItemRepo), broker, &eventRecorder{})

		_, err := svc.UpdateStatus(context.Background(), orderID, domain.OrderCancelled, "staff-1", "")
		require.NoError(t, err)
		deliveries.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
	})
}

func TestKitchenOrdersOldestFirst(t *testing.T) {
	branchID := primitive.NewObjectID()

	newest := domain.Order{OrderNumber: "ORD-3", Status: domain.OrderPending}
	middle := domain.Order{OrderNumber: "ORD-2", Status: domain.OrderPreparing}
	oldest := domain.Order{OrderNumber: "ORD-1", Status: domain.OrderReady}

	orders := new(mockOrderRepo)
	orders.On("List", mock.Anything, mock.MatchedBy(func(f domain.OrderFilter) bool {
		return f.BranchID == branchID && len(f.Statuses) == 3
	}), 1, 200).Return([]domain.Order{newest, middle, oldest}, int64(3), nil)

	svc := newOrderService(orders, new(mockDeliveryRepo), new(mockMenuItemRepo), new(mockBroker), &eventRecorder{})

	got, err := svc.KitchenOrders(context.Background(), branchID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "ORD-1", got[0].OrderNumber)
	assert.Equal(t, "ORD-3", got[2].OrderNumber)
}
