package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderRepo) CashSalesTotal(ctx context.Context, branchID primitive.ObjectID, since time.Time) (float64, error) {
	args := m.Called(ctx, branchID, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockOrderRepo) AudiencePhones(ctx context.Context, audience domain.Audience, now time.Time) ([]string, error) {
	args := m.Called(ctx, audience, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockOrderRepo) SalesByDay(ctx context.Context, branchID primitive.ObjectID, from, to time.Time) ([]domain.SalesRow, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesRow), args.Error(1)
}

func (m *mockOrderRepo) CountByField(ctx context.Context, branchID primitive.ObjectID, from, to time.Time, field string) (map[string]domain.SalesBucket, error) {
	args := m.Called(ctx, branchID, from, to, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.SalesBucket), args.Error(1)
}

type mockDeliveryRepo struct {
	mock.Mock
}

func (m *mockDeliveryRepo) Create(ctx context.Context, delivery *domain.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *mockDeliveryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *mockDeliveryRepo) GetByOrderID(ctx context.Context, orderID primitive.ObjectID) (*domain.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *mockDeliveryRepo) List(ctx context.Context, filter domain.DeliveryFilter, page, pageSize int) ([]domain.Delivery, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Delivery), args.Get(1).(int64), args.Error(2)
}

func (m *mockDeliveryRepo) Update(ctx context.Context, delivery *domain.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

type mockRiderRepo struct {
	mock.Mock
}

func (m *mockRiderRepo) Create(ctx context.Context, rider *domain.Rider) error {
	args := m.Called(ctx, rider)
	return args.Error(0)
}

func (m *mockRiderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rider), args.Error(1)
}

func (m *mockRiderRepo) List(ctx context.Context, branchID primitive.ObjectID, availableOnly bool) ([]domain.Rider, error) {
	args := m.Called(ctx, branchID, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rider), args.Error(1)
}

func (m *mockRiderRepo) Update(ctx context.Context, rider *domain.Rider) error {
	args := m.Called(ctx, rider)
	return args.Error(0)
}

func (m *mockRiderRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *mockRiderRepo) IncrementDeliveries(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMenuItemRepo struct {
	mock.Mock
}

func (m *mockMenuItemRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockMenuItemRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *mockMenuItemRepo) List(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *mockMenuItemRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockMenuItemRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *mockMenuItemRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.PosSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PosSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PosSession), args.Error(1)
}

func (m *mockSessionRepo) GetOpenByBranch(ctx context.Context, branchID primitive.ObjectID) (*domain.PosSession, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PosSession), args.Error(1)
}

func (m *mockSessionRepo) Close(ctx context.Context, session *domain.PosSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) List(ctx context.Context, branchID primitive.ObjectID, page, pageSize int) ([]domain.PosSession, int64, error) {
	args := m.Called(ctx, branchID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.PosSession), args.Get(1).(int64), args.Error(2)
}

type mockBroker struct {
	mock.Mock
}

func (m *mockBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	args := m.Called(ctx, queueName, message)
	return args.Error(0)
}

func (m *mockBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	args := m.Called(ctx, queueName, mock.Anything)
	return args.Error(0)
}

func (m *mockBroker) Close() error {
	args := m.Called()
	return args.Error(0)
}

// eventRecorder captures published realtime events.
type eventRecorder struct {
	events []string
}

func (r *eventRecorder) Publish(event string, data interface{}) {
	r.events = append(r.events, event)
}
