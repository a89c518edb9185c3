package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zaikahq/zaika/internal/auth"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubDeliveryRepo struct {
	mock.Mock
}

func (m *stubDeliveryRepo) Create(ctx context.Context, delivery *domain.Delivery) error {
	return m.Called(ctx, delivery).Error(0)
}

func (m *stubDeliveryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Delivery, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*domain.Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubDeliveryRepo) GetByOrderID(ctx context.Context, orderID primitive.ObjectID) (*domain.Delivery, error) {
	args := m.Called(ctx, orderID)
	if d := args.Get(0); d != nil {
		return d.(*domain.Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubDeliveryRepo) List(ctx context.Context, filter domain.DeliveryFilter, page, pageSize int) ([]domain.Delivery, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Delivery), args.Get(1).(int64), args.Error(2)
}

func (m *stubDeliveryRepo) Update(ctx context.Context, delivery *domain.Delivery) error {
	return m.Called(ctx, delivery).Error(0)
}

type stubRiderRepo struct {
	mock.Mock
}

func (m *stubRiderRepo) Create(ctx context.Context, rider *domain.Rider) error {
	return m.Called(ctx, rider).Error(0)
}

func (m *stubRiderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Rider, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Rider), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubRiderRepo) List(ctx context.Context, branchID primitive.ObjectID, availableOnly bool) ([]domain.Rider, error) {
	args := m.Called(ctx, branchID, availableOnly)
	return args.Get(0).([]domain.Rider), args.Error(1)
}

func (m *stubRiderRepo) Update(ctx context.Context, rider *domain.Rider) error {
	return m.Called(ctx, rider).Error(0)
}

func (m *stubRiderRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}

func (m *stubRiderRepo) IncrementDeliveries(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func withClaims(r *http.Request, claims *auth.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
}

func TestMyDeliveriesFiltersByRiderIdentity(t *testing.T) {
	staffID := primitive.NewObjectID()
	riderID := primitive.NewObjectID()
	deliveries := new(stubDeliveryRepo)

	// the filter must carry the linked rider ID, never the staff subject
	deliveries.On("List", mock.Anything, mock.MatchedBy(func(f domain.DeliveryFilter) bool {
		return f.RiderID == riderID
	}), 1, 20).Return([]domain.Delivery{
		{ID: primitive.NewObjectID(), RiderID: riderID, Status: domain.DeliveryAssigned},
	}, int64(1), nil)

	app := &application{
		logger:          zap.NewNop().Sugar(),
		deliveryService: service.NewDeliveryService(deliveries, new(stubRiderRepo), nil, nil, zap.NewNop().Sugar()),
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/riders/my-deliveries", nil)
	req = withClaims(req, &auth.Claims{
		Role:    domain.RoleRider,
		RiderID: riderID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: staffID.Hex(),
		},
	})
	rec := httptest.NewRecorder()

	app.myDeliveriesHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	deliveries.AssertExpectations(t)

	var body struct {
		Data paginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.Total)
}

func TestMyDeliveriesRequiresRiderLink(t *testing.T) {
	app := &application{logger: zap.NewNop().Sugar()}

	req := httptest.NewRequest(http.MethodGet, "/v1/riders/my-deliveries", nil)
	req = withClaims(req, &auth.Claims{
		Role: domain.RoleRider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: primitive.NewObjectID().Hex(),
		},
	})
	rec := httptest.NewRecorder()

	app.myDeliveriesHandler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateRiderPresenceScopedToSelf(t *testing.T) {
	ownID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	riders := new(stubRiderRepo)

	app := &application{
		logger:    zap.NewNop().Sugar(),
		riderRepo: riders,
	}

	body := strings.NewReader(`{"presence":"offline"}`)
	req := httptest.NewRequest(http.MethodPatch, "/v1/riders/"+otherID.Hex()+"/presence", body)
	req = withClaims(req, &auth.Claims{Role: domain.RoleRider, RiderID: ownID.Hex()})

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("rider_id", otherID.Hex())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	app.updateRiderPresenceHandler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	riders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
