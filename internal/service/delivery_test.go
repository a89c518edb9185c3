package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newDeliveryService(deliveries *mockDeliveryRepo, riders *mockRiderRepo, broker *mockBroker, events *eventRecorder) *DeliveryService {
	return NewDeliveryService(deliveries, riders, broker, events, zap.NewNop().Sugar())
}

func TestAssignRider(t *testing.T) {
	deliveryID := primitive.NewObjectID()
	riderID := primitive.NewObjectID()

	t.Run("assigns an available online rider", func(t *testing.T) {
		deliveries := new(mockDeliveryRepo)
		riders := new(mockRiderRepo)
		broker := new(mockBroker)
		events := &eventRecorder{}

		deliveries.On("GetByID", mock.Anything, deliveryID).Return(&domain.Delivery{
			ID: deliveryID, OrderNumber: "ORD-20260901-AB12CD", Status: domain.DeliveryUnassigned,
		}, nil)
		riders.On("GetByID", mock.Anything, riderID).Return(&domain.Rider{
			ID: riderID, Name: "Bilal", IsAvailable: true, Presence: domain.RiderOnline,
		}, nil)
		deliveries.On("Update", mock.Anything, mock.AnythingOfType("*domain.Delivery")).Return(nil)
		riders.On("SetAvailability", mock.Anything, riderID, false).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := newDeliveryService(deliveries, riders, broker, events)

		delivery, err := svc.AssignRider(context.Background(), deliveryID, riderID, "manager-1")
		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryAssigned, delivery.Status)
		assert.Equal(t, riderID, delivery.RiderID)
		require.NotNil(t, delivery.AssignedAt)
		riders.AssertCalled(t, "SetAvailability", mock.Anything, riderID, false)
		assert.Equal(t, []string{domain.EventDeliveryStatusUpdated}, events.events)
	})

	t.Run("rejects a delivery that already has a rider", func(t *testing.T) {
		deliveries := new(mockDeliveryRepo)
		deliveries.On("GetByID", mock.Anything, deliveryID).Return(&domain.Delivery{
			ID: deliveryID, Status: domain.DeliveryAccepted, RiderID: primitive.NewObjectID(),
		}, nil)

		svc := newDeliveryService(deliveries, new(mockRiderRepo), new(mockBroker), &eventRecorder{})

		_, err := svc.AssignRider(context.Background(), deliveryID, riderID, "manager-1")
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
	})

	t.Run("rejects offline and busy riders", func(t *testing.T) {
		for _, rider := range []*domain.Rider{
			{ID: riderID, Name: "Offline", IsAvailable: true, Presence: domain.RiderOffline},
			{ID: riderID, Name: "Busy", IsAvailable: false, Presence: domain.RiderOnline},
		} {
			deliveries := new(mockDeliveryRepo)
			riders := new(mockRiderRepo)
			deliveries.On("GetByID", mock.Anything, deliveryID).Return(&domain.Delivery{
				ID: deliveryID, Status: domain.DeliveryUnassigned,
			}, nil)
			riders.On("GetByID", mock.Anything, riderID).Return(rider, nil)

			svc := newDeliveryService(deliveries, riders, new(mockBroker), &eventRecorder{})

			_, err := svc.AssignRider(context.Background(), deliveryID, riderID, "manager-1")
			assert.ErrorIs(t, err, ErrRiderUnavailable, rider.Name)
			deliveries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		}
	})
}

func TestUpdateDeliveryStatus(t *testing.T) {
	deliveryID := primitive.NewObjectID()
	riderID := primitive.NewObjectID()

	t.Run("delivered frees the rider and bumps their count", func(t *testing.T) {
		deliveries := new(mockDeliveryRepo)
		riders := new(mockRiderRepo)
		broker := new(mockBroker)

		deliveries.On("GetByID", mock.Anything, deliveryID).Return(&domain.Delivery{
			ID: deliveryID, RiderID: riderID, Status: domain.DeliveryInTransit,
		}, nil)
		deliveries.On("Update", mock.Anything, mock.Anything).Return(nil)
		riders.On("IncrementDeliveries", mock.Anything, riderID).Return(nil)
		riders.On("SetAvailability", mock.Anything, riderID, true).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := newDeliveryService(deliveries, riders, broker, &eventRecorder{})

		delivery, err := svc.UpdateStatus(context.Background(), deliveryID, domain.DeliveryDelivered, "rider-1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryDelivered, delivery.Status)
		require.NotNil(t, delivery.DeliveredAt)
		riders.AssertExpectations(t)
	})

	t.Run("cancellation frees the rider without bumping their count", func(t *testing.T) {
		deliveries := new(mockDeliveryRepo)
		riders := new(mockRiderRepo)
		broker := new(mockBroker)

		deliveries.On("GetByID", mock.Anything, deliveryID).Return(&domain.Delivery{
			ID: deliveryID, RiderID: riderID, Status: domain.DeliveryPickedUp,
		}, nil)
		deliveries.On("Update", mock.Anything, mock.Anything).Return(nil)
		riders.On("SetAvailability", mock.Anything, riderID, true).Return(nil)
		broker.On("Publish", mock.Anything, "status-events", mock.Anything).Return(nil)

		svc := newDeliveryService(deliveries, riders, broker, &eventRecorder{})

		_, err := svc.UpdateStatus(context.Background(), deliveryID, domain.DeliveryCancelled, "manager-1", "customer unreachable")
		require.NoError(t, err)
		riders.AssertNotCalled(t, "IncrementDeliveries", mock.Anything, mock.Anything)
		riders.AssertCalled(t, "SetAvailability", mock.Anything, riderID, true)
	})

	t.Run("stage skipping is rejected", func(t *testing.T) {
		deliveries := new(mockDeliveryRepo)
		deliveries.On("GetByID", mock.Anything, deliveryID).Return(&domain.Delivery{
			ID: deliveryID, RiderID: riderID, Status: domain.DeliveryAssigned,
		}, nil)

		svc := newDeliveryService(deliveries, new(mockRiderRepo), new(mockBroker), &eventRecorder{})

		_, err := svc.UpdateStatus(context.Background(), deliveryID, domain.DeliveryInTransit, "rider-1", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		deliveries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
