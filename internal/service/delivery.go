package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/queue"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrAlreadyAssigned  = errors.New("delivery already has a rider")
	ErrRiderUnavailable = errors.New("rider is not available")
)

type DeliveryService struct {
	deliveryRepo repo.DeliveryRepository
	riderRepo    repo.RiderRepository
	broker       queue.Broker
	events       EventPublisher
	logger       *zap.SugaredLogger
}

func NewDeliveryService(
	deliveryRepo repo.DeliveryRepository,
	riderRepo repo.RiderRepository,
	broker queue.Broker,
	events EventPublisher,
	logger *zap.SugaredLogger,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		riderRepo:    riderRepo,
		broker:       broker,
		events:       events,
		logger:       logger,
	}
}

func (s *DeliveryService) GetDelivery(ctx context.Context, id primitive.ObjectID) (*domain.Delivery, error) {
	return s.deliveryRepo.GetByID(ctx, id)
}

func (s *DeliveryService) GetDeliveryByOrder(ctx context.Context, orderID primitive.ObjectID) (*domain.Delivery, error) {
	return s.deliveryRepo.GetByOrderID(ctx, orderID)
}

func (s *DeliveryService) ListDeliveries(ctx context.Context, filter domain.DeliveryFilter, page, pageSize int) ([]domain.Delivery, int64, error) {
	return s.deliveryRepo.List(ctx, filter, page, pageSize)
}

// AssignRider puts an available rider on an unassigned delivery and marks
// the rider busy.
func (s *DeliveryService) AssignRider(ctx context.Context, deliveryID, riderID primitive.ObjectID, actorID string) (*domain.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if delivery.Status != domain.DeliveryUnassigned {
		return nil, fmt.Errorf("%w: status %s", ErrAlreadyAssigned, delivery.Status)
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return nil, err
	}

	if !rider.Assignable() {
		return nil, fmt.Errorf("%w: %s", ErrRiderUnavailable, rider.Name)
	}

	now := time.Now()
	oldStatus := delivery.Status
	delivery.RiderID = rider.ID
	delivery.Status = domain.DeliveryAssigned
	delivery.StampStatus(domain.DeliveryAssigned, now)

	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		return nil, fmt.Errorf("failed to assign rider: %w", err)
	}

	if err := s.riderRepo.SetAvailability(ctx, rider.ID, false); err != nil {
		s.logger.Errorw("failed to mark rider busy", "rider_id", rider.ID.Hex(), "error", err)
	}

	s.afterTransition(ctx, delivery, oldStatus, actorID, "rider assigned")

	s.logger.Infow("rider assigned",
		"delivery_id", delivery.ID.Hex(), "rider_id", rider.ID.Hex(), "order_number", delivery.OrderNumber)

	return delivery, nil
}

// UpdateStatus advances a delivery along its stage chain, stamping the
// per-stage timestamp. Delivered and cancelled free the rider; delivered
// also bumps the rider's delivery count.
func (s *DeliveryService) UpdateStatus(ctx context.Context, id primitive.ObjectID, next domain.DeliveryStatus, actorID, reason string) (*domain.Delivery, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !delivery.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, delivery.Status, next)
	}

	now := time.Now()
	oldStatus := delivery.Status
	delivery.Status = next
	delivery.StampStatus(next, now)

	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		return nil, fmt.Errorf("failed to update delivery status: %w", err)
	}

	if !delivery.RiderID.IsZero() {
		switch next {
		case domain.DeliveryDelivered:
			if err := s.riderRepo.IncrementDeliveries(ctx, delivery.RiderID); err != nil {
				s.logger.Errorw("failed to increment rider deliveries", "rider_id", delivery.RiderID.Hex(), "error", err)
			}
			fallthrough
		case domain.DeliveryCancelled:
			if err := s.riderRepo.SetAvailability(ctx, delivery.RiderID, true); err != nil {
				s.logger.Errorw("failed to free rider", "rider_id", delivery.RiderID.Hex(), "error", err)
			}
		}
	}

	s.afterTransition(ctx, delivery, oldStatus, actorID, reason)

	s.logger.Infow("delivery status updated",
		"delivery_id", delivery.ID.Hex(), "old_status", oldStatus, "new_status", next)

	return delivery, nil
}

func (s *DeliveryService) afterTransition(ctx context.Context, delivery *domain.Delivery, oldStatus domain.DeliveryStatus, actorID, reason string) {
	event := domain.StatusEvent{
		EventType:  domain.EventDeliveryStatusUpdated,
		EntityType: domain.EntityDelivery,
		EntityID:   delivery.ID.Hex(),
		OldStatus:  string(oldStatus),
		NewStatus:  string(delivery.Status),
		Reason:     reason,
		ActorID:    actorID,
		Timestamp:  time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal delivery event", "delivery_id", delivery.ID.Hex(), "error", err)
	} else if err := s.broker.Publish(ctx, queue.QueueStatusEvents, payload); err != nil {
		s.logger.Errorw("failed to publish delivery event", "delivery_id", delivery.ID.Hex(), "error", err)
	}

	s.events.Publish(domain.EventDeliveryStatusUpdated, delivery)
}
