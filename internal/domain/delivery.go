package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DeliveryStatus string

const (
	DeliveryUnassigned DeliveryStatus = "unassigned"
	DeliveryAssigned   DeliveryStatus = "assigned"
	DeliveryAccepted   DeliveryStatus = "accepted"
	DeliveryPickedUp   DeliveryStatus = "picked_up"
	DeliveryInTransit  DeliveryStatus = "in_transit"
	DeliveryDelivered  DeliveryStatus = "delivered"
	DeliveryCancelled  DeliveryStatus = "cancelled"
)

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryUnassigned: {DeliveryAssigned, DeliveryCancelled},
	DeliveryAssigned:   {DeliveryAccepted, DeliveryCancelled},
	DeliveryAccepted:   {DeliveryPickedUp, DeliveryCancelled},
	DeliveryPickedUp:   {DeliveryInTransit, DeliveryCancelled},
	DeliveryInTransit:  {DeliveryDelivered, DeliveryCancelled},
	DeliveryDelivered:  {},
	DeliveryCancelled:  {},
}

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryTransitions[s]
	return ok
}

func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s DeliveryStatus) Terminal() bool {
	return len(deliveryTransitions[s]) == 0
}

// NextAction returns the single forward transition for a status, or "" for
// terminal and unassigned states (assignment carries rider context and is not
// a plain status advance).
func (s DeliveryStatus) NextAction() DeliveryStatus {
	switch s {
	case DeliveryAssigned:
		return DeliveryAccepted
	case DeliveryAccepted:
		return DeliveryPickedUp
	case DeliveryPickedUp:
		return DeliveryInTransit
	case DeliveryInTransit:
		return DeliveryDelivered
	default:
		return ""
	}
}

type Delivery struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     primitive.ObjectID `bson:"order_id" json:"order_id"`
	OrderNumber string             `bson:"order_number" json:"order_number"`
	BranchID    primitive.ObjectID `bson:"branch_id" json:"branch_id"`
	RiderID     primitive.ObjectID `bson:"rider_id,omitempty" json:"rider_id,omitempty"`
	Status      DeliveryStatus     `bson:"status" json:"status"`
	Address     string             `bson:"address" json:"address"`
	Phone       string             `bson:"phone" json:"phone"`
	AssignedAt  *time.Time         `bson:"assigned_at,omitempty" json:"assigned_at,omitempty"`
	AcceptedAt  *time.Time         `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
	PickedUpAt  *time.Time         `bson:"picked_up_at,omitempty" json:"picked_up_at,omitempty"`
	InTransitAt *time.Time         `bson:"in_transit_at,omitempty" json:"in_transit_at,omitempty"`
	DeliveredAt *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CancelledAt *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// StampStatus records the per-stage timestamp for a transition.
func (d *Delivery) StampStatus(status DeliveryStatus, at time.Time) {
	switch status {
	case DeliveryAssigned:
		d.AssignedAt = &at
	case DeliveryAccepted:
		d.AcceptedAt = &at
	case DeliveryPickedUp:
		d.PickedUpAt = &at
	case DeliveryInTransit:
		d.InTransitAt = &at
	case DeliveryDelivered:
		d.DeliveredAt = &at
	case DeliveryCancelled:
		d.CancelledAt = &at
	}
}

type DeliveryFilter struct {
	BranchID primitive.ObjectID
	RiderID  primitive.ObjectID
	Status   DeliveryStatus
	From     time.Time
	To       time.Time
}
