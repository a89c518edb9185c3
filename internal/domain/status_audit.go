package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusAudit is one entry in the status timeline of an order or delivery.
type StatusAudit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EntityType string             `bson:"entity_type" json:"entity_type"`
	EntityID   string             `bson:"entity_id" json:"entity_id"`
	EventType  string             `bson:"event_type" json:"event_type"`
	OldStatus  string             `bson:"old_status" json:"old_status"`
	NewStatus  string             `bson:"new_status" json:"new_status"`
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	ActorID    string             `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
