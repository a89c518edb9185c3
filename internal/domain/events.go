package domain

import "time"

const (
	EntityOrder    = "order"
	EntityDelivery = "delivery"
)

const (
	EventOrderCreated          = "order.created"
	EventOrderStatusUpdated    = "order.status_updated"
	EventDeliveryStatusUpdated = "delivery.status_updated"
)

// StatusEvent is published to the status-events queue on every order or
// delivery transition; the audit worker persists it.
type StatusEvent struct {
	EventType  string    `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	Reason     string    `json:"reason,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type CampaignDispatchMessage struct {
	CampaignID string `json:"campaign_id"`
}
