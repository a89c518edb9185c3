package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatusForwardChain(t *testing.T) {
	chain := []DeliveryStatus{
		DeliveryUnassigned,
		DeliveryAssigned,
		DeliveryAccepted,
		DeliveryPickedUp,
		DeliveryInTransit,
		DeliveryDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransitionTo(chain[i+1]), "%s -> %s", chain[i], chain[i+1])
	}

	// no skipping stages
	assert.False(t, DeliveryAssigned.CanTransitionTo(DeliveryPickedUp))
	assert.False(t, DeliveryAccepted.CanTransitionTo(DeliveryInTransit))
	assert.False(t, DeliveryPickedUp.CanTransitionTo(DeliveryDelivered))

	// no going backwards
	assert.False(t, DeliveryInTransit.CanTransitionTo(DeliveryPickedUp))
	assert.False(t, DeliveryAccepted.CanTransitionTo(DeliveryAssigned))
}

func TestDeliveryCancellableFromNonTerminal(t *testing.T) {
	for _, s := range []DeliveryStatus{
		DeliveryUnassigned, DeliveryAssigned, DeliveryAccepted, DeliveryPickedUp, DeliveryInTransit,
	} {
		assert.True(t, s.CanTransitionTo(DeliveryCancelled), "%s should be cancellable", s)
	}

	assert.False(t, DeliveryDelivered.CanTransitionTo(DeliveryCancelled))
	assert.False(t, DeliveryCancelled.CanTransitionTo(DeliveryCancelled))
}

func TestDeliveryNextAction(t *testing.T) {
	cases := map[DeliveryStatus]DeliveryStatus{
		DeliveryAssigned:  DeliveryAccepted,
		DeliveryAccepted:  DeliveryPickedUp,
		DeliveryPickedUp:  DeliveryInTransit,
		DeliveryInTransit: DeliveryDelivered,
	}
	for from, want := range cases {
		assert.Equal(t, want, from.NextAction())
	}

	// terminal and unassigned states expose no forward action
	assert.Empty(t, DeliveryDelivered.NextAction())
	assert.Empty(t, DeliveryCancelled.NextAction())
	assert.Empty(t, DeliveryUnassigned.NextAction())
}

func TestDeliveryStampStatus(t *testing.T) {
	d := &Delivery{}
	now := time.Now()

	d.StampStatus(DeliveryAccepted, now)
	if assert.NotNil(t, d.AcceptedAt) {
		assert.Equal(t, now, *d.AcceptedAt)
	}
	assert.Nil(t, d.PickedUpAt)

	d.StampStatus(DeliveryDelivered, now)
	assert.NotNil(t, d.DeliveredAt)
}
