package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderReady, false},
		{OrderPending, OrderDelivered, false},
		{OrderPreparing, OrderReady, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderPreparing, OrderDelivered, false},
		{OrderReady, OrderDelivered, true},
		{OrderReady, OrderCancelled, false},
		{OrderReady, OrderPending, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderPreparing.Terminal())
	assert.False(t, OrderReady.Terminal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestKitchenStatusesSubset(t *testing.T) {
	statuses := KitchenStatuses()

	assert.Equal(t, []OrderStatus{OrderPending, OrderPreparing, OrderReady}, statuses)
	assert.NotContains(t, statuses, OrderDelivered)
	assert.NotContains(t, statuses, OrderCancelled)
}
