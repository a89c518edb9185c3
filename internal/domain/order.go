package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions is the single source of truth for the order lifecycle.
// Cancellation is reachable only while the kitchen still owns the order.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// NextStatuses returns the allowed transitions in a stable order.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return orderTransitions[s]
}

// KitchenStatuses is the subset of order statuses shown on the kitchen display.
func KitchenStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderPreparing, OrderReady}
}

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

type OrderSource string

const (
	OrderSourcePOS    OrderSource = "pos"
	OrderSourceOnline OrderSource = "online"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

type OrderVariant struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type OrderItem struct {
	MenuItemID   string         `bson:"menu_item_id" json:"menu_item_id"`
	Name         string         `bson:"name" json:"name"`
	UnitPrice    float64        `bson:"unit_price" json:"unit_price"`
	Quantity     int            `bson:"quantity" json:"quantity"`
	Variants     []OrderVariant `bson:"variants,omitempty" json:"variants,omitempty"`
	Instructions string         `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

type Customer struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber   string             `bson:"order_number" json:"order_number"`
	BranchID      primitive.ObjectID `bson:"branch_id" json:"branch_id"`
	Status        OrderStatus        `bson:"status" json:"status"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Total         float64            `bson:"total" json:"total"`
	OrderType     OrderType          `bson:"order_type" json:"order_type"`
	OrderSource   OrderSource        `bson:"order_source" json:"order_source"`
	PaymentMethod PaymentMethod      `bson:"payment_method" json:"payment_method"`
	Customer      Customer           `bson:"customer" json:"customer"`
	TableNumber   int                `bson:"table_number,omitempty" json:"table_number,omitempty"`
	SessionID     primitive.ObjectID `bson:"session_id,omitempty" json:"session_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderFilter narrows order list queries. Zero values mean "no filter".
type OrderFilter struct {
	BranchID    primitive.ObjectID
	Status      OrderStatus
	Statuses    []OrderStatus
	OrderType   OrderType
	OrderSource OrderSource
	From        time.Time
	To          time.Time
}
