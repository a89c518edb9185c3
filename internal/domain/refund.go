package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

type Refund struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID primitive.ObjectID `bson:"order_id" json:"order_id"`
	Amount  float64            `bson:"amount" json:"amount"`
	Reason  string             `bson:"reason" json:"reason"`
	// PaymentMethod is how the order was originally paid; RefundMethod is how
	// the money goes back to the customer.
	PaymentMethod PaymentMethod      `bson:"payment_method" json:"payment_method"`
	RefundMethod  PaymentMethod      `bson:"refund_method" json:"refund_method"`
	Status        RefundStatus       `bson:"status" json:"status"`
	RequestedBy   primitive.ObjectID `bson:"requested_by" json:"requested_by"`
	ResolvedBy    primitive.ObjectID `bson:"resolved_by,omitempty" json:"resolved_by,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
