package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

type PosSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BranchID    primitive.ObjectID `bson:"branch_id" json:"branch_id"`
	CashierID   primitive.ObjectID `bson:"cashier_id" json:"cashier_id"`
	Status      SessionStatus      `bson:"status" json:"status"`
	OpeningCash float64            `bson:"opening_cash" json:"opening_cash"`
	ClosingCash float64            `bson:"closing_cash" json:"closing_cash"`
	// ExpectedCash is opening cash plus cash sales taken during the session,
	// computed at close time. Variance is closing minus expected.
	ExpectedCash float64    `bson:"expected_cash" json:"expected_cash"`
	Variance     float64    `bson:"variance" json:"variance"`
	Notes        string     `bson:"notes,omitempty" json:"notes,omitempty"`
	OpenedAt     time.Time  `bson:"opened_at" json:"opened_at"`
	ClosedAt     *time.Time `bson:"closed_at,omitempty" json:"closed_at,omitempty"`
}
