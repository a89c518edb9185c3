package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Expense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BranchID    primitive.ObjectID `bson:"branch_id" json:"branch_id"`
	Category    string             `bson:"category" json:"category"`
	Amount      float64            `bson:"amount" json:"amount"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	SupplierID  primitive.ObjectID `bson:"supplier_id,omitempty" json:"supplier_id,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Supplier struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	ContactName string             `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	Phone       string             `bson:"phone" json:"phone"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type StaffRole string

const (
	RoleAdmin   StaffRole = "admin"
	RoleManager StaffRole = "manager"
	RoleCashier StaffRole = "cashier"
	RoleKitchen StaffRole = "kitchen"
	RoleRider   StaffRole = "rider"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier, RoleKitchen, RoleRider:
		return true
	}
	return false
}

type Staff struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	PasswordHash []byte             `bson:"password_hash" json:"-"`
	Role         StaffRole          `bson:"role" json:"role"`
	BranchID     primitive.ObjectID `bson:"branch_id,omitempty" json:"branch_id,omitempty"`
	RiderID      primitive.ObjectID `bson:"rider_id,omitempty" json:"rider_id,omitempty"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type Shift struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID    primitive.ObjectID `bson:"staff_id" json:"staff_id"`
	BranchID   primitive.ObjectID `bson:"branch_id" json:"branch_id"`
	ClockedIn  time.Time          `bson:"clocked_in" json:"clocked_in"`
	ClockedOut *time.Time         `bson:"clocked_out,omitempty" json:"clocked_out,omitempty"`
}
