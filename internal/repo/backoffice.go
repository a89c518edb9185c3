package repo

import (
	"context"
	"time"

	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Refund, error)
	List(ctx context.Context, status domain.RefundStatus, page, pageSize int) ([]domain.Refund, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.RefundStatus, resolvedBy primitive.ObjectID) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Expense, error)
	List(ctx context.Context, branchID primitive.ObjectID, from, to time.Time, page, pageSize int) ([]domain.Expense, int64, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	List(ctx context.Context, branchID primitive.ObjectID) ([]domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
}

type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	// GetOpenByStaff returns the staff member's shift without a clock-out, or ErrNotFound.
	GetOpenByStaff(ctx context.Context, staffID primitive.ObjectID) (*domain.Shift, error)
	ClockOut(ctx context.Context, id primitive.ObjectID, at time.Time) error
	List(ctx context.Context, branchID primitive.ObjectID, from, to time.Time) ([]domain.Shift, error)
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Campaign, error)
	List(ctx context.Context, page, pageSize int) ([]domain.Campaign, int64, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type StatusAuditRepository interface {
	Create(ctx context.Context, audit *domain.StatusAudit) error
	GetByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.StatusAudit, error)
}
