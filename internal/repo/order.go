package repo

import (
	"context"
	"time"

	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error
	// CashSalesTotal sums cash-paid, non-cancelled order totals for a branch
	// since the given time. Used for POS session reconciliation.
	CashSalesTotal(ctx context.Context, branchID primitive.ObjectID, since time.Time) (float64, error)
	// AudiencePhones returns distinct customer phone numbers matching the
	// campaign audience rule.
	AudiencePhones(ctx context.Context, audience domain.Audience, now time.Time) ([]string, error)
	// SalesByDay aggregates non-cancelled orders into per-day revenue rows.
	SalesByDay(ctx context.Context, branchID primitive.ObjectID, from, to time.Time) ([]domain.SalesRow, error)
	CountByField(ctx context.Context, branchID primitive.ObjectID, from, to time.Time, field string) (map[string]domain.SalesBucket, error)
}
