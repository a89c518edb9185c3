package repo

import (
	"context"

	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.Delivery) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID primitive.ObjectID) (*domain.Delivery, error)
	List(ctx context.Context, filter domain.DeliveryFilter, page, pageSize int) ([]domain.Delivery, int64, error)
	Update(ctx context.Context, delivery *domain.Delivery) error
}

type RiderRepository interface {
	Create(ctx context.Context, rider *domain.Rider) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Rider, error)
	List(ctx context.Context, branchID primitive.ObjectID, availableOnly bool) ([]domain.Rider, error)
	Update(ctx context.Context, rider *domain.Rider) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	IncrementDeliveries(ctx context.Context, id primitive.ObjectID) error
}
