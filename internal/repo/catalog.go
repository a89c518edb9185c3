package repo

import (
	"context"

	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	List(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Branch, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Branch, error)
	Update(ctx context.Context, branch *domain.Branch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
