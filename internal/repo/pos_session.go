package repo

import (
	"context"

	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PosSessionRepository interface {
	Create(ctx context.Context, session *domain.PosSession) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PosSession, error)
	// GetOpenByBranch returns the branch's open session, or ErrNotFound.
	GetOpenByBranch(ctx context.Context, branchID primitive.ObjectID) (*domain.PosSession, error)
	Close(ctx context.Context, session *domain.PosSession) error
	List(ctx context.Context, branchID primitive.ObjectID, page, pageSize int) ([]domain.PosSession, int64, error)
}
