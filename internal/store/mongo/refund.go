package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RefundRepository struct {
	collection *mongo.Collection
}

func NewRefundRepository(db *mongo.Database) *RefundRepository {
	return &RefundRepository{
		collection: db.Collection("refunds"),
	}
}

func (r *RefundRepository) Create(ctx context.Context, refund *domain.Refund) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if refund.ID.IsZero() {
		refund.ID = primitive.NewObjectID()
	}
	refund.CreatedAt = time.Now()
	refund.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, refund)
	if err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}

	return nil
}

func (r *RefundRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Refund, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var refund domain.Refund
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&refund)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get refund: %w", err)
	}

	return &refund, nil
}

func (r *RefundRepository) List(ctx context.Context, status domain.RefundStatus, page, pageSize int) ([]domain.Refund, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count refunds: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list refunds: %w", err)
	}
	defer cursor.Close(ctx)

	var refunds []domain.Refund
	if err := cursor.All(ctx, &refunds); err != nil {
		return nil, 0, fmt.Errorf("failed to decode refunds: %w", err)
	}

	return refunds, total, nil
}

func (r *RefundRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.RefundStatus, resolvedBy primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// only pending refunds may be resolved
	filter := bson.M{"_id": id, "status": domain.RefundPending}
	update := bson.M{
		"$set": bson.M{
			"status":      status,
			"resolved_by": resolvedBy,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update refund status: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
