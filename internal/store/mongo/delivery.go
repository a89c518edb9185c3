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

type DeliveryRepository struct {
	collection *mongo.Collection
}

func NewDeliveryRepository(db *mongo.Database) *DeliveryRepository {
	return &DeliveryRepository{
		collection: db.Collection("deliveries"),
	}
}

func (r *DeliveryRepository) Create(ctx context.Context, delivery *domain.Delivery) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if delivery.ID.IsZero() {
		delivery.ID = primitive.NewObjectID()
	}
	delivery.CreatedAt = time.Now()
	delivery.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, delivery)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicate
		}
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	return nil
}

func (r *DeliveryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var delivery domain.Delivery
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&delivery)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}

	return &delivery, nil
}

func (r *DeliveryRepository) GetByOrderID(ctx context.Context, orderID primitive.ObjectID) (*domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var delivery domain.Delivery
	err := r.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&delivery)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery by order: %w", err)
	}

	return &delivery, nil
}

func (r *DeliveryRepository) List(ctx context.Context, filter domain.DeliveryFilter, page, pageSize int) ([]domain.Delivery, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if !filter.BranchID.IsZero() {
		query["branch_id"] = filter.BranchID
	}
	if !filter.RiderID.IsZero() {
		query["rider_id"] = filter.RiderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["created_at"] = dateRange
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer cursor.Close(ctx)

	var deliveries []domain.Delivery
	if err := cursor.All(ctx, &deliveries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode deliveries: %w", err)
	}

	return deliveries, total, nil
}

func (r *DeliveryRepository) Update(ctx context.Context, delivery *domain.Delivery) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	delivery.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": delivery.ID}, bson.M{"$set": delivery})
	if err != nil {
		return fmt.Errorf("failed to update delivery: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
