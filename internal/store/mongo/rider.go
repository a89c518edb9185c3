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

type RiderRepository struct {
	collection *mongo.Collection
}

func NewRiderRepository(db *mongo.Database) *RiderRepository {
	return &RiderRepository{
		collection: db.Collection("riders"),
	}
}

func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if rider.ID.IsZero() {
		rider.ID = primitive.NewObjectID()
	}
	rider.CreatedAt = time.Now()
	rider.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, rider)
	if err != nil {
		return fmt.Errorf("failed to create rider: %w", err)
	}

	return nil
}

func (r *RiderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rider domain.Rider
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rider: %w", err)
	}

	return &rider, nil
}

func (r *RiderRepository) List(ctx context.Context, branchID primitive.ObjectID, availableOnly bool) ([]domain.Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if !branchID.IsZero() {
		query["branch_id"] = branchID
	}
	if availableOnly {
		query["is_available"] = true
		query["presence"] = domain.RiderOnline
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list riders: %w", err)
	}
	defer cursor.Close(ctx)

	var riders []domain.Rider
	if err := cursor.All(ctx, &riders); err != nil {
		return nil, fmt.Errorf("failed to decode riders: %w", err)
	}

	return riders, nil
}

func (r *RiderRepository) Update(ctx context.Context, rider *domain.Rider) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rider.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": rider.ID}, bson.M{"$set": rider})
	if err != nil {
		return fmt.Errorf("failed to update rider: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *RiderRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"is_available": available,
			"updated_at":   time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set rider availability: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *RiderRepository) IncrementDeliveries(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"total_deliveries": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment rider deliveries: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
