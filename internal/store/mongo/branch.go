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

type BranchRepository struct {
	collection *mongo.Collection
}

func NewBranchRepository(db *mongo.Database) *BranchRepository {
	return &BranchRepository{
		collection: db.Collection("branches"),
	}
}

func (r *BranchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if branch.ID.IsZero() {
		branch.ID = primitive.NewObjectID()
	}
	branch.CreatedAt = time.Now()
	branch.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, branch)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}

	return nil
}

func (r *BranchRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var branch domain.Branch
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&branch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	return &branch, nil
}

func (r *BranchRepository) List(ctx context.Context, activeOnly bool) ([]domain.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer cursor.Close(ctx)

	var branches []domain.Branch
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("failed to decode branches: %w", err)
	}

	return branches, nil
}

func (r *BranchRepository) Update(ctx context.Context, branch *domain.Branch) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	branch.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": branch.ID}, bson.M{"$set": branch})
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
