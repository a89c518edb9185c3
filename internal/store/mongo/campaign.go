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

type CampaignRepository struct {
	collection *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection("campaigns"),
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, campaign)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var campaign domain.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *CampaignRepository) List(ctx context.Context, page, pageSize int) ([]domain.Campaign, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []domain.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, 0, fmt.Errorf("failed to decode campaigns: %w", err)
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	campaign.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": campaign.ID}, bson.M{"$set": campaign})
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// only drafts may be deleted
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "status": domain.CampaignDraft})
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
