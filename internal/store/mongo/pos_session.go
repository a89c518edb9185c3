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

type PosSessionRepository struct {
	collection *mongo.Collection
}

func NewPosSessionRepository(db *mongo.Database) *PosSessionRepository {
	return &PosSessionRepository{
		collection: db.Collection("pos_sessions"),
	}
}

func (r *PosSessionRepository) Create(ctx context.Context, session *domain.PosSession) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		// the partial unique index rejects a second open session per branch
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicate
		}
		return fmt.Errorf("failed to create pos session: %w", err)
	}

	return nil
}

func (r *PosSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PosSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session domain.PosSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pos session: %w", err)
	}

	return &session, nil
}

func (r *PosSessionRepository) GetOpenByBranch(ctx context.Context, branchID primitive.ObjectID) (*domain.PosSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session domain.PosSession
	filter := bson.M{"branch_id": branchID, "status": domain.SessionOpen}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open pos session: %w", err)
	}

	return &session, nil
}

func (r *PosSessionRepository) Close(ctx context.Context, session *domain.PosSession) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": session.ID, "status": domain.SessionOpen}
	update := bson.M{
		"$set": bson.M{
			"status":        domain.SessionClosed,
			"closing_cash":  session.ClosingCash,
			"expected_cash": session.ExpectedCash,
			"variance":      session.Variance,
			"notes":         session.Notes,
			"closed_at":     session.ClosedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to close pos session: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *PosSessionRepository) List(ctx context.Context, branchID primitive.ObjectID, page, pageSize int) ([]domain.PosSession, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if !branchID.IsZero() {
		query["branch_id"] = branchID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pos sessions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "opened_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pos sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []domain.PosSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode pos sessions: %w", err)
	}

	return sessions, total, nil
}
