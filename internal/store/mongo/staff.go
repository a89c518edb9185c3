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

type StaffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{
		collection: db.Collection("staff"),
	}
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if staff.ID.IsZero() {
		staff.ID = primitive.NewObjectID()
	}
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, staff)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicate
		}
		return fmt.Errorf("failed to create staff: %w", err)
	}

	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff domain.Staff
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	return &staff, nil
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff domain.Staff
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff by email: %w", err)
	}

	return &staff, nil
}

func (r *StaffRepository) List(ctx context.Context, branchID primitive.ObjectID) ([]domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if !branchID.IsZero() {
		query["branch_id"] = branchID
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []domain.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}

	return staff, nil
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	staff.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": staff.ID}, bson.M{"$set": staff})
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

type ShiftRepository struct {
	collection *mongo.Collection
}

func NewShiftRepository(db *mongo.Database) *ShiftRepository {
	return &ShiftRepository{
		collection: db.Collection("shifts"),
	}
}

func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if shift.ID.IsZero() {
		shift.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, shift)
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}

	return nil
}

func (r *ShiftRepository) GetOpenByStaff(ctx context.Context, staffID primitive.ObjectID) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shift domain.Shift
	filter := bson.M{"staff_id": staffID, "clocked_out": bson.M{"$exists": false}}
	err := r.collection.FindOne(ctx, filter).Decode(&shift)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}

	return &shift, nil
}

func (r *ShiftRepository) ClockOut(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "clocked_out": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"clocked_out": at}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to clock out shift: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *ShiftRepository) List(ctx context.Context, branchID primitive.ObjectID, from, to time.Time) ([]domain.Shift, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if !branchID.IsZero() {
		query["branch_id"] = branchID
	}

	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = from
	}
	if !to.IsZero() {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		query["clocked_in"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "clocked_in", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []domain.Shift
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}

	return shifts, nil
}
