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

type ExpenseRepository struct {
	collection *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{
		collection: db.Collection("expenses"),
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if expense.ID.IsZero() {
		expense.ID = primitive.NewObjectID()
	}
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, expense)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var expense domain.Expense
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&expense)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

func (r *ExpenseRepository) List(ctx context.Context, branchID primitive.ObjectID, from, to time.Time, page, pageSize int) ([]domain.Expense, int64, error) {
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
		query["date"] = dateRange
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var expenses []domain.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, 0, fmt.Errorf("failed to decode expenses: %w", err)
	}

	return expenses, total, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	expense.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": expense.ID}, bson.M{"$set": expense})
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

type SupplierRepository struct {
	collection *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{
		collection: db.Collection("suppliers"),
	}
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if supplier.ID.IsZero() {
		supplier.ID = primitive.NewObjectID()
	}
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, supplier)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var supplier domain.Supplier
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&supplier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return &supplier, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	var suppliers []domain.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	supplier.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": supplier.ID}, bson.M{"$set": supplier})
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
