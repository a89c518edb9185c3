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

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("orders"),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicate
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := orderFilterQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, total, nil
}

func orderFilterQuery(filter domain.OrderFilter) bson.M {
	query := bson.M{}

	if !filter.BranchID.IsZero() {
		query["branch_id"] = filter.BranchID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.OrderType != "" {
		query["order_type"] = filter.OrderType
	}
	if filter.OrderSource != "" {
		query["order_source"] = filter.OrderSource
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

	return query
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *OrderRepository) CashSalesTotal(ctx context.Context, branchID primitive.ObjectID, since time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"branch_id":      branchID,
			"payment_method": domain.PaymentCash,
			"status":         bson.M{"$ne": domain.OrderCancelled},
			"created_at":     bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate cash sales: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode cash sales: %w", err)
	}

	if len(result) == 0 {
		return 0, nil
	}

	return result[0].Total, nil
}

func (r *OrderRepository) AudiencePhones(ctx context.Context, audience domain.Audience, now time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	match := bson.M{"customer.phone": bson.M{"$ne": ""}}

	switch audience {
	case domain.AudienceRecent:
		match["created_at"] = bson.M{"$gte": now.AddDate(0, 0, -30)}
	case domain.AudienceInactive:
		// customers whose latest order is older than 90 days; resolved below
		// by grouping on last order date
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$customer.phone",
			"last_order": bson.M{"$max": "$created_at"},
		}}},
	}

	if audience == domain.AudienceInactive {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"last_order": bson.M{"$lt": now.AddDate(0, 0, -90)},
		}}})
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate audience: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Phone string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode audience: %w", err)
	}

	phones := make([]string, 0, len(rows))
	for _, row := range rows {
		phones = append(phones, row.Phone)
	}

	return phones, nil
}

func (r *OrderRepository) SalesByDay(ctx context.Context, branchID primitive.ObjectID, from, to time.Time) ([]domain.SalesRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	match := bson.M{
		"status":     bson.M{"$ne": domain.OrderCancelled},
		"created_at": bson.M{"$gte": from, "$lte": to},
	}
	if !branchID.IsZero() {
		match["branch_id"] = branchID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateTrunc": bson.M{"date": "$created_at", "unit": "day"}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$project", Value: bson.M{
			"date":    "$_id",
			"orders":  1,
			"revenue": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by day: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []domain.SalesRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode sales rows: %w", err)
	}

	return rows, nil
}

func (r *OrderRepository) CountByField(ctx context.Context, branchID primitive.ObjectID, from, to time.Time, field string) (map[string]domain.SalesBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	match := bson.M{
		"status":     bson.M{"$ne": domain.OrderCancelled},
		"created_at": bson.M{"$gte": from, "$lte": to},
	}
	if !branchID.IsZero() {
		match["branch_id"] = branchID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$" + field,
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key     string  `bson:"_id"`
		Orders  int     `bson:"orders"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode buckets: %w", err)
	}

	buckets := make(map[string]domain.SalesBucket, len(rows))
	for _, row := range rows {
		buckets[row.Key] = domain.SalesBucket{Orders: row.Orders, Revenue: row.Revenue}
	}

	return buckets, nil
}
