package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

func (s *Storage) StartSession() (mongo.Session, error) {
	return s.client.StartSession()
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	ordersIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "customer.phone", Value: 1}},
		},
	}
	if _, err := s.database.Collection("orders").Indexes().CreateMany(ctx, ordersIndexes); err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}

	deliveriesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "rider_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := s.database.Collection("deliveries").Indexes().CreateMany(ctx, deliveriesIndexes); err != nil {
		return fmt.Errorf("failed to create deliveries indexes: %w", err)
	}

	// at most one open session per branch
	sessionsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "branch_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "open"}),
		},
		{
			Keys: bson.D{{Key: "branch_id", Value: 1}, {Key: "opened_at", Value: -1}},
		},
	}
	if _, err := s.database.Collection("pos_sessions").Indexes().CreateMany(ctx, sessionsIndexes); err != nil {
		return fmt.Errorf("failed to create pos_sessions indexes: %w", err)
	}

	staffIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection("staff").Indexes().CreateMany(ctx, staffIndexes); err != nil {
		return fmt.Errorf("failed to create staff indexes: %w", err)
	}

	menuItemsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_available", Value: 1}},
		},
	}
	if _, err := s.database.Collection("menu_items").Indexes().CreateMany(ctx, menuItemsIndexes); err != nil {
		return fmt.Errorf("failed to create menu_items indexes: %w", err)
	}

	auditIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}
	if _, err := s.database.Collection("status_audit").Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create status_audit indexes: %w", err)
	}

	return nil
}
