package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoConfig holds MongoDB connection configuration
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration

	// Retry configuration for the initial connect
	MaxRetries    int
	RetryInterval time.Duration
}

// DefaultMongoConfig returns default configuration
func DefaultMongoConfig() *MongoConfig {
	return &MongoConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "referral_tracker",
		ConnectTimeout: 5 * time.Second,
		MaxRetries:     3,
		RetryInterval:  2 * time.Second,
	}
}

// MongoDB wraps a mongo client with additional functionality
type MongoDB struct {
	client *mongo.Client
	config *MongoConfig
}

// NewMongo connects to MongoDB with fixed-interval retry. A connection
// failure after all attempts is fatal to startup; later failures surface
// per request.
func NewMongo(ctx context.Context, cfg *MongoConfig) (*MongoDB, error) {
	if cfg == nil {
		cfg = DefaultMongoConfig()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	var client *mongo.Client
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(cfg.RetryInterval)
		}

		client, lastErr = mongo.Connect(opts)
		if lastErr != nil {
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		lastErr = client.Ping(pingCtx, readpref.Primary())
		cancel()
		if lastErr != nil {
			_ = client.Disconnect(ctx)
			continue
		}

		return &MongoDB{client: client, config: cfg}, nil
	}

	return nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}

// Database returns the configured database handle
func (db *MongoDB) Database() *mongo.Database {
	return db.client.Database(db.config.Database)
}

// Ping checks if the database connection is alive
func (db *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.client.Ping(ctx, readpref.Primary())
}

// IsConnected returns true if the database connection is alive
func (db *MongoDB) IsConnected(ctx context.Context) bool {
	return db.Ping(ctx) == nil
}

// Close disconnects the client gracefully
func (db *MongoDB) Close(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}
