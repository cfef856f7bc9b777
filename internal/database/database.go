package database

import (
	"context"
	"fmt"
	"time"

	"team-builder-backend/internal/database/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Options struct {
	ConnectTimeout  time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	Monitor         *event.CommandMonitor
	EnsureIndexes   bool
}

// Initialize connects to MongoDB, verifies the connection and prepares the indexes
// used by the user listing and login lookups.
func Initialize(uri, name string, opts *Options) (*mongo.Database, error) {
	// Defaults
	if opts == nil {
		opts = &Options{EnsureIndexes: true}
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.MaxPoolSize == 0 {
		opts.MaxPoolSize = 20
	}
	if opts.MaxConnIdleTime == 0 {
		opts.MaxConnIdleTime = 10 * time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMinPoolSize(opts.MinPoolSize).
		SetMaxConnIdleTime(opts.MaxConnIdleTime)
	if opts.Monitor != nil {
		clientOpts.SetMonitor(opts.Monitor)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(name)

	if opts.EnsureIndexes {
		if err := EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	return db, nil
}

// EnsureIndexes creates the secondary indexes on the users collection. Creating an
// index that already exists is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(models.User{}.CollectionName())
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "domain", Value: 1}, {Key: "gender", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// Close disconnects the client behind db
func Close(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}

// Ping checks that the primary is reachable
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, readpref.Primary())
}
