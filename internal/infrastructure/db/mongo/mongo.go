// Package mongo holds the MongoDB persistence layer for the hostel API:
// the connection helper plus the user and room repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hostelhub/hostel-api/internal/infrastructure/config"
)

const (
	connectTimeout  = 10 * time.Second
	defaultDatabase = "hostel_management"
)

// Connect dials MongoDB and returns the client together with the hostel
// database. The connection is pinged up front so a bad URI aborts startup
// instead of surfacing on the first login.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	name := cfg.Database
	if name == "" {
		name = defaultDatabase
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetAppName("hostel-api")
	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(name), nil
}
