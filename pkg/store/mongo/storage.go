package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type Settings struct {
	URI      string
	Database string
}

// Connect dials the server and verifies it with a ping.
func Connect(ctx context.Context, settings Settings) (*mongo.Database, error) {
	if settings.URI == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	if settings.Database == "" {
		return nil, fmt.Errorf("mongo database name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(settings.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(settings.Database), nil
}
