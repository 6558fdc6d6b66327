package infrastructure

import (
	"context"
	"fmt"
	"time"

	"usuarios-service/internal/config"
	"usuarios-service/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NewMongoClient connects to the document store and pings it within the
// configured connect timeout.
func NewMongoClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*mongo.Client, error) {
	timeout := time.Duration(cfg.Mongo.ConnectTimeoutSeconds) * time.Second
	slow := time.Duration(cfg.Logger.SlowQuerySeconds * float64(time.Second))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMonitor(logger.NewMongoMonitor(l, slow))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	l.Info("MongoDB connected",
		zap.String("database", cfg.Mongo.Database),
		zap.String("collection", cfg.Mongo.Collection),
	)

	return client, nil
}

// CloseMongoClient disconnects the client, waiting at most timeout
func CloseMongoClient(client *mongo.Client, timeout time.Duration) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	return nil
}
