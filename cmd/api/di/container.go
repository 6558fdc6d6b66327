package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usuarios-service/cmd/api/infrastructure"
	"usuarios-service/internal/adapter/db/mongodb"
	"usuarios-service/internal/adapter/db/postgres"
	ginhandler "usuarios-service/internal/adapter/gin/handler"
	"usuarios-service/internal/config"
	"usuarios-service/internal/usecase/user"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const disconnectTimeout = 5 * time.Second

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Mongo      *mongo.Client // set when STORE_DRIVER=mongo
	DB         *gorm.DB      // set when STORE_DRIVER=postgres
	Repo       user.Repository
	UserUC     user.UserUsecase
	GinHandler *ginhandler.UserHandler
}

// NewContainer validates cfg, connects the configured store and wires the
// use case and HTTP handler on top of it.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := infrastructure.NewMongoClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		c.Mongo = client
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		c.Repo = mongodb.NewUserRepoMongo(coll, l)
	case config.DriverPostgres:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		c.Repo = postgres.NewUserRepoPG(db, l)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	l.Info("persistence gateway ready", zap.String("driver", cfg.Store.Driver))

	c.UserUC = user.New(c.Repo, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.Mongo != nil {
		if err := infrastructure.CloseMongoClient(c.Mongo, disconnectTimeout); err != nil {
			errs = append(errs, err)
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
