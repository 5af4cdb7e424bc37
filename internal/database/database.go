package database

import (
	"context"
	"fmt"
	"time"

	"seedcare/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// MongodbDB holds the database handle shared by all repositories
type MongodbDB struct {
	DB *mongo.Database
}

// IndexEnsurer is implemented by repositories that need indexes (unique complaint numbers,
// one sub-record per complaint).
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// NewDatabase creates a new MongoDB database connection with lifecycle management
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*MongodbDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.DBName)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return &MongodbDB{DB: db}, nil
}

// EnsureIndexes runs every ensurer with its own timeout and logs failures.
// Index creation must not keep the API from starting.
func EnsureIndexes(ctx context.Context, log *zap.Logger, ensurers ...IndexEnsurer) {
	for _, e := range ensurers {
		ictx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := e.EnsureIndexes(ictx); err != nil {
			log.Error("Failed to ensure indexes", zap.String("repository", typeName(e)), zap.Error(err))
		}
		cancel()
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
