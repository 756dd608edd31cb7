package server

import (
	"context"
	"fmt"

	"shophub/internal/config"
	"shophub/internal/database"
	"shophub/internal/repository"

	"go.uber.org/zap"
)

// Catalog is an open catalog backend
type Catalog struct {
	Products repository.ProductRepository
	Backend  string
	Ping     func(ctx context.Context) error
	Close    func(ctx context.Context) error
}

// OpenCatalog connects to the backend named by cfg.Catalog.Backend and
// prepares its schema: indexes for mongo, migrations for postgres.
func OpenCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Catalog, error) {
	switch cfg.Catalog.Backend {
	case config.BackendMongo:
		client, err := database.ConnectMongo(ctx, cfg.Mongo.URI, logger)
		if err != nil {
			return nil, err
		}

		db := client.Database(cfg.Mongo.Database)
		if err := database.EnsureProductIndexes(ctx, db, repository.ProductsCollection); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		return &Catalog{
			Products: repository.NewMongoProductRepository(db),
			Backend:  config.BackendMongo,
			Ping: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			},
			Close: client.Disconnect,
		}, nil

	case config.BackendPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Database.DSN(), logger)
		if err != nil {
			return nil, err
		}

		if err := database.RunMigrations(pool, logger); err != nil {
			pool.Close()
			return nil, err
		}

		return &Catalog{
			Products: repository.NewPostgresProductRepository(pool),
			Backend:  config.BackendPostgres,
			Ping:     pool.Ping,
			Close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}
