package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shophub/internal/config"
	"shophub/internal/domain"
	"shophub/internal/logger"
	"shophub/internal/middleware"
	"shophub/internal/repository"
	"shophub/internal/server"
	"shophub/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	envFileFlag    = "env-file"
	adminTokenFlag = "admin-token"
	tokenTTLFlag   = "token-ttl"
)

type options struct {
	envFile    string
	adminToken bool
	tokenTTL   time.Duration
}

func parseFlags(args []string) (options, error) {
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	envFile := fs.StringP(envFileFlag, "e", ".env.local", "env file loaded before the environment")
	adminToken := fs.Bool(adminTokenFlag, false, "print a development admin token after seeding")
	tokenTTL := fs.Duration(tokenTTLFlag, 24*time.Hour, "lifetime of the printed admin token")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *tokenTTL <= 0 {
		return options{}, fmt.Errorf("--%s must be positive", tokenTTLFlag)
	}
	return options{envFile: *envFile, adminToken: *adminToken, tokenTTL: *tokenTTL}, nil
}

// seed wipes the catalog and inserts products through the admin write path,
// so every seeded product passes the same checks as an admin-created one
func seed(ctx context.Context, repo repository.ProductRepository, products []*domain.Product, log *zap.Logger) (int, error) {
	if err := repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear products: %w", err)
	}
	log.Info("Cleared existing products")

	svc := service.NewProductService(repo, log)
	for i, p := range products {
		if _, err := svc.Create(ctx, p); err != nil {
			return i, fmt.Errorf("failed to insert %q: %w", p.Slug, err)
		}
	}
	return len(products), nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// existing environment variables win over the file
	if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", opts.envFile, err)
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Must(cfg.Server.Env)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	catalog, err := server.OpenCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open catalog store", zap.Error(err))
	}
	defer catalog.Close(context.Background())

	inserted, err := seed(ctx, catalog.Products, demoProducts(), log)
	if err != nil {
		log.Error("Seeding failed", zap.Error(err), zap.Int("inserted", inserted))
		return
	}
	log.Info("Catalog seeded",
		zap.String("backend", catalog.Backend),
		zap.Int("products", inserted),
	)

	if opts.adminToken {
		if cfg.JWT.Secret == "" {
			log.Warn("JWT_SECRET is not set, skipping admin token")
			return
		}
		token, err := middleware.IssueToken(cfg.JWT.Secret, "seed-admin", middleware.RoleAdmin, opts.tokenTTL)
		if err != nil {
			log.Error("Failed to issue admin token", zap.Error(err))
			return
		}
		fmt.Println(token)
	}
}
