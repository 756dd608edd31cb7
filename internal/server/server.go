package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shophub/internal/cart"
	"shophub/internal/config"
	custommiddleware "shophub/internal/middleware"
	"shophub/internal/repository"
	"shophub/internal/service"
	"shophub/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	catalog *Catalog
	redis   *redis.Client
}

// HealthResponse reports the state of each backing store
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func NewServer(cfg *config.Config, logger *zap.Logger, catalog *Catalog, redisClient *redis.Client) (*Server, error) {
	pricing, err := cart.ParsePricing(cfg.Cart.FreeShippingThreshold, cfg.Cart.ShippingFee, cfg.Cart.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid cart pricing: %w", err)
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		catalog: catalog,
		redis:   redisClient,
	}

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	router.Get("/health", s.health)

	// Initialize services
	catalogService := service.NewCatalogService(catalog.Products, logger)
	productService := service.NewProductService(catalog.Products, logger)
	cartService := service.NewCartService(
		repository.NewCartRepository(redisClient, cfg.Cart.TTL),
		catalog.Products,
		pricing,
		logger,
	)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, cfg.Cart.TTL, logger)
	adminHandler := transport.NewAdminHandler(productService, logger)

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "ratelimit:api",
	}, logger)

	// Register routes
	router.Group(func(r chi.Router) {
		r.Use(rateLimit)
		catalogHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r, authMiddleware)
	})

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}
	check := func(name string, ping func(ctx context.Context) error) {
		if err := ping(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("store", name), zap.Error(err))
			resp.Status = "degraded"
			resp.Checks[name] = "unavailable"
			return
		}
		resp.Checks[name] = "ok"
	}

	check(s.catalog.Backend, s.catalog.Ping)
	check("redis", func(ctx context.Context) error { return s.redis.Ping(ctx).Err() })

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	custommiddleware.RespondWithJSON(w, status, resp)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.catalog != nil && s.catalog.Close != nil {
		if err := s.catalog.Close(ctx); err != nil {
			s.logger.Error("Failed to close catalog store", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
