package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"shophub/internal/catalog"
	"shophub/internal/domain"
	"shophub/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrCatalogUnavailable = errors.New("catalog is unavailable")

// CatalogResult is one catalog page. Categories lists every category in the
// store so the facet never collapses while filtering; CategoryCounts counts
// only the products that matched.
type CatalogResult struct {
	Products       []*domain.Product `json:"products"`
	Categories     []string          `json:"categories"`
	CategoryCounts map[string]int    `json:"categoryCounts"`
	Count          int               `json:"count"`
	Filters        domain.FilterSpec `json:"-"`
}

// CatalogService defines the read side of the catalog
type CatalogService interface {
	QueryCatalog(ctx context.Context, params url.Values) (*CatalogResult, error)
	GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// QueryCatalog normalizes raw query parameters, fetches the matching products
// and the category facet concurrently, and returns them in planner order.
// Malformed parameters degrade to defaults and never fail the query.
func (s *catalogService) QueryCatalog(ctx context.Context, params url.Values) (*CatalogResult, error) {
	spec := catalog.ParseFilters(params)
	query := catalog.Plan(spec)

	var (
		products   []*domain.Product
		categories []string
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.productRepo.Find(gCtx, spec)
		if err != nil {
			return err
		}
		products = found
		return nil
	})
	g.Go(func() error {
		found, err := s.productRepo.Categories(gCtx)
		if err != nil {
			return err
		}
		categories = found
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Catalog query failed", zap.Error(err), zap.String("query", params.Encode()))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	// the store pushes the query down; the planner's order is authoritative
	products = query.Apply(products)
	if categories == nil {
		categories = []string{}
	}

	return &CatalogResult{
		Products:       products,
		Categories:     categories,
		CategoryCounts: catalog.CountByCategory(products),
		Count:          len(products),
		Filters:        spec,
	}, nil
}

// GetProduct looks idOrSlug up as an ID first and falls back to a slug lookup
func (s *catalogService) GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	key := strings.TrimSpace(idOrSlug)
	if key == "" {
		return nil, repository.ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, key)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	product, err = s.productRepo.FindBySlug(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return product, nil
}

// Categories returns every category name in the store
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return categories, nil
}
