package service

import (
	"context"
	"errors"
	"fmt"

	"shophub/internal/domain"
	"shophub/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidProduct = errors.New("invalid product")

// ProductService defines the admin write side of the catalog
type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func prepare(product *domain.Product) error {
	product.Normalize()
	if err := product.CheckInvariants(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	return nil
}

// Create stores a new product. The ID and timestamps are assigned by the store.
func (s *productService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := prepare(product); err != nil {
		return nil, err
	}

	product.ID = ""
	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	return product, nil
}

// Update replaces every mutable field of the product with the given ID
func (s *productService) Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	if err := prepare(product); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID))
	return product, nil
}

// Delete removes the product with the given ID
func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}
