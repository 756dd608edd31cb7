package service

import (
	"context"
	"errors"
	"fmt"

	"shophub/internal/cart"
	"shophub/internal/domain"
	"shophub/internal/repository"

	"go.uber.org/zap"
)

// CartResult is the response to every cart operation. Outcome is set for
// mutations of a single line; Dropped lists lines removed because their
// product disappeared or sold out.
type CartResult struct {
	Cart    cart.View     `json:"cart"`
	Outcome *cart.Outcome `json:"outcome,omitempty"`
	Dropped []string      `json:"dropped,omitempty"`
}

// CartService defines the session cart operations
type CartService interface {
	Get(ctx context.Context, session string) (*CartResult, error)
	AddItem(ctx context.Context, session, productID string, quantity int) (*CartResult, error)
	UpdateItem(ctx context.Context, session, productID string, quantity int) (*CartResult, error)
	RemoveItem(ctx context.Context, session, productID string) (*CartResult, error)
	Clear(ctx context.Context, session string) (*CartResult, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     cart.Pricing
	logger      *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	pricing cart.Pricing,
	logger *zap.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
		logger:      logger,
	}
}

// restore rebuilds a cart from stored lines with current product data.
// extra names products to fetch alongside the stored ones.
func (s *cartService) restore(ctx context.Context, lines []cart.Line, extra ...string) (*cart.Cart, map[string]*domain.Product, []string, error) {
	ids := make([]string, 0, len(lines)+len(extra))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	ids = append(ids, extra...)

	products := map[string]*domain.Product{}
	if len(ids) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		for _, p := range found {
			products[p.ID] = p
		}
	}

	c, dropped := cart.Restore(lines, products)
	return c, products, dropped, nil
}

func (s *cartService) result(c *cart.Cart, outcome *cart.Outcome, dropped []string) *CartResult {
	return &CartResult{
		Cart:    cart.NewView(cart.Hydrated, c, s.pricing),
		Outcome: outcome,
		Dropped: dropped,
	}
}

// Get returns the session's cart with current prices and stock
func (s *cartService) Get(ctx context.Context, session string) (*CartResult, error) {
	lines, err := s.cartRepo.Load(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c, _, dropped, err := s.restore(ctx, lines)
	if err != nil {
		return nil, err
	}
	return s.result(c, nil, dropped), nil
}

// mutate runs op against the session's cart inside an optimistic
// transaction, so quantities are always re-read before they are clamped
func (s *cartService) mutate(
	ctx context.Context,
	session string,
	extra []string,
	op func(c *cart.Cart, products map[string]*domain.Product) (cart.Outcome, error),
) (*CartResult, error) {
	var (
		c       *cart.Cart
		outcome cart.Outcome
		dropped []string
	)

	_, err := s.cartRepo.Update(ctx, session, func(lines []cart.Line) ([]cart.Line, error) {
		restored, products, gone, err := s.restore(ctx, lines, extra...)
		if err != nil {
			return nil, err
		}

		result, err := op(restored, products)
		if err != nil {
			return nil, err
		}

		c, outcome, dropped = restored, result, gone
		return restored.Lines(), nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) ||
			errors.Is(err, ErrCatalogUnavailable) ||
			errors.Is(err, repository.ErrCartConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}

	return s.result(c, &outcome, dropped), nil
}

// AddItem adds quantity units of a product to the cart. A request beyond
// the available stock is clamped and flagged OutOfStock in the outcome.
func (s *cartService) AddItem(ctx context.Context, session, productID string, quantity int) (*CartResult, error) {
	result, err := s.mutate(ctx, session, []string{productID}, func(c *cart.Cart, products map[string]*domain.Product) (cart.Outcome, error) {
		product, ok := products[productID]
		if !ok {
			return cart.Outcome{}, repository.ErrProductNotFound
		}
		return c.Add(product, quantity), nil
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome.OutOfStock {
		s.logger.Info("Cart add clamped to stock",
			zap.String("product_id", productID),
			zap.Int("requested", quantity),
			zap.Int("quantity", result.Outcome.Quantity),
		)
	}
	return result, nil
}

// UpdateItem sets the quantity of a line; zero or less removes it
func (s *cartService) UpdateItem(ctx context.Context, session, productID string, quantity int) (*CartResult, error) {
	return s.mutate(ctx, session, nil, func(c *cart.Cart, _ map[string]*domain.Product) (cart.Outcome, error) {
		if c.Quantity(productID) == 0 {
			return cart.Outcome{}, repository.ErrProductNotFound
		}
		return c.UpdateQuantity(productID, quantity), nil
	})
}

// RemoveItem drops a line from the cart
func (s *cartService) RemoveItem(ctx context.Context, session, productID string) (*CartResult, error) {
	return s.mutate(ctx, session, nil, func(c *cart.Cart, _ map[string]*domain.Product) (cart.Outcome, error) {
		return cart.Outcome{Removed: c.Remove(productID)}, nil
	})
}

// Clear empties the cart and deletes its stored state
func (s *cartService) Clear(ctx context.Context, session string) (*CartResult, error) {
	if err := s.cartRepo.Delete(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return s.result(cart.New(), nil, nil), nil
}
