package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"shophub/internal/cart"
	"shophub/internal/domain"
	"shophub/internal/middleware"
	"shophub/internal/repository"
	"shophub/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// Mock repositories for testing
type mockProductRepository struct {
	mu       sync.Mutex
	products []*domain.Product
	fail     bool
	nextID   int
}

func (m *mockProductRepository) err() error {
	if m.fail {
		return fmt.Errorf("connection refused")
	}
	return nil
}

func (m *mockProductRepository) Find(ctx context.Context, filter domain.FilterSpec) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	return append([]*domain.Product(nil), m.products...), nil
}

func (m *mockProductRepository) Categories(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (m *mockProductRepository) find(match func(p *domain.Product) bool) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.err(); err != nil {
		return nil, err
	}
	for _, p := range m.products {
		if match(p) {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return p.ID == id })
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return p.Slug == domain.NormalizeSlug(slug) })
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, err := m.FindByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if _, err := m.FindBySlug(ctx, product.Slug); err == nil {
		return repository.ErrSlugTaken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	product.ID = fmt.Sprintf("new-%d", m.nextID)
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = product
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *mockProductRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = nil
	return nil
}

func fixtureProducts() []*domain.Product {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []*domain.Product{
		{ID: "p1", Name: "Wireless Headphones", Description: "Noise cancelling", Price: 199.99, Category: "Electronics", InStock: true, StockQuantity: 15, Tags: []string{"audio"}, Slug: "wireless-headphones", CreatedAt: base},
		{ID: "p2", Name: "Running Shoes", Description: "Lightweight trainers", Price: 50, Category: "Sports", InStock: true, StockQuantity: 3, Tags: []string{"running"}, Slug: "running-shoes", CreatedAt: base.Add(time.Hour)},
		{ID: "p3", Name: "Yoga Mat", Description: "Non-slip", Price: 20, Category: "Sports", InStock: true, StockQuantity: 10, Tags: []string{"fitness"}, Slug: "yoga-mat", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *mockProductRepository) {
	t.Helper()

	logger := zap.NewNop()
	repo := &mockProductRepository{products: fixtureProducts()}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cartService := service.NewCartService(repository.NewCartRepository(client, time.Hour), repo, cart.DefaultPricing(), logger)

	router := chi.NewRouter()
	NewCatalogHandler(service.NewCatalogService(repo, logger), logger).RegisterRoutes(router)
	NewCartHandler(cartService, time.Hour, logger).RegisterRoutes(router)
	NewAdminHandler(service.NewProductService(repo, logger), logger).
		RegisterRoutes(router, middleware.AuthMiddleware(testSecret, logger))

	return router, repo
}

func do(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func adminHeaders(t *testing.T, role string) map[string]string {
	t.Helper()
	token, err := middleware.IssueToken(testSecret, "ops", role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}
