package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shophub/internal/domain"
	"shophub/internal/repository"
)

// Mock repositories for testing
type mockProductRepository struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	order    []string
	nextID   int
	failWith error
}

func newMockProductRepository(products ...*domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[string]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *mockProductRepository) all() []*domain.Product {
	out := make([]*domain.Product, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Find returns every product unfiltered and in insertion order, like a store
// that pushes nothing down
func (m *mockProductRepository) Find(ctx context.Context, filter domain.FilterSpec) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.all(), nil
}

func (m *mockProductRepository) Categories(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range m.all() {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, p := range m.products {
		if p.Slug == domain.NormalizeSlug(slug) {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == product.Slug {
			return repository.ErrSlugTaken
		}
	}
	m.nextID++
	product.ID = fmt.Sprintf("gen-%d", m.nextID)
	m.products[product.ID] = product
	m.order = append(m.order, product.ID)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	for id, p := range m.products {
		if id != product.ID && p.Slug == product.Slug {
			return repository.ErrSlugTaken
		}
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make(map[string]*domain.Product)
	m.order = nil
	return nil
}

var errStoreDown = errors.New("connection refused")
