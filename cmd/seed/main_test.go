package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"shophub/internal/domain"
	"shophub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingRepository records writes; reads are not used by the seeder
type recordingRepository struct {
	repository.ProductRepository
	cleared  bool
	products []*domain.Product
	failOn   string
}

func (r *recordingRepository) DeleteAll(context.Context) error {
	r.cleared = true
	r.products = nil
	return nil
}

func (r *recordingRepository) Create(_ context.Context, p *domain.Product) error {
	if p.Slug == r.failOn {
		return errors.New("write failed")
	}
	p.ID = fmt.Sprintf("id-%d", len(r.products)+1)
	r.products = append(r.products, p)
	return nil
}

func TestDemoProductsAreValid(t *testing.T) {
	slugs := map[string]bool{}
	for _, p := range demoProducts() {
		p.Normalize()
		assert.NoError(t, p.CheckInvariants(), p.Slug)
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		slugs[p.Slug] = true
		assert.GreaterOrEqual(t, len(p.Description), 10, p.Slug)
	}
	assert.Len(t, slugs, 8)
}

func TestSeed(t *testing.T) {
	repo := &recordingRepository{products: []*domain.Product{{ID: "stale"}}}

	inserted, err := seed(context.Background(), repo, demoProducts(), zap.NewNop())

	require.NoError(t, err)
	assert.True(t, repo.cleared)
	assert.Equal(t, 8, inserted)
	require.Len(t, repo.products, 8)
	assert.Equal(t, "premium-wireless-headphones", repo.products[0].Slug)
}

func TestSeed_StopsOnFirstFailure(t *testing.T) {
	repo := &recordingRepository{failOn: "designer-backpack"}

	inserted, err := seed(context.Background(), repo, demoProducts(), zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "designer-backpack")
	assert.Equal(t, 2, inserted)
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, ".env.local", opts.envFile)
	assert.False(t, opts.adminToken)
	assert.Equal(t, 24*time.Hour, opts.tokenTTL)

	opts, err = parseFlags([]string{"-e", ".env.test", "--admin-token", "--token-ttl", "1h"})
	require.NoError(t, err)
	assert.Equal(t, ".env.test", opts.envFile)
	assert.True(t, opts.adminToken)
	assert.Equal(t, time.Hour, opts.tokenTTL)

	_, err = parseFlags([]string{"--token-ttl", "0s"})
	assert.Error(t, err)
}
