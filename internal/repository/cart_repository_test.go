package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"shophub/internal/cart"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepository(t *testing.T) (CartRepository, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCartRepository(client, time.Hour), mr, client
}

func appendLine(line cart.Line) CartMutation {
	return func(lines []cart.Line) ([]cart.Line, error) {
		return append(lines, line), nil
	}
}

func TestCartRepository_LoadMissingIsEmpty(t *testing.T) {
	repo, _, _ := setupCartRepository(t)

	lines, err := repo.Load(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartRepository_UpdatePersistsWithTTL(t *testing.T) {
	repo, mr, _ := setupCartRepository(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "s1", appendLine(cart.Line{ProductID: "a", Quantity: 2}))
	require.NoError(t, err)
	lines, err := repo.Update(ctx, "s1", appendLine(cart.Line{ProductID: "b", Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, []cart.Line{{ProductID: "a", Quantity: 2}, {ProductID: "b", Quantity: 1}}, lines)
	assert.Equal(t, time.Hour, mr.TTL("cart:s1"))

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)

	mr.FastForward(2 * time.Hour)
	expired, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, expired)
}

func TestCartRepository_EmptyResultDeletesKey(t *testing.T) {
	repo, mr, _ := setupCartRepository(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "s1", appendLine(cart.Line{ProductID: "a", Quantity: 1}))
	require.NoError(t, err)

	lines, err := repo.Update(ctx, "s1", func([]cart.Line) ([]cart.Line, error) { return nil, nil })

	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.False(t, mr.Exists("cart:s1"))
}

func TestCartRepository_MutationErrorAbortsWrite(t *testing.T) {
	repo, mr, _ := setupCartRepository(t)
	boom := errors.New("boom")

	_, err := repo.Update(context.Background(), "s1", func([]cart.Line) ([]cart.Line, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("cart:s1"))
}

func TestCartRepository_RetriesThenReportsConflict(t *testing.T) {
	repo, _, client := setupCartRepository(t)
	ctx := context.Background()

	calls := 0
	_, err := repo.Update(ctx, "s1", func(lines []cart.Line) ([]cart.Line, error) {
		calls++
		// a competing writer touches the key between read and commit
		require.NoError(t, client.Set(ctx, "cart:s1", "[]", 0).Err())
		return append(lines, cart.Line{ProductID: "a", Quantity: 1}), nil
	})

	assert.ErrorIs(t, err, ErrCartConflict)
	assert.Equal(t, maxCartAttempts, calls)
}

func TestCartRepository_RetrySeesCompetingWrite(t *testing.T) {
	repo, _, client := setupCartRepository(t)
	ctx := context.Background()

	interfered := false
	lines, err := repo.Update(ctx, "s1", func(lines []cart.Line) ([]cart.Line, error) {
		if !interfered {
			interfered = true
			require.NoError(t, client.Set(ctx, "cart:s1", `[{"productId":"x","quantity":3}]`, 0).Err())
		}
		return append(lines, cart.Line{ProductID: "a", Quantity: 1}), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []cart.Line{{ProductID: "x", Quantity: 3}, {ProductID: "a", Quantity: 1}}, lines)
}

func TestCartRepository_Delete(t *testing.T) {
	repo, mr, _ := setupCartRepository(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, "s1", appendLine(cart.Line{ProductID: "a", Quantity: 1}))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("cart:s1"))
	require.NoError(t, repo.Delete(ctx, "s1"))
}
