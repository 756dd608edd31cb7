package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shophub/internal/cart"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix   = "cart"
	maxCartAttempts = 5
)

var ErrCartConflict = errors.New("cart was modified concurrently")

// CartMutation receives the stored lines of a session and returns the lines
// to persist. Returning an error aborts the update without writing.
type CartMutation func(lines []cart.Line) ([]cart.Line, error)

// CartRepository persists cart lines per session
type CartRepository interface {
	Load(ctx context.Context, session string) ([]cart.Line, error)
	Update(ctx context.Context, session string, fn CartMutation) ([]cart.Line, error)
	Delete(ctx context.Context, session string) error
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a CartRepository backed by Redis. Every write
// refreshes the key's expiry to ttl.
func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{client: client, ttl: ttl}
}

func cartKey(session string) string {
	return fmt.Sprintf("%s:%s", cartKeyPrefix, session)
}

// Load returns the lines stored for session, or none when the cart is absent
func (r *redisCartRepository) Load(ctx context.Context, session string) ([]cart.Line, error) {
	return r.load(ctx, r.client, cartKey(session))
}

func (r *redisCartRepository) load(ctx context.Context, c redis.Cmdable, key string) ([]cart.Line, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []cart.Line{}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return lines, nil
}

// Update applies fn to the stored lines under optimistic locking. A
// concurrent write to the same session retries fn; after maxCartAttempts
// failed attempts ErrCartConflict is returned.
func (r *redisCartRepository) Update(ctx context.Context, session string, fn CartMutation) ([]cart.Line, error) {
	key := cartKey(session)

	var result []cart.Line
	txf := func(tx *redis.Tx) error {
		lines, err := r.load(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(lines)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(next) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			payload, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("failed to encode cart: %w", err)
			}
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = next
		return nil
	}

	for attempt := 0; attempt < maxCartAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			if result == nil {
				result = []cart.Line{}
			}
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrCartConflict
}

// Delete removes the cart for session
func (r *redisCartRepository) Delete(ctx context.Context, session string) error {
	if err := r.client.Del(ctx, cartKey(session)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
