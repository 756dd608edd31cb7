package repository

import (
	"context"
	"errors"
	"strings"

	"shophub/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSlugTaken       = errors.New("product with this slug already exists")
)

// ProductRepository is the product store the catalog reads from and the admin
// surface writes to. Find pushes the filter and ordering of a FilterSpec down
// to the store; implementations are free to over-approximate the ordering on
// ties, callers re-sort with the catalog planner.
type ProductRepository interface {
	Find(ctx context.Context, filter domain.FilterSpec) ([]*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// escapeLike escapes LIKE metacharacters so a search is a literal substring match
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
