package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shophub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const productColumns = `id, name, description, price, original_price, category, image, images,
		in_stock, stock_quantity, rating, reviews, tags, slug, created_at, updated_at`

type pgProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository creates a ProductRepository backed by PostgreSQL
func NewPostgresProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepository{pool: pool}
}

// pgWhere builds the WHERE clause for a FilterSpec using positional parameters
func pgWhere(f domain.FilterSpec) (string, []any) {
	conditions := []string{}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		conditions = append(conditions, "category = "+arg(f.Category))
	}
	if f.Search != "" {
		p := arg("%" + escapeLike(f.Search) + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE %[1]s OR description ILIKE %[1]s OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE %[1]s))", p))
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "price <= "+arg(*f.MaxPrice))
	}
	if f.InStockOnly {
		conditions = append(conditions, "in_stock AND stock_quantity > 0")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// pgOrder maps a sort key to a whitelisted ORDER BY clause
func pgOrder(key domain.SortKey) string {
	switch key {
	case domain.SortPriceAsc:
		return "ORDER BY price ASC, id ASC"
	case domain.SortPriceDesc:
		return "ORDER BY price DESC, id ASC"
	case domain.SortName:
		return "ORDER BY LOWER(name) ASC, id ASC"
	case domain.SortRating:
		return "ORDER BY rating DESC NULLS LAST, id ASC"
	default:
		return "ORDER BY created_at DESC, id ASC"
	}
}

// Find returns products matching the filter
func (r *pgProductRepository) Find(ctx context.Context, filter domain.FilterSpec) ([]*domain.Product, error) {
	where, args := pgWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM products %s %s", productColumns, where, pgOrder(filter.Sort))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return collectProducts(rows)
}

// Categories returns every distinct category name
func (r *pgProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// FindByID retrieves a product by UUID
func (r *pgProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	return r.findOne(ctx, "id = $1", id)
}

// FindBySlug retrieves a product by slug
func (r *pgProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, "slug = $1", domain.NormalizeSlug(slug))
}

func (r *pgProductRepository) findOne(ctx context.Context, condition string, arg any) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s", productColumns, condition)

	product, err := scanProduct(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// FindByIDs retrieves the products whose IDs are listed
func (r *pgProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*domain.Product{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ANY($1::uuid[])", productColumns)
	rows, err := r.pool.Query(ctx, query, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by IDs: %w", err)
	}
	return collectProducts(rows)
}

// Create inserts a new product, generating its ID when absent
func (r *pgProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.Category,
		product.Image,
		textArray(product.Images),
		product.InStock,
		product.StockQuantity,
		product.Rating,
		product.Reviews,
		textArray(product.Tags),
		product.Slug,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update overwrites every mutable column of an existing product
func (r *pgProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, err := uuid.Parse(product.ID); err != nil {
		return ErrProductNotFound
	}
	product.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, original_price = $5, category = $6,
		    image = $7, images = $8, in_stock = $9, stock_quantity = $10, rating = $11,
		    reviews = $12, tags = $13, slug = $14, updated_at = $15
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.Category,
		product.Image,
		textArray(product.Images),
		product.InStock,
		product.StockQuantity,
		product.Rating,
		product.Reviews,
		textArray(product.Tags),
		product.Slug,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product by ID
func (r *pgProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteAll removes every product
func (r *pgProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.OriginalPrice,
		&product.Category,
		&product.Image,
		&product.Images,
		&product.InStock,
		&product.StockQuantity,
		&product.Rating,
		&product.Reviews,
		&product.Tags,
		&product.Slug,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func collectProducts(rows pgx.Rows) ([]*domain.Product, error) {
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// textArray keeps a nil slice from being written as NULL
func textArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
