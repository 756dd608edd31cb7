package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"shophub/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductsCollection is the collection products live in
const ProductsCollection = "products"

type productDocument struct {
	ObjectID       primitive.ObjectID `bson:"_id,omitempty"`
	domain.Product `bson:",inline"`
}

func (d *productDocument) toDomain() *domain.Product {
	p := d.Product
	p.ID = d.ObjectID.Hex()
	return &p
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a ProductRepository backed by a MongoDB collection
func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection(ProductsCollection)}
}

// mongoFilter translates a FilterSpec into a query document
func mongoFilter(f domain.FilterSpec) bson.M {
	filter := bson.M{}

	if f.Category != "" {
		filter["category"] = f.Category
	}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": pattern},
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}

	if f.InStockOnly {
		filter["inStock"] = true
		filter["stockQuantity"] = bson.M{"$gt": 0}
	}

	return filter
}

// mongoSort returns the sort document for a key, always ending in _id so
// ties are broken the same way on every call
func mongoSort(key domain.SortKey) bson.D {
	switch key {
	case domain.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	case domain.SortName:
		return bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortRating:
		// missing ratings compare lowest, so they land last when descending
		return bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
	}
}

// Find returns products matching the filter in store order
func (r *mongoProductRepository) Find(ctx context.Context, filter domain.FilterSpec) ([]*domain.Product, error) {
	opts := options.Find().SetSort(mongoSort(filter.Sort))

	cursor, err := r.collection.Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

// Categories returns every distinct category name
func (r *mongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			categories = append(categories, name)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// FindByID retrieves a product by its ObjectID hex string
func (r *mongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySlug retrieves a product by slug
func (r *mongoProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"slug": domain.NormalizeSlug(slug)})
}

func (r *mongoProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var doc productDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs retrieves the products whose IDs are listed. Malformed IDs are
// skipped; the result order is unspecified.
func (r *mongoProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.Product{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by IDs: %w", err)
	}
	return decodeProducts(ctx, cursor)
}

// Create inserts a product and assigns its ID
func (r *mongoProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	doc := productDocument{ObjectID: primitive.NewObjectID(), Product: *product}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.ID = doc.ObjectID.Hex()
	return nil
}

// Update overwrites every mutable field of an existing product
func (r *mongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return ErrProductNotFound
	}

	product.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":          product.Name,
		"description":   product.Description,
		"price":         product.Price,
		"category":      product.Category,
		"image":         product.Image,
		"images":        product.Images,
		"inStock":       product.InStock,
		"stockQuantity": product.StockQuantity,
		"tags":          product.Tags,
		"slug":          product.Slug,
		"updatedAt":     product.UpdatedAt,
	}
	unset := bson.M{}
	setOptional(set, unset, "originalPrice", product.OriginalPrice)
	setOptional(set, unset, "rating", product.Rating)
	setOptional(set, unset, "reviews", product.Reviews)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product by ID
func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteAll empties the collection
func (r *mongoProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func setOptional[T any](set, unset bson.M, field string, v *T) {
	if v == nil {
		unset[field] = ""
		return
	}
	set[field] = *v
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Product, error) {
	defer cursor.Close(ctx)

	products := []*domain.Product{}
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
