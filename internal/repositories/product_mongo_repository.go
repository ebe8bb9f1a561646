package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"catalog/internal/models"
)

const queryTimeout = 5 * time.Second

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository
// backed by the "products" collection of the given database.
func NewMongoProductRepository(client *mongo.Client, database string) *MongoProductRepository {
	return &MongoProductRepository{
		client:     client,
		collection: client.Database(database).Collection("products"),
	}
}

// GetAll retrieves all products in store order.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

// GetByCategory retrieves products matching the category exactly (case-sensitive).
func (r *MongoProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"category": category})
}

// GetByVariantColor retrieves products containing at least one variant with
// the given color (exact match).
func (r *MongoProductRepository) GetByVariantColor(ctx context.Context, color string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"variants.color": color})
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create validates and inserts a new product, assigning its ID and timestamps.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.Variants == nil {
		product.Variants = []models.Variant{}
	}
	if err := product.Validate(); err != nil {
		return err
	}

	product.ID = primitive.NewObjectID()
	for i := range product.Variants {
		product.Variants[i].ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// AddVariant validates and appends a variant to the product's variants
// sequence, returning the updated document.
func (r *MongoProductRepository) AddVariant(ctx context.Context, id string, variant models.Variant) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}
	if err := variant.Validate(); err != nil {
		return nil, err
	}
	variant.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"variants": variant},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to add variant to product %s: %w", id, err)
	}
	return &product, nil
}

// Update merges the supplied fields over the stored document, re-validates
// the result against the full schema, and persists it.
func (r *MongoProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProductUpdate(product, update)
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Delete removes a product and its owned variants, returning the deleted document.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var product models.Product
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return &product, nil
}

// Count returns the number of products in the store.
func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Ping reports whether the store is currently reachable.
func (r *MongoProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.client.Ping(ctx, readpref.Primary())
}
