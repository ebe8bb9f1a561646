package repositories

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the MongoDB implementation's semantics: writes are validated,
// identifiers use the ObjectID hex format, and insertion order is preserved.
type MockProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make([]models.Product, 0),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyProducts(r.products), nil
}

// GetByCategory returns products matching the category exactly (case-sensitive).
func (r *MockProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0)
	for _, p := range r.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return copyProducts(matched), nil
}

// GetByVariantColor returns products with at least one variant of the given color.
func (r *MockProductRepository) GetByVariantColor(ctx context.Context, color string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0)
	for _, p := range r.products {
		for _, v := range p.Variants {
			if v.Color == color {
				matched = append(matched, p)
				break
			}
		}
	}
	return copyProducts(matched), nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == objectID {
			product := copyProduct(r.products[i])
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Create validates and appends a new product, assigning its ID and timestamps.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, copyProduct(*product))
	return nil
}

// AddVariant validates and appends a variant to the product's variants sequence.
func (r *MockProductRepository) AddVariant(ctx context.Context, id string, variant models.Variant) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}
	if err := variant.Validate(); err != nil {
		return nil, err
	}
	variant.ID = primitive.NewObjectID()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == objectID {
			r.products[i].Variants = append(r.products[i].Variants, variant)
			r.products[i].UpdatedAt = time.Now().UTC()
			product := copyProduct(r.products[i])
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Update merges the supplied fields over the stored product and re-validates it.
func (r *MockProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID != objectID {
			continue
		}
		merged := copyProduct(r.products[i])
		applyProductUpdate(&merged, update)
		if err := merged.Validate(); err != nil {
			return nil, err
		}
		merged.UpdatedAt = time.Now().UTC()
		r.products[i] = copyProduct(merged)
		return &merged, nil
	}
	return nil, ErrProductNotFound
}

// Delete removes a product, returning the deleted document.
func (r *MockProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == objectID {
			product := copyProduct(r.products[i])
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Count returns the number of stored products.
func (r *MockProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}

// Ping always reports the in-memory store as reachable.
func (r *MockProductRepository) Ping(ctx context.Context) error {
	return nil
}

func copyProduct(p models.Product) models.Product {
	p.Variants = append([]models.Variant{}, p.Variants...)
	return p
}

func copyProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = copyProduct(p)
	}
	return out
}
