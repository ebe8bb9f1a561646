package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/models"
)

// Sentinel errors returned by ProductRepository implementations. Handlers map
// these to HTTP statuses with errors.Is.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product ID")
)

// ProductRepository defines the interface for catalog data access.
// Implementations enforce the catalog schema on every write: a document that
// violates the Product or Variant constraints is rejected with a
// *models.ValidationError and never persisted.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetByVariantColor(ctx context.Context, color string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	AddVariant(ctx context.Context, id string, variant models.Variant) (*models.Product, error)
	Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// applyProductUpdate merges the non-nil fields of update onto product.
// Variants supplied without an ID are treated as new sub-documents.
func applyProductUpdate(product *models.Product, update models.ProductUpdate) {
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Variants != nil {
		variants := make([]models.Variant, len(*update.Variants))
		copy(variants, *update.Variants)
		for i := range variants {
			if variants[i].ID.IsZero() {
				variants[i].ID = primitive.NewObjectID()
			}
		}
		product.Variants = variants
	}
}
