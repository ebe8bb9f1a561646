package services

import (
	"context"
	"log"
	"strings"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// EventPublisher publishes catalog change events to a message broker.
type EventPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// CatalogService handles business logic for the product catalog, including
// the static-sample fallback applied when the store is unreachable.
type CatalogService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewCatalogService creates a new CatalogService. The events publisher may be
// nil, in which case no events are emitted.
func NewCatalogService(repo repositories.ProductRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
	}
}

// ListProducts retrieves all products. A store failure is absorbed: the fixed
// sample set is served instead.
func (s *CatalogService) ListProducts(ctx context.Context) []models.Product {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Printf("Store read failed, serving sample products: %v", err)
		return SampleProducts()
	}
	return products
}

// ListByCategory retrieves products in the given category. The store query is
// case-sensitive; the fallback filter over the sample set is not.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) []models.Product {
	products, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		log.Printf("Store read failed, filtering sample products by category: %v", err)
		matched := make([]models.Product, 0)
		for _, p := range SampleProducts() {
			if strings.EqualFold(p.Category, category) {
				matched = append(matched, p)
			}
		}
		return matched
	}
	return products
}

// ListByColor retrieves products containing a variant of the given color. The
// store query is an exact match; the fallback filter is case-insensitive.
func (s *CatalogService) ListByColor(ctx context.Context, color string) []models.Product {
	products, err := s.repo.GetByVariantColor(ctx, color)
	if err != nil {
		log.Printf("Store read failed, filtering sample products by color: %v", err)
		matched := make([]models.Product, 0)
		for _, p := range SampleProducts() {
			for _, v := range p.Variants {
				if strings.EqualFold(v.Color, color) {
					matched = append(matched, p)
					break
				}
			}
		}
		return matched
	}
	return products
}

// GetProduct retrieves a single product by its ID. Single-item lookups have
// no sample fallback; store errors surface to the caller.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and persists a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.publish("product.created", product)
	return nil
}

// AddVariant appends a variant to a product's variants sequence and returns
// the updated product.
func (s *CatalogService) AddVariant(ctx context.Context, id string, variant models.Variant) (*models.Product, error) {
	return s.repo.AddVariant(ctx, id, variant)
}

// UpdateProduct merges the supplied fields over an existing product,
// re-validating the result, and returns the updated product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	return s.repo.Update(ctx, id, update)
}

// DeleteProduct removes a product and its owned variants, returning the
// deleted document as confirmation.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("product.deleted", product)
	return product, nil
}

// Summary describes the service status reported at the root route.
type Summary struct {
	DatabaseConnected bool
	TotalProducts     int64
}

// Summary reports store connectivity from a live ping and the total product
// count, substituting the sample-set size when the store is unreachable or empty.
func (s *CatalogService) Summary(ctx context.Context) Summary {
	connected := s.repo.Ping(ctx) == nil

	total, err := s.repo.Count(ctx)
	if err != nil || total == 0 {
		total = int64(len(sampleProducts))
	}
	return Summary{
		DatabaseConnected: connected,
		TotalProducts:     total,
	}
}

// publish emits a catalog event. Publish failures are logged, never surfaced.
func (s *CatalogService) publish(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":       product.ID.Hex(),
		"name":     product.Name,
		"category": product.Category,
	}
	if err := s.events.PublishCatalogEvent(event, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}
