package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByVariantColor(ctx context.Context, color string) ([]models.Product, error) {
	args := m.Called(ctx, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AddVariant(ctx context.Context, id string, variant models.Variant) (*models.Product, error) {
	args := m.Called(ctx, id, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCatalogEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestCatalogService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	expected := []models.Product{
		{ID: primitive.NewObjectID(), Name: "Desk Lamp", Price: 45, Category: "Home"},
	}

	mockRepo.On("GetAll", mock.Anything).Return(expected, nil).Once()

	products := service.ListProducts(context.Background())

	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListProductsFallback(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("GetAll", mock.Anything).Return(nil, fmt.Errorf("connection refused")).Once()

	products := service.ListProducts(context.Background())

	assert.Len(t, products, 4)
	assert.Equal(t, "Smartphone", products[0].Name)
	assert.Equal(t, "Running Shoes", products[1].Name)
	assert.Equal(t, "Winter Jacket", products[2].Name)
	assert.Equal(t, "Gaming Laptop", products[3].Name)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListByCategoryFallbackIsCaseInsensitive(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	// The live query is case-sensitive, but the sample-set filter is not:
	// lowercase "electronics" must still match the two Electronics samples.
	mockRepo.On("GetByCategory", mock.Anything, "electronics").
		Return(nil, fmt.Errorf("connection refused")).Once()

	products := service.ListByCategory(context.Background(), "electronics")

	assert.Len(t, products, 2)
	assert.Equal(t, "Smartphone", products[0].Name)
	assert.Equal(t, "Gaming Laptop", products[1].Name)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListByColorFallback(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	mockRepo.On("GetByVariantColor", mock.Anything, "blue").
		Return(nil, fmt.Errorf("connection refused")).Once()

	products := service.ListByColor(context.Background(), "blue")

	assert.Len(t, products, 1)
	assert.Equal(t, "Running Shoes", products[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	product := &models.Product{Name: "Desk Lamp", Price: 45, Category: "Home"}

	mockRepo.On("Create", mock.Anything, product).Return(nil).Once()
	mockEvents.On("PublishCatalogEvent", "product.created", mock.Anything).Return(nil).Once()

	err := service.CreateProduct(context.Background(), product)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestCatalogService_CreateProductFailureSkipsEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	product := &models.Product{Name: "X", Price: 45, Category: "Home"}
	validationErr := &models.ValidationError{Message: "Name is required and must be at least 2 characters"}

	mockRepo.On("Create", mock.Anything, product).Return(validationErr).Once()

	err := service.CreateProduct(context.Background(), product)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")
	mockEvents.AssertNotCalled(t, "PublishCatalogEvent", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	id := primitive.NewObjectID()
	deleted := &models.Product{ID: id, Name: "Desk Lamp", Price: 45, Category: "Home"}

	mockRepo.On("Delete", mock.Anything, id.Hex()).Return(deleted, nil).Once()
	mockEvents.On("PublishCatalogEvent", "product.deleted", mock.Anything).Return(nil).Once()

	product, err := service.DeleteProduct(context.Background(), id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, deleted, product)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestCatalogService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	name := "Renamed"
	update := models.ProductUpdate{Name: &name}

	mockRepo.On("Update", mock.Anything, "missing-id", update).
		Return(nil, repositories.ErrProductNotFound).Once()

	product, err := service.UpdateProduct(context.Background(), "missing-id", update)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Summary(t *testing.T) {
	t.Run("connected store with products", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewCatalogService(mockRepo, nil)

		mockRepo.On("Ping", mock.Anything).Return(nil).Once()
		mockRepo.On("Count", mock.Anything).Return(int64(7), nil).Once()

		summary := service.Summary(context.Background())

		assert.True(t, summary.DatabaseConnected)
		assert.Equal(t, int64(7), summary.TotalProducts)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unreachable store counts the sample set", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewCatalogService(mockRepo, nil)

		mockRepo.On("Ping", mock.Anything).Return(fmt.Errorf("connection refused")).Once()
		mockRepo.On("Count", mock.Anything).Return(int64(0), fmt.Errorf("connection refused")).Once()

		summary := service.Summary(context.Background())

		assert.False(t, summary.DatabaseConnected)
		assert.Equal(t, int64(4), summary.TotalProducts)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty store counts the sample set", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewCatalogService(mockRepo, nil)

		mockRepo.On("Ping", mock.Anything).Return(nil).Once()
		mockRepo.On("Count", mock.Anything).Return(int64(0), nil).Once()

		summary := service.Summary(context.Background())

		assert.True(t, summary.DatabaseConnected)
		assert.Equal(t, int64(4), summary.TotalProducts)
		mockRepo.AssertExpectations(t)
	})
}
