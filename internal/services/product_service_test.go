package services_test

import (
	"context"
	"fmt"
	"testing"

	"products-api/internal/models"
	"products-api/internal/repositories"
	"products-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
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

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductEvent(ctx context.Context, event string, product models.Product) error {
	args := m.Called(ctx, event, product)
	return args.Error(0)
}

func notFound(id uint) error {
	return fmt.Errorf("product with ID %d: %w", id, repositories.ErrProductNotFound)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 2, Name: "Product B", Price: 20.0, Availability: true},
		{ID: 1, Name: "Product A", Price: 10.0, Availability: false},
	}

	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, notFound(99)).Once()
	product, err = service.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Teclado" && p.Price == 300 && p.Availability
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 7
	}).Return(nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, services.EventProductCreated, mock.AnythingOfType("models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), services.ProductInput{Name: "Teclado", Price: 300, Availability: true})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), product.ID)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProductRepositoryError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error")).Once()

	product, err := service.CreateProduct(context.Background(), services.ProductInput{Name: "Teclado", Price: 300})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	assert.Nil(t, product)
	publisher.AssertNotCalled(t, "PublishProductEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && p.Name == "Product A Updated" && p.Price == 12 && !p.Availability
	})).Return(nil).Once()

	product, err := service.UpdateProduct(context.Background(), 1, services.ProductInput{Name: "Product A Updated", Price: 12, Availability: false})
	assert.NoError(t, err)
	assert.Equal(t, "Product A Updated", product.Name)
	assert.False(t, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, notFound(99)).Once()

	_, err := service.UpdateProduct(context.Background(), 99, services.ProductInput{Name: "NonExistent", Price: 1})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_ToggleAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	stored := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil).Twice()
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()
	publisher.On("PublishProductEvent", mock.Anything, services.EventProductAvailabilityToggled, mock.Anything).Return(nil).Twice()

	product, err := service.ToggleAvailability(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, product.Availability)

	product, err = service.ToggleAvailability(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, product.Availability)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_ToggleAvailabilityPublishFailureIsIgnored(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Product{ID: 3, Name: "Mouse", Price: 5, Availability: false}, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("channel closed")).Once()

	product, err := service.ToggleAvailability(context.Background(), 3)
	assert.NoError(t, err)
	assert.True(t, product.Availability)
	publisher.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	stored := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil).Once()
	mockRepo.On("Delete", mock.Anything, stored).Return(nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, services.EventProductDeleted, *stored).Return(nil).Once()

	product, err := service.DeleteProduct(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, stored, product)

	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(nil, notFound(1)).Once()
	_, err = service.DeleteProduct(context.Background(), 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
