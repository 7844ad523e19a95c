package services

import (
	"context"
	"fmt"

	"products-api/internal/models"
	"products-api/internal/repositories"

	"go.uber.org/zap"
)

// Product event names published after successful mutations.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityToggled = "product.availability_toggled"
	EventProductDeleted             = "product.deleted"
)

// EventPublisher sends product events to a broker.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event string, product models.Product) error
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name         string
	Price        float64
	Availability bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       zap.L().Named("products"),
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct persists a new product built from input.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := models.NewProduct(input.Name, input.Price)
	product.Availability = input.Availability

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductCreated, product)
	return product, nil
}

// UpdateProduct overwrites name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Availability = input.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductUpdated, product)
	return product, nil
}

// ToggleAvailability negates the stored availability. Calling it twice
// restores the original value.
func (s *ProductService) ToggleAvailability(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Availability = !product.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductAvailabilityToggled, product)
	return product, nil
}

// DeleteProduct removes a product and returns the record as it was before deletion.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.publish(ctx, EventProductDeleted, product)
	return product, nil
}

// publish is best effort: a broker failure never fails the request.
func (s *ProductService) publish(ctx context.Context, event string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(ctx, event, *product); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("event", event),
			zap.Uint("product_id", product.ID),
			zap.Error(err),
		)
	}
}
