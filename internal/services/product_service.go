package services

import (
	"context"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"go.uber.org/zap"
)

// Product event types published after successful mutations.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityToggled = "product.availability_toggled"
	EventProductDeleted             = "product.deleted"
)

// EventPublisher publishes product change events to a broker.
type EventPublisher interface {
	PublishProductEvent(eventType string, payload interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListProducts retrieves all products, newest first.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct creates a new, available product.
func (s *ProductService) CreateProduct(ctx context.Context, name string, price float64) (*models.Product, error) {
	product, err := s.repo.Create(ctx, models.ProductFields{
		Name:         name,
		Price:        price,
		Availability: true,
	})
	if err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, product)
	return product, nil
}

// UpdateProduct replaces name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, fields models.ProductFields) (*models.Product, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	product, err := s.repo.Replace(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// ToggleAvailability flips the availability of an existing product.
func (s *ProductService) ToggleAvailability(ctx context.Context, id int64) (*models.Product, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	product, err := s.repo.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductAvailabilityToggled, product)
	return product, nil
}

// DeleteProduct deletes an existing product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, product)
	return nil
}

// publish is best effort: the change is already committed.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(eventType, product); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("type", eventType),
			zap.Int64("product_id", product.ID),
			zap.Error(err),
		)
	}
}
