package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	// FindAll returns every product, newest ID first, without bookkeeping timestamps.
	FindAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, fields models.ProductFields) (*models.Product, error)
	Replace(ctx context.Context, id int64, fields models.ProductFields) (*models.Product, error)
	ToggleAvailability(ctx context.Context, id int64) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}
