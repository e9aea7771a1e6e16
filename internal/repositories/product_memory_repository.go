package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"tienda/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[int64]models.Product
	lastID   int64
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]models.Product),
	}
}

// FindByID returns a product by its ID.
func (r *MemoryProductRepository) FindByID(_ context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// FindAll returns all products, highest ID first.
func (r *MemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		p.CreatedAt = time.Time{}
		p.UpdatedAt = time.Time{}
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID > productList[j].ID
	})
	return productList, nil
}

// Create adds a new product under the next ID. IDs are never reused.
func (r *MemoryProductRepository) Create(_ context.Context, fields models.ProductFields) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now()
	product := models.Product{
		ID:           r.lastID,
		Name:         fields.Name,
		Price:        fields.Price,
		Availability: fields.Availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.products[product.ID] = product
	return &product, nil
}

// Replace modifies an existing product.
func (r *MemoryProductRepository) Replace(_ context.Context, id int64, fields models.ProductFields) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product.Name = fields.Name
	product.Price = fields.Price
	product.Availability = fields.Availability
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// ToggleAvailability flips the availability flag under the write lock.
func (r *MemoryProductRepository) ToggleAvailability(_ context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product.Availability = !product.Availability
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
