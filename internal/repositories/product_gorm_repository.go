package repositories

import (
	"context"
	"errors"
	"fmt"

	"tienda/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	return findByID(r.db.WithContext(ctx), id)
}

// FindAll retrieves all products ordered by ID descending.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).
		Select("id", "name", "price", "availability").
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// Create inserts a new product; the database assigns its ID.
func (r *GORMProductRepository) Create(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	product := models.Product{
		Name:         fields.Name,
		Price:        fields.Price,
		Availability: fields.Availability,
	}
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Replace overwrites name, price and availability of an existing product.
func (r *GORMProductRepository) Replace(ctx context.Context, id int64, fields models.ProductFields) (*models.Product, error) {
	var product *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A map keeps false and other zero values in the UPDATE statement.
		res := tx.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":         fields.Name,
			"price":        fields.Price,
			"availability": fields.Availability,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update product %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		var err error
		product, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ToggleAvailability flips the availability flag with a single conditional
// UPDATE, so concurrent toggles on the same row serialize in the database.
func (r *GORMProductRepository) ToggleAvailability(ctx context.Context, id int64) (*models.Product, error) {
	var product *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", id).
			Update("availability", gorm.Expr("NOT availability"))
		if res.Error != nil {
			return fmt.Errorf("failed to toggle availability of product %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		var err error
		product, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func findByID(db *gorm.DB, id int64) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}
