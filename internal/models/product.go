package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Price        float64   `json:"price" gorm:"not null;check:chk_products_price,price > 0"`
	Availability bool      `json:"availability" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// ProductFields are the mutable attributes of a product.
type ProductFields struct {
	Name         string
	Price        float64
	Availability bool
}
