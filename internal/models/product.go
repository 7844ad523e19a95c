package models

import "time"

// Product represents a product in the catalogue.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2);not null;check:chk_products_price,price > 0"`
	Availability bool      `json:"availability" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewProduct returns a product that is available by default. The default is
// set here rather than through a gorm default tag, which would turn an
// explicit false into true on insert.
func NewProduct(name string, price float64) *Product {
	return &Product{
		Name:         name,
		Price:        price,
		Availability: true,
	}
}
