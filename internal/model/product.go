package model

import (
	"time"

	"github.com/google/uuid"
)

// Product categories form a closed set; anything else is rejected at
// create/update time.
const (
	CategorySarees      = "sarees"
	CategoryKurtis      = "kurtis"
	CategoryDresses     = "dresses"
	CategoryLehengas    = "lehengas"
	CategoryAccessories = "accessories"
	CategoryJewellery   = "jewellery"
)

// Categories lists all valid product categories.
var Categories = []string{
	CategorySarees,
	CategoryKurtis,
	CategoryDresses,
	CategoryLehengas,
	CategoryAccessories,
	CategoryJewellery,
}

// ValidCategory reports whether c is a known product category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ImageVariation is an optional per-colour image set for a product.
type ImageVariation struct {
	Color  string   `json:"color"`
	Images []string `json:"images"`
}

// Product represents a catalogue entry.
type Product struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	Price       float64          `json:"price" db:"price"`
	Stock       int              `json:"stock" db:"stock"`
	Category    string           `json:"category" db:"category"`
	Sizes       []string         `json:"sizes" db:"sizes"`
	Images      []string         `json:"images" db:"images"`
	Variations  []ImageVariation `json:"variations,omitempty" db:"variations"`
	IsActive    bool             `json:"isActive" db:"is_active"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category"`
	Sizes       []string         `json:"sizes"`
	Images      []string         `json:"images"`
	Variations  []ImageVariation `json:"variations,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}
