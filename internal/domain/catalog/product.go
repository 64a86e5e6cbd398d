package catalog

import (
	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Product is the canonical, shop-independent catalog entity.
// Listings from different shops may reference the same product.
type Product struct {
	shared.BaseAggregateRoot
	Name       string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_product_name_category,priority:1"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_name_category,priority:2;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in the given category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewValidationError("category", "Product category cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CategoryID:        categoryID,
	}, nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Product name cannot exceed 200 characters")
	}
	return nil
}
