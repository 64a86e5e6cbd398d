package catalog

import (
	"time"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Category represents a product category in the catalog.
// A category may be offered by multiple shops; the association is additive
// and never pruned by feed imports.
type Category struct {
	shared.BaseAggregateRoot
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Shops []Shop `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("category", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("category", "Category name cannot exceed 100 characters")
	}
	return nil
}
