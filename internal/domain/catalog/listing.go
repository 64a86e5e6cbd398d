package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Parameter is a globally deduplicated parameter name.
// Values are bound per listing; names are shared across the whole catalog.
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new parameter name
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewValidationError("parameter", "Parameter name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("parameter", "Parameter name cannot exceed 100 characters")
	}
	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ListingParameterValue binds a parameter value to one listing
type ListingParameterValue struct {
	shared.BaseEntity
	ListingID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_parameter,priority:1"`
	ParameterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_parameter,priority:2"`
	Parameter   Parameter `gorm:"foreignKey:ParameterID"`
	Value       string    `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ListingParameterValue) TableName() string {
	return "listing_parameter_values"
}

// ProductListing is one shop's offer of a product: the supplier's own SKU
// plus price, recommended retail price and quantity.
// At most one listing exists per (shop, external id) pair.
type ProductListing struct {
	shared.BaseAggregateRoot
	ShopID     uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_listing_shop_external,priority:1;index"`
	Shop       Shop                    `gorm:"foreignKey:ShopID"`
	ProductID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Product    Product                 `gorm:"foreignKey:ProductID"`
	ExternalID string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_listing_shop_external,priority:2"`
	Model      string                  `gorm:"type:varchar(100)"`
	Price      decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	PriceRRC   decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity   int                     `gorm:"not null;default:0"`
	Parameters []ListingParameterValue `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductListing) TableName() string {
	return "product_listings"
}

// NewProductListing creates a new listing for a shop
func NewProductListing(shopID, productID uuid.UUID, externalID, model string, price, priceRRC decimal.Decimal, quantity int) (*ProductListing, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewValidationError("shop", "Shop ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product", "Product ID cannot be empty")
	}
	if externalID == "" {
		return nil, shared.NewValidationError("id", "External ID cannot be empty")
	}
	if err := validateOffer(price, priceRRC, quantity); err != nil {
		return nil, err
	}

	return &ProductListing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShopID:            shopID,
		ProductID:         productID,
		ExternalID:        externalID,
		Model:             model,
		Price:             price,
		PriceRRC:          priceRRC,
		Quantity:          quantity,
	}, nil
}

// UpdateOffer overwrites the mutable feed fields in place, preserving the
// listing id so captured cart and order references stay valid.
func (l *ProductListing) UpdateOffer(productID uuid.UUID, model string, price, priceRRC decimal.Decimal, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewValidationError("product", "Product ID cannot be empty")
	}
	if err := validateOffer(price, priceRRC, quantity); err != nil {
		return err
	}

	l.ProductID = productID
	l.Model = model
	l.Price = price
	l.PriceRRC = priceRRC
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// ReplaceParameters swaps the listing's parameter-value set wholesale
func (l *ProductListing) ReplaceParameters(values []ListingParameterValue) {
	for i := range values {
		values[i].ListingID = l.ID
	}
	l.Parameters = values
	l.UpdatedAt = time.Now()
}

func validateOffer(price, priceRRC decimal.Decimal, quantity int) error {
	if price.IsNegative() {
		return shared.NewValidationError("price", "Price cannot be negative")
	}
	if priceRRC.IsNegative() {
		return shared.NewValidationError("price_rrc", "Recommended retail price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewValidationError("quantity", "Quantity cannot be negative")
	}
	return nil
}
