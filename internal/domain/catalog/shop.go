package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Shop represents a supplier's storefront in the catalog.
// It is owned by exactly one supplier account and is never deleted while
// listings reference it.
type Shop struct {
	shared.BaseAggregateRoot
	Name            string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	SupplierID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AcceptingOrders bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop owned by the given supplier
func NewShop(supplierID uuid.UUID, name string) (*Shop, error) {
	if err := validateShopName(name); err != nil {
		return nil, err
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplier_id", "Supplier ID cannot be empty")
	}

	shop := &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SupplierID:        supplierID,
		AcceptingOrders:   true,
	}
	return shop, nil
}

// Rename updates the shop name
func (s *Shop) Rename(name string) error {
	if err := validateShopName(name); err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetAcceptingOrders flips the accepting-orders flag.
// Already-placed orders are unaffected.
func (s *Shop) SetAcceptingOrders(accepting bool) {
	if s.AcceptingOrders == accepting {
		return
	}
	s.AcceptingOrders = accepting
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewShopAcceptanceChangedEvent(s))
}

// IsOwnedBy returns true if the shop belongs to the given supplier
func (s *Shop) IsOwnedBy(supplierID uuid.UUID) bool {
	return s.SupplierID == supplierID
}

func validateShopName(name string) error {
	if name == "" {
		return shared.NewValidationError("shop", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("shop", "Shop name cannot exceed 100 characters")
	}
	return nil
}
