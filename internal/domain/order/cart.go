package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// CartItem is one listing reference with a quantity inside a cart
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_listing,priority:1"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_listing,priority:2"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart is a user's open basket. Exactly one open cart exists per user; it is
// created lazily on first add and emptied, not deleted, on order confirmation.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates a new empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
	}, nil
}

// UpsertItem sets the quantity for a listing, inserting the item if absent
func (c *Cart) UpsertItem(listingID uuid.UUID, quantity int) error {
	if listingID == uuid.Nil {
		return shared.NewValidationError("listing_id", "Listing ID cannot be empty")
	}
	if quantity < 1 {
		return shared.NewValidationError("quantity", "Quantity must be at least 1")
	}

	now := time.Now()
	for idx := range c.Items {
		if c.Items[idx].ListingID == listingID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = now
			c.UpdatedAt = now
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ListingID: listingID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.UpdatedAt = now
	return nil
}

// RemoveItems deletes matching items. Removing an absent listing is a no-op;
// the returned count covers items actually removed.
func (c *Cart) RemoveItems(listingIDs []uuid.UUID) int {
	remove := make(map[uuid.UUID]bool, len(listingIDs))
	for _, id := range listingIDs {
		remove[id] = true
	}

	kept := c.Items[:0]
	removed := 0
	for _, item := range c.Items {
		if remove[item.ListingID] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	if removed > 0 {
		c.UpdatedAt = time.Now()
	}
	return removed
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IsOwnedBy returns true if the cart belongs to the given user
func (c *Cart) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}
