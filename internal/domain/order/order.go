package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/backend/internal/domain/shared"
)

// OrderItem is one frozen snapshot line of a placed order. The shop is
// denormalized onto the row so supplier-scoped queries stay indexed by
// (order, shop), and the unit price is the listing price captured at
// confirmation time.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_item_shop,priority:1"`
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_item_shop,priority:2"`
	ListingID   uuid.UUID       `gorm:"type:uuid;not null"`
	ExternalID  string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns quantity times the captured unit price
func (i *OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Snapshot carries the data captured from one cart item at confirmation
type Snapshot struct {
	ListingID   uuid.UUID
	ShopID      uuid.UUID
	ExternalID  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Order is a placed order: an immutable snapshot of cart contents plus a
// status that only ever moves forward. One order may span listings of
// several shops; each supplier sees only its own slice.
type Order struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	ContactID uuid.UUID   `gorm:"type:uuid;not null"`
	Status    Status      `gorm:"type:varchar(20);not null;default:'new'"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a placed order in state new from cart snapshots
func NewOrder(userID, contactID uuid.UUID, snapshots []Snapshot) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "User ID cannot be empty")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewValidationError("contact", "Contact ID cannot be empty")
	}
	if len(snapshots) == 0 {
		return nil, shared.NewValidationError("items", "Cannot place an order from an empty cart")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ContactID:         contactID,
		Status:            StatusNew,
	}

	now := time.Now()
	for _, s := range snapshots {
		if s.Quantity < 1 {
			return nil, shared.NewValidationError("quantity", "Quantity must be at least 1")
		}
		if s.UnitPrice.IsNegative() {
			return nil, shared.NewValidationError("price", "Captured price cannot be negative")
		}
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ShopID:      s.ShopID,
			ListingID:   s.ListingID,
			ExternalID:  s.ExternalID,
			ProductName: s.ProductName,
			Quantity:    s.Quantity,
			UnitPrice:   s.UnitPrice,
			CreatedAt:   now,
		})
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// AdvanceTo moves the order to the target status. Only the immediate
// successor is allowed: no skipping, no regression.
func (o *Order) AdvanceTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("status", fmt.Sprintf("Unknown status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewConflictError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	old := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}

// Total returns the order total over all captured items
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].Amount())
	}
	return total
}

// HasShopItems returns true if any item belongs to the given shop
func (o *Order) HasShopItems(shopID uuid.UUID) bool {
	for idx := range o.Items {
		if o.Items[idx].ShopID == shopID {
			return true
		}
	}
	return false
}

// ItemsForShop returns only the items belonging to the given shop
func (o *Order) ItemsForShop(shopID uuid.UUID) []OrderItem {
	var items []OrderItem
	for idx := range o.Items {
		if o.Items[idx].ShopID == shopID {
			items = append(items, o.Items[idx])
		}
	}
	return items
}

// RestrictToShop returns a copy of the order containing only the given
// shop's items, for partner-scoped reads
func (o *Order) RestrictToShop(shopID uuid.UUID) Order {
	scoped := *o
	scoped.Items = o.ItemsForShop(shopID)
	return scoped
}

// IsOwnedBy returns true if the order belongs to the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}
