package catalog

import (
	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeShop = "Shop"
)

// Event type constants
const (
	EventTypeShopAcceptanceChanged = "ShopAcceptanceChanged"
	EventTypeCatalogImported       = "CatalogImported"
)

// ShopAcceptanceChangedEvent is published when a supplier toggles the
// accepting-orders flag
type ShopAcceptanceChangedEvent struct {
	shared.BaseDomainEvent
	ShopID          uuid.UUID `json:"shop_id"`
	ShopName        string    `json:"shop_name"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// NewShopAcceptanceChangedEvent creates a new ShopAcceptanceChangedEvent
func NewShopAcceptanceChangedEvent(shop *Shop) *ShopAcceptanceChangedEvent {
	return &ShopAcceptanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopAcceptanceChanged, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		AcceptingOrders: shop.AcceptingOrders,
	}
}

// CatalogImportedEvent is published after a feed import commits for a shop
type CatalogImportedEvent struct {
	shared.BaseDomainEvent
	ShopID          uuid.UUID `json:"shop_id"`
	ShopName        string    `json:"shop_name"`
	ListingsCreated int       `json:"listings_created"`
	ListingsUpdated int       `json:"listings_updated"`
	ListingsDeleted int       `json:"listings_deleted"`
}

// NewCatalogImportedEvent creates a new CatalogImportedEvent
func NewCatalogImportedEvent(shop *Shop, created, updated, deleted int) *CatalogImportedEvent {
	return &CatalogImportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogImported, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		ListingsCreated: created,
		ListingsUpdated: updated,
		ListingsDeleted: deleted,
	}
}
