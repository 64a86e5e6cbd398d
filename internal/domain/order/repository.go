package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID, items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByUser finds the user's open cart, items preloaded
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// FindOrCreateByUser resolves the user's open cart, creating an empty
	// one lazily on first use
	FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the cart and its items, deleting rows removed in memory
	Save(ctx context.Context, cart *Cart) error

	// DeleteItemsByListings removes cart items referencing any of the given
	// listings from every open cart. Used when a feed import deletes listings.
	DeleteItemsByListings(ctx context.Context, listingIDs []uuid.UUID) (int64, error)
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDLocked finds an order with a row lock for status advancement
	FindByIDLocked(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds orders owned by a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// FindByShop finds orders containing at least one item of the shop,
	// newest first. Items are NOT restricted here; callers scope them.
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// Save persists the order and its items
	Save(ctx context.Context, o *Order) error

	// SaveWithEvents persists the order and writes its domain events to the
	// outbox within the same transaction
	SaveWithEvents(ctx context.Context, o *Order, events []shared.DomainEvent) error
}
