package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// FindByID finds a shop by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByName finds a shop by its unique name
	FindByName(ctx context.Context, name string) (*Shop, error)

	// FindBySupplier finds the shop owned by a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) (*Shop, error)

	// FindAccepting finds all shops currently accepting orders
	FindAccepting(ctx context.Context) ([]Shop, error)

	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories
	FindAll(ctx context.Context) ([]Category, error)

	// FindByShop finds all categories associated with a shop
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// AttachShop ensures the shop-category association exists.
	// Already-present associations are left untouched.
	AttachShop(ctx context.Context, categoryID, shopID uuid.UUID) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByNameAndCategory finds a product by its unique (name, category) pair
	FindByNameAndCategory(ctx context.Context, name string, categoryID uuid.UUID) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// ListingSearch narrows a listing query; zero values mean "no filter"
type ListingSearch struct {
	ShopID        uuid.UUID
	CategoryID    uuid.UUID
	AcceptingOnly bool
}

// ListingRepository defines the interface for product listing persistence
type ListingRepository interface {
	// FindByID finds a listing by its ID, parameters and product preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*ProductListing, error)

	// FindByIDs finds multiple listings by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductListing, error)

	// FindByIDsLocked finds multiple listings holding row locks until the
	// surrounding transaction ends. Must run inside a transaction.
	FindByIDsLocked(ctx context.Context, ids []uuid.UUID) ([]ProductListing, error)

	// FindByShop finds all listings of a shop ordered by external id
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]ProductListing, error)

	// FindByShopAndExternalID finds the shop's listing for a supplier SKU
	FindByShopAndExternalID(ctx context.Context, shopID uuid.UUID, externalID string) (*ProductListing, error)

	// Search finds listings matching the search, with pagination
	Search(ctx context.Context, search ListingSearch, filter shared.Filter) ([]ProductListing, int64, error)

	// Save creates or updates a listing
	Save(ctx context.Context, listing *ProductListing) error

	// ReplaceParameters swaps a listing's parameter-value set wholesale
	// (delete-then-insert)
	ReplaceParameters(ctx context.Context, listingID uuid.UUID, values []ListingParameterValue) error

	// DeleteByShopExcept deletes the shop's listings whose external id is not
	// in keep, along with their parameter values, and returns the ids of the
	// deleted listings
	DeleteByShopExcept(ctx context.Context, shopID uuid.UUID, keep []string) ([]uuid.UUID, error)
}

// ParameterRepository defines the interface for parameter name persistence
type ParameterRepository interface {
	// FindOrCreate resolves a parameter by name, creating it if absent
	FindOrCreate(ctx context.Context, name string) (*Parameter, error)
}
