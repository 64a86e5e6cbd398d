package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/backend/internal/domain/catalog"
)

// ImportResult summarizes one committed feed import
type ImportResult struct {
	ShopID           uuid.UUID `json:"shop_id"`
	ShopName         string    `json:"shop_name"`
	ListingsCreated  int       `json:"listings_created"`
	ListingsUpdated  int       `json:"listings_updated"`
	ListingsDeleted  int       `json:"listings_deleted"`
	CartItemsRemoved int64     `json:"cart_items_removed"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// ShopResponseFromDomain maps a shop aggregate to its response
func ShopResponseFromDomain(shop *catalog.Shop) ShopResponse {
	return ShopResponse{
		ID:              shop.ID,
		Name:            shop.Name,
		AcceptingOrders: shop.AcceptingOrders,
	}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryResponseFromDomain maps a category to its response
func CategoryResponseFromDomain(category *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}

// ListingParameterResponse is one parameter name/value pair on a listing
type ListingParameterResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListingResponse represents a product listing in API responses
type ListingResponse struct {
	ID          uuid.UUID                  `json:"id"`
	ShopID      uuid.UUID                  `json:"shop_id"`
	ShopName    string                     `json:"shop_name,omitempty"`
	ProductID   uuid.UUID                  `json:"product_id"`
	ProductName string                     `json:"product_name,omitempty"`
	ExternalID  string                     `json:"external_id"`
	Model       string                     `json:"model"`
	Price       decimal.Decimal            `json:"price"`
	PriceRRC    decimal.Decimal            `json:"price_rrc"`
	Quantity    int                        `json:"quantity"`
	Parameters  []ListingParameterResponse `json:"parameters,omitempty"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// ListingResponseFromDomain maps a listing with its preloaded associations
func ListingResponseFromDomain(listing *catalog.ProductListing) ListingResponse {
	params := make([]ListingParameterResponse, 0, len(listing.Parameters))
	for _, p := range listing.Parameters {
		params = append(params, ListingParameterResponse{
			Name:  p.Parameter.Name,
			Value: p.Value,
		})
	}

	return ListingResponse{
		ID:          listing.ID,
		ShopID:      listing.ShopID,
		ShopName:    listing.Shop.Name,
		ProductID:   listing.ProductID,
		ProductName: listing.Product.Name,
		ExternalID:  listing.ExternalID,
		Model:       listing.Model,
		Price:       listing.Price,
		PriceRRC:    listing.PriceRRC,
		Quantity:    listing.Quantity,
		Parameters:  params,
		UpdatedAt:   listing.UpdatedAt,
	}
}

// ListingListFilter represents query options for the public catalog listing
type ListingListFilter struct {
	ShopID     *uuid.UUID `form:"shop_id"`
	CategoryID *uuid.UUID `form:"category_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page,default=1"`
	PageSize   int        `form:"page_size,default=20"`
}
