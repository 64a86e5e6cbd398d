package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
)

// CartService handles the customer's open cart
type CartService struct {
	cartRepo    order.CartRepository
	listingRepo catalog.ListingRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo order.CartRepository, listingRepo catalog.ListingRepository) *CartService {
	return &CartService{cartRepo: cartRepo, listingRepo: listingRepo}
}

// GetCart returns the user's open cart with listing metadata and a computed
// total. The cart is created lazily on first read.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

// UpsertItems applies a batch of quantity upserts with per-item outcomes.
// Items referencing unknown listings or carrying bad quantities are reported
// individually; the valid rest of the batch still applies.
func (s *CartService) UpsertItems(ctx context.Context, userID uuid.UUID, items []CartItemRequest) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, shared.NewValidationError("items", "At least one item is required")
	}

	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	known, err := s.knownListings(ctx, items)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Outcomes: make([]CartItemOutcome, 0, len(items))}
	for _, item := range items {
		outcome := CartItemOutcome{ListingID: item.ListingID}

		if _, ok := known[item.ListingID]; !ok {
			outcome.Error = "listing not found"
		} else if err := cart.UpsertItem(item.ListingID, item.Quantity); err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Applied = true
		}

		if outcome.Applied {
			result.Applied++
		} else {
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if result.Applied > 0 {
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// RemoveItems deletes the given listings from the cart. Absent listings are
// a no-op, not an error.
func (s *CartService) RemoveItems(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (*RemoveResult, error) {
	if len(listingIDs) == 0 {
		return nil, shared.NewValidationError("items", "At least one listing id is required")
	}

	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed := cart.RemoveItems(listingIDs)
	if removed > 0 {
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return &RemoveResult{Removed: removed}, nil
}

func (s *CartService) knownListings(ctx context.Context, items []CartItemRequest) (map[uuid.UUID]catalog.ProductListing, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ListingID)
	}

	listings, err := s.listingRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	known := make(map[uuid.UUID]catalog.ProductListing, len(listings))
	for _, l := range listings {
		known[l.ID] = l
	}
	return known, nil
}

func (s *CartService) buildResponse(ctx context.Context, cart *order.Cart) (*CartResponse, error) {
	resp := &CartResponse{
		ID:    cart.ID,
		Items: make([]CartItemResponse, 0, len(cart.Items)),
		Total: decimal.Zero,
	}
	if len(cart.Items) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ListingID)
	}
	listings, err := s.listingRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.ProductListing, len(listings))
	for i := range listings {
		byID[listings[i].ID] = &listings[i]
	}

	for _, item := range cart.Items {
		listing, ok := byID[item.ListingID]
		if !ok {
			// Listing deleted by a concurrent import; the row is gone on
			// the next write, skip it here
			continue
		}

		amount := listing.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Items = append(resp.Items, CartItemResponse{
			ListingID:   item.ListingID,
			ShopID:      listing.ShopID,
			ShopName:    listing.Shop.Name,
			ProductName: listing.Product.Name,
			ExternalID:  listing.ExternalID,
			Price:       listing.Price,
			Quantity:    item.Quantity,
			Amount:      amount,
		})
		resp.Total = resp.Total.Add(amount)
	}
	return resp, nil
}
