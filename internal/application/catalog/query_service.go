package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/shared"
)

// QueryService serves the public, read-only catalog surface
type QueryService struct {
	shopRepo     catalog.ShopRepository
	categoryRepo catalog.CategoryRepository
	listingRepo  catalog.ListingRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	listingRepo catalog.ListingRepository,
) *QueryService {
	return &QueryService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		listingRepo:  listingRepo,
	}
}

// ListShops returns all shops currently accepting orders
func (s *QueryService) ListShops(ctx context.Context) ([]ShopResponse, error) {
	shops, err := s.shopRepo.FindAccepting(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		responses = append(responses, ShopResponseFromDomain(&shops[i]))
	}
	return responses, nil
}

// ListCategories returns all categories
func (s *QueryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, CategoryResponseFromDomain(&categories[i]))
	}
	return responses, nil
}

// GetListing returns one listing with its parameters
func (s *QueryService) GetListing(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ListingResponseFromDomain(listing)
	return &resp, nil
}

// SearchListings returns listings of accepting shops matching the filter.
// Customers only see what can currently be ordered.
func (s *QueryService) SearchListings(ctx context.Context, filter ListingListFilter) (*shared.Paginated[ListingResponse], error) {
	search := catalog.ListingSearch{AcceptingOnly: true}
	if filter.ShopID != nil {
		search.ShopID = *filter.ShopID
	}
	if filter.CategoryID != nil {
		search.CategoryID = *filter.CategoryID
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	listings, total, err := s.listingRepo.Search(ctx, search, shared.Filter{
		Page:     page,
		PageSize: pageSize,
		Search:   filter.Search,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, ListingResponseFromDomain(&listings[i]))
	}

	result := shared.NewPaginated(responses, total, page, pageSize)
	return &result, nil
}
