package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/shared"
	"github.com/procurehub/backend/internal/infrastructure/feed"
)

// ExportService serializes a shop's current assortment back into the feed
// shape the importer consumes. Exporting and re-importing a shop is a no-op.
type ExportService struct {
	shopRepo     catalog.ShopRepository
	categoryRepo catalog.CategoryRepository
	listingRepo  catalog.ListingRepository
}

// NewExportService creates a new ExportService
func NewExportService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	listingRepo catalog.ListingRepository,
) *ExportService {
	return &ExportService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		listingRepo:  listingRepo,
	}
}

// Export builds the feed document for the supplier's shop. Category ids are
// document-local: goods reference them to name their category, and the
// importer matches categories by name, so synthesized ids round-trip cleanly.
func (s *ExportService) Export(ctx context.Context, supplierID, shopID uuid.UUID) (*feed.Feed, error) {
	shop, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !shop.IsOwnedBy(supplierID) {
		return nil, shared.NewAuthorizationError("Shop belongs to another supplier")
	}

	categories, err := s.categoryRepo.FindByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	listings, err := s.listingRepo.FindByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	f := &feed.Feed{
		Shop:       shop.Name,
		Categories: make([]feed.Category, 0, len(categories)),
		Goods:      make([]feed.Good, 0, len(listings)),
	}

	categoryIDs := make(map[uuid.UUID]int64, len(categories))
	for i, c := range categories {
		id := int64(i + 1)
		categoryIDs[c.ID] = id
		f.Categories = append(f.Categories, feed.Category{ID: id, Name: c.Name})
	}

	for i := range listings {
		listing := &listings[i]

		params := make(map[string]feed.Scalar, len(listing.Parameters))
		for _, p := range listing.Parameters {
			params[p.Parameter.Name] = feed.Scalar(p.Value)
		}
		if len(params) == 0 {
			params = nil
		}

		f.Goods = append(f.Goods, feed.Good{
			ID:         feed.Scalar(listing.ExternalID),
			Category:   categoryIDs[listing.Product.CategoryID],
			Model:      listing.Model,
			Name:       listing.Product.Name,
			Price:      feed.NewMoney(listing.Price),
			PriceRRC:   feed.NewMoney(listing.PriceRRC),
			Quantity:   listing.Quantity,
			Parameters: params,
		})
	}

	return f, nil
}
