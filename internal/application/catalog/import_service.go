package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/shared"
	"github.com/procurehub/backend/internal/infrastructure/feed"
)

// ImportService reconciles a supplier's price feed into the catalog. One
// import is one transaction: either the whole feed applies or the prior
// catalog state stays untouched.
type ImportService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(txScope TransactionScope, logger *zap.Logger) *ImportService {
	return &ImportService{txScope: txScope, logger: logger}
}

// Import applies a parsed feed for the supplier's shop. The feed is
// authoritative for the shop's assortment: listings present are upserted
// keyed by (shop, external id), listings absent are deleted together with
// their parameter values and evicted from open carts. Re-importing an
// unchanged feed produces no net change.
func (s *ImportService) Import(ctx context.Context, supplierID uuid.UUID, f *feed.Feed) (*ImportResult, error) {
	if err := feed.Validate(f); err != nil {
		return nil, err
	}

	var result *ImportResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := s.reconcile(ctx, repos, supplierID, f)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog feed imported",
		zap.String("shop_id", result.ShopID.String()),
		zap.String("shop", result.ShopName),
		zap.Int("created", result.ListingsCreated),
		zap.Int("updated", result.ListingsUpdated),
		zap.Int("deleted", result.ListingsDeleted),
		zap.Int64("cart_items_removed", result.CartItemsRemoved),
	)
	return result, nil
}

func (s *ImportService) reconcile(ctx context.Context, repos TransactionalRepositories, supplierID uuid.UUID, f *feed.Feed) (*ImportResult, error) {
	shop, err := s.resolveShop(ctx, repos, supplierID, f.Shop)
	if err != nil {
		return nil, err
	}

	categoryIDs, err := s.resolveCategories(ctx, repos, shop, f.Categories)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{ShopID: shop.ID, ShopName: shop.Name}
	keep := make([]string, 0, len(f.Goods))

	for i := range f.Goods {
		good := &f.Goods[i]
		created, err := s.upsertListing(ctx, repos, shop, categoryIDs[good.Category], good)
		if err != nil {
			return nil, err
		}
		if created {
			result.ListingsCreated++
		} else {
			result.ListingsUpdated++
		}
		keep = append(keep, string(good.ID))
	}

	// The feed is the shop's full assortment: everything else goes, and
	// carts holding deleted listings shrink with it
	deletedIDs, err := repos.ListingRepo().DeleteByShopExcept(ctx, shop.ID, keep)
	if err != nil {
		return nil, err
	}
	result.ListingsDeleted = len(deletedIDs)

	if len(deletedIDs) > 0 {
		removed, err := repos.CartRepo().DeleteItemsByListings(ctx, deletedIDs)
		if err != nil {
			return nil, err
		}
		result.CartItemsRemoved = removed
	}

	event := catalog.NewCatalogImportedEvent(shop,
		result.ListingsCreated, result.ListingsUpdated, result.ListingsDeleted)
	if err := repos.OutboxSaver().SaveEvents(ctx, event); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveShop finds or creates the shop named by the feed. A feed naming
// another supplier's shop is rejected before any mutation.
func (s *ImportService) resolveShop(ctx context.Context, repos TransactionalRepositories, supplierID uuid.UUID, name string) (*catalog.Shop, error) {
	shop, err := repos.ShopRepo().FindByName(ctx, name)
	if err == nil {
		if !shop.IsOwnedBy(supplierID) {
			return nil, shared.NewAuthorizationError("Shop belongs to another supplier")
		}
		return shop, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shop, err = catalog.NewShop(supplierID, name)
	if err != nil {
		return nil, err
	}
	if err := repos.ShopRepo().Save(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// resolveCategories finds or creates categories by name and ensures the
// shop association exists. Associations are additive: categories missing
// from this feed keep their link to the shop.
func (s *ImportService) resolveCategories(ctx context.Context, repos TransactionalRepositories, shop *catalog.Shop, categories []feed.Category) (map[int64]uuid.UUID, error) {
	ids := make(map[int64]uuid.UUID, len(categories))

	for _, fc := range categories {
		category, err := repos.CategoryRepo().FindByName(ctx, fc.Name)
		if errors.Is(err, shared.ErrNotFound) {
			category, err = catalog.NewCategory(fc.Name)
			if err != nil {
				return nil, err
			}
			if err := repos.CategoryRepo().Save(ctx, category); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		if err := repos.CategoryRepo().AttachShop(ctx, category.ID, shop.ID); err != nil {
			return nil, err
		}
		ids[fc.ID] = category.ID
	}
	return ids, nil
}

// upsertListing reconciles one good. An existing (shop, external id) listing
// is overwritten in place so its id, and with it any captured cart or order
// reference, survives the import. Returns true when a new listing was created.
func (s *ImportService) upsertListing(ctx context.Context, repos TransactionalRepositories, shop *catalog.Shop, categoryID uuid.UUID, good *feed.Good) (bool, error) {
	product, err := s.resolveProduct(ctx, repos, good.Name, categoryID)
	if err != nil {
		return false, err
	}

	externalID := string(good.ID)
	listing, err := repos.ListingRepo().FindByShopAndExternalID(ctx, shop.ID, externalID)

	var created bool
	switch {
	case err == nil:
		if err := listing.UpdateOffer(product.ID, good.Model, good.Price.Decimal, good.PriceRRC.Decimal, good.Quantity); err != nil {
			return false, err
		}
	case errors.Is(err, shared.ErrNotFound):
		listing, err = catalog.NewProductListing(shop.ID, product.ID, externalID, good.Model,
			good.Price.Decimal, good.PriceRRC.Decimal, good.Quantity)
		if err != nil {
			return false, err
		}
		created = true
	default:
		return false, err
	}

	if err := repos.ListingRepo().Save(ctx, listing); err != nil {
		return false, err
	}

	values, err := s.resolveParameters(ctx, repos, good.Parameters)
	if err != nil {
		return false, err
	}
	if err := repos.ListingRepo().ReplaceParameters(ctx, listing.ID, values); err != nil {
		return false, err
	}
	return created, nil
}

func (s *ImportService) resolveProduct(ctx context.Context, repos TransactionalRepositories, name string, categoryID uuid.UUID) (*catalog.Product, error) {
	product, err := repos.ProductRepo().FindByNameAndCategory(ctx, name, categoryID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err = catalog.NewProduct(name, categoryID)
	if err != nil {
		return nil, err
	}
	if err := repos.ProductRepo().Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// resolveParameters deduplicates parameter names globally and builds the
// value rows in deterministic name order.
func (s *ImportService) resolveParameters(ctx context.Context, repos TransactionalRepositories, params map[string]feed.Scalar) ([]catalog.ListingParameterValue, error) {
	if len(params) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]catalog.ListingParameterValue, 0, len(names))
	for _, name := range names {
		parameter, err := repos.ParameterRepo().FindOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		values = append(values, catalog.ListingParameterValue{
			BaseEntity:  shared.NewBaseEntity(),
			ParameterID: parameter.ID,
			Value:       string(params[name]),
		})
	}
	return values, nil
}
