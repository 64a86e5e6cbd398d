package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/shared"
)

// GormListingRepository implements ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID, parameters and product preloaded
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductListing, error) {
	var listing catalog.ProductListing
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Shop").
		Preload("Parameters.Parameter").
		First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// FindByIDs finds multiple listings by their IDs
func (r *GormListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductListing, error) {
	if len(ids) == 0 {
		return []catalog.ProductListing{}, nil
	}

	var listings []catalog.ProductListing
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Shop").
		Where("id IN ?", ids).
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByIDsLocked finds multiple listings holding row locks until the
// surrounding transaction ends. Associations are loaded by follow-up
// queries; only the listing rows themselves are locked.
func (r *GormListingRepository) FindByIDsLocked(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductListing, error) {
	if len(ids) == 0 {
		return []catalog.ProductListing{}, nil
	}

	var listings []catalog.ProductListing
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&listings).Error; err != nil {
		return nil, err
	}

	for i := range listings {
		if err := r.db.WithContext(ctx).
			First(&listings[i].Shop, "id = ?", listings[i].ShopID).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).
			First(&listings[i].Product, "id = ?", listings[i].ProductID).Error; err != nil {
			return nil, err
		}
	}
	return listings, nil
}

// FindByShop finds all listings of a shop ordered by external id
func (r *GormListingRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]catalog.ProductListing, error) {
	var listings []catalog.ProductListing
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Parameters.Parameter").
		Where("shop_id = ?", shopID).
		Order("external_id ASC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByShopAndExternalID finds the shop's listing for a supplier SKU
func (r *GormListingRepository) FindByShopAndExternalID(ctx context.Context, shopID uuid.UUID, externalID string) (*catalog.ProductListing, error) {
	var listing catalog.ProductListing
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND external_id = ?", shopID, externalID).
		First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// Search finds listings matching the search, with pagination
func (r *GormListingRepository) Search(ctx context.Context, search catalog.ListingSearch, filter shared.Filter) ([]catalog.ProductListing, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.ProductListing{})
	query = r.applySearch(query, search, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applyOrdering(query, filter)
	if filter.Paginates() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var listings []catalog.ProductListing
	if err := query.
		Preload("Product").
		Preload("Shop").
		Preload("Parameters.Parameter").
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// Save creates or updates a listing. Parameter values are managed
// separately through ReplaceParameters.
func (r *GormListingRepository) Save(ctx context.Context, listing *catalog.ProductListing) error {
	return r.db.WithContext(ctx).
		Omit("Shop", "Product", "Parameters").
		Save(listing).Error
}

// ReplaceParameters swaps a listing's parameter-value set wholesale
func (r *GormListingRepository) ReplaceParameters(ctx context.Context, listingID uuid.UUID, values []catalog.ListingParameterValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("listing_id = ?", listingID).
			Delete(&catalog.ListingParameterValue{}).Error; err != nil {
			return err
		}
		if len(values) == 0 {
			return nil
		}
		for i := range values {
			values[i].ListingID = listingID
		}
		return tx.Omit("Parameter").Create(&values).Error
	})
}

// DeleteByShopExcept deletes the shop's listings whose external id is not
// in keep, along with their parameter values, and returns the ids of the
// deleted listings
func (r *GormListingRepository) DeleteByShopExcept(ctx context.Context, shopID uuid.UUID, keep []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&catalog.ProductListing{}).Where("shop_id = ?", shopID)
		if len(keep) > 0 {
			query = query.Where("external_id NOT IN ?", keep)
		}
		if err := query.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.
			Where("listing_id IN ?", ids).
			Delete(&catalog.ListingParameterValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&catalog.ProductListing{}, "id IN ?", ids).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormListingRepository) applySearch(query *gorm.DB, search catalog.ListingSearch, filter shared.Filter) *gorm.DB {
	if search.ShopID != uuid.Nil {
		query = query.Where("product_listings.shop_id = ?", search.ShopID)
	}
	if search.CategoryID != uuid.Nil {
		query = query.
			Joins("JOIN products ON products.id = product_listings.product_id").
			Where("products.category_id = ?", search.CategoryID)
	}
	if search.AcceptingOnly {
		query = query.
			Joins("JOIN shops ON shops.id = product_listings.shop_id").
			Where("shops.accepting_orders = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		if search.CategoryID == uuid.Nil {
			query = query.Joins("JOIN products ON products.id = product_listings.product_id")
		}
		query = query.Where("products.name ILIKE ? OR product_listings.model ILIKE ?", pattern, pattern)
	}
	return query
}

func (r *GormListingRepository) applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		return query.Order("product_listings." + filter.OrderBy + " " + dir)
	}
	return query.Order("product_listings.external_id ASC")
}

// Ensure GormListingRepository implements ListingRepository
var _ catalog.ListingRepository = (*GormListingRepository)(nil)
