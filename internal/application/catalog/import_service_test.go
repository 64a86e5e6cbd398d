package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appcatalog "github.com/procurehub/backend/internal/application/catalog"
	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
	"github.com/procurehub/backend/internal/infrastructure/feed"
	"github.com/procurehub/backend/internal/infrastructure/persistence"
)

// recordingOutboxSaver captures events handed to the outbox during tests
type recordingOutboxSaver struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (s *recordingOutboxSaver) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

func (s *recordingOutboxSaver) saved() []shared.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shared.DomainEvent(nil), s.events...)
}

type importFixture struct {
	db          *gorm.DB
	scope       *appcatalog.NoOpTransactionScope
	outbox      *recordingOutboxSaver
	importSvc   *appcatalog.ImportService
	exportSvc   *appcatalog.ExportService
	shopRepo    catalog.ShopRepository
	listingRepo catalog.ListingRepository
	cartRepo    order.CartRepository
}

func newImportFixture(t *testing.T) *importFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Shop{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Parameter{},
		&catalog.ProductListing{},
		&catalog.ListingParameterValue{},
		&order.Cart{},
		&order.CartItem{},
	)
	require.NoError(t, err)

	shopRepo := persistence.NewGormShopRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	listingRepo := persistence.NewGormListingRepository(db)
	parameterRepo := persistence.NewGormParameterRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	outbox := &recordingOutboxSaver{}

	scope := appcatalog.NewNoOpTransactionScope(
		shopRepo, categoryRepo, productRepo, listingRepo, parameterRepo, cartRepo, outbox)

	return &importFixture{
		db:          db,
		scope:       scope,
		outbox:      outbox,
		importSvc:   appcatalog.NewImportService(scope, zap.NewNop()),
		exportSvc:   appcatalog.NewExportService(shopRepo, categoryRepo, listingRepo),
		shopRepo:    shopRepo,
		listingRepo: listingRepo,
		cartRepo:    cartRepo,
	}
}

func sampleFeed() *feed.Feed {
	return &feed.Feed{
		Shop: "Connect Shop",
		Categories: []feed.Category{
			{ID: 224, Name: "Smartphones"},
			{ID: 15, Name: "Accessories"},
		},
		Goods: []feed.Good{
			{
				ID:       "4216292",
				Category: 224,
				Model:    "A713GT",
				Name:     "Smartphone A713GT",
				Price:    feed.NewMoney(decimal.RequireFromString("110000")),
				PriceRRC: feed.NewMoney(decimal.RequireFromString("116990")),
				Quantity: 14,
				Parameters: map[string]feed.Scalar{
					"Screen Size (inches)": "6.5",
					"Color":                "black",
				},
			},
			{
				ID:       "4216313",
				Category: 15,
				Name:     "USB Cable",
				Price:    feed.NewMoney(decimal.RequireFromString("270")),
				PriceRRC: feed.NewMoney(decimal.RequireFromString("299")),
				Quantity: 120,
			},
		},
	}
}

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("first import creates shop, categories and listings", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		result, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		assert.Equal(t, "Connect Shop", result.ShopName)
		assert.Equal(t, 2, result.ListingsCreated)
		assert.Equal(t, 0, result.ListingsUpdated)
		assert.Equal(t, 0, result.ListingsDeleted)

		shop, err := fx.shopRepo.FindByName(ctx, "Connect Shop")
		require.NoError(t, err)
		assert.Equal(t, supplierID, shop.SupplierID)
		assert.True(t, shop.AcceptingOrders)

		listings, err := fx.listingRepo.FindByShop(ctx, shop.ID)
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, "4216292", listings[0].ExternalID)
		assert.Equal(t, "Smartphone A713GT", listings[0].Product.Name)
		assert.True(t, listings[0].Price.Equal(decimal.RequireFromString("110000")))
		assert.Len(t, listings[0].Parameters, 2)
	})

	t.Run("re-importing the same feed is idempotent with stable listing ids", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		first, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		before, err := fx.listingRepo.FindByShop(ctx, first.ShopID)
		require.NoError(t, err)

		second, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)
		assert.Equal(t, 0, second.ListingsCreated)
		assert.Equal(t, 2, second.ListingsUpdated)
		assert.Equal(t, 0, second.ListingsDeleted)

		after, err := fx.listingRepo.FindByShop(ctx, first.ShopID)
		require.NoError(t, err)
		require.Len(t, after, len(before))
		for i := range before {
			assert.Equal(t, before[i].ID, after[i].ID)
		}
	})

	t.Run("updated good overwrites the offer in place", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		first, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		changed := sampleFeed()
		changed.Goods[0].Price = feed.NewMoney(decimal.RequireFromString("99000"))
		changed.Goods[0].Quantity = 3

		_, err = fx.importSvc.Import(ctx, supplierID, changed)
		require.NoError(t, err)

		listing, err := fx.listingRepo.FindByShopAndExternalID(ctx, first.ShopID, "4216292")
		require.NoError(t, err)
		assert.True(t, listing.Price.Equal(decimal.RequireFromString("99000")))
		assert.Equal(t, 3, listing.Quantity)
	})

	t.Run("placed orders keep their captured price across re-imports", func(t *testing.T) {
		fx := newImportFixture(t)
		require.NoError(t, fx.db.AutoMigrate(&order.Order{}, &order.OrderItem{}))
		supplierID := uuid.New()

		first, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		listing, err := fx.listingRepo.FindByShopAndExternalID(ctx, first.ShopID, "4216292")
		require.NoError(t, err)

		placed, err := order.NewOrder(uuid.New(), uuid.New(), []order.Snapshot{{
			ListingID:   listing.ID,
			ShopID:      listing.ShopID,
			ExternalID:  listing.ExternalID,
			ProductName: listing.Product.Name,
			Quantity:    2,
			UnitPrice:   listing.Price,
		}})
		require.NoError(t, err)
		placed.ClearDomainEvents()

		orderRepo := persistence.NewGormOrderRepository(fx.db, nil)
		require.NoError(t, orderRepo.Save(ctx, placed))

		repriced := sampleFeed()
		repriced.Goods[0].Price = feed.NewMoney(decimal.RequireFromString("145000"))
		_, err = fx.importSvc.Import(ctx, supplierID, repriced)
		require.NoError(t, err)

		// The live offer moved
		listing, err = fx.listingRepo.FindByShopAndExternalID(ctx, first.ShopID, "4216292")
		require.NoError(t, err)
		assert.True(t, listing.Price.Equal(decimal.RequireFromString("145000")))

		// The frozen order line did not
		reloaded, err := orderRepo.FindByID(ctx, placed.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.True(t, reloaded.Items[0].UnitPrice.Equal(decimal.RequireFromString("110000")))
		assert.True(t, reloaded.Total().Equal(decimal.RequireFromString("220000")))
	})

	t.Run("goods absent from the feed are deleted and evicted from carts", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		first, err := fx.importSvc.Import(ctx, supplierID, sampleFeed())
		require.NoError(t, err)

		stale, err := fx.listingRepo.FindByShopAndExternalID(ctx, first.ShopID, "4216313")
		require.NoError(t, err)

		cart, err := fx.cartRepo.FindOrCreateByUser(ctx, uuid.New())
		require.NoError(t, err)
		require.NoError(t, cart.UpsertItem(stale.ID, 2))
		require.NoError(t, fx.cartRepo.Save(ctx, cart))

		trimmed := sampleFeed()
		trimmed.Goods = trimmed.Goods[:1]

		result, err := fx.importSvc.Import(ctx, supplierID, trimmed)
		require.NoError(t, err)
		assert.Equal(t, 1, result.ListingsDeleted)
		assert.Equal(t, int64(1), result.CartItemsRemoved)

		_, err = fx.listingRepo.FindByShopAndExternalID(ctx, first.ShopID, "4216313")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		cart, err = fx.cartRepo.FindByUser(ctx, cart.UserID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("feed naming another supplier's shop is rejected before mutation", func(t *testing.T) {
		fx := newImportFixture(t)
		owner := uuid.New()

		first, err := fx.importSvc.Import(ctx, owner, sampleFeed())
		require.NoError(t, err)

		intruderFeed := sampleFeed()
		intruderFeed.Goods[0].Price = feed.NewMoney(decimal.RequireFromString("1"))

		_, err = fx.importSvc.Import(ctx, uuid.New(), intruderFeed)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindAuthorization, domainErr.Kind)

		// The owner's catalog is untouched
		listing, err := fx.listingRepo.FindByShopAndExternalID(ctx, first.ShopID, "4216292")
		require.NoError(t, err)
		assert.True(t, listing.Price.Equal(decimal.RequireFromString("110000")))
	})

	t.Run("invalid feed fails without touching the catalog", func(t *testing.T) {
		fx := newImportFixture(t)
		supplierID := uuid.New()

		bad := sampleFeed()
		bad.Goods[0].Category = 999

		_, err := fx.importSvc.Import(ctx, supplierID, bad)
		require.Error(t, err)

		_, err = fx.shopRepo.FindByName(ctx, "Connect Shop")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("import writes a CatalogImported event to the outbox", func(t *testing.T) {
		fx := newImportFixture(t)

		_, err := fx.importSvc.Import(ctx, uuid.New(), sampleFeed())
		require.NoError(t, err)

		events := fx.outbox.saved()
		require.Len(t, events, 1)
		assert.Equal(t, catalog.EventTypeCatalogImported, events[0].EventType())
	})
}
