package persistence

import (
	"context"

	"gorm.io/gorm"

	appcatalog "github.com/procurehub/backend/internal/application/catalog"
	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
)

// GormCatalogTransactionScope implements the catalog TransactionScope using
// GORM transactions. A feed import runs entirely within one scope so the
// reconciliation is atomic per shop.
type GormCatalogTransactionScope struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope.
func NewGormCatalogTransactionScope(db *gorm.DB, outboxSaver shared.OutboxEventSaver) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db, outboxSaver: outboxSaver}
}

// Execute runs the given function within a database transaction.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormCatalogRepositories{tx: tx, outboxSaver: s.outboxSaver}
		return fn(repos)
	})
}

type gormCatalogRepositories struct {
	tx          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

func (r *gormCatalogRepositories) ShopRepo() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

func (r *gormCatalogRepositories) CategoryRepo() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormCatalogRepositories) ListingRepo() catalog.ListingRepository {
	return NewGormListingRepository(r.tx)
}

func (r *gormCatalogRepositories) ParameterRepo() catalog.ParameterRepository {
	return NewGormParameterRepository(r.tx)
}

func (r *gormCatalogRepositories) CartRepo() order.CartRepository {
	return NewGormCartRepository(r.tx)
}

func (r *gormCatalogRepositories) OutboxSaver() appcatalog.TransactionalOutboxSaver {
	return &boundOutboxSaver{tx: r.tx, saver: r.outboxSaver}
}

// boundOutboxSaver binds a shared.OutboxEventSaver to the scope's transaction.
type boundOutboxSaver struct {
	tx    *gorm.DB
	saver shared.OutboxEventSaver
}

func (b *boundOutboxSaver) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	if b.saver == nil || len(events) == 0 {
		return nil
	}
	return b.saver.SaveEvents(ctx, b.tx, events...)
}

// Ensure GormCatalogTransactionScope implements TransactionScope
var _ appcatalog.TransactionScope = (*GormCatalogTransactionScope)(nil)

// Ensure gormCatalogRepositories implements TransactionalRepositories
var _ appcatalog.TransactionalRepositories = (*gormCatalogRepositories)(nil)
