package persistence

import (
	"context"

	"gorm.io/gorm"

	apporder "github.com/procurehub/backend/internal/application/order"
	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
)

// GormOrderTransactionScope implements the order TransactionScope using GORM
// transactions.
type GormOrderTransactionScope struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope.
func NewGormOrderTransactionScope(db *gorm.DB, outboxSaver shared.OutboxEventSaver) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db, outboxSaver: outboxSaver}
}

// Execute runs the given function within a database transaction.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormOrderRepositories{tx: tx, outboxSaver: s.outboxSaver}
		return fn(repos)
	})
}

type gormOrderRepositories struct {
	tx          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

func (r *gormOrderRepositories) CartRepo() order.CartRepository {
	return NewGormCartRepository(r.tx)
}

func (r *gormOrderRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx, r.outboxSaver)
}

func (r *gormOrderRepositories) ListingRepo() catalog.ListingRepository {
	return NewGormListingRepository(r.tx)
}

func (r *gormOrderRepositories) ShopRepo() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

// Ensure GormOrderTransactionScope implements TransactionScope
var _ apporder.TransactionScope = (*GormOrderTransactionScope)(nil)

// Ensure gormOrderRepositories implements TransactionalRepositories
var _ apporder.TransactionalRepositories = (*gormOrderRepositories)(nil)
