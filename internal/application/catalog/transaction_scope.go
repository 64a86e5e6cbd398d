package catalog

import (
	"context"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to catalog repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a feed import
// touches, all sharing the same underlying database transaction. The cart
// repository is included because deleting listings must also evict them from
// open carts atomically.
type TransactionalRepositories interface {
	// ShopRepo returns the shop repository scoped to the current transaction
	ShopRepo() catalog.ShopRepository
	// CategoryRepo returns the category repository scoped to the current transaction
	CategoryRepo() catalog.CategoryRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// ListingRepo returns the listing repository scoped to the current transaction
	ListingRepo() catalog.ListingRepository
	// ParameterRepo returns the parameter repository scoped to the current transaction
	ParameterRepo() catalog.ParameterRepository
	// CartRepo returns the cart repository scoped to the current transaction
	CartRepo() order.CartRepository
	// OutboxSaver returns the outbox saver bound to the current transaction
	OutboxSaver() TransactionalOutboxSaver
}

// TransactionalOutboxSaver writes domain events to the outbox within the
// scope's transaction.
type TransactionalOutboxSaver interface {
	SaveEvents(ctx context.Context, events ...shared.DomainEvent) error
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	shopRepo      catalog.ShopRepository
	categoryRepo  catalog.CategoryRepository
	productRepo   catalog.ProductRepository
	listingRepo   catalog.ListingRepository
	parameterRepo catalog.ParameterRepository
	cartRepo      order.CartRepository
	outboxSaver   TransactionalOutboxSaver
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	listingRepo catalog.ListingRepository,
	parameterRepo catalog.ParameterRepository,
	cartRepo order.CartRepository,
	outboxSaver TransactionalOutboxSaver,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		shopRepo:      shopRepo,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		listingRepo:   listingRepo,
		parameterRepo: parameterRepo,
		cartRepo:      cartRepo,
		outboxSaver:   outboxSaver,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ShopRepo returns the shop repository.
func (s *NoOpTransactionScope) ShopRepo() catalog.ShopRepository { return s.shopRepo }

// CategoryRepo returns the category repository.
func (s *NoOpTransactionScope) CategoryRepo() catalog.CategoryRepository { return s.categoryRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// ListingRepo returns the listing repository.
func (s *NoOpTransactionScope) ListingRepo() catalog.ListingRepository { return s.listingRepo }

// ParameterRepo returns the parameter repository.
func (s *NoOpTransactionScope) ParameterRepo() catalog.ParameterRepository { return s.parameterRepo }

// CartRepo returns the cart repository.
func (s *NoOpTransactionScope) CartRepo() order.CartRepository { return s.cartRepo }

// OutboxSaver returns the outbox saver.
func (s *NoOpTransactionScope) OutboxSaver() TransactionalOutboxSaver { return s.outboxSaver }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
