package order

import (
	"context"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/order"
)

// TransactionScope provides transactional access to order repositories.
// Confirming an order snapshots listings, writes the order, clears the cart
// and enqueues events atomically, so all of it runs in one scope.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories an order
// mutation touches, all sharing the same underlying database transaction.
type TransactionalRepositories interface {
	// CartRepo returns the cart repository scoped to the current transaction
	CartRepo() order.CartRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.OrderRepository
	// ListingRepo returns the listing repository scoped to the current transaction
	ListingRepo() catalog.ListingRepository
	// ShopRepo returns the shop repository scoped to the current transaction
	ShopRepo() catalog.ShopRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	cartRepo    order.CartRepository
	orderRepo   order.OrderRepository
	listingRepo catalog.ListingRepository
	shopRepo    catalog.ShopRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	cartRepo order.CartRepository,
	orderRepo order.OrderRepository,
	listingRepo catalog.ListingRepository,
	shopRepo catalog.ShopRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		shopRepo:    shopRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CartRepo returns the cart repository.
func (s *NoOpTransactionScope) CartRepo() order.CartRepository { return s.cartRepo }

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository { return s.orderRepo }

// ListingRepo returns the listing repository.
func (s *NoOpTransactionScope) ListingRepo() catalog.ListingRepository { return s.listingRepo }

// ShopRepo returns the shop repository.
func (s *NoOpTransactionScope) ShopRepo() catalog.ShopRepository { return s.shopRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
