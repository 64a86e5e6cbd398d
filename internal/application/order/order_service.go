package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/identity"
	"github.com/procurehub/backend/internal/domain/order"
	"github.com/procurehub/backend/internal/domain/shared"
)

// OrderService handles order confirmation, listing and status advancement
type OrderService struct {
	txScope     TransactionScope
	orderRepo   order.OrderRepository
	shopRepo    catalog.ShopRepository
	contactRepo identity.ContactRepository
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo order.OrderRepository,
	shopRepo catalog.ShopRepository,
	contactRepo identity.ContactRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:     txScope,
		orderRepo:   orderRepo,
		shopRepo:    shopRepo,
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// Confirm converts the user's open cart into a placed order. Current listing
// prices are frozen into the order, the cart is emptied, and the placement
// event goes to the outbox, all in one transaction. Notification dispatch
// happens only after commit, via the outbox processor.
func (s *OrderService) Confirm(ctx context.Context, userID, contactID uuid.UUID) (*OrderResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !contact.IsOwnedBy(userID) {
		return nil, shared.NewValidationError("contact_id", "Contact belongs to another user")
	}

	var placed *order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cart, err := repos.CartRepo().FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.KindValidation, "EMPTY_CART", "Cart is empty")
			}
			return err
		}
		if cart.IsEmpty() {
			return shared.NewDomainError(shared.KindValidation, "EMPTY_CART", "Cart is empty")
		}

		snapshots, err := s.snapshotCart(ctx, repos, cart)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(userID, contactID, snapshots)
		if err != nil {
			return err
		}

		events := o.GetDomainEvents()
		o.ClearDomainEvents()
		if err := repos.OrderRepo().SaveWithEvents(ctx, o, events); err != nil {
			return err
		}

		cart.Clear()
		if err := repos.CartRepo().Save(ctx, cart); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(placed.Items)),
	)

	resp := OrderResponseFromDomain(placed)
	return &resp, nil
}

// snapshotCart freezes the cart's listings into order lines at their current
// prices. Listing rows are locked so a concurrent import cannot delete one
// mid-snapshot. Listings already deleted by an earlier import silently drop
// out, mirroring what the next cart read would show.
func (s *OrderService) snapshotCart(ctx context.Context, repos TransactionalRepositories, cart *order.Cart) ([]order.Snapshot, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ListingID)
	}

	listings, err := repos.ListingRepo().FindByIDsLocked(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.ProductListing, len(listings))
	for i := range listings {
		byID[listings[i].ID] = &listings[i]
	}

	snapshots := make([]order.Snapshot, 0, len(cart.Items))
	for _, item := range cart.Items {
		listing, ok := byID[item.ListingID]
		if !ok {
			continue
		}
		if !listing.Shop.AcceptingOrders {
			return nil, shared.NewConflictError("SHOP_NOT_ACCEPTING",
				"Shop "+listing.Shop.Name+" is not accepting orders")
		}

		snapshots = append(snapshots, order.Snapshot{
			ListingID:   listing.ID,
			ShopID:      listing.ShopID,
			ExternalID:  listing.ExternalID,
			ProductName: listing.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   listing.Price,
		})
	}
	if len(snapshots) == 0 {
		return nil, shared.NewDomainError(shared.KindValidation, "EMPTY_CART", "Cart is empty")
	}
	return snapshots, nil
}

// GetOrder returns one of the user's own orders
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, shared.ErrNotFound
	}
	resp := OrderResponseFromDomain(o)
	return &resp, nil
}

// ListCustomerOrders returns the user's placed orders, newest first
func (s *OrderService) ListCustomerOrders(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	page, pageSize := filter.normalized()
	orders, total, err := s.orderRepo.FindByUser(ctx, userID, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, OrderResponseFromDomain(&orders[i]))
	}
	result := shared.NewPaginated(responses, total, page, pageSize)
	return &result, nil
}

// ListSupplierOrders returns orders containing the supplier's items, each
// restricted to that shop's lines and line totals. Other suppliers' shares
// of an order stay invisible.
func (s *OrderService) ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	shop, err := s.shopRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	page, pageSize := filter.normalized()
	orders, total, err := s.orderRepo.FindByShop(ctx, shop.ID, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		scoped := orders[i].RestrictToShop(shop.ID)
		responses = append(responses, OrderResponseFromDomain(&scoped))
	}
	result := shared.NewPaginated(responses, total, page, pageSize)
	return &result, nil
}

// AdvanceStatus moves an order one step forward in its lifecycle on behalf
// of a supplier with items in it. The order row is locked so concurrent
// advancements serialize; the status-changed event goes to the outbox in the
// same transaction and notifies the customer after commit.
func (s *OrderService) AdvanceStatus(ctx context.Context, supplierID, orderID uuid.UUID, target string) (*OrderResponse, error) {
	shop, err := s.shopRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	var advanced order.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDLocked(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.HasShopItems(shop.ID) {
			return shared.NewAuthorizationError("Order has no items of your shop")
		}

		if err := o.AdvanceTo(order.Status(target)); err != nil {
			return err
		}

		events := o.GetDomainEvents()
		o.ClearDomainEvents()
		if err := repos.OrderRepo().SaveWithEvents(ctx, o, events); err != nil {
			return err
		}

		advanced = o.RestrictToShop(shop.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status advanced",
		zap.String("order_id", orderID.String()),
		zap.String("status", target),
	)

	resp := OrderResponseFromDomain(&advanced)
	return &resp, nil
}
