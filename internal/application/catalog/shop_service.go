package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/procurehub/backend/internal/domain/catalog"
	"github.com/procurehub/backend/internal/domain/shared"
)

// ShopService handles supplier-facing shop state operations
type ShopService struct {
	shopRepo       catalog.ShopRepository
	eventPublisher shared.EventPublisher
}

// NewShopService creates a new ShopService
func NewShopService(shopRepo catalog.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ShopService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetOwnShop returns the supplier's shop
func (s *ShopService) GetOwnShop(ctx context.Context, supplierID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	resp := ShopResponseFromDomain(shop)
	return &resp, nil
}

// SetAcceptingOrders flips the supplier's accepting-orders flag
func (s *ShopService) SetAcceptingOrders(ctx context.Context, supplierID uuid.UUID, accepting bool) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	shop.SetAcceptingOrders(accepting)
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if events := shop.GetDomainEvents(); len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
		}
	}
	shop.ClearDomainEvents()

	resp := ShopResponseFromDomain(shop)
	return &resp, nil
}
