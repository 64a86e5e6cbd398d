package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procurehub/backend/internal/domain/order"
)

// CartItemRequest is one requested cart mutation
type CartItemRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// CartItemOutcome is the per-item result of a batch cart mutation.
// Valid items apply even when others in the batch fail.
type CartItemOutcome struct {
	ListingID uuid.UUID `json:"listing_id"`
	Applied   bool      `json:"applied"`
	Error     string    `json:"error,omitempty"`
}

// CartItemResponse is one cart row joined with listing metadata
type CartItemResponse struct {
	ListingID   uuid.UUID       `json:"listing_id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	ShopName    string          `json:"shop_name"`
	ProductName string          `json:"product_name"`
	ExternalID  string          `json:"external_id"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// CartResponse is the user's open cart with a computed total
type CartResponse struct {
	ID    uuid.UUID          `json:"id"`
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// BatchResult reports the outcomes of a batch cart mutation
type BatchResult struct {
	Outcomes []CartItemOutcome `json:"outcomes"`
	Applied  int               `json:"applied"`
	Failed   int               `json:"failed"`
}

// RemoveResult reports how many items a batch removal deleted
type RemoveResult struct {
	Removed int `json:"removed"`
}

// OrderItemResponse is one frozen order line
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ListingID   uuid.UUID       `json:"listing_id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	ExternalID  string          `json:"external_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    string              `json:"status"`
	ContactID uuid.UUID           `json:"contact_id"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderResponseFromDomain maps an order aggregate to its response
func OrderResponseFromDomain(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ListingID:   item.ListingID,
			ShopID:      item.ShopID,
			ExternalID:  item.ExternalID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}

	return OrderResponse{
		ID:        o.ID,
		Status:    o.Status.String(),
		ContactID: o.ContactID,
		Items:     items,
		Total:     o.Total(),
		CreatedAt: o.CreatedAt,
	}
}

// OrderListFilter represents pagination options for order listings
type OrderListFilter struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

func (f OrderListFilter) normalized() (int, int) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
