package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/procurehub/backend/internal/application/order"
)

// CartHandler serves the customer's open cart
type CartHandler struct {
	BaseHandler
	cartService *orderapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// UpsertItemsRequest is a batch of cart item upserts
type UpsertItemsRequest struct {
	Items []orderapp.CartItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RemoveItemsRequest is a batch of listing ids to drop from the cart
type RemoveItemsRequest struct {
	ListingIDs []uuid.UUID `json:"listing_ids" binding:"required,min=1"`
}

// Get returns the caller's open cart with joined listing metadata and total
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpsertItems applies a batch of item upserts with per-item outcomes.
// Valid items are applied even when others in the batch fail.
func (h *CartHandler) UpsertItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpsertItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.cartService.UpsertItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RemoveItems deletes the named listings from the cart. Absent ids are
// ignored.
func (h *CartHandler) RemoveItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RemoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.cartService.RemoveItems(c.Request.Context(), userID, req.ListingIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
