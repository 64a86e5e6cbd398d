package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/procurehub/backend/internal/application/catalog"
	orderapp "github.com/procurehub/backend/internal/application/order"
	"github.com/procurehub/backend/internal/infrastructure/feed"
)

// PartnerHandler serves the supplier-facing endpoints: price-feed import and
// export, shop order acceptance, and shop-scoped order management.
type PartnerHandler struct {
	BaseHandler
	importService *catalogapp.ImportService
	exportService *catalogapp.ExportService
	shopService   *catalogapp.ShopService
	orderService  *orderapp.OrderService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	importService *catalogapp.ImportService,
	exportService *catalogapp.ExportService,
	shopService *catalogapp.ShopService,
	orderService *orderapp.OrderService,
) *PartnerHandler {
	return &PartnerHandler{
		importService: importService,
		exportService: exportService,
		shopService:   shopService,
		orderService:  orderService,
	}
}

// ShopStateRequest toggles whether the shop accepts new orders
type ShopStateRequest struct {
	AcceptingOrders *bool `json:"accepting_orders" binding:"required"`
}

// AdvanceStatusRequest names the target order status
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed assembled sent"`
}

// ImportFeed ingests a YAML price feed for the calling supplier's shop.
// The request body is the feed document itself.
func (h *PartnerHandler) ImportFeed(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(body) == 0 {
		h.BadRequest(c, "Request body is empty")
		return
	}

	f, err := feed.Parse(body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.importService.Import(c.Request.Context(), supplierID, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ExportFeed renders the calling supplier's shop as a YAML price feed
func (h *PartnerHandler) ExportFeed(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shop, err := h.shopService.GetOwnShop(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	f, err := h.exportService.Export(c.Request.Context(), supplierID, shop.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	data, err := feed.Render(f)
	if err != nil {
		h.InternalError(c, "Failed to render feed")
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", data)
}

// GetShopState returns the calling supplier's shop
func (h *PartnerHandler) GetShopState(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shop, err := h.shopService.GetOwnShop(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// SetShopState flips the shop's order acceptance flag
func (h *PartnerHandler) SetShopState(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ShopStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shop, err := h.shopService.SetAcceptingOrders(c.Request.Context(), supplierID, *req.AcceptingOrders)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// ListOrders returns orders containing items of the calling supplier's shop,
// restricted to that shop's items
func (h *PartnerHandler) ListOrders(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.orderService.ListSupplierOrders(c.Request.Context(), supplierID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AdvanceOrderStatus moves an order to the immediate successor status
func (h *PartnerHandler) AdvanceOrderStatus(c *gin.Context) {
	supplierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.AdvanceStatus(c.Request.Context(), supplierID, orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
