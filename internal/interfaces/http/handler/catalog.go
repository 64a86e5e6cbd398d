package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/procurehub/backend/internal/application/catalog"
)

// CatalogHandler serves the public catalog read endpoints
type CatalogHandler struct {
	BaseHandler
	queryService *catalogapp.QueryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(queryService *catalogapp.QueryService) *CatalogHandler {
	return &CatalogHandler{queryService: queryService}
}

// ListShops returns the shops currently accepting orders
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.queryService.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}

// ListCategories returns all categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.queryService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// SearchListings returns listings of accepting shops, filtered by shop,
// category and free-text search
func (h *CatalogHandler) SearchListings(c *gin.Context) {
	var filter catalogapp.ListingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.queryService.SearchListings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetListing returns a single listing with its parameters
func (h *CatalogHandler) GetListing(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	listing, err := h.queryService.GetListing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listing)
}
