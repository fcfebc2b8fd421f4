package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocersmart/backend/internal/domain"
)

// AddItemRequest is the body of POST /api/v1/basket/items
type AddItemRequest struct {
	Product domain.Product `json:"product"`
	Store   string         `json:"store"`
}

// UpdateQuantityRequest is the body of PATCH /api/v1/basket/items/:id
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// BasketResponse is the basket with its folded totals
type BasketResponse struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

// ComparisonResponse wraps the ranking; Comparison is null when there is
// nothing to compare.
type ComparisonResponse struct {
	Comparison *domain.ComparisonSummary `json:"comparison"`
}

// GetBasket handles GET /api/v1/basket
func (h *Handler) GetBasket(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	c.JSON(http.StatusOK, h.basketResponse())
}

// AddBasketItem handles POST /api/v1/basket/items
func (h *Handler) AddBasketItem(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if strings.TrimSpace(req.Product.ID) == "" {
		respondBadRequest(c, errors.New("product.id is required"))
		return
	}

	line, err := h.session.Basket.AddItem(c.Request.Context(), req.Product, req.Store)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":   line,
		"basket": h.basketResponse(),
	})
}

// UpdateBasketItem handles PATCH /api/v1/basket/items/:id.
// A quantity below 1 removes the line.
func (h *Handler) UpdateBasketItem(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	id := c.Param("id")
	if _, ok := h.session.Basket.Item(id); !ok {
		respondError(c, domain.ErrItemNotFound)
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	h.session.Basket.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	c.JSON(http.StatusOK, h.basketResponse())
}

// RemoveBasketItem handles DELETE /api/v1/basket/items/:id
func (h *Handler) RemoveBasketItem(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	id := c.Param("id")
	if _, ok := h.session.Basket.Item(id); !ok {
		respondError(c, domain.ErrItemNotFound)
		return
	}

	h.session.Basket.RemoveItem(c.Request.Context(), id)
	c.JSON(http.StatusOK, h.basketResponse())
}

// ClearBasket handles DELETE /api/v1/basket
func (h *Handler) ClearBasket(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	h.session.Basket.Clear(c.Request.Context())
	c.JSON(http.StatusOK, h.basketResponse())
}

// CompareStores handles GET /api/v1/basket/comparison
func (h *Handler) CompareStores(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	c.JSON(http.StatusOK, ComparisonResponse{Comparison: h.session.Compare()})
}

// CheckoutSummary handles GET /api/v1/checkout/summary?delivery=
func (h *Handler) CheckoutSummary(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	summary, err := h.session.Checkout(c.Query("delivery"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ResetSession handles POST /api/v1/session/reset
func (h *Handler) ResetSession(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	h.session.Reset(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *Handler) basketResponse() BasketResponse {
	return BasketResponse{
		Items:      h.session.Basket.Items(),
		TotalItems: h.session.Basket.TotalItems(),
		TotalPrice: h.session.Basket.TotalPrice(),
	}
}
