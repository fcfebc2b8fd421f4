package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grocersmart/backend/internal/domain"
	"github.com/grocersmart/backend/internal/usecase"
)

// SetLocationRequest is the body of PUT /api/v1/location
type SetLocationRequest struct {
	ZipCode string `json:"zipCode" binding:"required"`
}

// SelectStoresRequest is the body of PUT /api/v1/location/stores
type SelectStoresRequest struct {
	StoreIDs []int `json:"storeIds"`
}

// GetLocation handles GET /api/v1/location
func (h *Handler) GetLocation(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	c.JSON(http.StatusOK, h.session.Location.Selection())
}

// SetLocation handles PUT /api/v1/location
func (h *Handler) SetLocation(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	var req SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	selection, err := h.session.Location.SetZipCode(c.Request.Context(), req.ZipCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, selection)
}

// SelectStores handles PUT /api/v1/location/stores
func (h *Handler) SelectStores(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	var req SelectStoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	selection, err := h.session.Location.SetSelectedStores(c.Request.Context(), req.StoreIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, selection)
}

// ToggleStore handles POST /api/v1/location/stores/:id/toggle
func (h *Handler) ToggleStore(c *gin.Context) {
	if h.session == nil {
		respondNotConfigured(c, "session")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, errors.New("store id must be an integer"))
		return
	}

	selection, err := h.session.Location.ToggleStore(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, selection)
}

// ListStores handles GET /api/v1/stores?zipCode=
func (h *Handler) ListStores(c *gin.Context) {
	if h.registry == nil {
		respondNotConfigured(c, "store registry")
		return
	}

	zip := usecase.SanitizeZipCode(c.Query("zipCode"))
	if !usecase.IsLocationSet(zip) {
		respondError(c, domain.ErrInvalidZipCode)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zipCode": zip,
		"stores":  h.registry.ResolveStores(c.Request.Context(), zip),
	})
}
