package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/model"
	"github.com/Allevandrose/realEstate/internal/service"
)

// ListingHandler exposes listing CRUD.
type ListingHandler struct {
	listings *service.ListingService
	log      *zap.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listings *service.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, log: log}
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.log.Error("failed to get listing", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// List handles GET /api/v1/listings.
func (h *ListingHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.listings.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list listings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/v1/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var req model.ListingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("failed to create listing", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// Update handles PUT /api/v1/listings/:id.
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req model.ListingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	listing, err := h.listings.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.log.Error("failed to update listing", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /api/v1/listings/:id.
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.listings.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.log.Error("failed to delete listing", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ListingHandler) listingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return 0, false
	}
	return id, true
}
