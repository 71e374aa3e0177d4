package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/models"
	"github.com/pageza/zenkitchen/backend/internal/service"
	"github.com/pageza/zenkitchen/backend/internal/types"
)

type ItemHandler struct {
	inventory *service.InventoryService
}

func NewItemHandler(inventory *service.InventoryService) *ItemHandler {
	return &ItemHandler{inventory: inventory}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/items")
	{
		items.GET("", h.ListItems)
		items.GET("/categories", h.Categories)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.POST("/:id/usage", h.RecordUsage)
		items.POST("/:id/waste", h.MarkWasted)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// ListItems returns the filtered active items with facets and summary.
func (h *ItemHandler) ListItems(c *gin.Context) {
	var q inventory.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	switch q.Status {
	case "", inventory.FilterAll, inventory.FilterExpiring:
	default:
		badRequest(c, fmt.Errorf("unknown status filter %q", q.Status))
		return
	}

	owner := middleware.UserID(c)
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		h.inventory.Refresh(owner)
	}

	view, err := h.inventory.List(c.Request.Context(), owner, q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Categories returns the advisory category list for the add form.
func (h *ItemHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.FridgeCategories})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.inventory.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req types.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expiry := req.ExpiryDate
	if expiry == nil && req.ExpiresIn > 0 {
		d, err := inventory.ExpiryFromDuration(time.Now(), req.ExpiresIn, inventory.DurationUnit(req.ExpiresUnit))
		if err != nil {
			_ = c.Error(err)
			return
		}
		expiry = &d
	}

	item, err := h.inventory.Add(c.Request.Context(), middleware.UserID(c), models.InventoryItem{
		ID:         req.ID,
		Name:       req.Name,
		Category:   req.Category,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
		Emoji:      req.Emoji,
		ImageURL:   req.ImageURL,
		Notes:      req.Notes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// itemPatchRequest accepts a duration as an alternative to expiry_date.
type itemPatchRequest struct {
	inventory.ItemPatch
	ExpiresIn   *int   `json:"expires_in"`
	ExpiresUnit string `json:"expires_unit"`
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req itemPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	patch := req.ItemPatch
	if req.ExpiresIn != nil && patch.ExpiryDate == nil && !patch.ClearExpiry {
		d, err := inventory.ExpiryFromDuration(time.Now(), *req.ExpiresIn, inventory.DurationUnit(req.ExpiresUnit))
		if err != nil {
			_ = c.Error(err)
			return
		}
		patch.ExpiryDate = &d
	}

	item, err := h.inventory.Edit(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) RecordUsage(c *gin.Context) {
	var req types.UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.inventory.RecordUsage(c.Request.Context(), middleware.UserID(c), c.Param("id"), *req.Progress)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) MarkWasted(c *gin.Context) {
	item, err := h.inventory.MarkWasted(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.inventory.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
