package controller

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/craftify/craftify-backend/internal/errors"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ItemController struct {
	itemService service.ItemService
}

func NewItemController(itemService service.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
}

type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

func respondItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		apperrors.NotFound(c, apperrors.ItemNotFound, "item not found")
	case errors.Is(err, service.ErrNotItemOwner):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, err.Error())
	case errors.Is(err, service.ErrDuplicateItemName):
		apperrors.Conflict(c, apperrors.ItemNameExists, err.Error())
	case errors.Is(err, service.ErrInvalidItemName),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrDescriptionTooLong):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	default:
		apperrors.InternalError(c, "")
	}
}

// CreateItem lists a new item for the authenticated seller
// POST /api/v1/items
func (ctrl *ItemController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sellerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.itemService.CreateItem(sellerID, service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		log.Warn("Item creation failed", map[string]interface{}{
			"seller_id": sellerID,
			"error":     err.Error(),
		})
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetItem returns one item
// GET /api/v1/items/:id
func (ctrl *ItemController) GetItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid item ID")
		return
	}

	item, err := ctrl.itemService.GetItem(uint(id))
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ListItems returns paged listings
// GET /api/v1/items
func (ctrl *ItemController) ListItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := ctrl.itemService.ListItems(limit, offset)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// ListMyItems returns the authenticated seller's listings
// GET /api/v1/items/mine
func (ctrl *ItemController) ListMyItems(c *gin.Context) {
	sellerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	items, err := ctrl.itemService.ListSellerItems(sellerID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateItem edits a listing, seller or admin only
// PUT /api/v1/items/:id
func (ctrl *ItemController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.itemService.UpdateItem(uint(id), actorID, middleware.IsAdmin(c), service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		log.Warn("Item update failed", map[string]interface{}{
			"item_id":  id,
			"actor_id": actorID,
			"error":    err.Error(),
		})
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem removes a listing, seller or admin only
// DELETE /api/v1/items/:id
func (ctrl *ItemController) DeleteItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid item ID")
		return
	}

	if err := ctrl.itemService.DeleteItem(uint(id), actorID, middleware.IsAdmin(c)); err != nil {
		log.Warn("Item delete failed", map[string]interface{}{
			"item_id":  id,
			"actor_id": actorID,
			"error":    err.Error(),
		})
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
