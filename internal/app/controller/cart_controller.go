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

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// GetCart returns the cart with its computed total
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	view, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  view.Cart,
		"count": len(view.Cart.Items),
		"total": view.Total,
	})
}

// AddToCart adds an item, accumulating quantity on repeats
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	if err := ctrl.cartService.AddToCart(userID, req.ItemID, req.Quantity); err != nil {
		log.Warn("Add to cart failed", map[string]interface{}{
			"user_id": userID,
			"item_id": req.ItemID,
			"error":   err.Error(),
		})
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			apperrors.NotFound(c, apperrors.ItemNotFound, "item not found")
		case errors.Is(err, service.ErrCartMixedSeller):
			apperrors.UnprocessableEntity(c, apperrors.CartMixedSeller, err.Error())
		case errors.Is(err, service.ErrInvalidCartQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, err.Error())
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
}

// RemoveFromCart removes one item; absent items are a no-op
// DELETE /api/v1/cart/items/:item_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid item ID")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, uint(itemID)); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
