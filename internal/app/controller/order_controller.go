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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout converts the cart into a purchase order
// POST /api/v1/orders/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), userID)
	if err != nil {
		log.Warn("Checkout failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.UnprocessableEntity(c, apperrors.CartEmpty, "cannot check out an empty cart")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidRange, err.Error())
		case errors.Is(err, service.ErrPaymentDeclined):
			apperrors.PaymentRequired(c, "")
		case errors.Is(err, service.ErrItemNotFound):
			apperrors.NotFound(c, apperrors.ItemNotFound, "a cart item no longer exists")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Checkout succeeded", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrder returns one order, visible to its buyer, seller or an admin
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrder(uint(id), userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "order not found")
		case errors.Is(err, service.ErrNotOrderBuyer):
			apperrors.Forbidden(c, "")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListMyOrders returns the authenticated buyer's orders
// GET /api/v1/orders
func (ctrl *OrderController) ListMyOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.ListBuyerOrders(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListMySales returns orders where the authenticated user is the seller
// GET /api/v1/orders/sales
func (ctrl *OrderController) ListMySales(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.ListSellerOrders(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
