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

type ReturnController struct {
	returnService service.ReturnService
}

func NewReturnController(returnService service.ReturnService) *ReturnController {
	return &ReturnController{returnService: returnService}
}

type FileReturnRequest struct {
	OrderItemID uint `json:"order_item_id" binding:"required"`
}

// FileReturn opens a return for a purchased line
// POST /api/v1/returns
func (ctrl *ReturnController) FileReturn(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req FileReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	ret, err := ctrl.returnService.FileReturn(req.OrderItemID, userID)
	if err != nil {
		log.Warn("Filing return failed", map[string]interface{}{
			"user_id":       userID,
			"order_item_id": req.OrderItemID,
			"error":         err.Error(),
		})
		switch {
		case errors.Is(err, service.ErrOrderItemNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "order item not found")
		case errors.Is(err, service.ErrNotOrderBuyer):
			apperrors.Forbidden(c, "only the buyer can return this item")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"return": ret})
}

// ProcessRefund refunds a filed return, admin only
// POST /api/v1/returns/:id/refund
func (ctrl *ReturnController) ProcessRefund(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid return ID")
		return
	}

	ret, err := ctrl.returnService.ProcessRefund(c.Request.Context(), uint(id))
	if err != nil {
		log.Warn("Refund processing failed", map[string]interface{}{
			"return_id": id,
			"error":     err.Error(),
		})
		switch {
		case errors.Is(err, service.ErrReturnNotFound):
			apperrors.NotFound(c, apperrors.ReturnNotFound, "return not found")
		case errors.Is(err, service.ErrAlreadyRefunded):
			apperrors.UnprocessableEntity(c, apperrors.ReturnAlreadyRefunded, "return has already been refunded")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"return": ret})
}

// ListMyReturns returns the authenticated buyer's returns
// GET /api/v1/returns
func (ctrl *ReturnController) ListMyReturns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	returns, err := ctrl.returnService.ListBuyerReturns(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"returns": returns})
}

// GetReturn returns one return record
// GET /api/v1/returns/:id
func (ctrl *ReturnController) GetReturn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid return ID")
		return
	}

	ret, err := ctrl.returnService.GetReturn(uint(id), userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReturnNotFound):
			apperrors.NotFound(c, apperrors.ReturnNotFound, "return not found")
		case errors.Is(err, service.ErrNotOrderBuyer):
			apperrors.Forbidden(c, "")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"return": ret})
}
