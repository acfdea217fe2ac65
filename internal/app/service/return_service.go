package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"github.com/craftify/craftify-backend/pkg/payment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReturnNotFound    = errors.New("return not found")
	ErrAlreadyRefunded   = errors.New("return has already been refunded")
	ErrOrderItemNotFound = errors.New("order item not found")
)

type ReturnService interface {
	FileReturn(orderItemID, buyerID uint) (*model.ReturnOrder, error)
	ProcessRefund(ctx context.Context, returnID uint) (*model.ReturnOrder, error)
	ListBuyerReturns(buyerID uint) ([]model.ReturnOrder, error)
	ListSellerReturns(sellerID uint) ([]model.ReturnOrder, error)
	GetReturn(id, actorID uint, isAdmin bool) (*model.ReturnOrder, error)
}

type returnService struct {
	db         *gorm.DB
	returnRepo repository.ReturnRepository
	orderRepo  repository.OrderRepository
	gateway    payment.Gateway
}

func NewReturnService(db *gorm.DB, returnRepo repository.ReturnRepository, orderRepo repository.OrderRepository, gateway payment.Gateway) ReturnService {
	return &returnService{
		db:         db,
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		gateway:    gateway,
	}
}

// FileReturn opens a return for one purchased line. Only the order's
// buyer can file it.
func (s *returnService) FileReturn(orderItemID, buyerID uint) (*model.ReturnOrder, error) {
	logger.Info("Filing return", map[string]interface{}{
		"order_item_id": orderItemID,
		"buyer_id":      buyerID,
	})

	line, err := s.orderRepo.FindOrderItem(orderItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}

	if line.Order.BuyerID != buyerID {
		logger.Warn("Return rejected: not the order buyer", map[string]interface{}{
			"order_item_id": orderItemID,
			"buyer_id":      buyerID,
			"order_buyer":   line.Order.BuyerID,
		})
		return nil, ErrNotOrderBuyer
	}

	ret := &model.ReturnOrder{
		OrderID:     line.OrderID,
		OrderItemID: line.ID,
		ItemID:      line.ItemID,
		BuyerID:     line.Order.BuyerID,
		SellerID:    line.Order.SellerID,
		RefundGiven: false,
		ReturnDate:  time.Now(),
	}

	if err := s.returnRepo.Create(ret); err != nil {
		return nil, err
	}

	logger.Info("Return filed", map[string]interface{}{
		"return_id": ret.ID,
	})
	return ret, nil
}

// ProcessRefund marks the return refunded. Refunding twice is rejected.
// When the order is young enough the buyer's review of the returned
// item is retracted along with the refund; older orders keep it.
func (s *returnService) ProcessRefund(ctx context.Context, returnID uint) (*model.ReturnOrder, error) {
	logger.Info("Processing refund", map[string]interface{}{
		"return_id": returnID,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during refund, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"return_id": returnID,
			})
		}
	}()

	var ret model.ReturnOrder
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Order").
		Preload("OrderItem").
		First(&ret, returnID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReturnNotFound
		}
		return nil, err
	}

	if ret.RefundGiven {
		tx.Rollback()
		logger.Warn("Refund rejected: already refunded", map[string]interface{}{
			"return_id": returnID,
		})
		return nil, ErrAlreadyRefunded
	}

	amount := ret.OrderItem.UnitPrice * float64(ret.OrderItem.Quantity)
	if _, err := s.gateway.Refund(ctx, payment.RefundRequest{
		OrderNumber: ret.Order.OrderNumber,
		Amount:      amount,
	}); err != nil {
		tx.Rollback()
		logger.Error("Payment gateway failure during refund", err, map[string]interface{}{
			"return_id": returnID,
		})
		return nil, err
	}

	now := time.Now()
	ret.RefundGiven = true
	ret.RefundDate = &now

	if err := tx.Model(&model.ReturnOrder{}).
		Where("id = ?", ret.ID).
		Updates(map[string]interface{}{
			"refund_given": true,
			"refund_date":  now,
		}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update return order", err, map[string]interface{}{
			"return_id": returnID,
		})
		return nil, err
	}

	if now.Sub(ret.Order.CreatedAt) <= model.ReviewRetractionWindow {
		result := tx.
			Where("author_id = ? AND target_type = ? AND target_id = ?",
				ret.BuyerID, model.ReviewTargetItem, ret.ItemID).
			Delete(&model.Review{})
		if result.Error != nil {
			tx.Rollback()
			logger.Error("Failed to retract review during refund", result.Error, map[string]interface{}{
				"return_id": returnID,
				"buyer_id":  ret.BuyerID,
				"item_id":   ret.ItemID,
			})
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			logger.Info("Review retracted with refund", map[string]interface{}{
				"return_id": returnID,
				"buyer_id":  ret.BuyerID,
				"item_id":   ret.ItemID,
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit refund transaction", err, map[string]interface{}{
			"return_id": returnID,
		})
		return nil, err
	}

	logger.Info("Refund processed", map[string]interface{}{
		"return_id": ret.ID,
		"amount":    amount,
	})
	return s.returnRepo.FindByID(ret.ID)
}

func (s *returnService) ListBuyerReturns(buyerID uint) ([]model.ReturnOrder, error) {
	return s.returnRepo.FindByBuyerID(buyerID)
}

func (s *returnService) ListSellerReturns(sellerID uint) ([]model.ReturnOrder, error) {
	return s.returnRepo.FindBySellerID(sellerID)
}

func (s *returnService) GetReturn(id, actorID uint, isAdmin bool) (*model.ReturnOrder, error) {
	ret, err := s.returnRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReturnNotFound
		}
		return nil, err
	}
	if ret.BuyerID != actorID && ret.SellerID != actorID && !isAdmin {
		return nil, ErrNotOrderBuyer
	}
	return ret, nil
}
