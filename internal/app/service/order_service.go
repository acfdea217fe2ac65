package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"github.com/craftify/craftify-backend/pkg/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOrderBuyer     = errors.New("order belongs to a different buyer")
	ErrInsufficientStock = errors.New("not enough stock for a cart item")
	ErrPaymentDeclined   = errors.New("payment was declined")
)

type OrderService interface {
	Checkout(ctx context.Context, userID uint) (*model.PurchaseOrder, error)
	GetOrder(id, actorID uint, isAdmin bool) (*model.PurchaseOrder, error)
	ListBuyerOrders(buyerID uint) ([]model.PurchaseOrder, error)
	ListSellerOrders(sellerID uint) ([]model.PurchaseOrder, error)
}

type orderService struct {
	db             *gorm.DB
	orderRepo      repository.OrderRepository
	gateway        payment.Gateway
	trackInventory bool
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, gateway payment.Gateway, trackInventory bool) OrderService {
	return &orderService{
		db:             db,
		orderRepo:      orderRepo,
		gateway:        gateway,
		trackInventory: trackInventory,
	}
}

// Checkout converts the user's cart into a PurchaseOrder. The whole
// conversion runs in one transaction with the cart row locked, so a
// double submit serializes and the loser sees an empty cart.
func (s *orderService) Checkout(ctx context.Context, userID uint) (*model.PurchaseOrder, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id": userID,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var cart model.Cart
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Checkout rejected: no cart", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrEmptyCart
		}
		return nil, err
	}

	// Lines are re-read under the cart lock; a concurrent checkout that
	// already cleared them turns this submit into an empty-cart failure.
	var lines []model.CartItem
	if err := tx.
		Where("cart_id = ?", cart.ID).
		Preload("Item").
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(lines) == 0 {
		tx.Rollback()
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	var (
		totalAmount float64
		sellerID    = lines[0].Item.SellerID
		orderItems  []model.PurchaseOrderItem
	)

	for _, line := range lines {
		var item model.Item
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, line.ItemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, err
		}

		if s.trackInventory && item.Quantity < line.Quantity {
			tx.Rollback()
			logger.Warn("Checkout rejected: insufficient stock", map[string]interface{}{
				"user_id":   userID,
				"item_id":   item.ID,
				"requested": line.Quantity,
				"available": item.Quantity,
			})
			return nil, ErrInsufficientStock
		}

		orderItems = append(orderItems, model.PurchaseOrderItem{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price, // snapshot, immune to later item edits
		})
		totalAmount += item.Price * float64(line.Quantity)

		if s.trackInventory {
			if err := tx.Model(&model.Item{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity - ?", line.Quantity)).Error; err != nil {
				tx.Rollback()
				logger.Error("Failed to decrement item stock", err, map[string]interface{}{
					"item_id": item.ID,
				})
				return nil, err
			}
		}
	}

	orderNumber := uuid.NewString()

	// The gateway is charged before anything is written. A decline
	// rolls back with zero side effects.
	if _, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		OrderNumber: orderNumber,
		BuyerID:     userID,
		Amount:      totalAmount,
		Currency:    "USD",
	}); err != nil {
		tx.Rollback()
		if errors.Is(err, payment.ErrPaymentDeclined) {
			logger.Warn("Checkout rejected: payment declined", map[string]interface{}{
				"user_id": userID,
				"amount":  totalAmount,
			})
			return nil, ErrPaymentDeclined
		}
		logger.Error("Payment gateway failure during checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	order := &model.PurchaseOrder{
		OrderNumber: orderNumber,
		BuyerID:     userID,
		SellerID:    sellerID,
		TotalAmount: totalAmount,
		Items:       orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// The cart survives checkout; only its lines are cleared
	if err := tx.Where("cart_id = ?", cart.ID).
		Unscoped().Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetOrder(id, actorID uint, isAdmin bool) (*model.PurchaseOrder, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.BuyerID != actorID && order.SellerID != actorID && !isAdmin {
		return nil, ErrNotOrderBuyer
	}
	return order, nil
}

func (s *orderService) ListBuyerOrders(buyerID uint) ([]model.PurchaseOrder, error) {
	return s.orderRepo.FindByBuyerID(buyerID)
}

func (s *orderService) ListSellerOrders(sellerID uint) ([]model.PurchaseOrder, error) {
	return s.orderRepo.FindBySellerID(sellerID)
}
