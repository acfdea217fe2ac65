package repository

import (
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(id uint) (*model.PurchaseOrder, error)
	FindByOrderNumber(orderNumber string) (*model.PurchaseOrder, error)
	FindByBuyerID(buyerID uint) ([]model.PurchaseOrder, error)
	FindBySellerID(sellerID uint) ([]model.PurchaseOrder, error)
	FindOrderItem(id uint) (*model.PurchaseOrderItem, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("Items").Preload("Items.Item").Preload("Buyer").Preload("Seller")
}

func (r *orderRepository) FindByID(id uint) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByOrderNumber(orderNumber string) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := r.preloadOrder().
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByBuyerID(buyerID uint) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	if err := r.preloadOrder().
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by buyer in database", err, map[string]interface{}{
			"buyer_id": buyerID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindBySellerID(sellerID uint) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	if err := r.preloadOrder().
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by seller in database", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindOrderItem(id uint) (*model.PurchaseOrderItem, error) {
	var line model.PurchaseOrderItem
	if err := r.db.Preload("Order").Preload("Item").First(&line, id).Error; err != nil {
		logger.Error("Failed to find order item in database", err, map[string]interface{}{
			"order_item_id": id,
		})
		return nil, err
	}
	return &line, nil
}
