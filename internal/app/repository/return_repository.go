package repository

import (
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReturnRepository interface {
	Create(ret *model.ReturnOrder) error
	FindByID(id uint) (*model.ReturnOrder, error)
	FindByBuyerID(buyerID uint) ([]model.ReturnOrder, error)
	FindBySellerID(sellerID uint) ([]model.ReturnOrder, error)
}

type returnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ret *model.ReturnOrder) error {
	logger.Debug("Creating return order in database", map[string]interface{}{
		"order_id":      ret.OrderID,
		"order_item_id": ret.OrderItemID,
		"buyer_id":      ret.BuyerID,
	})

	if err := r.db.Create(ret).Error; err != nil {
		logger.Error("Failed to create return order in database", err, map[string]interface{}{
			"order_id":      ret.OrderID,
			"order_item_id": ret.OrderItemID,
		})
		return err
	}

	logger.Debug("Return order created in database", map[string]interface{}{
		"return_id": ret.ID,
	})
	return nil
}

func (r *returnRepository) FindByID(id uint) (*model.ReturnOrder, error) {
	var ret model.ReturnOrder
	if err := r.db.Preload("Order").Preload("OrderItem").Preload("Item").
		First(&ret, id).Error; err != nil {
		logger.Error("Failed to find return order in database", err, map[string]interface{}{
			"return_id": id,
		})
		return nil, err
	}
	return &ret, nil
}

func (r *returnRepository) FindByBuyerID(buyerID uint) ([]model.ReturnOrder, error) {
	var returns []model.ReturnOrder
	if err := r.db.Preload("Item").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&returns).Error; err != nil {
		logger.Error("Failed to find returns by buyer in database", err, map[string]interface{}{
			"buyer_id": buyerID,
		})
		return nil, err
	}
	return returns, nil
}

func (r *returnRepository) FindBySellerID(sellerID uint) ([]model.ReturnOrder, error) {
	var returns []model.ReturnOrder
	if err := r.db.Preload("Item").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&returns).Error; err != nil {
		logger.Error("Failed to find returns by seller in database", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}
	return returns, nil
}
