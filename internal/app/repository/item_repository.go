package repository

import (
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindByID(id uint) (*model.Item, error)
	FindAll(limit, offset int) ([]model.Item, int64, error)
	FindBySellerID(sellerID uint) ([]model.Item, error)
	Update(item *model.Item) error
	Delete(id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	logger.Debug("Creating item in database", map[string]interface{}{
		"seller_id": item.SellerID,
		"name":      item.Name,
		"price":     item.Price,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create item in database", err, map[string]interface{}{
			"seller_id": item.SellerID,
			"name":      item.Name,
		})
		return err
	}

	logger.Debug("Item created in database", map[string]interface{}{
		"item_id": item.ID,
	})
	return nil
}

func (r *itemRepository) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.Preload("Seller").First(&item, id).Error; err != nil {
		logger.Error("Failed to find item by ID in database", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindAll(limit, offset int) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	if err := r.db.Model(&model.Item{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count items in database", err, nil)
		return nil, 0, err
	}

	if err := r.db.Preload("Seller").
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		logger.Error("Failed to list items in database", err, nil)
		return nil, 0, err
	}

	return items, total, nil
}

func (r *itemRepository) FindBySellerID(sellerID uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		logger.Error("Failed to find items by seller in database", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Update(item *model.Item) error {
	logger.Debug("Updating item in database", map[string]interface{}{
		"item_id": item.ID,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) Delete(id uint) error {
	logger.Debug("Deleting item from database", map[string]interface{}{
		"item_id": id,
	})

	if err := r.db.Delete(&model.Item{}, id).Error; err != nil {
		logger.Error("Failed to delete item from database", err, map[string]interface{}{
			"item_id": id,
		})
		return err
	}
	return nil
}
