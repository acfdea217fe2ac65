package repository

import (
	"errors"
	"time"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindOrCreateByUserID(userID uint) (*model.Cart, error)
	FindByUserID(userID uint) (*model.Cart, error)
	FindLine(cartID, itemID uint) (*model.CartItem, error)
	CreateLine(line *model.CartItem) error
	IncrementLineQuantity(lineID uint, delta int) error
	DeleteLine(cartID, itemID uint) error
	Clear(cartID uint) error
	FindStale(cutoff time.Time) ([]model.Cart, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindOrCreateByUserID returns the user's cart, creating it on first use
func (r *cartRepository) FindOrCreateByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = model.Cart{UserID: userID}
		if err := r.db.Create(&cart).Error; err != nil {
			logger.Error("Failed to create cart in database", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
		logger.Debug("Cart created in database", map[string]interface{}{
			"cart_id": cart.ID,
			"user_id": userID,
		})
		return &cart, nil
	}
	if err != nil {
		logger.Error("Failed to find cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Item").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindLine(cartID, itemID uint) (*model.CartItem, error) {
	var line model.CartItem
	err := r.db.Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Preload("Item").
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) CreateLine(line *model.CartItem) error {
	logger.Debug("Creating cart line in database", map[string]interface{}{
		"cart_id":  line.CartID,
		"item_id":  line.ItemID,
		"quantity": line.Quantity,
	})

	if err := r.db.Create(line).Error; err != nil {
		logger.Error("Failed to create cart line in database", err, map[string]interface{}{
			"cart_id": line.CartID,
			"item_id": line.ItemID,
		})
		return err
	}
	return nil
}

// IncrementLineQuantity accumulates quantity with a single SQL update so
// concurrent adds never lose a write.
func (r *cartRepository) IncrementLineQuantity(lineID uint, delta int) error {
	if err := r.db.Model(&model.CartItem{}).
		Where("id = ?", lineID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error; err != nil {
		logger.Error("Failed to increment cart line quantity in database", err, map[string]interface{}{
			"cart_line_id": lineID,
			"delta":        delta,
		})
		return err
	}
	return nil
}

// DeleteLine removes a line permanently. Hard delete keeps the
// (cart, item) unique index usable for re-adds.
func (r *cartRepository) DeleteLine(cartID, itemID uint) error {
	logger.Debug("Deleting cart line from database", map[string]interface{}{
		"cart_id": cartID,
		"item_id": itemID,
	})

	if err := r.db.Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Unscoped().Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart line from database", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		return err
	}
	return nil
}

// Clear removes every line but keeps the cart row
func (r *cartRepository) Clear(cartID uint) error {
	logger.Debug("Clearing cart in database", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := r.db.Where("cart_id = ?", cartID).
		Unscoped().Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

// FindStale returns carts with at least one line untouched since the
// cutoff. Used by the cleanup scheduler.
func (r *cartRepository) FindStale(cutoff time.Time) ([]model.Cart, error) {
	var carts []model.Cart
	err := r.db.
		Joins("JOIN cart_items ON cart_items.cart_id = carts.id AND cart_items.deleted_at IS NULL").
		Where("cart_items.updated_at < ?", cutoff).
		Group("carts.id").
		Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find stale carts in database", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return nil, err
	}
	return carts, nil
}
