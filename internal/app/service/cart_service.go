package service

import (
	"errors"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidCartQuantity = errors.New("quantity must be at least 1")
	ErrCartMixedSeller     = errors.New("cart may only hold items from a single seller")
)

// CartView is the cart with its computed total
type CartView struct {
	Cart  *model.Cart `json:"cart"`
	Total float64     `json:"total"`
}

type CartService interface {
	GetCart(userID uint) (*CartView, error)
	AddToCart(userID, itemID uint, quantity int) error
	RemoveFromCart(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

func (s *cartService) GetCart(userID uint) (*CartView, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No cart yet reads as an empty cart
		return &CartView{Cart: &model.Cart{UserID: userID}, Total: 0}, nil
	}
	if err != nil {
		return nil, err
	}

	return &CartView{Cart: cart, Total: cart.Total()}, nil
}

func (s *cartService) AddToCart(userID, itemID uint, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})

	if quantity < 1 {
		return ErrInvalidCartQuantity
	}

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: item not found", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
			})
			return ErrItemNotFound
		}
		return err
	}

	cart, err := s.cartRepo.FindOrCreateByUserID(userID)
	if err != nil {
		return err
	}

	// A cart holds one seller's items. Adding a second seller's item is
	// rejected rather than deferred to checkout.
	existing, err := s.cartRepo.FindByUserID(userID)
	if err == nil {
		for _, line := range existing.Items {
			if line.Item.SellerID != item.SellerID {
				logger.Warn("Cannot add to cart: different seller", map[string]interface{}{
					"user_id":     userID,
					"item_id":     itemID,
					"cart_seller": line.Item.SellerID,
					"item_seller": item.SellerID,
				})
				return ErrCartMixedSeller
			}
		}
	}

	line, err := s.cartRepo.FindLine(cart.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.cartRepo.CreateLine(&model.CartItem{
			CartID:   cart.ID,
			ItemID:   itemID,
			Quantity: quantity,
		})
	}
	if err != nil {
		return err
	}

	// Repeated adds accumulate
	return s.cartRepo.IncrementLineQuantity(line.ID, quantity)
}

// RemoveFromCart deletes the line. A missing line is a no-op success.
func (s *cartService) RemoveFromCart(userID, itemID uint) error {
	logger.Info("Removing item from cart", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.cartRepo.DeleteLine(cart.ID, itemID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.cartRepo.Clear(cart.ID)
}
