package service

import (
	"errors"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"github.com/craftify/craftify-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrNotItemOwner       = errors.New("only the seller or an admin can modify this item")
	ErrInvalidItemName    = errors.New("item name may contain only letters, digits, spaces and hyphens")
	ErrInvalidPrice       = errors.New("price must be between 0.01 and 1,000,000")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 10,000")
	ErrDescriptionTooLong = errors.New("description must be at most 2000 characters")
	ErrDuplicateItemName  = errors.New("seller already has an item with this name")
)

type CreateItemInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
}

type ItemService interface {
	CreateItem(sellerID uint, input CreateItemInput) (*model.Item, error)
	GetItem(id uint) (*model.Item, error)
	ListItems(limit, offset int) ([]model.Item, int64, error)
	ListSellerItems(sellerID uint) ([]model.Item, error)
	UpdateItem(id, actorID uint, isAdmin bool, input UpdateItemInput) (*model.Item, error)
	DeleteItem(id, actorID uint, isAdmin bool) error
}

type itemService struct {
	itemRepo repository.ItemRepository
}

func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

func validateItemFields(name, description string, price float64, quantity int) error {
	if !util.IsValidItemName(name) {
		return ErrInvalidItemName
	}
	if len(description) > model.ItemMaxDescLen {
		return ErrDescriptionTooLong
	}
	if price < model.ItemMinPrice || price > model.ItemMaxPrice {
		return ErrInvalidPrice
	}
	if quantity < model.ItemMinQuantity || quantity > model.ItemMaxQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

func (s *itemService) CreateItem(sellerID uint, input CreateItemInput) (*model.Item, error) {
	logger.Info("Creating item", map[string]interface{}{
		"seller_id": sellerID,
		"name":      input.Name,
	})

	if err := validateItemFields(input.Name, input.Description, input.Price, input.Quantity); err != nil {
		logger.Warn("Item creation rejected: validation failed", map[string]interface{}{
			"seller_id": sellerID,
			"reason":    err.Error(),
		})
		return nil, err
	}

	item := &model.Item{
		SellerID:    sellerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}

	if err := s.itemRepo.Create(item); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateItemName
		}
		return nil, err
	}

	logger.Info("Item created successfully", map[string]interface{}{
		"item_id":   item.ID,
		"seller_id": sellerID,
	})
	return item, nil
}

func (s *itemService) GetItem(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListItems(limit, offset int) ([]model.Item, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.itemRepo.FindAll(limit, offset)
}

func (s *itemService) ListSellerItems(sellerID uint) ([]model.Item, error) {
	return s.itemRepo.FindBySellerID(sellerID)
}

func (s *itemService) UpdateItem(id, actorID uint, isAdmin bool, input UpdateItemInput) (*model.Item, error) {
	logger.Info("Updating item", map[string]interface{}{
		"item_id":  id,
		"actor_id": actorID,
	})

	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	// Ownership is checked before any field is touched
	if item.SellerID != actorID && !isAdmin {
		logger.Warn("Item update rejected: not the seller", map[string]interface{}{
			"item_id":  id,
			"actor_id": actorID,
		})
		return nil, ErrNotItemOwner
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}

	if err := validateItemFields(item.Name, item.Description, item.Price, item.Quantity); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(item); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateItemName
		}
		return nil, err
	}

	logger.Info("Item updated successfully", map[string]interface{}{
		"item_id": item.ID,
	})
	return item, nil
}

func (s *itemService) DeleteItem(id, actorID uint, isAdmin bool) error {
	logger.Info("Deleting item", map[string]interface{}{
		"item_id":  id,
		"actor_id": actorID,
	})

	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if item.SellerID != actorID && !isAdmin {
		logger.Warn("Item delete rejected: not the seller", map[string]interface{}{
			"item_id":  id,
			"actor_id": actorID,
		})
		return ErrNotItemOwner
	}

	return s.itemRepo.Delete(id)
}
