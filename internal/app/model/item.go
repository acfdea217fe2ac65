package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ItemMinPrice    = 0.01
	ItemMaxPrice    = 1000000.0
	ItemMinQuantity = 1
	ItemMaxQuantity = 10000
	ItemMaxDescLen  = 2000
)

// Item is a seller's listing. (SellerID, Name) is unique so a seller
// cannot list the same name twice.
type Item struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	SellerID    uint           `gorm:"not null;index;uniqueIndex:idx_items_seller_name" json:"seller_id"`
	Name        string         `gorm:"not null;uniqueIndex:idx_items_seller_name" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Quantity    int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Seller User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Item) TableName() string {
	return "items"
}
