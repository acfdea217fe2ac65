package model

import (
	"time"

	"gorm.io/gorm"
)

// Cart is created lazily on first add and survives checkout; only its
// items are cleared.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// Total computes the cart total from current item prices
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Items {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CartID    uint           `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_item" json:"cart_id"`
	ItemID    uint           `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_item" json:"item_id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Cart Cart `gorm:"foreignKey:CartID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
