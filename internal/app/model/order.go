package model

import (
	"time"

	"gorm.io/gorm"
)

// PurchaseOrder is the immutable record of a completed checkout. Line
// prices are snapshots; later item edits never change an order.
type PurchaseOrder struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderNumber string         `gorm:"uniqueIndex;not null" json:"order_number"`
	BuyerID     uint           `gorm:"not null;index" json:"buyer_id"`
	SellerID    uint           `gorm:"not null;index" json:"seller_id"`
	TotalAmount float64        `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Buyer  User                `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller User                `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Items  []PurchaseOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

type PurchaseOrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ItemID    uint           `gorm:"not null;index" json:"item_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"` // price at checkout time
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order PurchaseOrder `gorm:"foreignKey:OrderID" json:"-"`
	Item  Item          `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
