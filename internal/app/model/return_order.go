package model

import (
	"time"

	"gorm.io/gorm"
)

// ReviewRetractionWindow is how long after an order's creation a refund
// also deletes the buyer's review of the returned item.
const ReviewRetractionWindow = 45 * 24 * time.Hour

// ReturnOrder tracks a buyer returning an order line. RefundGiven moves
// one way: once refunded, a return never goes back to filed.
type ReturnOrder struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"not null;index" json:"order_id"`
	OrderItemID uint           `gorm:"not null;index" json:"order_item_id"`
	ItemID      uint           `gorm:"not null;index" json:"item_id"`
	BuyerID     uint           `gorm:"not null;index" json:"buyer_id"`
	SellerID    uint           `gorm:"not null;index" json:"seller_id"`
	RefundGiven bool           `gorm:"not null;default:false" json:"refund_given"`
	ReturnDate  time.Time      `gorm:"not null" json:"return_date"`
	RefundDate  *time.Time     `json:"refund_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order     PurchaseOrder     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	OrderItem PurchaseOrderItem `gorm:"foreignKey:OrderItemID" json:"order_item,omitempty"`
	Item      Item              `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Buyer     User              `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller    User              `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (ReturnOrder) TableName() string {
	return "return_orders"
}
