package model

import (
	"time"

	"gorm.io/gorm"
)

// Address is a user's single shipping address. All five fields are
// required together; a partial address never passes validation.
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Street     string         `gorm:"not null" json:"street"`
	City       string         `gorm:"not null" json:"city"`
	State      string         `gorm:"not null" json:"state"`
	PostalCode string         `gorm:"not null" json:"postal_code"` // 12345 or 12345-6789
	Country    string         `gorm:"not null" json:"country"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
