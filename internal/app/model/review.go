package model

import (
	"time"

	"gorm.io/gorm"
)

type ReviewTargetType string

const (
	ReviewTargetItem ReviewTargetType = "item"
	ReviewTargetUser ReviewTargetType = "user"
)

const ReviewMaxCommentLen = 1000

// Review covers either an item or a user, selected by TargetType plus
// TargetID. One review per (author, target type, target id).
type Review struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	AuthorID   uint             `gorm:"not null;index;uniqueIndex:idx_reviews_author_target" json:"author_id"`
	RevieweeID uint             `gorm:"not null;index" json:"reviewee_id"`
	TargetType ReviewTargetType `gorm:"type:varchar(10);not null;uniqueIndex:idx_reviews_author_target" json:"target_type"`
	TargetID   uint             `gorm:"not null;index;uniqueIndex:idx_reviews_author_target" json:"target_id"`
	Rating     int              `gorm:"not null" json:"rating"` // 1..5
	Comment    string           `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	Author   User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Reviewee User `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
