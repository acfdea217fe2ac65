package repository

import (
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByTarget(targetType model.ReviewTargetType, targetID uint) ([]model.Review, error)
	FindByAuthorID(authorID uint) ([]model.Review, error)
	FindByAuthorAndTarget(authorID uint, targetType model.ReviewTargetType, targetID uint) (*model.Review, error)
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"author_id":   review.AuthorID,
		"target_type": review.TargetType,
		"target_id":   review.TargetID,
		"rating":      review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"author_id":   review.AuthorID,
			"target_type": review.TargetType,
			"target_id":   review.TargetID,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id": review.ID,
	})
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("Author").First(&review, id).Error; err != nil {
		logger.Error("Failed to find review by ID in database", err, map[string]interface{}{
			"review_id": id,
		})
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByTarget(targetType model.ReviewTargetType, targetID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.Preload("Author").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews by target in database", err, map[string]interface{}{
			"target_type": targetType,
			"target_id":   targetID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByAuthorID(authorID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews by author in database", err, map[string]interface{}{
			"author_id": authorID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByAuthorAndTarget(authorID uint, targetType model.ReviewTargetType, targetID uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.
		Where("author_id = ? AND target_type = ? AND target_id = ?", authorID, targetType, targetID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}
