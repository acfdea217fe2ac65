package service

import (
	"errors"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrSelfReview           = errors.New("users cannot review themselves")
	ErrReviewTargetNotFound = errors.New("review target does not exist")
	ErrRevieweeNotOwner     = errors.New("reviewee does not own the review target")
	ErrDuplicateReview      = errors.New("author has already reviewed this target")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong       = errors.New("comment must be at most 1000 characters")
	ErrInvalidReviewTarget  = errors.New("target type must be item or user")
	ErrNotReviewAuthor      = errors.New("only the author or an admin can delete a review")
)

type CreateReviewInput struct {
	TargetType model.ReviewTargetType
	TargetID   uint
	RevieweeID uint
	Rating     int
	Comment    string
}

type ReviewService interface {
	CreateReview(authorID uint, input CreateReviewInput) (*model.Review, error)
	ListByTarget(targetType model.ReviewTargetType, targetID uint) ([]model.Review, error)
	ListByAuthor(authorID uint) ([]model.Review, error)
	DeleteReview(id, actorID uint, isAdmin bool) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, itemRepo repository.ItemRepository, userRepo repository.UserRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
	}
}

func (s *reviewService) CreateReview(authorID uint, input CreateReviewInput) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"author_id":   authorID,
		"target_type": input.TargetType,
		"target_id":   input.TargetID,
		"rating":      input.Rating,
	})

	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if len(input.Comment) > model.ReviewMaxCommentLen {
		return nil, ErrCommentTooLong
	}
	if authorID == input.RevieweeID {
		logger.Warn("Review rejected: self review", map[string]interface{}{
			"author_id": authorID,
		})
		return nil, ErrSelfReview
	}

	// The target must resolve, and for owning targets the reviewee must
	// be the owner. A user target carries no ownership beyond identity.
	switch input.TargetType {
	case model.ReviewTargetItem:
		item, err := s.itemRepo.FindByID(input.TargetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReviewTargetNotFound
			}
			return nil, err
		}
		if item.SellerID != input.RevieweeID {
			logger.Warn("Review rejected: reviewee is not the item seller", map[string]interface{}{
				"author_id":   authorID,
				"item_id":     input.TargetID,
				"reviewee_id": input.RevieweeID,
				"seller_id":   item.SellerID,
			})
			return nil, ErrRevieweeNotOwner
		}
	case model.ReviewTargetUser:
		if _, err := s.userRepo.FindByID(input.TargetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReviewTargetNotFound
			}
			return nil, err
		}
		if input.TargetID != input.RevieweeID {
			return nil, ErrRevieweeNotOwner
		}
	default:
		return nil, ErrInvalidReviewTarget
	}

	if _, err := s.userRepo.FindByID(input.RevieweeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.FindByAuthorAndTarget(authorID, input.TargetType, input.TargetID); err == nil {
		logger.Warn("Review rejected: duplicate", map[string]interface{}{
			"author_id":   authorID,
			"target_type": input.TargetType,
			"target_id":   input.TargetID,
		})
		return nil, ErrDuplicateReview
	}

	review := &model.Review{
		AuthorID:   authorID,
		RevieweeID: input.RevieweeID,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
	})
	return review, nil
}

func (s *reviewService) ListByTarget(targetType model.ReviewTargetType, targetID uint) ([]model.Review, error) {
	if targetType != model.ReviewTargetItem && targetType != model.ReviewTargetUser {
		return nil, ErrInvalidReviewTarget
	}
	return s.reviewRepo.FindByTarget(targetType, targetID)
}

func (s *reviewService) ListByAuthor(authorID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByAuthorID(authorID)
}

func (s *reviewService) DeleteReview(id, actorID uint, isAdmin bool) error {
	logger.Info("Deleting review", map[string]interface{}{
		"review_id": id,
		"actor_id":  actorID,
	})

	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.AuthorID != actorID && !isAdmin {
		logger.Warn("Review delete rejected: not the author", map[string]interface{}{
			"review_id": id,
			"actor_id":  actorID,
		})
		return ErrNotReviewAuthor
	}

	return s.reviewRepo.Delete(id)
}
