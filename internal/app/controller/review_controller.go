package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/craftify/craftify-backend/internal/app/model"
	apperrors "github.com/craftify/craftify-backend/internal/errors"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=item user"`
	TargetID   uint   `json:"target_id" binding:"required"`
	RevieweeID uint   `json:"reviewee_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// CreateReview posts a review of an item or a user
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	review, err := ctrl.reviewService.CreateReview(authorID, service.CreateReviewInput{
		TargetType: model.ReviewTargetType(req.TargetType),
		TargetID:   req.TargetID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		log.Warn("Review creation failed", map[string]interface{}{
			"author_id": authorID,
			"error":     err.Error(),
		})
		switch {
		case errors.Is(err, service.ErrSelfReview):
			apperrors.UnprocessableEntity(c, apperrors.ReviewSelfForbidden, err.Error())
		case errors.Is(err, service.ErrReviewTargetNotFound), errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ReviewInvalidTarget, err.Error())
		case errors.Is(err, service.ErrRevieweeNotOwner):
			apperrors.UnprocessableEntity(c, apperrors.ReviewOwnerMismatch, err.Error())
		case errors.Is(err, service.ErrDuplicateReview):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, err.Error())
		case errors.Is(err, service.ErrInvalidRating),
			errors.Is(err, service.ErrCommentTooLong),
			errors.Is(err, service.ErrInvalidReviewTarget):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListReviewsByTarget returns reviews of one item or user
// GET /api/v1/reviews?target_type=item&target_id=1
func (ctrl *ReviewController) ListReviewsByTarget(c *gin.Context) {
	targetType := c.Query("target_type")
	targetID, err := strconv.ParseUint(c.Query("target_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid target ID")
		return
	}

	reviews, err := ctrl.reviewService.ListByTarget(model.ReviewTargetType(targetType), uint(targetID))
	if err != nil {
		if errors.Is(err, service.ErrInvalidReviewTarget) {
			apperrors.BadRequest(c, apperrors.ReviewInvalidTarget, err.Error())
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListMyReviews returns the authenticated user's authored reviews
// GET /api/v1/reviews/mine
func (ctrl *ReviewController) ListMyReviews(c *gin.Context) {
	authorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviews, err := ctrl.reviewService.ListByAuthor(authorID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// DeleteReview removes a review, author or admin only
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid review ID")
		return
	}

	if err := ctrl.reviewService.DeleteReview(uint(id), actorID, middleware.IsAdmin(c)); err != nil {
		log.Warn("Review delete failed", map[string]interface{}{
			"review_id": id,
			"actor_id":  actorID,
			"error":     err.Error(),
		})
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "review not found")
		case errors.Is(err, service.ErrNotReviewAuthor):
			apperrors.Forbidden(c, err.Error())
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
