package service

import (
	"strings"
	"testing"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewTestEnv struct {
	db            *gorm.DB
	reviewService ReviewService
	author        *model.User
	seller        *model.User
	item          *model.Item
}

func setupReviewServiceTest(t *testing.T) reviewTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	reviewService := NewReviewService(reviewRepo, itemRepo, userRepo)

	author := &model.User{
		Email:        "author@example.com",
		Username:     "author",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(author)

	seller := &model.User{
		Email:        "seller@example.com",
		Username:     "seller",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(seller)

	item := &model.Item{
		SellerID: seller.ID,
		Name:     "Ceramic Mug",
		Price:    25.00,
		Quantity: 10,
	}
	testDB.Create(item)

	return reviewTestEnv{
		db:            testDB,
		reviewService: reviewService,
		author:        author,
		seller:        seller,
		item:          item,
	}
}

func TestReviewService_CreateReview_ItemTarget(t *testing.T) {
	env := setupReviewServiceTest(t)

	review, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     4,
		Comment:    "Lovely glaze",
	})
	require.NoError(t, err)
	assert.Equal(t, env.author.ID, review.AuthorID)
	assert.Equal(t, model.ReviewTargetItem, review.TargetType)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_CreateReview_UserTarget(t *testing.T) {
	env := setupReviewServiceTest(t)

	review, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetUser,
		TargetID:   env.seller.ID,
		RevieweeID: env.seller.ID,
		Rating:     5,
		Comment:    "Fast shipping",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewTargetUser, review.TargetType)
	assert.Equal(t, env.seller.ID, review.TargetID)
}

func TestReviewService_CreateReview_InvalidRating(t *testing.T) {
	env := setupReviewServiceTest(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
			TargetType: model.ReviewTargetItem,
			TargetID:   env.item.ID,
			RevieweeID: env.seller.ID,
			Rating:     rating,
		})
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestReviewService_CreateReview_CommentTooLong(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     3,
		Comment:    strings.Repeat("a", model.ReviewMaxCommentLen+1),
	})
	assert.ErrorIs(t, err, ErrCommentTooLong)
}

func TestReviewService_CreateReview_SelfReview(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.reviewService.CreateReview(env.seller.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     5,
	})
	assert.ErrorIs(t, err, ErrSelfReview)
}

func TestReviewService_CreateReview_TargetNotFound(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   9999,
		RevieweeID: env.seller.ID,
		Rating:     3,
	})
	assert.ErrorIs(t, err, ErrReviewTargetNotFound)
}

func TestReviewService_CreateReview_RevieweeNotOwner(t *testing.T) {
	env := setupReviewServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		Username:     "other",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	env.db.Create(other)

	_, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: other.ID,
		Rating:     3,
	})
	assert.ErrorIs(t, err, ErrRevieweeNotOwner)
}

func TestReviewService_CreateReview_InvalidTargetType(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetType("shop"),
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     3,
	})
	assert.ErrorIs(t, err, ErrInvalidReviewTarget)
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	env := setupReviewServiceTest(t)

	input := CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     4,
	}
	_, err := env.reviewService.CreateReview(env.author.ID, input)
	require.NoError(t, err)

	_, err = env.reviewService.CreateReview(env.author.ID, input)
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewService_ListByTarget(t *testing.T) {
	env := setupReviewServiceTest(t)

	_, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     4,
	})
	require.NoError(t, err)

	reviews, err := env.reviewService.ListByTarget(model.ReviewTargetItem, env.item.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	reviews, err = env.reviewService.ListByTarget(model.ReviewTargetUser, env.seller.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 0)

	_, err = env.reviewService.ListByTarget(model.ReviewTargetType("shop"), 1)
	assert.ErrorIs(t, err, ErrInvalidReviewTarget)
}

func TestReviewService_DeleteReview_Authorization(t *testing.T) {
	env := setupReviewServiceTest(t)

	review, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     4,
	})
	require.NoError(t, err)

	// The reviewee cannot delete someone else's review
	err = env.reviewService.DeleteReview(review.ID, env.seller.ID, false)
	assert.ErrorIs(t, err, ErrNotReviewAuthor)

	err = env.reviewService.DeleteReview(review.ID, env.author.ID, false)
	assert.NoError(t, err)

	err = env.reviewService.DeleteReview(review.ID, env.author.ID, false)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_DeleteReview_Admin(t *testing.T) {
	env := setupReviewServiceTest(t)

	review, err := env.reviewService.CreateReview(env.author.ID, CreateReviewInput{
		TargetType: model.ReviewTargetItem,
		TargetID:   env.item.ID,
		RevieweeID: env.seller.ID,
		Rating:     1,
	})
	require.NoError(t, err)

	err = env.reviewService.DeleteReview(review.ID, 9999, true)
	assert.NoError(t, err)
}
