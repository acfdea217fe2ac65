package repository

import (
	"testing"
	"time"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Item) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	user := &model.User{
		Email:        "buyer@example.com",
		Username:     "buyer",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

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

	return testDB, repo, user, item
}

func TestCartRepository_FindOrCreateByUserID(t *testing.T) {
	testDB, repo, user, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)

	// Second call returns the same cart
	again, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var count int64
	testDB.Model(&model.Cart{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartRepository_CreateAndFindLine(t *testing.T) {
	testDB, repo, user, item := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)

	line := &model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 2}
	require.NoError(t, repo.CreateLine(line))
	assert.NotZero(t, line.ID)

	found, err := repo.FindLine(cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, line.ID, found.ID)
	assert.Equal(t, 2, found.Quantity)
	assert.Equal(t, "Ceramic Mug", found.Item.Name)
}

func TestCartRepository_FindByUserID_Preloads(t *testing.T) {
	testDB, repo, user, item := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateLine(&model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 3}))

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 25.00, found.Items[0].Item.Price)
	assert.Equal(t, 75.00, found.Total())
}

func TestCartRepository_IncrementLineQuantity(t *testing.T) {
	testDB, repo, user, item := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)

	line := &model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 1}
	require.NoError(t, repo.CreateLine(line))

	require.NoError(t, repo.IncrementLineQuantity(line.ID, 3))

	found, err := repo.FindLine(cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)
}

func TestCartRepository_DeleteLine_AllowsReAdd(t *testing.T) {
	testDB, repo, user, item := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateLine(&model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 1}))

	require.NoError(t, repo.DeleteLine(cart.ID, item.ID))

	_, err = repo.FindLine(cart.ID, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The unique (cart, item) slot is free again
	err = repo.CreateLine(&model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 2})
	assert.NoError(t, err)
}

func TestCartRepository_Clear(t *testing.T) {
	testDB, repo, user, item := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateLine(&model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 1}))

	require.NoError(t, repo.Clear(cart.ID))

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 0)
}

func TestCartRepository_FindStale(t *testing.T) {
	testDB, repo, user, item := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.FindOrCreateByUserID(user.ID)
	require.NoError(t, err)

	line := &model.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 1}
	require.NoError(t, repo.CreateLine(line))

	// Nothing is stale yet
	stale, err := repo.FindStale(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, stale, 0)

	// Backdate the line past the cutoff
	old := time.Now().Add(-48 * time.Hour)
	testDB.Model(&model.CartItem{}).Where("id = ?", line.ID).Update("updated_at", old)

	stale, err = repo.FindStale(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, cart.ID, stale[0].ID)
}
