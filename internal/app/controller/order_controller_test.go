package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/db"
	"github.com/craftify/craftify-backend/pkg/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Item) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo, payment.NewStubGateway(), false)
	orderController := NewOrderController(orderService)

	buyer := &model.User{
		Email:        "buyer@example.com",
		Username:     "buyer",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(buyer)

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

	// Pre-fill the cart
	cartService := service.NewCartService(cartRepo, itemRepo)
	require.NoError(t, cartService.AddToCart(buyer.ID, item.ID, 2))

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, buyer, item
}

func TestOrderController_Checkout_Success(t *testing.T) {
	controller, router, testDB, buyer, _ := setupOrderControllerTest(t)

	router.POST("/orders/checkout", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	testDB.Model(&model.PurchaseOrder{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderController_Checkout_EmptyCart(t *testing.T) {
	controller, router, testDB, buyer, item := setupOrderControllerTest(t)

	cartService := service.NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewItemRepository(testDB),
	)
	require.NoError(t, cartService.RemoveFromCart(buyer.ID, item.ID))

	router.POST("/orders/checkout", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOrderController_Checkout_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.POST("/orders/checkout", controller.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/orders/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderController_GetOrder_Forbidden(t *testing.T) {
	controller, router, testDB, buyer, _ := setupOrderControllerTest(t)

	router.POST("/orders/checkout", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	stranger := &model.User{
		Email:        "stranger@example.com",
		Username:     "stranger",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(stranger)

	router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, stranger.ID)
		controller.GetOrder(c)
	})

	req = httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderController_GetOrder_InvalidID(t *testing.T) {
	controller, router, _, buyer, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/invalid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, buyer, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_ListMyOrders(t *testing.T) {
	controller, router, _, buyer, _ := setupOrderControllerTest(t)

	router.POST("/orders/checkout", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.Checkout(c)
	})
	router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, buyer.ID)
		controller.ListMyOrders(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
