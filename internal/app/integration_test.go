package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftify/craftify-backend/config"
	"github.com/craftify/craftify-backend/internal/app/controller"
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/db"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/craftify/craftify-backend/pkg/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	jwtCfg := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}

	userRepo := repository.NewUserRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	returnRepo := repository.NewReturnRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	gateway := payment.NewStubGateway()
	authService := service.NewAuthService(userRepo, jwtCfg)
	itemService := service.NewItemService(itemRepo)
	cartService := service.NewCartService(cartRepo, itemRepo)
	orderService := service.NewOrderService(testDB, orderRepo, gateway, false)
	returnService := service.NewReturnService(testDB, returnRepo, orderRepo, gateway)
	reviewService := service.NewReviewService(reviewRepo, itemRepo, userRepo)

	authController := controller.NewAuthController(authService, jwtCfg)
	itemController := controller.NewItemController(itemService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	returnController := controller.NewReturnController(returnService)
	reviewController := controller.NewReviewController(reviewService)

	authMiddleware := middleware.NewAuthMiddleware(jwtCfg.Secret, false)

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.Authenticate(), authController.Me)
	}

	items := router.Group("/api/v1/items")
	{
		items.GET("", itemController.ListItems)
		items.GET("/:id", itemController.GetItem)
		items.POST("", authMiddleware.Authenticate(), itemController.CreateItem)
	}

	cart := router.Group("/api/v1/cart")
	cart.Use(authMiddleware.Authenticate())
	{
		cart.GET("", cartController.GetCart)
		cart.POST("/items", cartController.AddToCart)
		cart.DELETE("/items/:item_id", cartController.RemoveFromCart)
		cart.DELETE("", cartController.ClearCart)
	}

	orders := router.Group("/api/v1/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.POST("/checkout", orderController.Checkout)
		orders.GET("", orderController.ListMyOrders)
		orders.GET("/:id", orderController.GetOrder)
	}

	returns := router.Group("/api/v1/returns")
	returns.Use(authMiddleware.Authenticate())
	{
		returns.POST("", returnController.FileReturn)
		returns.GET("", returnController.ListMyReturns)
		returns.POST("/:id/refund", authMiddleware.RequireRole("admin"), returnController.ProcessRefund)
	}

	reviews := router.Group("/api/v1/reviews")
	{
		reviews.GET("", reviewController.ListReviewsByTarget)
		reviews.POST("", authMiddleware.Authenticate(), reviewController.CreateReview)
	}

	return &TestServer{
		Router: router,
		DB:     testDB,
	}
}

func (ts *TestServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, ts *TestServer, email, username string) string {
	w := ts.do("POST", "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["tokens"].(map[string]interface{})["access_token"].(string)
}

func TestMarketplaceLifecycle(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// 1. Register seller and buyer
	t.Log("Step 1: Register users")
	sellerToken := registerUser(t, ts, "seller@example.com", "seller")
	buyerToken := registerUser(t, ts, "buyer@example.com", "buyer")

	// 2. Seller lists an item
	t.Log("Step 2: List an item")
	w := ts.do("POST", "/api/v1/items", sellerToken, map[string]interface{}{
		"name":        "Ceramic Mug",
		"description": "Hand-thrown stoneware",
		"price":       25.00,
		"quantity":    10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var itemResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &itemResp))
	itemID := uint(itemResp["item"].(map[string]interface{})["id"].(float64))

	// 3. Item shows up in the public catalog
	t.Log("Step 3: Browse items")
	w = ts.do("GET", "/api/v1/items", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp["items"].([]interface{}), 1)

	// 4. Buyer adds the item twice, quantities accumulate
	t.Log("Step 4: Fill the cart")
	w = ts.do("POST", "/api/v1/cart/items", buyerToken, map[string]interface{}{
		"item_id":  itemID,
		"quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do("POST", "/api/v1/cart/items", buyerToken, map[string]interface{}{
		"item_id":  itemID,
		"quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do("GET", "/api/v1/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cartResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Equal(t, float64(1), cartResp["count"])
	assert.Equal(t, float64(50), cartResp["total"]) // 25.00 * 2

	// 5. Checkout
	t.Log("Step 5: Checkout")
	w = ts.do("POST", "/api/v1/orders/checkout", buyerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var orderResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderResp))
	order := orderResp["order"].(map[string]interface{})
	assert.Equal(t, float64(50), order["total_amount"])
	orderItems := order["items"].([]interface{})
	require.Len(t, orderItems, 1)
	orderItemID := uint(orderItems[0].(map[string]interface{})["id"].(float64))

	// 6. Cart is empty, second checkout is rejected
	t.Log("Step 6: Cart emptied by checkout")
	w = ts.do("GET", "/api/v1/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Equal(t, float64(0), cartResp["count"])

	w = ts.do("POST", "/api/v1/orders/checkout", buyerToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// 7. Buyer reviews the item
	t.Log("Step 7: Review the item")
	var sellerMe map[string]interface{}
	w = ts.do("GET", "/api/v1/auth/me", sellerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sellerMe))
	sellerID := uint(sellerMe["user"].(map[string]interface{})["id"].(float64))

	w = ts.do("POST", "/api/v1/reviews", buyerToken, map[string]interface{}{
		"target_type": "item",
		"target_id":   itemID,
		"reviewee_id": sellerID,
		"rating":      2,
		"comment":     "Cracked on arrival",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 8. Buyer files a return
	t.Log("Step 8: File a return")
	w = ts.do("POST", "/api/v1/returns", buyerToken, map[string]interface{}{
		"order_item_id": orderItemID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var returnResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &returnResp))
	returnID := uint(returnResp["return"].(map[string]interface{})["id"].(float64))

	// 9. Only admins may refund
	t.Log("Step 9: Refund requires admin")
	refundPath := fmt.Sprintf("/api/v1/returns/%d/refund", returnID)
	w = ts.do("POST", refundPath, buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	registerUser(t, ts, "admin@example.com", "admin")
	ts.DB.Model(&model.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", model.RoleAdmin)
	// Log in again so the token carries the admin role
	w = ts.do("POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var adminLogin map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminLogin))
	adminToken := adminLogin["tokens"].(map[string]interface{})["access_token"].(string)

	// 10. Refund succeeds and retracts the recent review
	t.Log("Step 10: Process refund")
	w = ts.do("POST", refundPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &returnResp))
	refunded := returnResp["return"].(map[string]interface{})
	assert.Equal(t, true, refunded["refund_given"])

	var reviewCount int64
	ts.DB.Model(&model.Review{}).Count(&reviewCount)
	assert.Equal(t, int64(0), reviewCount)

	// 11. A second refund is rejected
	t.Log("Step 11: Double refund rejected")
	w = ts.do("POST", refundPath, adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	accessToken := registerUser(t, ts, "maker@example.com", "maker")

	w := ts.do("POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "maker@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do("GET", "/api/v1/auth/me", accessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var meResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meResp))
	user := meResp["user"].(map[string]interface{})
	assert.Equal(t, "maker@example.com", user["email"])
	assert.Equal(t, "maker", user["username"])
}

func TestUnauthorizedAccess(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	protectedRoutes := []string{
		"/api/v1/auth/me",
		"/api/v1/cart",
		"/api/v1/orders",
		"/api/v1/returns",
	}

	for _, route := range protectedRoutes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest("GET", route, nil)
			w := httptest.NewRecorder()

			ts.Router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestMixedSellerCartRejected(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	firstToken := registerUser(t, ts, "first@example.com", "first")
	secondToken := registerUser(t, ts, "second@example.com", "second")
	buyerToken := registerUser(t, ts, "buyer@example.com", "buyer")

	listItem := func(token, name string) uint {
		w := ts.do("POST", "/api/v1/items", token, map[string]interface{}{
			"name":     name,
			"price":    10.00,
			"quantity": 5,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return uint(resp["item"].(map[string]interface{})["id"].(float64))
	}

	firstItem := listItem(firstToken, "Ceramic Mug")
	secondItem := listItem(secondToken, "Wool Scarf")

	w := ts.do("POST", "/api/v1/cart/items", buyerToken, map[string]interface{}{
		"item_id":  firstItem,
		"quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do("POST", "/api/v1/cart/items", buyerToken, map[string]interface{}{
		"item_id":  secondItem,
		"quantity": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CART_MIXED_SELLER", resp["error"])
}
