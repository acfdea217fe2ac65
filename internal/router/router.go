package router

import (
	"github.com/craftify/craftify-backend/config"
	"github.com/craftify/craftify-backend/internal/app/controller"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController   *controller.AuthController
	userController   *controller.UserController
	itemController   *controller.ItemController
	cartController   *controller.CartController
	orderController  *controller.OrderController
	returnController *controller.ReturnController
	reviewController *controller.ReviewController
	authMiddleware   *middleware.AuthMiddleware
	config           *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	itemController *controller.ItemController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	returnController *controller.ReturnController,
	reviewController *controller.ReviewController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:   authController,
		userController:   userController,
		itemController:   itemController,
		cartController:   cartController,
		orderController:  orderController,
		returnController: returnController,
		reviewController: reviewController,
		authMiddleware:   authMiddleware,
		config:           cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Craftify API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
			auth.DELETE("/me", r.authMiddleware.Authenticate(), r.authController.DeleteMe)
		}

		users := v1.Group("/users")
		{
			users.GET("", r.userController.ListUsers)
			users.GET("/:id", r.userController.GetUser)
		}

		items := v1.Group("/items")
		{
			items.GET("", r.itemController.ListItems)
			items.GET("/mine", r.authMiddleware.Authenticate(), r.itemController.ListMyItems)
			items.GET("/:id", r.itemController.GetItem)
			items.POST("", r.authMiddleware.Authenticate(), r.itemController.CreateItem)
			items.PUT("/:id", r.authMiddleware.Authenticate(), r.itemController.UpdateItem)
			items.DELETE("/:id", r.authMiddleware.Authenticate(), r.itemController.DeleteItem)
		}

		cart := v1.Group("/cart", r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddToCart)
			cart.DELETE("/items/:item_id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders", r.authMiddleware.Authenticate())
		{
			orders.POST("/checkout", r.orderController.Checkout)
			orders.GET("", r.orderController.ListMyOrders)
			orders.GET("/sales", r.orderController.ListMySales)
			orders.GET("/:id", r.orderController.GetOrder)
		}

		returns := v1.Group("/returns", r.authMiddleware.Authenticate())
		{
			returns.POST("", r.returnController.FileReturn)
			returns.GET("", r.returnController.ListMyReturns)
			returns.GET("/:id", r.returnController.GetReturn)
			returns.POST("/:id/refund",
				r.authMiddleware.RequireRole("admin"),
				r.returnController.ProcessRefund,
			)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", r.reviewController.ListReviewsByTarget)
			reviews.GET("/mine", r.authMiddleware.Authenticate(), r.reviewController.ListMyReviews)
			reviews.POST("", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)
			reviews.DELETE("/:id", r.authMiddleware.Authenticate(), r.reviewController.DeleteReview)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
