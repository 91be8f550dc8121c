package routes

import (
	"lumera_back_end/internal/handlers"
	"lumera_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
		auth.POST("/forgot-password", handlers.ForgotPassword)
		auth.POST("/reset-password", handlers.ResetPassword)
		auth.GET("/me", middleware.AuthRequired(), handlers.Me)
	}

	// Produits
	products := api.Group("/products")
	{
		products.GET("", handlers.GetAllProducts)
		products.GET("/search", middleware.SearchRateLimit(), handlers.SearchProducts)
		products.GET("/:id", handlers.GetProductByID)
		products.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.CreateProduct)
		products.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.UpdateProduct)
		products.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.DeleteProduct)
		products.PATCH("/:id/stock", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.UpdateStock)
	}

	// Inventaire (admin)
	inventory := api.Group("/inventory", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		inventory.GET("/movements/:productId", handlers.GetStockMovements)
		inventory.GET("/alerts", handlers.GetLowStockAlerts)
	}

	// Panier
	cart := api.Group("/cart", middleware.AuthRequired(), middleware.CartRateLimit())
	{
		cart.GET("", handlers.GetCart)
		cart.POST("/add", handlers.AddToCart)
		cart.DELETE("/clear", handlers.ClearCart)
		cart.DELETE("/:productId", handlers.RemoveFromCart)
	}
	api.GET("/cart/ws", middleware.AuthRequired(), handlers.CartWebSocket)

	// Commandes
	orders := api.Group("/orders")
	{
		// OptionalAuth : la création de commande accepte aussi les invités
		orders.POST("", middleware.OptionalAuth(), handlers.CreateOrder)
		orders.GET("/me", middleware.AuthRequired(), handlers.GetMyOrders)
		orders.GET("/:id", middleware.AuthRequired(), handlers.GetOrderByID)
		orders.PATCH("/:id/status", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.ChangeOrderStatus)
	}

	// Livraisons
	deliveries := api.Group("/deliveries")
	{
		deliveries.GET("", handlers.GetDeliveries)
		deliveries.GET("/:id", handlers.GetDeliveryByID)
	}

	// Images produit (admin)
	api.POST("/images/upload", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.UploadImage)
}
