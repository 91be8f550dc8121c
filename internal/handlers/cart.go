package handlers

import (
	"net/http"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, err := cartStore.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if apierrors.Is(err, apierrors.KindNotFound) {
			c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "total_price": 0}) // panier vide
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	cart, err := cartService.AddProduct(c.Request.Context(), input.ProductID, input.Quantity, userID)
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    cart,
	})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	// body optionnel : sans quantité on retire une unité
	_ = c.ShouldBindJSON(&input)

	cart, err := cartService.RemoveProduct(c.Request.Context(), userID, c.Param("productId"), input.Quantity)
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit retiré du panier",
		"cart":    cart,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := c.Request.Context()

	cart, err := cartStore.FindByUserID(ctx, userID)
	if err != nil {
		if apierrors.Is(err, apierrors.KindNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "Panier déjà vide"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	cart.Items = nil
	cart.TotalPrice = 0
	if err := cartStore.Save(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	// notifie les clients websocket
	database.Redis.Publish(ctx, "cart:"+userID, "cleared")

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
