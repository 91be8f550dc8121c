package handlers

import (
	"log"
	"net/http"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/middleware"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

//
// 📦 POST /api/orders — accessible aux invités (OptionalAuth)
//
func CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	identity := middleware.IdentityFromContext(c)

	order, err := orderService.CreateOrder(c.Request.Context(), input, identity)
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	log.Printf("✅ Commande %s créée (%.2f€)", order.ID, order.AmountOrder)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"order":   order,
	})
}

//
// 🔄 PATCH /api/orders/:id/status — back-office uniquement
//
func ChangeOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	order, err := orderService.ChangeStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(input.Status))
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	log.Printf("✅ Commande %s → statut %s", order.ID, order.Status)
	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"order":   order,
	})
}

//
// 📋 GET /api/orders/my
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orders, err := orderStore.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🔍 GET /api/orders/:id
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := orderStore.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	// on vérifie que la commande appartient bien à l'utilisateur
	if order.UserID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"error": "commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}
