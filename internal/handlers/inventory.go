package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"lumera_back_end/internal/cache"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// 📦 PATCH /api/products/:id/stock — admin : réassort ou correction
//
func UpdateStock(c *gin.Context) {
	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Reason   string `json:"reason" binding:"required"`
		Type     string `json:"type" binding:"required"` // "restock", "adjustment"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Récupérer le stock actuel
	var currentStock int
	var productTitle string
	if err := session.Query(`SELECT stock, title FROM products WHERE product_id = ?`, productID).
		Scan(&currentStock, &productTitle); err != nil {
		log.Printf("❌ Produit non trouvé: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	var newStock int
	switch req.Type {
	case "restock":
		newStock = currentStock + req.Quantity
	case "adjustment":
		newStock = req.Quantity // quantité absolue
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type d'opération invalide"})
		return
	}

	if newStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	if err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?`,
		newStock, time.Now(), productID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour stock: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du stock"})
		return
	}

	// Enregistrer le mouvement de stock
	movement := models.StockMovement{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		PrevStock: currentStock,
		NewStock:  newStock,
		Reason:    req.Reason,
		UserID:    c.GetString("user_id"),
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PrevStock, movement.NewStock, movement.Reason, movement.UserID,
		movement.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock: %v", err)
	}

	cache.InvalidateProductCache(c.Request.Context(), c.Param("id"))

	// Vérifier les alertes de stock faible
	checkLowStockAlert(productID, productTitle, newStock)

	log.Printf("✅ Stock mis à jour pour %s: %d -> %d", productTitle, currentStock, newStock)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Stock mis à jour avec succès",
		"prev_stock":  currentStock,
		"new_stock":   newStock,
		"movement_id": movement.ID,
	})
}

//
// 📜 GET /api/inventory/movements/:productId — admin
//
func GetStockMovements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit > 100 {
		limit = 100
	}

	productID, err := gocql.ParseUUID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at
		FROM stock_movements WHERE product_id = ? LIMIT ?`, productID, limit).Iter()
	defer iter.Close()

	var movements []models.StockMovement
	var movement models.StockMovement

	for iter.Scan(&movement.ID, &movement.ProductID, &movement.Type, &movement.Quantity,
		&movement.PrevStock, &movement.NewStock, &movement.Reason, &movement.UserID,
		&movement.CreatedAt) {
		movements = append(movements, movement)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération mouvements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movements": movements,
		"total":     len(movements),
	})
}

//
// 🚨 GET /api/inventory/alerts — admin
//
func GetLowStockAlerts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, product_id, product_title, current_stock, threshold_stock, alert_type, is_resolved, created_at
		FROM stock_alerts WHERE is_resolved = false`).Iter()
	defer iter.Close()

	var alerts []models.StockAlert
	var alert models.StockAlert

	for iter.Scan(&alert.ID, &alert.ProductID, &alert.ProductTitle, &alert.CurrentStock,
		&alert.ThresholdStock, &alert.AlertType, &alert.IsResolved, &alert.CreatedAt) {
		alerts = append(alerts, alert)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération alertes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

// checkLowStockAlert crée une alerte si le stock passe sous le seuil
func checkLowStockAlert(productID gocql.UUID, productTitle string, currentStock int) {
	session, err := database.GetProductsSession()
	if err != nil {
		return
	}

	var threshold int
	if err := session.Query(`SELECT low_stock_threshold FROM products WHERE product_id = ?`, productID).
		Scan(&threshold); err != nil {
		return
	}

	if threshold == 0 {
		threshold = 10 // seuil par défaut
	}

	var alertType string
	switch {
	case currentStock == 0:
		alertType = "out_of_stock"
	case currentStock <= threshold:
		alertType = "low_stock"
	default:
		return
	}

	// Vérifier si une alerte non résolue existe déjà
	var existingAlertID gocql.UUID
	if err := session.Query(`SELECT id FROM stock_alerts WHERE product_id = ? AND is_resolved = false LIMIT 1`,
		productID).Scan(&existingAlertID); err == nil {
		return
	}

	alert := models.StockAlert{
		ID:             gocql.TimeUUID(),
		ProductID:      productID,
		ProductTitle:   productTitle,
		CurrentStock:   currentStock,
		ThresholdStock: threshold,
		AlertType:      alertType,
		IsResolved:     false,
		CreatedAt:      time.Now(),
	}

	if err := session.Query(`INSERT INTO stock_alerts (id, product_id, product_title, current_stock, threshold_stock, alert_type, is_resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		alert.ID, alert.ProductID, alert.ProductTitle, alert.CurrentStock,
		alert.ThresholdStock, alert.AlertType, alert.IsResolved, alert.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Erreur création alerte stock: %v", err)
	} else {
		log.Printf("🚨 Alerte stock créée pour %s: %s", productTitle, alertType)
	}
}
