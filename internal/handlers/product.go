package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/cache"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// 🕯️ POST /api/products — admin
//
func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'title' est obligatoire"})
		return
	}
	if p.Price < 0 || p.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix et stock doivent être positifs"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p.ID = gocql.TimeUUID()
	p.IsActive = true
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (product_id, title, description, price, stock, low_stock_threshold, scent, burn_time_hours, weight_grams, image_urls, tags, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := session.Query(query, p.ID, p.Title, p.Description, p.Price, p.Stock,
		p.LowStockThreshold, p.Scent, p.BurnTimeHours, p.WeightGrams,
		p.ImageURLs, p.Tags, p.IsActive, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

//
// 📋 GET /api/products
//
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:all"

	// ✅ Vérifie le cache Redis
	if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, title, description, price, stock, low_stock_threshold, scent, burn_time_hours, weight_grams, image_urls, tags, is_active, created_at, updated_at FROM products`).Iter()

	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.Scent, &p.BurnTimeHours, &p.WeightGrams, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}

	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur récupération produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// 💾 Met en cache 5 minutes
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, cacheKey, data, 5*time.Minute)
	}

	c.JSON(http.StatusOK, products)
}

//
// 🔍 GET /api/products/:id
//
func GetProductByID(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("id")

	// cache produit individuel
	if p := cache.GetProductFromCache(ctx, productID); p != nil {
		c.JSON(http.StatusOK, p)
		return
	}

	p, err := productStore.FindByID(ctx, productID)
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	cache.SetProductInCache(ctx, *p)
	c.JSON(http.StatusOK, p)
}

//
// ✏️ PUT /api/products/:id — admin
//
func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Title         *string  `json:"title"`
		Description   *string  `json:"description"`
		Price         *float64 `json:"price"`
		Scent         *string  `json:"scent"`
		BurnTimeHours *int     `json:"burn_time_hours"`
		Tags          []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Price != nil && *input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
		return
	}

	p, err := productStore.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Scent != nil {
		p.Scent = *input.Scent
	}
	if input.BurnTimeHours != nil {
		p.BurnTimeHours = *input.BurnTimeHours
	}
	if input.Tags != nil {
		p.Tags = input.Tags
	}
	p.UpdatedAt = time.Now()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	query := `UPDATE products SET title = ?, description = ?, price = ?, scent = ?, burn_time_hours = ?, tags = ?, updated_at = ? WHERE product_id = ?`
	if err := session.Query(query, p.Title, p.Description, p.Price, p.Scent,
		p.BurnTimeHours, p.Tags, p.UpdatedAt, productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(c.Request.Context(), c.Param("id"))
	database.Redis.Del(context.Background(), "products:all")
	go services.IndexProduct(*p)

	c.JSON(http.StatusOK, p)
}

//
// 🗑️ DELETE /api/products/:id — admin, désactivation logique
//
func DeleteProduct(c *gin.Context) {
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

	query := `UPDATE products SET is_active = false, updated_at = ? WHERE product_id = ?`
	if err := session.Query(query, time.Now(), productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProductCache(c.Request.Context(), c.Param("id"))
	database.Redis.Del(context.Background(), "products:all")

	c.JSON(http.StatusOK, gin.H{"message": "Produit désactivé"})
}

//
// 🔎 GET /api/products/search?q=...
//
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' requis"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Println("❌ Erreur recherche Elastic:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}
