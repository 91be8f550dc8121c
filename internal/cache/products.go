package cache

import (
	"context"
	"encoding/json"
	"time"

	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"
)

const ProductCacheTTL = 10 * time.Minute

// GetProductFromCache retourne un produit depuis Redis, ou nil si absent
func GetProductFromCache(ctx context.Context, productID string) *models.Product {
	data, err := database.Redis.Get(ctx, "product:"+productID).Result()
	if err != nil || data == "" {
		return nil
	}

	var p models.Product
	if json.Unmarshal([]byte(data), &p) != nil {
		return nil
	}
	return &p
}

// SetProductInCache met un produit en cache, best-effort
func SetProductInCache(ctx context.Context, p models.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, "product:"+p.ID.String(), data, ProductCacheTTL)
}

// InvalidateProductCache purge le cache après une mise à jour produit
func InvalidateProductCache(ctx context.Context, productID string) {
	database.Redis.Del(ctx, "product:"+productID)
}
