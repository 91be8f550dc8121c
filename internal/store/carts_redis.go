package store

import (
	"context"
	"encoding/json"
	"time"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

// Les paniers vivent dans Redis, comme le cache de session : clé par id,
// index par utilisateur, TTL de 30 jours rafraîchi à chaque écriture.
const (
	cartTTL          = 30 * 24 * time.Hour
	cartKeyPrefix    = "cart:id:"
	cartUserPrefix   = "cart:user:"
	cartPubSubPrefix = "cart:"
)

type RedisCartStore struct{}

func NewRedisCartStore() *RedisCartStore {
	return &RedisCartStore{}
}

func (s *RedisCartStore) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	data, err := database.Redis.Get(ctx, cartKeyPrefix+id).Result()
	if err == redis.Nil || data == "" {
		return nil, apierrors.NotFoundID("cart", id)
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *RedisCartStore) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	cartID, err := database.Redis.Get(ctx, cartUserPrefix+userID).Result()
	if err == redis.Nil || cartID == "" {
		return nil, apierrors.NotFound("cart")
	}
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, cartID)
}

func (s *RedisCartStore) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	if err := database.Redis.Set(ctx, cartKeyPrefix+cart.ID, data, cartTTL).Err(); err != nil {
		return err
	}
	if cart.UserID != "" {
		if err := database.Redis.Set(ctx, cartUserPrefix+cart.UserID, cart.ID, cartTTL).Err(); err != nil {
			return err
		}
		// notifie les clients websocket connectés
		database.Redis.Publish(ctx, cartPubSubPrefix+cart.UserID, "updated")
	}

	return nil
}
