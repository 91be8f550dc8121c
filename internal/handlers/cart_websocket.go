package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(401, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal Redis pour ce user
	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			// clé cart:user:<userID> = id du panier, le contenu vit sous
			// cart:id:<id> ; le store fait la double résolution
			cart, err := cartStore.FindByUserID(ctx, userID)
			if err != nil {
				cart = nil
			}

			if err := conn.WriteJSON(cartSyncFrame(cart)); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// cartSyncFrame construit le message cart_updated envoyé aux clients.
// Un panier absent est annoncé vide, jamais comme une erreur.
func cartSyncFrame(cart *models.Cart) map[string]interface{} {
	if cart == nil {
		return map[string]interface{}{
			"type":  "cart_updated",
			"items": []models.CartItem{},
			"total": 0.0,
			"count": 0,
		}
	}

	count := 0
	for _, item := range cart.Items {
		count += item.Quantity
	}

	return map[string]interface{}{
		"type":  "cart_updated",
		"items": cart.Items,
		"total": cart.TotalPrice,
		"count": count,
	}
}
