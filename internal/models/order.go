package models

import "time"

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id,omitempty"` // vide pour les commandes invité
	DeliveryID  string      `json:"delivery_id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Telephone   string      `json:"telephone"`
	Email       string      `json:"email"`
	Comment     string      `json:"comment,omitempty"`
	Items       []OrderItem `json:"items"`
	AmountOrder float64     `json:"amount_order"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderItem fige le prix du produit au moment de la commande.
// Un changement de prix ultérieur ne modifie jamais une commande existante.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
