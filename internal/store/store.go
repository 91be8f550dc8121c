package store

import (
	"context"

	"lumera_back_end/internal/models"
)

// Interfaces consommées par les services métier. Les implémentations
// ScyllaDB/Redis vivent dans ce package, les tests utilisent des fakes.

type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	// DecrementStock retire qty unités au stock via un decrement conditionnel
	// (LWT) : échoue avec une erreur Validation si le stock est insuffisant.
	DecrementStock(ctx context.Context, id string, qty int) error
}

type CartStore interface {
	FindByID(ctx context.Context, id string) (*models.Cart, error)
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

type OrderStore interface {
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type DeliveryStore interface {
	FindByID(ctx context.Context, id string) (*models.Delivery, error)
	FindAll(ctx context.Context) ([]models.Delivery, error)
}

// NotificationGateway : envois d'emails best-effort. Un échec est loggé,
// jamais remonté comme échec de commande.
type NotificationGateway interface {
	SendOrderConfirmation(order models.Order) error
	SendStatusUpdate(order models.Order, newStatus models.OrderStatus) error
}
