package store

import (
	"context"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaDeliveryStore : lecture seule sur ks_orders.deliveries
type ScyllaDeliveryStore struct{}

func NewScyllaDeliveryStore() *ScyllaDeliveryStore {
	return &ScyllaDeliveryStore{}
}

func (s *ScyllaDeliveryStore) FindByID(ctx context.Context, id string) (*models.Delivery, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	deliveryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierrors.Validation("ID livraison invalide")
	}

	var d models.Delivery
	err = session.Query(`SELECT delivery_id, company, delivery_type, price FROM deliveries WHERE delivery_id = ?`,
		gocql.UUID(deliveryID)).WithContext(ctx).Scan(&d.ID, &d.Company, &d.DeliveryType, &d.Price)
	if err == gocql.ErrNotFound {
		return nil, apierrors.NotFoundID("delivery", id)
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (s *ScyllaDeliveryStore) FindAll(ctx context.Context) ([]models.Delivery, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT delivery_id, company, delivery_type, price FROM deliveries`).
		WithContext(ctx).Iter()
	defer iter.Close()

	var deliveries []models.Delivery
	var d models.Delivery
	for iter.Scan(&d.ID, &d.Company, &d.DeliveryType, &d.Price) {
		deliveries = append(deliveries, d)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
