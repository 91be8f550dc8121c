package store

import (
	"context"
	"encoding/json"
	"time"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaOrderStore persiste les commandes dans ks_orders.orders.
// Les lignes de commande sont sérialisées en JSON dans la colonne items_json.
type ScyllaOrderStore struct{}

func NewScyllaOrderStore() *ScyllaOrderStore {
	return &ScyllaOrderStore{}
}

func (s *ScyllaOrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierrors.Validation("ID commande invalide")
	}

	var o models.Order
	var itemsJSON string
	var status string
	err = session.Query(`SELECT order_id, user_id, delivery_id, first_name, last_name, telephone, email, comment, items_json, amount_order, status, created_at
		FROM orders WHERE order_id = ?`, gocql.UUID(orderID)).WithContext(ctx).Scan(
		&o.ID, &o.UserID, &o.DeliveryID, &o.FirstName, &o.LastName, &o.Telephone,
		&o.Email, &o.Comment, &itemsJSON, &o.AmountOrder, &status, &o.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, apierrors.NotFoundID("order", id)
	}
	if err != nil {
		return nil, err
	}

	o.Status = models.OrderStatus(status)
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			return nil, err
		}
	}

	return &o, nil
}

func (s *ScyllaOrderStore) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, user_id, delivery_id, first_name, last_name, telephone, email, comment, items_json, amount_order, status, created_at
		FROM orders_by_user WHERE user_id = ?`, userID).WithContext(ctx).Iter()
	defer iter.Close()

	var orders []models.Order
	var o models.Order
	var itemsJSON, status string

	for iter.Scan(&o.ID, &o.UserID, &o.DeliveryID, &o.FirstName, &o.LastName,
		&o.Telephone, &o.Email, &o.Comment, &itemsJSON, &o.AmountOrder, &status, &o.CreatedAt) {
		o.Status = models.OrderStatus(status)
		o.Items = nil
		if itemsJSON != "" {
			_ = json.Unmarshal([]byte(itemsJSON), &o.Items)
		}
		orders = append(orders, o)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (s *ScyllaOrderStore) Save(ctx context.Context, order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	orderID, err := uuid.Parse(order.ID)
	if err != nil {
		return apierrors.Validation("ID commande invalide")
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	const insert = `INSERT INTO orders (order_id, user_id, delivery_id, first_name, last_name, telephone, email, comment, items_json, amount_order, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(insert,
		gocql.UUID(orderID), order.UserID, order.DeliveryID, order.FirstName, order.LastName,
		order.Telephone, order.Email, order.Comment, string(itemsJSON),
		order.AmountOrder, string(order.Status), order.CreatedAt).WithContext(ctx).Exec(); err != nil {
		return err
	}

	// table dénormalisée pour la liste "mes commandes"
	if order.UserID != "" {
		const insertByUser = `INSERT INTO orders_by_user (user_id, order_id, delivery_id, first_name, last_name, telephone, email, comment, items_json, amount_order, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if err := session.Query(insertByUser,
			order.UserID, gocql.UUID(orderID), order.DeliveryID, order.FirstName, order.LastName,
			order.Telephone, order.Email, order.Comment, string(itemsJSON),
			order.AmountOrder, string(order.Status), order.CreatedAt).WithContext(ctx).Exec(); err != nil {
			return err
		}
	}

	return nil
}

func (s *ScyllaOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(id)
	if err != nil {
		return apierrors.Validation("ID commande invalide")
	}

	// vérifie l'existence avant l'UPDATE : en CQL un UPDATE sur une clé
	// absente créerait une ligne fantôme
	var userID string
	var createdAt time.Time
	err = session.Query(`SELECT user_id, created_at FROM orders WHERE order_id = ?`, gocql.UUID(orderID)).
		WithContext(ctx).Scan(&userID, &createdAt)
	if err == gocql.ErrNotFound {
		return apierrors.NotFoundID("order", id)
	}
	if err != nil {
		return err
	}

	if err := session.Query(`UPDATE orders SET status = ? WHERE order_id = ?`,
		string(status), gocql.UUID(orderID)).WithContext(ctx).Exec(); err != nil {
		return err
	}

	if userID != "" {
		if err := session.Query(`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`,
			string(status), userID, gocql.UUID(orderID)).WithContext(ctx).Exec(); err != nil {
			return err
		}
	}

	return nil
}
