package services

import (
	"context"
	"fmt"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/models"

	"github.com/google/uuid"
)

// Fakes en mémoire des stores, mêmes erreurs métier que les vraies
// implémentations ScyllaDB/Redis.

type fakeProductStore struct {
	products   map[string]*models.Product
	decrements []string // productIDs décrémentés, dans l'ordre
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{products: map[string]*models.Product{}}
	for _, p := range products {
		s.products[p.ID.String()] = p
	}
	return s
}

func (s *fakeProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apierrors.NotFoundID("produit", id)
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	p, ok := s.products[id]
	if !ok {
		return apierrors.NotFoundID("produit", id)
	}
	if p.Stock < qty {
		return apierrors.Validation("stock insuffisant pour le produit " + p.Title)
	}
	p.Stock -= qty
	s.decrements = append(s.decrements, fmt.Sprintf("%s:%d", id, qty))
	return nil
}

type fakeCartStore struct {
	byID   map[string]*models.Cart
	byUser map[string]*models.Cart
	saves  int
}

func newFakeCartStore(carts ...*models.Cart) *fakeCartStore {
	s := &fakeCartStore{byID: map[string]*models.Cart{}, byUser: map[string]*models.Cart{}}
	for _, c := range carts {
		s.byID[c.ID] = c
		if c.UserID != "" {
			s.byUser[c.UserID] = c
		}
	}
	return s
}

func (s *fakeCartStore) FindByID(ctx context.Context, id string) (*models.Cart, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, apierrors.NotFound("panier")
	}
	copied := *c
	copied.Items = append([]models.CartItem(nil), c.Items...)
	return &copied, nil
}

func (s *fakeCartStore) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	c, ok := s.byUser[userID]
	if !ok {
		return nil, apierrors.NotFound("panier")
	}
	copied := *c
	copied.Items = append([]models.CartItem(nil), c.Items...)
	return &copied, nil
}

func (s *fakeCartStore) Save(ctx context.Context, cart *models.Cart) error {
	s.saves++
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	s.byID[cart.ID] = &copied
	if cart.UserID != "" {
		s.byUser[cart.UserID] = &copied
	}
	return nil
}

type fakeOrderStore struct {
	orders map[string]*models.Order
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: map[string]*models.Order{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *fakeOrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, apierrors.NotFoundID("commande", id)
	}
	copied := *o
	copied.Items = append([]models.OrderItem(nil), o.Items...)
	return &copied, nil
}

func (s *fakeOrderStore) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) Save(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders[order.ID] = &copied
	return nil
}

func (s *fakeOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	o, ok := s.orders[id]
	if !ok {
		return apierrors.NotFoundID("commande", id)
	}
	o.Status = status
	return nil
}

type fakeDeliveryStore struct {
	deliveries map[string]*models.Delivery
}

func newFakeDeliveryStore(deliveries ...*models.Delivery) *fakeDeliveryStore {
	s := &fakeDeliveryStore{deliveries: map[string]*models.Delivery{}}
	for _, d := range deliveries {
		s.deliveries[d.ID.String()] = d
	}
	return s
}

func (s *fakeDeliveryStore) FindByID(ctx context.Context, id string) (*models.Delivery, error) {
	d, ok := s.deliveries[id]
	if !ok {
		return nil, apierrors.NotFoundID("livraison", id)
	}
	copied := *d
	return &copied, nil
}

func (s *fakeDeliveryStore) FindAll(ctx context.Context) ([]models.Delivery, error) {
	var out []models.Delivery
	for _, d := range s.deliveries {
		out = append(out, *d)
	}
	return out, nil
}

type fakeNotifier struct {
	confirmations []models.Order
	statusUpdates []models.OrderStatus
	sendErr       error
}

func (n *fakeNotifier) SendOrderConfirmation(order models.Order) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.confirmations = append(n.confirmations, order)
	return nil
}

func (n *fakeNotifier) SendStatusUpdate(order models.Order, newStatus models.OrderStatus) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.statusUpdates = append(n.statusUpdates, newStatus)
	return nil
}
