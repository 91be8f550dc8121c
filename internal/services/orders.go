package services

import (
	"context"
	"log"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"
)

// OrderService : création de commande (depuis un panier ou une liste de
// lignes explicites) et machine à états des statuts.
type OrderService struct {
	orders     store.OrderStore
	carts      store.CartStore
	products   store.ProductStore
	deliveries store.DeliveryStore
	notifier   store.NotificationGateway
}

func NewOrderService(orders store.OrderStore, carts store.CartStore, products store.ProductStore,
	deliveries store.DeliveryStore, notifier store.NotificationGateway) *OrderService {
	return &OrderService{
		orders:     orders,
		carts:      carts,
		products:   products,
		deliveries: deliveries,
		notifier:   notifier,
	}
}

// CreateOrderInput accepte les deux formes de création : CartID pour une
// commande depuis un panier existant, Items pour une liste explicite.
type CreateOrderInput struct {
	CartID     string            `json:"cart_id"`
	Items      []models.CartItem `json:"items"`
	DeliveryID string            `json:"delivery_id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Telephone  string            `json:"telephone"`
	Email      string            `json:"email"`
	Comment    string            `json:"comment"`
}

// CreateOrder crée une commande. identity est nil pour les invités.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput, identity *models.Identity) (*models.Order, error) {
	if input.DeliveryID == "" {
		return nil, apierrors.Validation("deliveryId est requis")
	}

	delivery, err := s.deliveries.FindByID(ctx, input.DeliveryID)
	if err != nil {
		return nil, err
	}

	if input.CartID != "" {
		return s.createFromCart(ctx, input, delivery)
	}
	return s.createFromItems(ctx, input, delivery, identity)
}

// createFromCart : le panier fournit l'utilisateur, les lignes et le total.
// Le prix de livraison est toujours inclus dans le montant (politique
// unifiée, voir DESIGN.md).
func (s *OrderService) createFromCart(ctx context.Context, input CreateOrderInput, delivery *models.Delivery) (*models.Order, error) {
	cart, err := s.carts.FindByID(ctx, input.CartID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		price := 0.0
		if product, err := s.products.FindByID(ctx, item.ProductID); err == nil {
			price = product.Price
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	order := &models.Order{
		UserID:      cart.UserID,
		DeliveryID:  input.DeliveryID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Telephone:   input.Telephone,
		Email:       input.Email,
		Comment:     input.Comment,
		Items:       items,
		AmountOrder: cart.TotalPrice + delivery.Price,
		Status:      models.StatusProcessing,
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// createFromItems : chaque ligne est vérifiée au catalogue, le prix figé au
// moment de la commande et le stock réservé par décrément conditionnel avant
// la persistance de la commande.
func (s *OrderService) createFromItems(ctx context.Context, input CreateOrderInput, delivery *models.Delivery, identity *models.Identity) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, apierrors.Validation("au moins un produit est requis")
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, apierrors.Validation("chaque ligne requiert un productId et une quantité positive")
		}
	}

	email := input.Email
	if identity != nil && identity.Email != "" {
		email = identity.Email
	}
	if identity == nil && email == "" {
		return nil, apierrors.AuthorizationRequired("email requis pour les utilisateurs non enregistrés")
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	total := 0.0
	for _, item := range input.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := &models.Order{
		DeliveryID:  input.DeliveryID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Telephone:   input.Telephone,
		Email:       email,
		Comment:     input.Comment,
		Items:       items,
		AmountOrder: total + delivery.Price,
		Status:      models.StatusProcessing,
	}

	if identity != nil {
		order.UserID = identity.UserID
	}

	// réservation du stock avant la persistance : une ligne non réservable
	// fait échouer la commande. Les décréments déjà appliqués ne sont pas
	// compensés (pas de transaction multi-produits).
	for _, item := range order.Items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	// retire du panier de l'utilisateur les produits qui viennent d'être
	// commandés, le reste du panier est conservé
	if identity != nil {
		s.removeOrderedFromCart(ctx, identity.UserID, order.Items)
	}

	// confirmation par email pour les invités : attendue mais jamais
	// bloquante, la commande est déjà persistée
	if identity == nil {
		if err := s.notifier.SendOrderConfirmation(*order); err != nil {
			log.Printf("⚠️ Erreur envoi confirmation commande %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// removeOrderedFromCart nettoie le panier après commande, best-effort
func (s *OrderService) removeOrderedFromCart(ctx context.Context, userID string, ordered []models.OrderItem) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if !apierrors.Is(err, apierrors.KindNotFound) {
			log.Printf("⚠️ Erreur lecture panier après commande: %v", err)
		}
		return
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		purchased := false
		for _, o := range ordered {
			if o.ProductID == item.ProductID {
				purchased = true
				break
			}
		}
		if !purchased {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	total := 0.0
	for _, item := range cart.Items {
		if product, err := s.products.FindByID(ctx, item.ProductID); err == nil {
			total += product.Price * float64(item.Quantity)
		}
	}
	cart.TotalPrice = total

	if err := s.carts.Save(ctx, cart); err != nil {
		log.Printf("⚠️ Erreur sauvegarde panier après commande: %v", err)
	}
}

// ChangeStatus applique une transition de statut si la machine à états
// l'autorise, puis notifie le client par email (best-effort)
func (s *OrderService) ChangeStatus(ctx context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !models.IsValidStatus(newStatus) {
		return nil, apierrors.Validation("ce statut n'existe pas")
	}
	if models.IsTerminal(order.Status) {
		return nil, apierrors.IllegalTransition("commande déjà terminée")
	}
	if !models.CanTransition(order.Status, newStatus) {
		return nil, apierrors.IllegalTransition("impossible de passer du statut " +
			string(order.Status) + " au statut " + string(newStatus))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	updated, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendStatusUpdate(*updated, newStatus); err != nil {
		log.Printf("⚠️ Erreur envoi email statut commande %s: %v", orderID, err)
	}

	return updated, nil
}
