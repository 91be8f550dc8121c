package services

import (
	"context"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"

	"github.com/google/uuid"
)

// CartService maintient le panier d'un utilisateur : lignes produit/quantité
// et total dérivé, recalculé aux prix courants à chaque sauvegarde.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
}

func NewCartService(carts store.CartStore, products store.ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddProduct ajoute quantity unités d'un produit au panier de l'utilisateur,
// en créant le panier s'il n'existe pas encore
func (s *CartService) AddProduct(ctx context.Context, productID string, quantity int, userID string) (*models.Cart, error) {
	if productID == "" {
		return nil, apierrors.Validation("productId est requis")
	}
	if quantity <= 0 {
		return nil, apierrors.Validation("la quantité doit être un entier positif")
	}

	// le produit doit exister, c'est lui qui porte le prix du total
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if i := cart.FindItem(productID); i > -1 {
			cart.Items[i].Quantity += quantity
		} else {
			cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
		}
	case apierrors.Is(err, apierrors.KindNotFound):
		cart = &models.Cart{
			ID:     uuid.NewString(),
			UserID: userID,
			Items:  []models.CartItem{{ProductID: productID, Quantity: quantity}},
		}
	default:
		return nil, err
	}

	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveProduct retire quantity unités (1 par défaut) d'un produit du panier.
// Une ligne qui tombe à zéro est supprimée entièrement.
func (s *CartService) RemoveProduct(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, apierrors.Validation("la quantité ne peut pas être négative")
	}
	if quantity == 0 {
		quantity = 1
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apierrors.NotFound("panier")
	}

	i := cart.FindItem(productID)
	if i == -1 {
		return nil, apierrors.NotFound("produit dans le panier")
	}

	cart.Items[i].Quantity -= quantity
	if cart.Items[i].Quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// recomputeTotal refait le total aux prix courants du catalogue.
// Un produit disparu du catalogue compte pour zéro.
func (s *CartService) recomputeTotal(ctx context.Context, cart *models.Cart) error {
	total := 0.0
	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if apierrors.Is(err, apierrors.KindNotFound) {
				continue
			}
			return err
		}
		total += product.Price * float64(item.Quantity)
	}
	cart.TotalPrice = total
	return nil
}
