package store

import (
	"context"
	"log"
	"time"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaProductStore lit et décrémente les produits dans ks_products
type ScyllaProductStore struct{}

func NewScyllaProductStore() *ScyllaProductStore {
	return &ScyllaProductStore{}
}

func (s *ScyllaProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierrors.Validation("ID produit invalide")
	}
	productUUID := gocql.UUID(productID)

	var p models.Product
	err = session.Query(`SELECT product_id, title, description, price, stock, low_stock_threshold, scent, burn_time_hours, weight_grams, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, productUUID).WithContext(ctx).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.Scent, &p.BurnTimeHours, &p.WeightGrams, &p.ImageURLs, &p.Tags,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, apierrors.NotFoundID("product", id)
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// DecrementStock retire qty unités via un UPDATE conditionnel (LWT).
// La boucle CAS évite la vente à découvert sous commandes concurrentes :
// deux lectures du même stock ne peuvent pas toutes les deux appliquer
// leur décrément.
func (s *ScyllaProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(id)
	if err != nil {
		return apierrors.Validation("ID produit invalide")
	}
	productUUID := gocql.UUID(productID)

	const maxRetries = 5
	for attempt := 0; attempt < maxRetries; attempt++ {
		var stock int
		var title string
		err := session.Query(`SELECT stock, title FROM products WHERE product_id = ?`, productUUID).
			WithContext(ctx).Scan(&stock, &title)
		if err == gocql.ErrNotFound {
			return apierrors.NotFoundID("product", id)
		}
		if err != nil {
			return err
		}

		if stock < qty {
			return apierrors.Validation("stock insuffisant pour le produit " + title)
		}

		prevStock := stock
		newStock := stock - qty
		applied, err := session.Query(
			`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?`,
			newStock, time.Now(), productUUID, prevStock).WithContext(ctx).ScanCAS(&stock)
		if err != nil {
			return err
		}
		if applied {
			s.recordSale(ctx, session, productUUID, qty, prevStock, newStock)
			return nil
		}
		// stock modifié entre-temps, on relit et on réessaie
	}

	return apierrors.Validation("stock en cours de modification, veuillez réessayer")
}

// recordSale trace le mouvement de stock, best-effort
func (s *ScyllaProductStore) recordSale(ctx context.Context, session *gocql.Session, productID gocql.UUID, qty, prevStock, newStock int) {
	err := session.Query(`INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), productID, "sale", qty, prevStock, newStock, "order", "", time.Now()).
		WithContext(ctx).Exec()
	if err != nil {
		log.Printf("⚠️ Erreur enregistrement mouvement stock: %v", err)
	}
}
