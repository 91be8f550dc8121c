package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID                gocql.UUID `json:"id" db:"product_id"`
	Title             string     `json:"title" db:"title"`
	Description       string     `json:"description" db:"description"`
	Price             float64    `json:"price" db:"price"`
	Stock             int        `json:"stock" db:"stock"`
	LowStockThreshold int        `json:"low_stock_threshold" db:"low_stock_threshold"`
	Scent             string     `json:"scent" db:"scent"`
	BurnTimeHours     int        `json:"burn_time_hours" db:"burn_time_hours"`
	WeightGrams       float64    `json:"weight_grams" db:"weight_grams"`
	ImageURLs         []string   `json:"image_urls" db:"image_urls"`
	Tags              []string   `json:"tags" db:"tags"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// StockMovement garde l'historique des mouvements de stock (ventes, réassorts)
type StockMovement struct {
	ID        gocql.UUID `json:"id" db:"id"`
	ProductID gocql.UUID `json:"product_id" db:"product_id"`
	Type      string     `json:"type" db:"type"` // "sale", "restock", "adjustment"
	Quantity  int        `json:"quantity" db:"quantity"`
	PrevStock int        `json:"prev_stock" db:"prev_stock"`
	NewStock  int        `json:"new_stock" db:"new_stock"`
	Reason    string     `json:"reason" db:"reason"`
	UserID    string     `json:"user_id" db:"user_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type StockAlert struct {
	ID             gocql.UUID `json:"id" db:"id"`
	ProductID      gocql.UUID `json:"product_id" db:"product_id"`
	ProductTitle   string     `json:"product_title" db:"product_title"`
	CurrentStock   int        `json:"current_stock" db:"current_stock"`
	ThresholdStock int        `json:"threshold_stock" db:"threshold_stock"`
	AlertType      string     `json:"alert_type" db:"alert_type"` // "low_stock", "out_of_stock"
	IsResolved     bool       `json:"is_resolved" db:"is_resolved"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
