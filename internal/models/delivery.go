package models

import "github.com/gocql/gocql"

// Delivery : données de référence, jamais modifiées par le cœur métier
type Delivery struct {
	ID           gocql.UUID `json:"id" db:"delivery_id"`
	Company      string     `json:"company" db:"company"`
	DeliveryType string     `json:"delivery_type" db:"delivery_type"` // "to_home", "to_branch"
	Price        float64    `json:"price" db:"price"`
}
