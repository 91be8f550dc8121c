package models

import "time"

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"` // hash argon2id, jamais sérialisé
	Telephone string     `json:"telephone,omitempty"`
	Role      string     `json:"role"` // "customer", "admin"
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Identity est l'identité optionnelle fournie par la couche auth.
// nil = requête invité.
type Identity struct {
	UserID string
	Email  string
}
