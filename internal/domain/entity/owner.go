package entity

import "time"

// Owner representa al dueño de un negocio. Autentica con email/password y
// recibe sesiones con rol owner (sin lista de permissions: pasa todas).
type Owner struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
