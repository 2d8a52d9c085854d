package entity

import "time"

// Consultant cuenta del lado administración con floor de solo lectura
// (rol consultant). Se gestiona vía la colección reservada "consultants".
type Consultant struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
