package entity

import "time"

// Staff representa un empleado del negocio con rol manager o staff y un
// subconjunto de permissions otorgadas. La lista solo recorta lo que el
// floor del rol ya permite; nunca lo amplía.
type Staff struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string
	Name         string
	Role         Role // RoleManager o RoleStaff
	Permissions  []string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
