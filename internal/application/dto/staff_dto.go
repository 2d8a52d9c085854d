package dto

import "time"

// CreateStaffRequest alta de un empleado por el owner/manager.
type CreateStaffRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	Role        string   `json:"role"` // manager | staff
	Permissions []string `json:"permissions"`
}

// UpdateStaffRequest cambios parciales sobre un empleado.
type UpdateStaffRequest struct {
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	Status      *string   `json:"status"`
}

// StaffResponse representación de un empleado (sin hash de contraseña).
type StaffResponse struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StaffListResponse listado del staff de un negocio.
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
}
