package dto

import "time"

// LoginRequest credenciales de login (owner, staff, admin o consultant).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse resultado de un login: el token viaja además en la cookie
// HttpOnly correspondiente al rol.
type SessionResponse struct {
	Token       string    `json:"token"`
	SubjectID   string    `json:"subject_id"`
	BusinessID  string    `json:"business_id,omitempty"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MeResponse identidad de la sesión actual.
type MeResponse struct {
	SubjectID   string   `json:"subject_id"`
	BusinessID  string   `json:"business_id,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

// ImpersonateRequest pedido de impersonación de un owner por un admin.
type ImpersonateRequest struct {
	BusinessID string `json:"business_id"`
}
