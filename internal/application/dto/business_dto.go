package dto

import "time"

// CreateBusinessRequest alta de un negocio con su owner inicial.
type CreateBusinessRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Type          string `json:"type"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	OwnerEmail    string `json:"owner_email"`
	OwnerPassword string `json:"owner_password"`
	OwnerName     string `json:"owner_name"`
}

// UpdateBusinessRequest cambios parciales sobre un negocio. Punteros para
// distinguir "no enviado" de "vaciar".
type UpdateBusinessRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}

// BusinessResponse representación pública/administrativa de un negocio.
type BusinessResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Type           string    `json:"type"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Status         string    `json:"status"`
	ForceLoggedOut bool      `json:"force_logged_out"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BusinessListResponse listado paginado de negocios.
type BusinessListResponse struct {
	Items []BusinessResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PublicProfileResponse vista pública del perfil (sin datos internos).
type PublicProfileResponse struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Type    string `json:"type"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
