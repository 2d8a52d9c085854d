package entity

import "time"

// Tipos de negocio soportados por el perfil público.
const (
	BusinessTypeRestaurant = "restaurant"
	BusinessTypeBooking    = "booking"
	BusinessTypeEcommerce  = "ecommerce"
	BusinessTypeRealEstate = "realestate"
	BusinessTypeHotel      = "hotel"
)

// Business representa un negocio/tenant de la plataforma. Su contenido
// (menús, catálogos, reservas) vive como documentos en colecciones propias,
// siempre filtrados por BusinessID en los call sites.
type Business struct {
	ID             string
	Name           string
	Slug           string // identificador público del perfil (URL, QR)
	Type           string // restaurant, booking, ecommerce, realestate, hotel
	Email          string
	Phone          string
	Address        string
	Status         string // active, suspended, inactive
	ForceLoggedOut bool   // revoca sesiones de owner/staff emitidas para el negocio
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
