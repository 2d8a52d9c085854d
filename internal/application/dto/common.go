package dto

// PageRequest paginación para listados del panel de administración.
// El store no pagina: el recorte se aplica del lado del servidor sobre la
// colección completa ya leída.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Los mensajes de auth son genéricos a
// propósito: nunca revelan si falló el usuario o la contraseña.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
