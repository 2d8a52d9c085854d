package entity

// DocumentKeyID clave bajo la que el store inyecta el id al leer documentos.
const DocumentKeyID = "id"

// Document es un registro JSON sin esquema identificado por (collection, id).
// El store no valida nada: la validación (si la hay) ocurre en el borde,
// al mapear hacia/desde una entidad tipada.
type Document map[string]any

// ID devuelve el id inyectado por el store ("" si no está presente).
func (d Document) ID() string {
	return d.GetString(DocumentKeyID)
}

// GetString devuelve el valor string de una clave ("" si falta o no es string).
func (d Document) GetString(key string) string {
	if v, ok := d[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetBool devuelve el valor bool de una clave (false si falta o no es bool).
func (d Document) GetBool(key string) bool {
	if v, ok := d[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Clone copia superficial del documento (los valores anidados se comparten).
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge aplica un parche superficial: claves presentes en partial reemplazan
// las del documento, el resto se conserva. Nunca es un replace completo.
func (d Document) Merge(partial map[string]any) {
	for k, v := range partial {
		d[k] = v
	}
}

// Colecciones reservadas del sistema: las administra la plataforma y no son
// escribibles por el CRUD genérico de documentos del panel de negocio.
const (
	CollectionBusinesses  = "businesses"
	CollectionOwners      = "business_owners"
	CollectionStaff       = "business_staff"
	CollectionConsultants = "consultants"
	CollectionAuditLogs   = "audit_logs"
)

var reservedCollections = map[string]bool{
	CollectionBusinesses:  true,
	CollectionOwners:      true,
	CollectionStaff:       true,
	CollectionConsultants: true,
	CollectionAuditLogs:   true,
}

// IsReservedCollection informa si la colección es del sistema.
func IsReservedCollection(name string) bool {
	return reservedCollections[name]
}
