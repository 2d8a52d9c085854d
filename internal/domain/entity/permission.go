package entity

// Permission capacidad identificada por "<module>.<action>", con el rol
// mínimo requerido para ejercerla y la ruta del panel que la expone.
// La tabla es estática: las permissions no se guardan por documento.
type Permission struct {
	ID      string
	MinRole Role
	Route   string
}

// Tabla estática de permissions. El floor de rol es la autoridad final:
// la lista permissions[] de un token puede recortar pero jamás ampliar
// lo que el floor permite (defensa en profundidad).
var permissionTable = []Permission{
	// Módulo general (panel del negocio)
	{ID: "general.dashboard", MinRole: RoleStaff, Route: "/panel"},
	{ID: "general.staff", MinRole: RoleManager, Route: "/panel/staff"},
	{ID: "general.settings", MinRole: RoleOwner, Route: "/panel/settings"},
	// Menú QR restaurante / comida rápida
	{ID: "restaurant.menu", MinRole: RoleStaff, Route: "/panel/menu"},
	{ID: "restaurant.orders", MinRole: RoleStaff, Route: "/panel/orders"},
	// Reservas
	{ID: "booking.calendar", MinRole: RoleStaff, Route: "/panel/booking"},
	{ID: "booking.services", MinRole: RoleManager, Route: "/panel/booking/services"},
	// E-commerce
	{ID: "ecommerce.products", MinRole: RoleManager, Route: "/panel/products"},
	{ID: "ecommerce.orders", MinRole: RoleStaff, Route: "/panel/ecommerce/orders"},
	// Inmobiliaria
	{ID: "realestate.listings", MinRole: RoleManager, Route: "/panel/listings"},
	// Hotel room service
	{ID: "hotel.roomservice", MinRole: RoleStaff, Route: "/panel/room-service"},
	// Panel de administración (espacio separado)
	{ID: "admin.businesses", MinRole: RoleConsultant, Route: "/admin/businesses"},
	{ID: "admin.manage", MinRole: RoleAdmin, Route: "/admin"},
	{ID: "admin.documents", MinRole: RoleAdmin, Route: "/admin/documents"},
	{ID: "admin.impersonate", MinRole: RoleAdmin, Route: "/admin/impersonate"},
}

var permissionIndex = func() map[string]Permission {
	idx := make(map[string]Permission, len(permissionTable))
	for _, p := range permissionTable {
		idx[p.ID] = p
	}
	return idx
}()

// LookupPermission devuelve la permission definida para el ID, si existe.
func LookupPermission(id string) (Permission, bool) {
	p, ok := permissionIndex[id]
	return p, ok
}

// DefinedPermissions devuelve la tabla completa (copiada, para el panel).
func DefinedPermissions() []Permission {
	out := make([]Permission, len(permissionTable))
	copy(out, permissionTable)
	return out
}

// HasPermission informa si el rol alcanza el floor de la permission.
// IDs desconocidos fallan cerrado (false). Owner pasa cualquier permission
// de negocio definida; admin cualquiera del espacio de administración.
func HasPermission(role Role, permissionID string) bool {
	p, ok := permissionIndex[permissionID]
	if !ok {
		return false
	}
	return role.AtLeast(p.MinRole)
}

// GrantAllows aplica la permission con la lista de grants del token:
// el floor por rol manda siempre; una lista no vacía solo puede recortar.
// Lista vacía = sin recorte (sesiones de owner y admin no llevan lista).
func GrantAllows(role Role, grants []string, permissionID string) bool {
	if !HasPermission(role, permissionID) {
		return false
	}
	if len(grants) == 0 {
		return true
	}
	for _, g := range grants {
		if g == permissionID {
			return true
		}
	}
	return false
}
