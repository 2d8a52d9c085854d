package entity

import "fmt"

// Role rol de una sesión. Dos espacios separados: los roles de negocio
// (owner > manager > staff) y los del panel de administración
// (admin > consultant). El orden se compara por rango explícito, nunca
// por comparación de strings.
type Role string

// Roles de negocio.
const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Roles del panel de administración.
const (
	RoleAdmin      Role = "admin"
	RoleConsultant Role = "consultant"
)

// ParseRole valida un rol recibido de fuera (token, request). Falla cerrado:
// cualquier string desconocido es un error, no un rol sin privilegios.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleManager, RoleStaff, RoleAdmin, RoleConsultant:
		return Role(s), nil
	}
	return "", fmt.Errorf("rol desconocido: %q", s)
}

// businessRank rango dentro del espacio de negocio (0 = fuera del espacio).
func (r Role) businessRank() int {
	switch r {
	case RoleStaff:
		return 1
	case RoleManager:
		return 2
	case RoleOwner:
		return 3
	}
	return 0
}

// adminRank rango dentro del espacio de administración (0 = fuera del espacio).
func (r Role) adminRank() int {
	switch r {
	case RoleConsultant:
		return 1
	case RoleAdmin:
		return 2
	}
	return 0
}

// IsBusiness informa si el rol pertenece al espacio de negocio.
func (r Role) IsBusiness() bool { return r.businessRank() > 0 }

// IsAdminSide informa si el rol pertenece al espacio de administración.
func (r Role) IsAdminSide() bool { return r.adminRank() > 0 }

// AtLeast compara rangos dentro del mismo espacio. Roles de espacios
// distintos nunca se satisfacen entre sí (admin no es "más que" owner).
func (r Role) AtLeast(min Role) bool {
	if min.IsBusiness() {
		return r.businessRank() >= min.businessRank() && r.IsBusiness()
	}
	if min.IsAdminSide() {
		return r.adminRank() >= min.adminRank() && r.IsAdminSide()
	}
	return false
}

// String implementa fmt.Stringer.
func (r Role) String() string { return string(r) }
