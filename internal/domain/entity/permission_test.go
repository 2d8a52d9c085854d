package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

func TestHasPermission_FloorPorRol(t *testing.T) {
	// restaurant.menu tiene floor staff: cualquier rol de negocio pasa.
	assert.True(t, entity.HasPermission(entity.RoleStaff, "restaurant.menu"))
	assert.True(t, entity.HasPermission(entity.RoleManager, "restaurant.menu"))
	assert.True(t, entity.HasPermission(entity.RoleOwner, "restaurant.menu"))

	// general.staff tiene floor manager: staff queda fuera.
	assert.False(t, entity.HasPermission(entity.RoleStaff, "general.staff"))
	assert.True(t, entity.HasPermission(entity.RoleManager, "general.staff"))

	// general.settings tiene floor owner.
	assert.False(t, entity.HasPermission(entity.RoleManager, "general.settings"))
	assert.True(t, entity.HasPermission(entity.RoleOwner, "general.settings"))
}

// Owner pasa todas las permissions de negocio definidas; ninguna del espacio
// de administración.
func TestHasPermission_OwnerPasaTodoElNegocio(t *testing.T) {
	for _, p := range entity.DefinedPermissions() {
		if p.MinRole.IsAdminSide() {
			assert.False(t, entity.HasPermission(entity.RoleOwner, p.ID), p.ID)
			continue
		}
		assert.True(t, entity.HasPermission(entity.RoleOwner, p.ID), p.ID)
	}
}

func TestHasPermission_EspacioAdmin(t *testing.T) {
	// admin.businesses es la única con floor consultant (solo lectura).
	assert.True(t, entity.HasPermission(entity.RoleConsultant, "admin.businesses"))
	assert.False(t, entity.HasPermission(entity.RoleConsultant, "admin.manage"))
	assert.False(t, entity.HasPermission(entity.RoleConsultant, "admin.impersonate"))

	assert.True(t, entity.HasPermission(entity.RoleAdmin, "admin.businesses"))
	assert.True(t, entity.HasPermission(entity.RoleAdmin, "admin.manage"))
	assert.True(t, entity.HasPermission(entity.RoleAdmin, "admin.documents"))

	// Un rol de negocio jamás pasa una permission de administración.
	assert.False(t, entity.HasPermission(entity.RoleOwner, "admin.businesses"))
}

// Fallar cerrado: una permission no definida en la tabla se niega siempre,
// sin importar el rol.
func TestHasPermission_DesconocidaFallaCerrado(t *testing.T) {
	assert.False(t, entity.HasPermission(entity.RoleOwner, "restaurant.kitchen"))
	assert.False(t, entity.HasPermission(entity.RoleAdmin, "no.existe"))
	assert.False(t, entity.HasPermission(entity.RoleOwner, ""))
}

// La lista de grants del token recorta pero nunca amplía el floor del rol.
func TestGrantAllows_RecortaNoAmplia(t *testing.T) {
	// Staff con grant explícito de restaurant.menu: pasa esa y solo esa.
	grants := []string{"restaurant.menu"}
	assert.True(t, entity.GrantAllows(entity.RoleStaff, grants, "restaurant.menu"))
	assert.False(t, entity.GrantAllows(entity.RoleStaff, grants, "restaurant.orders"),
		"una permission dentro del floor pero fuera de la lista queda recortada")

	// El grant de una permission por encima del floor no la habilita.
	assert.False(t, entity.GrantAllows(entity.RoleStaff, []string{"general.staff"}, "general.staff"),
		"un grant no puede ampliar el floor del rol")

	// Lista vacía = sin recorte.
	assert.True(t, entity.GrantAllows(entity.RoleStaff, nil, "restaurant.menu"))
	assert.True(t, entity.GrantAllows(entity.RoleOwner, nil, "general.settings"))
}

func TestLookupPermission(t *testing.T) {
	p, ok := entity.LookupPermission("booking.services")
	require.True(t, ok)
	assert.Equal(t, entity.RoleManager, p.MinRole)

	_, ok = entity.LookupPermission("booking.nada")
	assert.False(t, ok)
}
