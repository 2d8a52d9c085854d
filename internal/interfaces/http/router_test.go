package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tikprofil/tikprofil-api/internal/application/auth"
	"github.com/tikprofil/tikprofil-api/internal/application/usecase"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/collections"
	"github.com/tikprofil/tikprofil-api/internal/infrastructure/memory"
	apphttp "github.com/tikprofil/tikprofil-api/internal/interfaces/http"
	"github.com/tikprofil/tikprofil-api/pkg/cache"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// newTestServer arma la aplicación completa sobre el store en memoria,
// igual que main pero sin watcher ni scheduler.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewDocumentStore()
	businessRepo := collections.NewBusinessRepository(store)
	ownerRepo := collections.NewOwnerRepository(store)
	staffRepo := collections.NewStaffRepository(store)
	consultantRepo := collections.NewConsultantRepository(store)
	audit := usecase.NewAuditRecorder(collections.NewAuditRepository(store), logger.Nop())

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin-secreto"), bcrypt.MinCost)
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(ownerRepo, staffRepo, consultantRepo, businessRepo, audit,
		auth.AdminConfig{Email: "admin@tikprofil.test", PasswordHash: string(adminHash)},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		BusinessUC: usecase.NewBusinessUseCase(businessRepo, ownerRepo, staffRepo, audit),
		StaffUC:    usecase.NewStaffUseCase(staffRepo, ownerRepo, audit),
		DocumentUC: usecase.NewDocumentUseCase(store, audit),
		ProfileUC:  usecase.NewProfileUseCase(businessRepo, cache.New(time.Minute)),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// sessionCookie extrae de la respuesta la cookie con el nombre dado.
func sessionCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			assert.True(t, ck.HttpOnly, "la cookie de sesión debe ser HttpOnly")
			assert.Equal(t, "/", ck.Path)
			return ck
		}
	}
	t.Fatalf("no se encontró la cookie %s en la respuesta", name)
	return nil
}

// Ciclo completo de la plataforma: el admin ingresa y da de alta un negocio
// con su owner; el owner ingresa por cookie y opera documentos y staff de su
// panel; el perfil público queda servido por slug.
func TestAPI_CicloCompleto(t *testing.T) {
	app := newTestServer(t)

	// 1. Login del admin (cookie tikprofil_session).
	resp := doJSON(t, app, http.MethodPost, "/api/auth/admin/login",
		map[string]string{"email": "admin@tikprofil.test", "password": "admin-secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminCookie := sessionCookie(t, resp, apphttp.CookieAdminSession)
	resp.Body.Close()

	// 2. El admin crea el negocio con su owner inicial.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/businesses", map[string]any{
		"name": "Pizzería Napoli", "slug": "napoli", "type": "restaurant",
		"owner_email": "owner@napoli.test", "owner_password": "secreto1",
	}, adminCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	business := decodeBody(t, resp)
	businessID := business["id"].(string)
	require.NotEmpty(t, businessID)

	// Slug duplicado → 409.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/businesses", map[string]any{
		"name": "Otra", "slug": "napoli",
		"owner_email": "otra@napoli.test", "owner_password": "x",
	}, adminCookie)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 3. El perfil público sale por slug sin sesión.
	resp = doJSON(t, app, http.MethodGet, "/api/public/profiles/napoli", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeBody(t, resp)
	assert.Equal(t, "Pizzería Napoli", profile["name"])

	// 4. Login del owner (cookie tikprofil_owner_session).
	resp = doJSON(t, app, http.MethodPost, "/api/auth/owner/login",
		map[string]string{"email": "owner@napoli.test", "password": "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ownerCookie := sessionCookie(t, resp, apphttp.CookieOwnerSession)
	resp.Body.Close()

	// 5. CRUD de documentos del panel.
	resp = doJSON(t, app, http.MethodPost, "/api/panel/documents/menus",
		map[string]any{"data": map[string]any{"title": "Carta", "items": 12}}, ownerCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	menuID := created["id"].(string)

	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus/"+menuID, nil, ownerCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	menu := decodeBody(t, resp)
	assert.Equal(t, "Carta", menu["title"])
	assert.Equal(t, businessID, menu["businessId"], "el documento queda estampado con el negocio de la sesión")

	resp = doJSON(t, app, http.MethodPatch, "/api/panel/documents/menus/"+menuID,
		map[string]any{"title": "Carta de verano"}, ownerCookie)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus/"+menuID, nil, ownerCookie)
	menu = decodeBody(t, resp)
	assert.Equal(t, "Carta de verano", menu["title"])
	assert.Equal(t, float64(12), menu["items"], "el merge parcial preserva las claves no tocadas")

	// Colección reservada bloqueada desde el panel.
	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/businesses", nil, ownerCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// 6. Alta de staff y login del empleado.
	resp = doJSON(t, app, http.MethodPost, "/api/panel/staff", map[string]any{
		"email": "mozo@napoli.test", "password": "secreto2", "name": "Mozo",
		"role": "staff", "permissions": []string{"restaurant.orders"},
	}, ownerCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/auth/staff/login",
		map[string]string{"email": "mozo@napoli.test", "password": "secreto2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	staffCookie := sessionCookie(t, resp, apphttp.CookieStaffSession)
	resp.Body.Close()

	// El staff no alcanza el floor manager de la gestión de staff.
	resp = doJSON(t, app, http.MethodGet, "/api/panel/staff/", nil, staffCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/panel/documents/menus/"+menuID, nil, ownerCookie)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ForceLogoutRevocaElPanel(t *testing.T) {
	app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/admin/login",
		map[string]string{"email": "admin@tikprofil.test", "password": "admin-secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminCookie := sessionCookie(t, resp, apphttp.CookieAdminSession)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/admin/businesses", map[string]any{
		"name": "Salón Eva", "slug": "eva",
		"owner_email": "eva@salon.test", "owner_password": "secreto1",
	}, adminCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	businessID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/owner/login",
		map[string]string{"email": "eva@salon.test", "password": "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ownerCookie := sessionCookie(t, resp, apphttp.CookieOwnerSession)
	resp.Body.Close()

	// Con la sesión vigente el panel responde.
	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus", nil, ownerCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El admin revoca; el mismo token deja de servir aunque no expiró.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/businesses/%s/force-logout", businessID), nil, adminCookie)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus", nil, ownerCookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Re-login limpia el flag y el panel vuelve a responder.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/owner/login",
		map[string]string{"email": "eva@salon.test", "password": "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	freshCookie := sessionCookie(t, resp, apphttp.CookieOwnerSession)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus", nil, freshCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ImpersonateOperaElPanelDelNegocio(t *testing.T) {
	app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/admin/login",
		map[string]string{"email": "admin@tikprofil.test", "password": "admin-secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminCookie := sessionCookie(t, resp, apphttp.CookieAdminSession)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/admin/businesses", map[string]any{
		"name": "Hotel Mar", "slug": "mar",
		"owner_email": "mar@hotel.test", "owner_password": "secreto1",
	}, adminCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	businessID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/impersonate",
		map[string]string{"business_id": businessID}, adminCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	impCookie := sessionCookie(t, resp, apphttp.CookieImpersonate)
	resp.Body.Close()

	// Con la cookie de impersonación el panel del negocio responde como owner.
	resp = doJSON(t, app, http.MethodPost, "/api/panel/documents/rooms",
		map[string]any{"data": map[string]any{"number": 101}}, impCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/rooms", nil, impCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody(t, resp)
	assert.Len(t, list["items"], 1)
}

// El aislamiento entre negocios: cada panel solo ve sus documentos aunque
// compartan colección.
func TestAPI_AislamientoEntreNegocios(t *testing.T) {
	app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/admin/login",
		map[string]string{"email": "admin@tikprofil.test", "password": "admin-secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminCookie := sessionCookie(t, resp, apphttp.CookieAdminSession)
	resp.Body.Close()

	cookies := make([]*http.Cookie, 0, 2)
	for i, slug := range []string{"uno", "dos"} {
		resp = doJSON(t, app, http.MethodPost, "/api/admin/businesses", map[string]any{
			"name": "Negocio " + slug, "slug": slug,
			"owner_email": fmt.Sprintf("owner%d@test.test", i), "owner_password": "secreto1",
		}, adminCookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, app, http.MethodPost, "/api/auth/owner/login",
			map[string]string{"email": fmt.Sprintf("owner%d@test.test", i), "password": "secreto1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		cookies = append(cookies, sessionCookie(t, resp, apphttp.CookieOwnerSession))
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodPost, "/api/panel/documents/menus",
		map[string]any{"data": map[string]any{"title": "Del uno"}}, cookies[0])
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	menuID := decodeBody(t, resp)["id"].(string)

	// El negocio dos no ve el documento del uno.
	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus", nil, cookies[1])
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody(t, resp)
	assert.Empty(t, list["items"])

	resp = doJSON(t, app, http.MethodGet, "/api/panel/documents/menus/"+menuID, nil, cookies[1])
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "el documento ajeno responde igual que uno inexistente")
	resp.Body.Close()
}
