package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tikprofil/tikprofil-api/internal/interfaces/http"
	"github.com/tikprofil/tikprofil-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testSubjectID  = "00000000-0000-0000-0000-000000000001"
	testBusinessID = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "tikprofil-test"
	testExpMin     = 60
)

// stubChecker implementación fija del chequeo de revocación.
type stubChecker struct {
	revoked bool
	err     error
}

func (s stubChecker) IsForceLoggedOut(ctx context.Context, businessID string) (bool, error) {
	return s.revoked, s.err
}

// buildTestApp construye una aplicación Fiber mínima con SessionMiddleware
// sobre las cookies del panel más RequirePermission, y un handler dummy que
// devuelve 200 si pasa los middlewares.
func buildTestApp(permissionID string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.SessionMiddleware(testJWTSecret, apphttp.CookieImpersonate, apphttp.CookieOwnerSession, apphttp.CookieStaffSession),
		apphttp.RequirePermission(permissionID),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c).String(),
			})
		},
	)
	return app
}

// tokenFor genera un token de sesión con el rol y los grants indicados.
func tokenFor(t *testing.T, role string, permissions []string) string {
	t.Helper()
	tok, err := session.Generate(testJWTSecret, testSubjectID, testBusinessID, role, permissions, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token de sesión válido")
	return tok
}

// doRequest lanza GET /protected con el token en la cookie indicada.
func doRequest(t *testing.T, app *fiber.App, cookieName, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_CookieValidaCargaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.SessionMiddleware(testJWTSecret, apphttp.CookieOwnerSession), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"subject_id":  apphttp.GetSubjectID(c),
			"business_id": apphttp.GetBusinessID(c),
			"role":        apphttp.GetRole(c).String(),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieOwnerSession, Value: tokenFor(t, "owner", nil)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSubjectID, body["subject_id"])
	assert.Equal(t, testBusinessID, body["business_id"])
	assert.Equal(t, "owner", body["role"])
}

func TestSessionMiddleware_SinCookieRetorna401(t *testing.T) {
	app := buildTestApp("general.dashboard")
	resp := doRequest(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_SESSION")
}

func TestSessionMiddleware_TokenCorruptoRetorna401(t *testing.T) {
	app := buildTestApp("general.dashboard")
	resp := doRequest(t, app, apphttp.CookieOwnerSession, "token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_SESSION")
}

func TestSessionMiddleware_CookieDeOtraAudienciaNoSirve(t *testing.T) {
	// El panel solo busca en las cookies de owner/staff/impersonación: una
	// sesión admin en su propia cookie no autentica aquí.
	app := buildTestApp("general.dashboard")
	resp := doRequest(t, app, apphttp.CookieAdminSession, tokenFor(t, "admin", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddleware_RolDesconocidoRetorna401(t *testing.T) {
	app := buildTestApp("general.dashboard")
	resp := doRequest(t, app, apphttp.CookieOwnerSession, tokenFor(t, "superuser", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "un rol fuera del catálogo falla cerrado")
}

func TestSessionMiddleware_FallbackBearer(t *testing.T) {
	app := buildTestApp("general.dashboard")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "owner", nil))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "clientes de API pueden usar Authorization Bearer")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_FloorPorRol(t *testing.T) {
	// general.staff exige manager: owner y manager pasan, staff no.
	app := buildTestApp("general.staff")

	resp := doRequest(t, app, apphttp.CookieOwnerSession, tokenFor(t, "owner", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, apphttp.CookieStaffSession, tokenFor(t, "manager", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, apphttp.CookieStaffSession, tokenFor(t, "staff", nil))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequirePermission_GrantsRecortanPeroNoAmplian(t *testing.T) {
	// Staff con grant de restaurant.menu: esa pasa, restaurant.orders queda
	// recortada aunque el floor la permitiría.
	appMenu := buildTestApp("restaurant.menu")
	resp := doRequest(t, appMenu, apphttp.CookieStaffSession, tokenFor(t, "staff", []string{"restaurant.menu"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	appOrders := buildTestApp("restaurant.orders")
	resp = doRequest(t, appOrders, apphttp.CookieStaffSession, tokenFor(t, "staff", []string{"restaurant.menu"}))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// El grant de general.staff no salta el floor de manager.
	appStaff := buildTestApp("general.staff")
	resp = doRequest(t, appStaff, apphttp.CookieStaffSession, tokenFor(t, "staff", []string{"general.staff"}))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRequirePermission_DesconocidaFallaCerrado(t *testing.T) {
	app := buildTestApp("modulo.inexistente")
	resp := doRequest(t, app, apphttp.CookieOwnerSession, tokenFor(t, "owner", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckForceLogout
// ──────────────────────────────────────────────────────────────────────────────

func buildForceLogoutApp(checker stubChecker) *fiber.App {
	app := fiber.New()
	app.Get("/panel",
		apphttp.SessionMiddleware(testJWTSecret, apphttp.CookieOwnerSession),
		apphttp.CheckForceLogout(checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func doPanelRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/panel", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieOwnerSession, Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCheckForceLogout_NegocioSinRevocarPasa(t *testing.T) {
	app := buildForceLogoutApp(stubChecker{revoked: false})
	resp := doPanelRequest(t, app, tokenFor(t, "owner", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckForceLogout_NegocioRevocadoRetorna401(t *testing.T) {
	app := buildForceLogoutApp(stubChecker{revoked: true})
	resp := doPanelRequest(t, app, tokenFor(t, "owner", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_REVOKED")
}

// Fallo de infraestructura en el chequeo: mejor 503 que decidir sin datos.
func TestCheckForceLogout_ErrorDeInfraRetorna503(t *testing.T) {
	app := buildForceLogoutApp(stubChecker{err: errors.New("db caída")})
	resp := doPanelRequest(t, app, tokenFor(t, "owner", nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
