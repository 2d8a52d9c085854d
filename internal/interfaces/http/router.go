package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tikprofil/tikprofil-api/internal/application/auth"
	"github.com/tikprofil/tikprofil-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BusinessUC *usecase.BusinessUseCase
	StaffUC    *usecase.StaffUseCase
	DocumentUC *usecase.DocumentUseCase
	ProfileUC  *usecase.ProfileUseCase
	Metrics    *Metrics
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Tres superficies:
//   - pública: health, métricas, perfiles por slug y logins
//   - panel de negocio: sesión de owner/staff (o impersonación) + chequeo de
//     revocación + permission por ruta
//   - admin: sesión de admin/consultant + permission por ruta
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", MetricsHandler())
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/owner/login", authHandler.LoginOwner)
	authGroup.Post("/staff/login", authHandler.LoginStaff)
	authGroup.Post("/admin/login", authHandler.LoginAdmin)
	authGroup.Post("/consultant/login", authHandler.LoginConsultant)
	authGroup.Post("/logout", authHandler.Logout)

	// Perfiles públicos (sin sesión, con cache TTL por detrás)
	profileHandler := NewProfileHandler(deps.ProfileUC)
	api.Get("/public/profiles/:slug", profileHandler.GetBySlug)

	// /api/auth/me acepta cualquier audiencia.
	authGroup.Get("/me",
		SessionMiddleware(deps.JWTSecret, CookieImpersonate, CookieOwnerSession, CookieStaffSession, CookieAdminSession, CookieConsultantSession),
		authHandler.Me)

	// Panel de negocio: la cookie de impersonación se busca primero para que
	// un admin impersonando no opere con su propia sesión.
	panel := api.Group("/panel",
		SessionMiddleware(deps.JWTSecret, CookieImpersonate, CookieOwnerSession, CookieStaffSession),
		CheckForceLogout(deps.AuthUC),
	)

	staffHandler := NewStaffHandler(deps.StaffUC)
	staffGroup := panel.Group("/staff", RequirePermission("general.staff"))
	staffGroup.Post("/", staffHandler.Create)
	staffGroup.Get("/", staffHandler.List)
	staffGroup.Put("/:id", staffHandler.Update)
	staffGroup.Delete("/:id", staffHandler.Delete)

	documentHandler := NewDocumentHandler(deps.DocumentUC)
	docGroup := panel.Group("/documents", RequirePermission("general.dashboard"))
	docGroup.Get("/:collection", documentHandler.List)
	docGroup.Post("/:collection", documentHandler.Create)
	docGroup.Get("/:collection/:id", documentHandler.Get)
	docGroup.Patch("/:collection/:id", documentHandler.Update)
	docGroup.Delete("/:collection/:id", documentHandler.Delete)

	// Panel de administración: admin completo, consultant solo lectura.
	admin := api.Group("/admin",
		SessionMiddleware(deps.JWTSecret, CookieAdminSession, CookieConsultantSession),
	)

	businessHandler := NewBusinessHandler(deps.BusinessUC)
	admin.Get("/businesses", RequirePermission("admin.businesses"), businessHandler.List)
	admin.Get("/businesses/:id", RequirePermission("admin.businesses"), businessHandler.GetByID)
	admin.Post("/businesses", RequirePermission("admin.manage"), businessHandler.Create)
	admin.Put("/businesses/:id", RequirePermission("admin.manage"), businessHandler.Update)
	admin.Post("/businesses/:id/force-logout", RequirePermission("admin.manage"), businessHandler.ForceLogout)
	admin.Delete("/businesses/:id", RequirePermission("admin.manage"), businessHandler.Delete)

	admin.Post("/impersonate", RequirePermission("admin.impersonate"), authHandler.Impersonate)

	adminDocs := admin.Group("/documents", RequirePermission("admin.documents"))
	adminDocs.Get("/:collection", documentHandler.AdminList)
	adminDocs.Post("/:collection", documentHandler.AdminCreate)
	adminDocs.Get("/:collection/:id", documentHandler.AdminGet)
	adminDocs.Patch("/:collection/:id", documentHandler.AdminUpdate)
	adminDocs.Delete("/:collection/:id", documentHandler.AdminDelete)
}
