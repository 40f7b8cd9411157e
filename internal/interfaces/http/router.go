package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-b2b-api/internal/application/overrides"
	"github.com/jhoicas/tienda-b2b-api/internal/application/pricing"
	"github.com/jhoicas/tienda-b2b-api/internal/application/registration"
	"github.com/jhoicas/tienda-b2b-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistrationUC *registration.UseCase
	PricingUC      *pricing.UseCase
	OverridesUC    *overrides.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Validación y registro (público)
	regHandler := NewRegistrationHandler(deps.RegistrationUC)
	api.Post("/tax-ids/validate", regHandler.ValidateTaxID)
	api.Post("/registrations", regHandler.Register)

	// Precios: auth opcional; la tarifa PDF exige cliente aprobado.
	priceHandler := NewPriceHandler(deps.PricingUC)
	prices := api.Group("/prices")
	prices.Get("/export.pdf",
		AuthMiddleware(deps.JWTSecret),
		RequireApprovedCustomer(deps.RegistrationUC),
		priceHandler.ExportPDF,
	)
	prices.Get("/", OptionalAuth(deps.JWTSecret), priceHandler.List)
	prices.Get("/:productId", OptionalAuth(deps.JWTSecret), priceHandler.Get)

	// Administración (JWT + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin))
	admin.Get("/customers/pending", regHandler.ListPending)
	admin.Post("/customers/:id/approve", regHandler.Approve)
	admin.Post("/customers/:id/reject", regHandler.Reject)

	overrideHandler := NewOverrideHandler(deps.OverridesUC)
	admin.Put("/overrides", overrideHandler.Upsert)
	admin.Delete("/overrides/:id", overrideHandler.Delete)
	admin.Get("/products/:id/overrides", overrideHandler.ListByProduct)
}
