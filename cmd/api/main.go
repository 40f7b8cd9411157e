// @title			Tienda B2B API
// @version		1.0
// @description	Validación de identificadores fiscales UE y precios B2B por niveles.
// @BasePath		/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/tienda-b2b-api/docs"
	"github.com/jhoicas/tienda-b2b-api/internal/application/overrides"
	"github.com/jhoicas/tienda-b2b-api/internal/application/pricing"
	"github.com/jhoicas/tienda-b2b-api/internal/application/registration"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/tienda-b2b-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/taxid"
	"github.com/jhoicas/tienda-b2b-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/tienda-b2b-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-b2b-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-b2b-api/internal/infrastructure/vies"
	httpRouter "github.com/jhoicas/tienda-b2b-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-b2b-api/pkg/config"
	"github.com/jhoicas/tienda-b2b-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("vat_rate", cfg.Pricing.VATRate.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewBusinessCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	overrideRepo := postgres.NewPriceOverrideRepository(pool)

	m := metrics.New(prometheus.DefaultRegisterer)

	// Sin VIES_URL los NIF UE con formato válido quedan como REGISTRY_UNAVAILABLE (revisión manual).
	var registry taxid.RegistryClient
	if cfg.VIES.URL != "" {
		registry = metrics.InstrumentRegistry(vies.NewSOAPClient(cfg.VIES.URL, cfg.VIES.Timeout()), m)
	} else {
		log.Warn().Msg("VIES_URL vacío: registro UE deshabilitado")
	}
	validator := taxid.NewValidator(registry, cfg.VIES.Timeout())

	registrationUC := registration.NewUseCase(customerRepo, validator, m, log)
	pricingUC := pricing.NewUseCase(pricing.Deps{
		Products:       productRepo,
		Customers:      customerRepo,
		Overrides:      overrideRepo,
		Resolver:       domainpricing.NewResolver(cfg.Pricing.VATRate),
		RetailCurrency: entity.Currency(cfg.Pricing.RetailCurrency),
		Observer:       m,
		PDF:            infrapdf.NewPriceListGenerator(cfg.App.Name),
		Log:            log,
	})
	overridesUC := overrides.NewUseCase(overrideRepo, productRepo, customerRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda B2B API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistrationUC: registrationUC,
		PricingUC:      pricingUC,
		OverridesUC:    overridesUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
