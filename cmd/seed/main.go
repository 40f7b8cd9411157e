// seed carga el catálogo de productos (precios de venta al público PLN/EUR) desde un CSV.
//
// Uso: go run ./cmd/seed [-migrate] [-encoding windows-1250] catalogo.csv
// Usa la misma configuración de base de datos que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-b2b-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-b2b-api/pkg/config"
	"github.com/jhoicas/tienda-b2b-api/pkg/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "aplicar migraciones antes de cargar")
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8, windows-1250, iso-8859-2")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	r, err := decoderFor(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}
	rows, err := parseCatalog(r)
	if err != nil {
		log.Fatal().Err(err).Msg("parsear catálogo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("scripts", applied).Msg("migraciones aplicadas")
	}

	repo := postgres.NewProductRepository(pool)
	now := time.Now()
	for _, row := range rows {
		p := row.toProduct(uuid.New().String())
		p.CreatedAt, p.UpdatedAt = now, now
		if err := repo.Upsert(ctx, p); err != nil {
			log.Fatal().Err(err).Str("sku", row.SKU).Msg("guardar producto")
		}
	}
	log.Info().Int("products", len(rows)).Str("path", csvPath).Msg("catálogo cargado")
}
