// seed importa proveedores y artículos desde un CSV separado por ';'
// (exportación de Excel en Windows-1252 o UTF-8).
//
// Uso: go run ./cmd/seed [-encoding auto|utf-8|cp1252] catalogo.csv
// Cabecera: code;name;supplier;minimum_stock[;supplier_contact]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lagerverwaltung-api/pkg/config"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", "auto", "codificación del CSV: auto, utf-8 o cp1252")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-encoding auto|utf-8|cp1252] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	if cfg.Storage.Driver != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.Storage.Driver).Msg("el seed solo tiene sentido con STORAGE_DRIVER=postgres")
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	input, err := decodeInput(raw, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("decodificar CSV")
	}
	rows, err := parseCatalog(input)
	if err != nil {
		log.Fatal().Err(err).Msg("parsear CSV")
	}

	if cfg.DB.Migrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	supplierRepo := postgres.NewSupplierRepository(pool)
	sum, err := importCatalog(ctx, rows,
		usecase.NewSupplierUseCase(supplierRepo),
		usecase.NewArticleUseCase(postgres.NewArticleRepository(pool), supplierRepo),
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().
		Int("rows", len(rows)).
		Int("suppliers_created", sum.SuppliersCreated).
		Int("articles_created", sum.ArticlesCreated).
		Int("articles_skipped", sum.ArticlesSkipped).
		Msg("importación terminada")
}
