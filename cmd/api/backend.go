package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/memory"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/redis"
	"github.com/jhoicas/lagerverwaltung-api/pkg/config"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

// backend repositorios del driver elegido (postgres o memoria) y la blacklist de tokens.
type backend struct {
	suppliers repository.SupplierRepository
	articles  repository.ArticleRepository
	customers repository.CustomerRepository
	projects  repository.ProjectRepository
	lots      repository.LotRepository
	reports   repository.ReportRepository
	users     repository.UserRepository
	blacklist repository.TokenBlacklist
	txRunner  inventory.TxRunner

	pool  *pgxpool.Pool
	redis *goredis.Client
}

func newBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		b.suppliers = store.Suppliers()
		b.articles = store.Articles()
		b.customers = store.Customers()
		b.projects = store.Projects()
		b.lots = store.Lots()
		b.reports = store.Reports()
		b.users = store.Users()
		b.blacklist = store.Blacklist()
		b.txRunner = store.TxRunner()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.Migrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		b.pool = pool
		b.suppliers = postgres.NewSupplierRepository(pool)
		b.articles = postgres.NewArticleRepository(pool)
		b.customers = postgres.NewCustomerRepository(pool)
		b.projects = postgres.NewProjectRepository(pool)
		b.lots = postgres.NewLotRepository(pool)
		b.reports = postgres.NewReportRepository(pool)
		b.users = postgres.NewUserRepository(pool)
		b.blacklist = postgres.NewTokenBlacklistRepository(pool)
		b.txRunner = postgres.NewTxRunner(pool)
	}

	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.redis = client
		b.blacklist = infraredis.NewTokenBlacklist(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("blacklist de tokens en Redis")
	}
	return b, nil
}

// Ping comprueba las conexiones externas (health check).
func (b *backend) Ping(ctx context.Context) error {
	if b.pool != nil {
		if err := b.pool.Ping(ctx); err != nil {
			return err
		}
	}
	if b.redis != nil {
		if err := b.redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (b *backend) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}
