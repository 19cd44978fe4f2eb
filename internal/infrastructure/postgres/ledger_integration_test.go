//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/postgres"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

type pgEnv struct {
	ledger *inventory.LedgerUseCase
	// newLedger crea otra instancia sobre el mismo pool, como un segundo proceso de la API.
	newLedger func() *inventory.LedgerUseCase
	reports   *report.UseCase
	suppliers *postgres.SupplierRepo
	lots      *postgres.LotRepo
	projectID int64
}

func newPgEnv(t *testing.T) *pgEnv {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("lager_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.MigrateUp(dsn, nil))

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	suppliers := postgres.NewSupplierRepository(pool)
	articles := postgres.NewArticleRepository(pool)
	customers := postgres.NewCustomerRepository(pool)
	projects := postgres.NewProjectRepository(pool)
	lots := postgres.NewLotRepository(pool)

	sup := &entity.Supplier{Name: "Möbelwerk Nord"}
	require.NoError(t, suppliers.Create(ctx, sup))
	require.NoError(t, articles.Create(ctx, &entity.Article{Code: "STUHL-07", Name: "Stuhl", SupplierID: sup.ID, MinimumStock: 12}))
	cust := &entity.Customer{Name: "Hotel Seeblick"}
	require.NoError(t, customers.Create(ctx, cust))
	proj := &entity.Project{Name: "Renovierung", CustomerID: cust.ID}
	require.NoError(t, projects.Create(ctx, proj))

	newLedger := func() *inventory.LedgerUseCase {
		return inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), articles, projects, lots, nil, nil)
	}
	return &pgEnv{
		ledger:    newLedger(),
		newLedger: newLedger,
		reports:   report.NewUseCase(postgres.NewReportRepository(pool), projects, customers, nil),
		suppliers: suppliers,
		lots:      lots,
		projectID: proj.ID,
	}
}

func (e *pgEnv) receive(t *testing.T, qty int, price, date string) {
	t.Helper()
	_, err := e.ledger.Receive(context.Background(), inventory.ReceiveInput{
		ArticleCode: "STUHL-07", Quantity: qty, UnitPrice: decimal.RequireFromString(price), ReceiptDate: date,
	})
	require.NoError(t, err)
}

func (e *pgEnv) sell(qty int, price, date string) (*entity.Sale, error) {
	return e.ledger.Sell(context.Background(), inventory.SellInput{
		ProjectID: e.projectID, ArticleCode: "STUHL-07", Quantity: qty,
		UnitPrice: decimal.RequireFromString(price), SaleDate: date,
	})
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestPostgres_EscenarioFIFO(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	e.receive(t, 25, "180", "2024-01-10")
	e.receive(t, 15, "190", "2024-01-20")

	_, err := e.sell(20, "280", "2024-02-05")
	require.NoError(t, err)
	s2, err := e.sell(10, "285", "2024-02-10")
	require.NoError(t, err)
	assert.Len(t, s2.Allocations, 2)

	lots, err := e.lots.ListByArticle(ctx, "STUHL-07", true)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, 0, lots[0].AvailableQty)
	assert.Equal(t, 10, lots[1].AvailableQty)
	assert.Equal(t, "2024-01-10", lots[0].ReceiptDate)

	overview, err := e.reports.ProjectOverview(ctx, e.projectID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8450).Equal(overview.TotalRevenue))

	profit, err := e.reports.ProfitAnalysis(ctx, nil, "fifo")
	require.NoError(t, err)
	require.Len(t, profit.Items, 1)
	assert.True(t, decimal.NewFromInt(5450).Equal(profit.Items[0].Cost))

	below, err := e.reports.BelowMinimum(ctx)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, 2, below[0].ReorderQuantity)
}

func TestPostgres_InsuficienteEsAtomico(t *testing.T) {
	e := newPgEnv(t)
	e.receive(t, 4, "100", "2024-01-01")
	e.receive(t, 3, "110", "2024-01-02")

	_, err := e.sell(8, "150", "2024-02-01")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	lots, err := e.lots.ListByArticle(context.Background(), "STUHL-07", false)
	require.NoError(t, err)
	assert.Equal(t, 4, lots[0].AvailableQty)
	assert.Equal(t, 3, lots[1].AvailableQty)
}

func TestPostgres_VentasConcurrentes(t *testing.T) {
	e := newPgEnv(t)
	e.receive(t, 30, "100", "2024-01-01")
	e.receive(t, 20, "110", "2024-01-02")

	// Dos instancias no comparten los locks por artículo: solo FOR UPDATE serializa.
	ledgers := []*inventory.LedgerUseCase{e.ledger, e.newLedger()}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(l *inventory.LedgerUseCase) {
			defer wg.Done()
			s, err := l.Sell(context.Background(), inventory.SellInput{
				ProjectID: e.projectID, ArticleCode: "STUHL-07", Quantity: 3,
				UnitPrice: decimal.RequireFromString("150"), SaleDate: "2024-02-01",
			})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				return
			}
			mu.Lock()
			sold += s.Quantity
			mu.Unlock()
		}(ledgers[i%2])
	}
	wg.Wait()

	lots, err := e.lots.ListByArticle(context.Background(), "STUHL-07", true)
	require.NoError(t, err)
	left := 0
	for _, l := range lots {
		left += l.AvailableQty
	}
	assert.Equal(t, 48, sold)
	assert.Equal(t, 2, left)
	assert.Equal(t, 50, left+sold)
}

func TestPostgres_ProveedorConArticulosNoSeBorra(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	list, err := e.suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.ErrorIs(t, e.suppliers.Delete(ctx, list[0].ID), domain.ErrConflict)

	err = e.suppliers.Create(ctx, &entity.Supplier{Name: "Möbelwerk Nord"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
