package inventory_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/memory"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	uc        *inventory.LedgerUseCase
	projectID int64
}

func newFixture(t *testing.T, articleCodes ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	sup := &entity.Supplier{Name: "Möbelwerk Nord"}
	require.NoError(t, store.Suppliers().Create(ctx, sup))
	for _, code := range articleCodes {
		require.NoError(t, store.Articles().Create(ctx, &entity.Article{
			Code: code, Name: "Artikel " + code, SupplierID: sup.ID, MinimumStock: 8,
		}))
	}
	cust := &entity.Customer{Name: "Hotel Seeblick"}
	require.NoError(t, store.Customers().Create(ctx, cust))
	proj := &entity.Project{Name: "Renovierung 2024", CustomerID: cust.ID}
	require.NoError(t, store.Projects().Create(ctx, proj))

	uc := inventory.NewLedgerUseCase(store.TxRunner(), store.Articles(), store.Projects(), store.Lots(), nil, nil)
	return &fixture{store: store, uc: uc, projectID: proj.ID}
}

func (f *fixture) receive(t *testing.T, code string, qty int, price, date string) *entity.StockLot {
	t.Helper()
	lot, err := f.uc.Receive(context.Background(), inventory.ReceiveInput{
		ArticleCode: code, Quantity: qty, UnitPrice: decimal.RequireFromString(price), ReceiptDate: date,
	})
	require.NoError(t, err)
	return lot
}

func (f *fixture) sell(code string, qty int, price, date string) (*entity.Sale, error) {
	return f.uc.Sell(context.Background(), inventory.SellInput{
		ProjectID: f.projectID, ArticleCode: code, Quantity: qty,
		UnitPrice: decimal.RequireFromString(price), SaleDate: date,
	})
}

func availableByLot(t *testing.T, f *fixture, code string) map[int64]int {
	t.Helper()
	lots, err := f.uc.Lots(context.Background(), code, true)
	require.NoError(t, err)
	out := map[int64]int{}
	for _, l := range lots {
		out[l.ID] = l.AvailableQty
	}
	return out
}

// ─── Receive ──────────────────────────────────────────────────────────────────

func TestReceive_CreaLoteNuevo(t *testing.T) {
	f := newFixture(t, "TISCH-01")

	a := f.receive(t, "TISCH-01", 10, "100.00", "2024-01-10")
	b := f.receive(t, "TISCH-01", 10, "100.00", "2024-01-10")

	assert.NotEqual(t, a.ID, b.ID, "cada recepción es un lote propio")
	assert.Equal(t, 10, a.AvailableQty)
	assert.Equal(t, a.ReceivedQty, a.AvailableQty)
}

func TestReceive_PrecioConCerosFinalesSeAcepta(t *testing.T) {
	f := newFixture(t, "TISCH-01")
	f.receive(t, "TISCH-01", 1, "180.5000", "2024-01-10")

	lots, err := f.uc.Lots(context.Background(), "TISCH-01", false)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.True(t, decimal.RequireFromString("180.50").Equal(lots[0].UnitPrice))
}

func TestLedger_LogUnSoloComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf}).Component("ledger")

	f := newFixture(t, "TISCH-01")
	uc := inventory.NewLedgerUseCase(f.store.TxRunner(), f.store.Articles(), f.store.Projects(), f.store.Lots(), nil, log)
	_, err := uc.Receive(context.Background(), inventory.ReceiveInput{
		ArticleCode: "TISCH-01", Quantity: 2, UnitPrice: decimal.NewFromInt(50), ReceiptDate: "2024-01-10",
	})
	require.NoError(t, err)

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	assert.Equal(t, 1, strings.Count(line, `"component"`), line)
	assert.Contains(t, line, `"component":"ledger"`)
}

func TestReceive_FechaPorDefecto(t *testing.T) {
	f := newFixture(t, "TISCH-01")
	lot := f.receive(t, "TISCH-01", 1, "5", "")
	assert.True(t, entity.ValidDate(lot.ReceiptDate))
}

func TestReceive_Validaciones(t *testing.T) {
	f := newFixture(t, "TISCH-01")
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.ReceiveInput
		want error
	}{
		{"cantidad cero", inventory.ReceiveInput{ArticleCode: "TISCH-01", Quantity: 0, UnitPrice: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"precio cero", inventory.ReceiveInput{ArticleCode: "TISCH-01", Quantity: 1, UnitPrice: decimal.Zero}, domain.ErrInvalidInput},
		{"fecha inválida", inventory.ReceiveInput{ArticleCode: "TISCH-01", Quantity: 1, UnitPrice: decimal.NewFromInt(1), ReceiptDate: "10.01.2024"}, domain.ErrInvalidInput},
		{"artículo desconocido", inventory.ReceiveInput{ArticleCode: "NOPE", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}, domain.ErrNotFound},
		{"cantidad fuera de INTEGER", inventory.ReceiveInput{ArticleCode: "TISCH-01", Quantity: 3_000_000_000, UnitPrice: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"precio con 3 decimales", inventory.ReceiveInput{ArticleCode: "TISCH-01", Quantity: 1, UnitPrice: decimal.RequireFromString("180.555")}, domain.ErrInvalidInput},
		{"precio fuera de NUMERIC(14,2)", inventory.ReceiveInput{ArticleCode: "TISCH-01", Quantity: 1, UnitPrice: decimal.RequireFromString("1000000000000")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Receive(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ─── Sell ─────────────────────────────────────────────────────────────────────

func TestSell_FIFOEntreLotes(t *testing.T) {
	f := newFixture(t, "STUHL-07")
	lot1 := f.receive(t, "STUHL-07", 25, "180.00", "2024-01-10")
	lot2 := f.receive(t, "STUHL-07", 15, "190.00", "2024-01-20")

	s1, err := f.sell("STUHL-07", 20, "280.00", "2024-02-05")
	require.NoError(t, err)
	require.Len(t, s1.Allocations, 1)
	assert.Equal(t, lot1.ID, s1.Allocations[0].LotID)

	s2, err := f.sell("STUHL-07", 10, "285.00", "2024-02-10")
	require.NoError(t, err)
	require.Len(t, s2.Allocations, 2)
	assert.Equal(t, 5, s2.Allocations[0].Quantity)
	assert.Equal(t, 5, s2.Allocations[1].Quantity)

	avail := availableByLot(t, f, "STUHL-07")
	assert.Equal(t, 0, avail[lot1.ID])
	assert.Equal(t, 10, avail[lot2.ID])

	revenue := s1.Revenue().Add(s2.Revenue())
	assert.True(t, decimal.NewFromInt(8450).Equal(revenue), "revenue = %s", revenue)
}

func TestSell_InsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t, "SCHRANK-3")
	lot1 := f.receive(t, "SCHRANK-3", 4, "300", "2024-01-01")
	lot2 := f.receive(t, "SCHRANK-3", 3, "310", "2024-01-02")

	_, err := f.sell("SCHRANK-3", 8, "500", "2024-02-01")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	avail := availableByLot(t, f, "SCHRANK-3")
	assert.Equal(t, 4, avail[lot1.ID])
	assert.Equal(t, 3, avail[lot2.ID])

	rows, err := f.store.Reports().ProjectSales(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Empty(t, rows, "una venta rechazada no deja fila")
}

func TestSell_SinLotes(t *testing.T) {
	f := newFixture(t, "LAMPE-1")
	_, err := f.sell("LAMPE-1", 1, "10", "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestSell_NoEncontrados(t *testing.T) {
	f := newFixture(t, "LAMPE-1")
	f.receive(t, "LAMPE-1", 5, "10", "2024-01-01")

	_, err := f.sell("NOPE", 1, "10", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Sell(context.Background(), inventory.SellInput{
		ProjectID: 999, ArticleCode: "LAMPE-1", Quantity: 1, UnitPrice: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSell_Validaciones(t *testing.T) {
	f := newFixture(t, "LAMPE-1")
	f.receive(t, "LAMPE-1", 5, "10", "2024-01-01")

	_, err := f.sell("LAMPE-1", 0, "10", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sell("LAMPE-1", 1, "-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sell("LAMPE-1", 3_000_000_000, "10", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.sell("LAMPE-1", 1, "280.999", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sale, err := f.sell("LAMPE-1", 1, "0", "")
	require.NoError(t, err, "precio 0 está permitido")
	assert.True(t, sale.Revenue().IsZero())
}

func TestSell_ConservacionDeCantidades(t *testing.T) {
	f := newFixture(t, "BANK-2")
	f.receive(t, "BANK-2", 7, "50", "2024-01-01")
	f.receive(t, "BANK-2", 9, "55", "2024-01-03")
	f.receive(t, "BANK-2", 4, "60", "2024-01-02")

	sold := 0
	for _, q := range []int{3, 6, 5, 9} {
		if s, err := f.sell("BANK-2", q, "90", "2024-02-01"); err == nil {
			sold += s.Quantity
		}
	}

	lots, err := f.uc.Lots(context.Background(), "BANK-2", true)
	require.NoError(t, err)
	received, available := 0, 0
	for _, l := range lots {
		received += l.ReceivedQty
		available += l.AvailableQty
		assert.GreaterOrEqual(t, l.AvailableQty, 0)
	}
	assert.Equal(t, received, available+sold)
	assert.Equal(t, 14, sold, "3+6+5 caben, 9 no")
}

func TestSell_BajoMinimo(t *testing.T) {
	f := newFixture(t, "REGAL-9")
	f.receive(t, "REGAL-9", 12, "40", "2024-01-01")
	_, err := f.sell("REGAL-9", 7, "70", "2024-01-05")
	require.NoError(t, err)

	rows, err := f.store.Reports().BelowMinimum(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].CurrentStock)
	assert.Equal(t, 8, rows[0].MinimumStock)
}

func TestSell_Concurrente(t *testing.T) {
	f := newFixture(t, "SOFA-5")
	f.receive(t, "SOFA-5", 30, "400", "2024-01-01")
	f.receive(t, "SOFA-5", 20, "420", "2024-01-02")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := f.sell("SOFA-5", 3, "600", "2024-02-01")
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				return
			}
			mu.Lock()
			sold += s.Quantity
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 48, sold, "16 ventas de 3 caben en 50")
	lots, err := f.uc.Lots(context.Background(), "SOFA-5", true)
	require.NoError(t, err)
	left := 0
	for _, l := range lots {
		left += l.AvailableQty
	}
	assert.Equal(t, 2, left)
}

// ─── Lots ─────────────────────────────────────────────────────────────────────

func TestLots_OrdenYFiltro(t *testing.T) {
	f := newFixture(t, "TISCH-01")
	late := f.receive(t, "TISCH-01", 2, "10", "2024-03-01")
	early := f.receive(t, "TISCH-01", 2, "10", "2024-01-01")
	_, err := f.sell("TISCH-01", 2, "20", "2024-03-02")
	require.NoError(t, err)

	withZero, err := f.uc.Lots(context.Background(), "TISCH-01", true)
	require.NoError(t, err)
	require.Len(t, withZero, 2)
	assert.Equal(t, early.ID, withZero[0].ID)
	assert.Equal(t, late.ID, withZero[1].ID)

	onlyAvailable, err := f.uc.Lots(context.Background(), "TISCH-01", false)
	require.NoError(t, err)
	require.Len(t, onlyAvailable, 1)
	assert.Equal(t, late.ID, onlyAvailable[0].ID)

	unknown, err := f.uc.Lots(context.Background(), "NOPE", false)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}
