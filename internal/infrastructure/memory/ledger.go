package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var (
	_ repository.LotRepository  = (*LotRepo)(nil)
	_ repository.SaleRepository = (*SaleRepo)(nil)
)

// TxRunner ejecuta fn con el mutex del store tomado. Si fn falla se restaura
// el estado previo, de modo que una venta rechazada no deja rastro.
type TxRunner struct{ s *Store }

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(lots repository.LotRepository, sales repository.SaleRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.st.clone()
	if err := fn(&LotRepo{s: r.s, inTx: true}, &SaleRepo{s: r.s, inTx: true}); err != nil {
		r.s.st = snapshot
		return err
	}
	return nil
}

// LotRepo lotes de stock en memoria.
type LotRepo struct {
	s    *Store
	inTx bool
}

func (r *LotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	return r.s.view(r.inTx, func(st *state) error {
		if _, ok := st.articles[lot.ArticleCode]; !ok {
			return domain.NotFound("artículo %s", lot.ArticleCode)
		}
		lot.ID = int64(len(st.lots) + 1)
		lot.CreatedAt = r.s.now()
		st.lots = append(st.lots, *lot)
		return nil
	})
}

func (r *LotRepo) ListByArticle(_ context.Context, articleCode string, includeZero bool) ([]entity.StockLot, error) {
	var out []entity.StockLot
	err := r.s.view(r.inTx, func(st *state) error {
		out = lotsOf(st, articleCode, includeZero)
		return nil
	})
	return out, err
}

// ListAvailableForUpdate en memoria el bloqueo lo da el mutex de la transacción.
func (r *LotRepo) ListAvailableForUpdate(ctx context.Context, articleCode string) ([]entity.StockLot, error) {
	return r.ListByArticle(ctx, articleCode, false)
}

func (r *LotRepo) UpdateAvailable(_ context.Context, lotID int64, available int) error {
	return r.s.view(r.inTx, func(st *state) error {
		if lotID < 1 || int(lotID) > len(st.lots) {
			return domain.NotFound("lote %d", lotID)
		}
		lot := &st.lots[lotID-1]
		if available < 0 || available > lot.ReceivedQty {
			return fmt.Errorf("update lot %d: saldo %d fuera de [0, %d]", lotID, available, lot.ReceivedQty)
		}
		lot.AvailableQty = available
		return nil
	})
}

func lotsOf(st *state, articleCode string, includeZero bool) []entity.StockLot {
	var out []entity.StockLot
	for _, l := range st.lots {
		if l.ArticleCode != articleCode {
			continue
		}
		if !includeZero && l.AvailableQty <= 0 {
			continue
		}
		out = append(out, l)
	}
	inventory.SortLots(out)
	return out
}

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.view(r.inTx, func(st *state) error {
		if _, ok := st.projects[sale.ProjectID]; !ok {
			return domain.NotFound("proyecto %d", sale.ProjectID)
		}
		sale.ID = int64(len(st.sales) + 1)
		sale.CreatedAt = r.s.now()
		for i := range sale.Allocations {
			sale.Allocations[i].SaleID = sale.ID
		}
		stored := *sale
		stored.Allocations = slices.Clone(sale.Allocations)
		st.sales = append(st.sales, stored)
		return nil
	})
}
