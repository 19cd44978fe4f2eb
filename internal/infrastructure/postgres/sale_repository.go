package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y sus asignaciones a lotes. Create debe correr dentro de la tx de la venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y sus asignaciones (un batch para todas las filas de sale_allocations).
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (project_id, article_code, quantity, unit_price, sale_date)
		VALUES ($1, $2, $3, $4, to_date($5, '` + dateLayout + `'))
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		sale.ProjectID, sale.ArticleCode, sale.Quantity, sale.UnitPrice, sale.SaleDate,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("proyecto %d o artículo %s", sale.ProjectID, sale.ArticleCode)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	if len(sale.Allocations) == 0 {
		return nil
	}

	for i := range sale.Allocations {
		sale.Allocations[i].SaleID = sale.ID
	}
	sender, ok := r.q.(batchSender)
	if !ok {
		for _, a := range sale.Allocations {
			if _, err := r.q.Exec(ctx, insertAllocation, a.SaleID, a.LotID, a.Quantity, a.UnitCost); err != nil {
				return fmt.Errorf("insert sale allocation: %w", err)
			}
		}
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range sale.Allocations {
		batch.Queue(insertAllocation, a.SaleID, a.LotID, a.Quantity, a.UnitCost)
	}
	if err := sender.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert sale allocations: %w", err)
	}
	return nil
}

const insertAllocation = `
	INSERT INTO sale_allocations (sale_id, lot_id, quantity, unit_cost)
	VALUES ($1, $2, $3, $4)`

// batchSender lo implementan pgx.Tx y *pgxpool.Pool.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}
