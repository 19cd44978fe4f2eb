package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes de stock (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, article_code, received_qty, available_qty, unit_price,
	to_char(receipt_date, '` + dateLayout + `'), created_at`

func (r *LotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (article_code, received_qty, available_qty, unit_price, receipt_date)
		VALUES ($1, $2, $3, $4, to_date($5, '` + dateLayout + `'))
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		lot.ArticleCode, lot.ReceivedQty, lot.AvailableQty, lot.UnitPrice, lot.ReceiptDate,
	).Scan(&lot.ID, &lot.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("artículo %s", lot.ArticleCode)
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

func (r *LotRepo) ListByArticle(ctx context.Context, articleCode string, includeZero bool) ([]entity.StockLot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE article_code = $1`
	if !includeZero {
		query += ` AND available_qty > 0`
	}
	query += ` ORDER BY receipt_date, id`
	return r.list(ctx, "list stock lots", query, articleCode)
}

// ListAvailableForUpdate bloquea los lotes con saldo del artículo hasta el fin de la transacción.
func (r *LotRepo) ListAvailableForUpdate(ctx context.Context, articleCode string) ([]entity.StockLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM stock_lots
		WHERE article_code = $1 AND available_qty > 0
		ORDER BY receipt_date, id
		FOR UPDATE`
	return r.list(ctx, "lock stock lots", query, articleCode)
}

// UpdateAvailable el CHECK de la tabla rechaza saldos fuera de [0, received_qty].
func (r *LotRepo) UpdateAvailable(ctx context.Context, lotID int64, available int) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_lots SET available_qty = $2 WHERE id = $1`, lotID, available)
	if err != nil {
		return fmt.Errorf("update lot %d: %w", lotID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("lote %d", lotID)
	}
	return nil
}

func (r *LotRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.StockLot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var out []entity.StockLot
	for rows.Next() {
		var l entity.StockLot
		if err := rows.Scan(&l.ID, &l.ArticleCode, &l.ReceivedQty, &l.AvailableQty, &l.UnitPrice, &l.ReceiptDate, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
