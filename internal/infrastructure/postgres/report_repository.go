package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes armadas con squirrel y escaneadas con scany.
// Las columnas se nombran como los tags db de las filas de repository.
type ReportRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// stockPerArticle saldo actual por artículo (todos los lotes).
const stockPerArticle = `(SELECT article_code, SUM(available_qty) AS stock
	FROM stock_lots GROUP BY article_code) st ON st.article_code = a.code`

func (r *ReportRepo) StockSummary(ctx context.Context) ([]repository.StockSummaryRow, error) {
	q := r.builder.
		Select(
			"a.code AS article_code",
			"a.name AS article_name",
			"s.name AS supplier",
			"SUM(l.available_qty) AS total_quantity",
			"AVG(l.unit_price) AS average_price",
			"SUM(l.available_qty * l.unit_price) AS total_value",
			"to_char(MIN(l.receipt_date), '"+dateLayout+"') AS oldest_date",
			"to_char(MAX(l.receipt_date), '"+dateLayout+"') AS newest_date",
		).
		From("stock_lots l").
		Join("articles a ON a.code = l.article_code").
		Join("suppliers s ON s.id = a.supplier_id").
		Where(squirrel.Gt{"l.available_qty": 0}).
		GroupBy("a.code", "a.name", "s.name").
		OrderBy("a.code")

	var rows []repository.StockSummaryRow
	if err := r.selectInto(ctx, "stock summary", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepo) StockDetail(ctx context.Context) ([]repository.StockDetailRow, error) {
	q := r.builder.
		Select(
			"l.id AS lot_id",
			"a.code AS article_code",
			"a.name AS article_name",
			"s.name AS supplier",
			"l.available_qty AS quantity",
			"l.unit_price",
			"to_char(l.receipt_date, '"+dateLayout+"') AS receipt_date",
			"l.available_qty * l.unit_price AS value",
		).
		From("stock_lots l").
		Join("articles a ON a.code = l.article_code").
		Join("suppliers s ON s.id = a.supplier_id").
		Where(squirrel.Gt{"l.available_qty": 0}).
		OrderBy("a.code", "l.receipt_date", "l.id")

	var rows []repository.StockDetailRow
	if err := r.selectInto(ctx, "stock detail", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepo) BelowMinimum(ctx context.Context) ([]repository.BelowMinimumRow, error) {
	q := r.builder.
		Select(
			"a.code AS article_code",
			"a.name AS article_name",
			"a.minimum_stock",
			"COALESCE(st.stock, 0) AS current_stock",
			"s.name AS supplier",
		).
		From("articles a").
		Join("suppliers s ON s.id = a.supplier_id").
		LeftJoin(stockPerArticle).
		Where("COALESCE(st.stock, 0) < a.minimum_stock").
		OrderBy("a.code")

	var rows []repository.BelowMinimumRow
	if err := r.selectInto(ctx, "below minimum", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Profit el costo FIFO se suma por venta antes de agrupar para no multiplicar filas.
func (r *ReportRepo) Profit(ctx context.Context, projectID *int64) ([]repository.ProfitRow, error) {
	q := r.builder.
		Select(
			"a.code AS article_code",
			"a.name AS article_name",
			"SUM(x.quantity) AS quantity_sold",
			"AVG(x.unit_price) AS average_sale_price",
			"SUM(x.quantity * x.unit_price) AS revenue",
			"COALESCE(mp.mean_price, 0) AS mean_purchase_price",
			"COALESCE(SUM(fc.cost), 0) AS fifo_cost",
		).
		From("sales x").
		Join("articles a ON a.code = x.article_code").
		LeftJoin(`(SELECT article_code, AVG(unit_price) AS mean_price
			FROM stock_lots GROUP BY article_code) mp ON mp.article_code = a.code`).
		LeftJoin(`(SELECT sale_id, SUM(quantity * unit_cost) AS cost
			FROM sale_allocations GROUP BY sale_id) fc ON fc.sale_id = x.id`).
		GroupBy("a.code", "a.name", "mp.mean_price").
		OrderBy("revenue DESC", "a.code")
	if projectID != nil {
		q = q.Where(squirrel.Eq{"x.project_id": *projectID})
	}

	var rows []repository.ProfitRow
	if err := r.selectInto(ctx, "profit", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Turnover stock y ventas se agregan en subconsultas separadas.
func (r *ReportRepo) Turnover(ctx context.Context) ([]repository.TurnoverRow, error) {
	q := r.builder.
		Select(
			"a.code AS article_code",
			"a.name AS article_name",
			"COALESCE(st.stock, 0) AS stock",
			"COALESCE(sd.sold, 0) AS sold",
			"COALESCE(sd.sale_count, 0) AS sale_count",
		).
		From("articles a").
		LeftJoin(stockPerArticle).
		LeftJoin(`(SELECT article_code, SUM(quantity) AS sold, COUNT(*) AS sale_count
			FROM sales GROUP BY article_code) sd ON sd.article_code = a.code`).
		OrderBy("sold DESC", "a.code")

	var rows []repository.TurnoverRow
	if err := r.selectInto(ctx, "turnover", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepo) ProjectSales(ctx context.Context, projectID int64) ([]repository.ProjectSaleRow, error) {
	q := r.builder.
		Select(
			"x.id AS sale_id",
			"x.article_code",
			"a.name AS article_name",
			"x.quantity",
			"x.unit_price",
			"to_char(x.sale_date, '"+dateLayout+"') AS sale_date",
			"x.quantity * x.unit_price AS revenue",
		).
		From("sales x").
		Join("articles a ON a.code = x.article_code").
		Where(squirrel.Eq{"x.project_id": projectID}).
		OrderBy("x.sale_date", "x.article_code", "x.id")

	var rows []repository.ProjectSaleRow
	if err := r.selectInto(ctx, "project sales", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepo) ProjectsOverview(ctx context.Context) ([]repository.ProjectSummaryRow, error) {
	q := r.builder.
		Select(
			"p.id AS project_id",
			"p.name AS project_name",
			"c.name AS customer",
			"COUNT(x.id) AS sale_count",
			"COALESCE(SUM(x.quantity * x.unit_price), 0) AS revenue",
		).
		From("projects p").
		Join("customers c ON c.id = p.customer_id").
		LeftJoin("sales x ON x.project_id = p.id").
		GroupBy("p.id", "p.name", "c.name").
		OrderBy("p.name")

	var rows []repository.ProjectSummaryRow
	if err := r.selectInto(ctx, "projects overview", &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepo) selectInto(ctx context.Context, op string, dst any, q squirrel.SelectBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}
	if err := pgxscan.Select(ctx, r.q, dst, sql, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
