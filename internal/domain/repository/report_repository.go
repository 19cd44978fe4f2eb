package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockSummaryRow stock agregado por artículo (solo lotes con saldo > 0).
// AveragePrice es la media simple de precios de compra de esos lotes.
type StockSummaryRow struct {
	ArticleCode   string          `db:"article_code"`
	ArticleName   string          `db:"article_name"`
	Supplier      string          `db:"supplier"`
	TotalQuantity int             `db:"total_quantity"`
	AveragePrice  decimal.Decimal `db:"average_price"`
	TotalValue    decimal.Decimal `db:"total_value"`
	OldestDate    string          `db:"oldest_date"`
	NewestDate    string          `db:"newest_date"`
}

// StockDetailRow un lote con saldo > 0.
type StockDetailRow struct {
	LotID       int64           `db:"lot_id"`
	ArticleCode string          `db:"article_code"`
	ArticleName string          `db:"article_name"`
	Supplier    string          `db:"supplier"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	ReceiptDate string          `db:"receipt_date"`
	Value       decimal.Decimal `db:"value"`
}

// BelowMinimumRow artículo con stock actual < mindestmenge.
type BelowMinimumRow struct {
	ArticleCode  string `db:"article_code"`
	ArticleName  string `db:"article_name"`
	MinimumStock int    `db:"minimum_stock"`
	CurrentStock int    `db:"current_stock"`
	Supplier     string `db:"supplier"`
}

// ProfitRow ventas agregadas por artículo con las dos bases de costo.
// MeanPurchasePrice es la media simple sobre todos los lotes recibidos del artículo;
// FIFOCost suma el costo real de los lotes consumidos por esas ventas.
type ProfitRow struct {
	ArticleCode       string          `db:"article_code"`
	ArticleName       string          `db:"article_name"`
	QuantitySold      int             `db:"quantity_sold"`
	AverageSalePrice  decimal.Decimal `db:"average_sale_price"`
	Revenue           decimal.Decimal `db:"revenue"`
	MeanPurchasePrice decimal.Decimal `db:"mean_purchase_price"`
	FIFOCost          decimal.Decimal `db:"fifo_cost"`
}

// TurnoverRow stock y ventas por artículo, agregados por separado.
type TurnoverRow struct {
	ArticleCode string `db:"article_code"`
	ArticleName string `db:"article_name"`
	Stock       int    `db:"stock"`
	Sold        int    `db:"sold"`
	SaleCount   int    `db:"sale_count"`
}

// ProjectSaleRow una venta de un proyecto con el nombre del artículo.
type ProjectSaleRow struct {
	SaleID      int64           `db:"sale_id"`
	ArticleCode string          `db:"article_code"`
	ArticleName string          `db:"article_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	SaleDate    string          `db:"sale_date"`
	Revenue     decimal.Decimal `db:"revenue"`
}

// ProjectSummaryRow resumen de un proyecto para el listado general.
type ProjectSummaryRow struct {
	ProjectID   int64           `db:"project_id"`
	ProjectName string          `db:"project_name"`
	Customer    string          `db:"customer"`
	SaleCount   int             `db:"sale_count"`
	Revenue     decimal.Decimal `db:"revenue"`
}

// ReportRepository consultas de solo lectura sobre lotes y ventas.
type ReportRepository interface {
	StockSummary(ctx context.Context) ([]StockSummaryRow, error)
	StockDetail(ctx context.Context) ([]StockDetailRow, error)
	BelowMinimum(ctx context.Context) ([]BelowMinimumRow, error)
	// Profit filtra por proyecto si projectID no es nil. Orden: revenue desc.
	Profit(ctx context.Context, projectID *int64) ([]ProfitRow, error)
	// Turnover orden: vendido desc, luego código.
	Turnover(ctx context.Context) ([]TurnoverRow, error)
	ProjectSales(ctx context.Context, projectID int64) ([]ProjectSaleRow, error)
	ProjectsOverview(ctx context.Context) ([]ProjectSummaryRow, error)
}
