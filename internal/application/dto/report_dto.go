package dto

import "github.com/shopspring/decimal"

// Bases de costo para el análisis de rentabilidad.
const (
	CostBasisAverage = "average" // media simple de precios de compra de todos los lotes
	CostBasisFIFO    = "fifo"    // costo real de los lotes consumidos
)

// StockSummaryItem stock agregado de un artículo.
type StockSummaryItem struct {
	ArticleCode   string          `json:"article_code"`
	ArticleName   string          `json:"article_name"`
	Supplier      string          `json:"supplier"`
	TotalQuantity int             `json:"total_quantity"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	OldestDate    string          `json:"oldest_date"`
	NewestDate    string          `json:"newest_date"`
}

// StockDetailItem un lote con saldo.
type StockDetailItem struct {
	LotID       int64           `json:"lot_id"`
	ArticleCode string          `json:"article_code"`
	ArticleName string          `json:"article_name"`
	Supplier    string          `json:"supplier"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ReceiptDate string          `json:"receipt_date"`
	Value       decimal.Decimal `json:"value"`
}

// BelowMinimumItem artículo a reponer.
type BelowMinimumItem struct {
	ArticleCode     string `json:"article_code"`
	ArticleName     string `json:"article_name"`
	MinimumStock    int    `json:"minimum_stock"`
	CurrentStock    int    `json:"current_stock"`
	Supplier        string `json:"supplier"`
	ReorderQuantity int    `json:"reorder_quantity"`
}

// ProfitItem rentabilidad de un artículo.
type ProfitItem struct {
	ArticleCode          string          `json:"article_code"`
	ArticleName          string          `json:"article_name"`
	QuantitySold         int             `json:"quantity_sold"`
	AverageSalePrice     decimal.Decimal `json:"average_sale_price"`
	AveragePurchasePrice decimal.Decimal `json:"average_purchase_price"`
	Revenue              decimal.Decimal `json:"revenue"`
	Cost                 decimal.Decimal `json:"cost"`
	Profit               decimal.Decimal `json:"profit"`
	MarginPercent        decimal.Decimal `json:"margin_percent"`
}

// ProfitAnalysisResponse análisis por artículo más totales.
type ProfitAnalysisResponse struct {
	ProjectID          *int64          `json:"project_id,omitempty"`
	CostBasis          string          `json:"cost_basis"`
	Items              []ProfitItem    `json:"items"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	TotalMarginPercent decimal.Decimal `json:"total_margin_percent"`
}

// TurnoverItem rotación de un artículo.
type TurnoverItem struct {
	ArticleCode string          `json:"article_code"`
	ArticleName string          `json:"article_name"`
	Stock       int             `json:"stock"`
	Sold        int             `json:"sold"`
	SaleCount   int             `json:"sale_count"`
	Ratio       decimal.Decimal `json:"ratio"`
}

// ProjectSaleItem una venta dentro del resumen de proyecto.
type ProjectSaleItem struct {
	SaleID      int64           `json:"sale_id"`
	ArticleCode string          `json:"article_code"`
	ArticleName string          `json:"article_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SaleDate    string          `json:"sale_date"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ProjectOverviewResponse ventas de un proyecto y su facturación total.
type ProjectOverviewResponse struct {
	ProjectID    int64             `json:"project_id"`
	ProjectName  string            `json:"project_name"`
	Customer     string            `json:"customer"`
	Sales        []ProjectSaleItem `json:"sales"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
}

// ProjectSummaryItem fila del listado de proyectos.
type ProjectSummaryItem struct {
	ProjectID    int64           `json:"project_id"`
	ProjectName  string          `json:"project_name"`
	Customer     string          `json:"customer"`
	SaleCount    int             `json:"sale_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
