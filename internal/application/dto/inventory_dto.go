package dto

import "github.com/shopspring/decimal"

// ReceiptRequest body para POST /api/stock/receipts. ReceiptDate vacío = hoy.
type ReceiptRequest struct {
	ArticleCode string          `json:"article_code" validate:"required,max=64"`
	Quantity    int             `json:"quantity" validate:"required,gt=0,max=2147483647"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ReceiptDate string          `json:"receipt_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// LotResponse un lote de stock.
type LotResponse struct {
	ID                int64           `json:"id"`
	ArticleCode       string          `json:"article_code"`
	ReceivedQuantity  int             `json:"received_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	ReceiptDate       string          `json:"receipt_date"`
}

// SaleRequest body para POST /api/sales. SaleDate vacío = hoy.
type SaleRequest struct {
	ProjectID   int64           `json:"project_id" validate:"required,gt=0"`
	ArticleCode string          `json:"article_code" validate:"required,max=64"`
	Quantity    int             `json:"quantity" validate:"required,gt=0,max=2147483647"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SaleDate    string          `json:"sale_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AllocationResponse parte de una venta servida desde un lote.
type AllocationResponse struct {
	LotID    int64           `json:"lot_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// SaleResponse venta registrada con los lotes consumidos.
type SaleResponse struct {
	ID          int64                `json:"id"`
	ProjectID   int64                `json:"project_id"`
	ArticleCode string               `json:"article_code"`
	Quantity    int                  `json:"quantity"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	SaleDate    string               `json:"sale_date"`
	Revenue     decimal.Decimal      `json:"revenue"`
	Allocations []AllocationResponse `json:"allocations"`
}
