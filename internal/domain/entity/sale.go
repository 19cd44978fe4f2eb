package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de un artículo dentro de un proyecto. Una venta puede consumir varios lotes,
// pero se registra como una sola fila con la cantidad total y un único precio de venta.
type Sale struct {
	ID          int64
	ProjectID   int64
	ArticleCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	SaleDate    string
	CreatedAt   time.Time

	// Allocations lotes consumidos por la venta, en orden FIFO.
	Allocations []SaleAllocation
}

// Revenue cantidad × precio de venta.
func (s Sale) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// SaleAllocation parte de una venta servida desde un lote, con el costo histórico de ese lote.
type SaleAllocation struct {
	SaleID   int64
	LotID    int64
	Quantity int
	UnitCost decimal.Decimal
}
