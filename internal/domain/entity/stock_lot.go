package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de recepción y venta (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Límites de almacenamiento: cantidades INTEGER y precios NUMERIC(14,2).
const (
	MaxQuantity = math.MaxInt32
	PriceScale  = 2
)

// maxPrice límite exclusivo de NUMERIC(14,2): 12 dígitos enteros.
var maxPrice = decimal.New(1, 12)

// QuantityFits indica si la cantidad cabe en la columna INTEGER.
func QuantityFits(n int) bool {
	return n <= MaxQuantity
}

// PriceFits indica si el precio se guarda sin redondeo: como mucho 2 decimales
// y menos de 12 dígitos enteros.
func PriceFits(d decimal.Decimal) bool {
	return d.Equal(d.Round(PriceScale)) && d.Abs().LessThan(maxPrice)
}

// StockLot lote de stock: una recepción física con su propio precio de compra.
// AvailableQty solo decrece (ventas FIFO) y siempre cumple 0 <= AvailableQty <= ReceivedQty.
// UnitPrice y ReceiptDate no cambian después de la recepción.
type StockLot struct {
	ID           int64
	ArticleCode  string
	ReceivedQty  int
	AvailableQty int
	UnitPrice    decimal.Decimal
	ReceiptDate  string
	CreatedAt    time.Time
}

// Value valor de compra del saldo disponible.
func (l StockLot) Value() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.AvailableQty)))
}

// Today fecha actual en DateLayout.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ValidDate indica si s es una fecha YYYY-MM-DD real.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
