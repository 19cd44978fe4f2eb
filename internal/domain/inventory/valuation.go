package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// MeanPrice media aritmética simple (sin ponderar por cantidad). Cero si no hay precios.
func MeanPrice(prices []decimal.Decimal) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(prices[0], prices[1:]...).Div(decimal.NewFromInt(int64(len(prices))))
}

// MarginPercent profit / revenue × 100; 0 cuando revenue es 0.
func MarginPercent(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// TurnoverRatio vendido / en stock cuando ambos son positivos, si no 0.
func TurnoverRatio(sold, stock int) decimal.Decimal {
	if sold <= 0 || stock <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sold)).Div(decimal.NewFromInt(int64(stock)))
}

// BelowMinimum stock estrictamente menor que la mindestmenge.
func BelowMinimum(stock, minimum int) bool {
	return stock < minimum
}

// ReorderQuantity faltante hasta la mindestmenge, nunca negativo.
func ReorderQuantity(minimum, stock int) int {
	if minimum-stock < 0 {
		return 0
	}
	return minimum - stock
}

// AverageCost costo aproximado de lo vendido: cantidad × precio medio histórico del artículo.
func AverageCost(quantity int, meanPurchasePrice decimal.Decimal) decimal.Decimal {
	return meanPurchasePrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// FIFOCost costo exacto de lo vendido según los lotes realmente consumidos.
func FIFOCost(allocs []entity.SaleAllocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.UnitCost.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return total
}
