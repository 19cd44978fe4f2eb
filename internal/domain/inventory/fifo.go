package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// Draw cantidad que una venta toma de un lote y el saldo que le queda al lote.
type Draw struct {
	LotID     int64
	Quantity  int
	Remaining int
	UnitCost  decimal.Decimal
}

// SortLots ordena por (fecha de recepción, id) ascendente: el orden de consumo FIFO.
func SortLots(lots []entity.StockLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if lots[i].ReceiptDate != lots[j].ReceiptDate {
			return lots[i].ReceiptDate < lots[j].ReceiptDate
		}
		return lots[i].ID < lots[j].ID
	})
}

// Available suma los saldos disponibles de los lotes.
func Available(lots []entity.StockLot) int {
	total := 0
	for _, l := range lots {
		if l.AvailableQty > 0 {
			total += l.AvailableQty
		}
	}
	return total
}

// PlanConsumption calcula qué lotes consume una venta de qty unidades, del más antiguo al más nuevo.
// Los lotes deben venir en orden FIFO (ver SortLots). No modifica lots.
// Si el total disponible no alcanza devuelve ErrInsufficientStock y ningún Draw:
// la venta es todo o nada.
func PlanConsumption(articleCode string, lots []entity.StockLot, qty int) ([]Draw, error) {
	if qty <= 0 {
		return nil, domain.Invalid("la cantidad vendida debe ser mayor que 0")
	}
	if available := Available(lots); available < qty {
		return nil, domain.InsufficientStock(articleCode, qty, available)
	}

	remaining := qty
	draws := make([]Draw, 0, 2)
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		if lot.AvailableQty <= 0 {
			continue
		}
		take := lot.AvailableQty
		if take > remaining {
			take = remaining
		}
		remaining -= take
		draws = append(draws, Draw{
			LotID:     lot.ID,
			Quantity:  take,
			Remaining: lot.AvailableQty - take,
			UnitCost:  lot.UnitPrice,
		})
	}
	return draws, nil
}

// Allocations convierte los draws en las asignaciones persistidas de una venta.
func Allocations(saleID int64, draws []Draw) []entity.SaleAllocation {
	out := make([]entity.SaleAllocation, 0, len(draws))
	for _, d := range draws {
		out = append(out, entity.SaleAllocation{
			SaleID:   saleID,
			LotID:    d.LotID,
			Quantity: d.Quantity,
			UnitCost: d.UnitCost,
		})
	}
	return out
}
