package repository

import (
	"context"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// LotRepository lotes de stock. Usado dentro de transacciones para garantizar consistencia.
type LotRepository interface {
	// Create inserta un lote nuevo (nunca fusiona con lotes existentes) y asigna ID.
	Create(ctx context.Context, lot *entity.StockLot) error
	// ListByArticle lotes del artículo en orden (fecha, id); includeZero incluye lotes agotados.
	ListByArticle(ctx context.Context, articleCode string, includeZero bool) ([]entity.StockLot, error)
	// ListAvailableForUpdate lotes con saldo > 0 en orden FIFO, bloqueados hasta el fin de la transacción.
	ListAvailableForUpdate(ctx context.Context, articleCode string) ([]entity.StockLot, error)
	UpdateAvailable(ctx context.Context, lotID int64, available int) error
}

// SaleRepository ventas. Las ventas son inmutables una vez creadas.
type SaleRepository interface {
	// Create persiste la venta y sus asignaciones a lotes; asigna ID.
	Create(ctx context.Context, sale *entity.Sale) error
}
