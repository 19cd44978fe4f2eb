package inventory

import (
	"context"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(lots repository.LotRepository, sales repository.SaleRepository) error) error
}

// Observer recibe los eventos del ledger (métricas).
type Observer interface {
	LotReceived(articleCode string, quantity int)
	SaleRecorded(articleCode string, quantity int)
	SaleRejected(reason string)
}

type nopObserver struct{}

func (nopObserver) LotReceived(string, int)  {}
func (nopObserver) SaleRecorded(string, int) {}
func (nopObserver) SaleRejected(string)      {}
