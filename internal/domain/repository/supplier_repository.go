package repository

import (
	"context"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// SupplierRepository puerto de persistencia para proveedores.
// Create y Update devuelven domain.ErrDuplicate si el nombre ya existe.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id int64) error
	// CountArticles artículos que referencian al proveedor (bloquean el borrado).
	CountArticles(ctx context.Context, id int64) (int, error)
}
