package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. Nombre duplicado -> ErrDuplicate.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre del proveedor es requerido")
	}
	sup := &entity.Supplier{Name: name, Contact: strings.TrimSpace(in.Contact)}
	if err := uc.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// GetByID obtiene un proveedor o ErrNotFound.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	sup, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// List proveedores ordenados por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Update modifica nombre y/o contacto.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("el nombre del proveedor no puede quedar vacío")
		}
		sup.Name = name
	}
	if in.Contact != nil {
		sup.Contact = strings.TrimSpace(*in.Contact)
	}
	if err := uc.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// Delete borra el proveedor. Falla con ErrConflict mientras tenga artículos.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el proveedor %d tiene %d artículos", domain.ErrConflict, id, n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) get(ctx context.Context, id int64) (*entity.Supplier, error) {
	sup, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.NotFound("proveedor %d", id)
	}
	return sup, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, Contact: s.Contact, CreatedAt: s.CreatedAt}
}
