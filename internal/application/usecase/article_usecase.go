package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

// ArticleUseCase alta y consulta de artículos. El stock se maneja vía recepciones y ventas.
type ArticleUseCase struct {
	repo         repository.ArticleRepository
	supplierRepo repository.SupplierRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, supplierRepo repository.SupplierRepository) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create da de alta un artículo. Mínimo por defecto 1.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.Invalid("código y nombre del artículo son requeridos")
	}
	minimum := entity.DefaultMinimumStock
	if in.MinimumStock != nil {
		minimum = *in.MinimumStock
	}
	if minimum < 0 || !entity.QuantityFits(minimum) {
		return nil, domain.Invalid("la cantidad mínima debe estar entre 0 y %d", entity.MaxQuantity)
	}
	sup, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.NotFound("proveedor %d", in.SupplierID)
	}

	a := &entity.Article{Code: code, Name: name, SupplierID: sup.ID, MinimumStock: minimum}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toArticleResponse(a), nil
}

// GetByCode obtiene un artículo o ErrNotFound.
func (uc *ArticleUseCase) GetByCode(ctx context.Context, code string) (*dto.ArticleResponse, error) {
	a, err := uc.repo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("artículo %s", code)
	}
	return toArticleResponse(a), nil
}

// List artículos ordenados por código.
func (uc *ArticleUseCase) List(ctx context.Context) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toArticleResponse(a))
	}
	return out, nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		Code:         a.Code,
		Name:         a.Name,
		SupplierID:   a.SupplierID,
		MinimumStock: a.MinimumStock,
		CreatedAt:    a.CreatedAt,
	}
}
