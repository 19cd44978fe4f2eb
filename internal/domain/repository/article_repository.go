package repository

import (
	"context"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// ArticleRepository puerto de persistencia para artículos (alta y lectura; no hay update).
type ArticleRepository interface {
	// Create devuelve domain.ErrDuplicate si el código ya existe.
	Create(ctx context.Context, a *entity.Article) error
	// GetByCode devuelve nil, nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Article, error)
	List(ctx context.Context) ([]*entity.Article, error)
}
