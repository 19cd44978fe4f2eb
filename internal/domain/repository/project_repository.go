package repository

import (
	"context"

	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
)

// ProjectRepository puerto de persistencia para proyectos.
type ProjectRepository interface {
	// Create devuelve domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
}
