package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/entity"
	"github.com/jhoicas/lagerverwaltung-api/internal/domain/repository"
)

// ProjectUseCase alta y listado de proyectos. El detalle de un proyecto es un reporte
// (ver report.UseCase.ProjectOverview).
type ProjectUseCase struct {
	repo         repository.ProjectRepository
	customerRepo repository.CustomerRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, customerRepo repository.CustomerRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, customerRepo: customerRepo}
}

// Create crea un proyecto de un cliente existente. Nombre duplicado -> ErrDuplicate.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("el nombre del proyecto es requerido")
	}
	c, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente %d", in.CustomerID)
	}
	p := &entity.Project{Name: name, CustomerID: c.ID}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

func (uc *ProjectUseCase) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProjectResponse(p))
	}
	return out, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{ID: p.ID, Name: p.Name, CustomerID: p.CustomerID, CreatedAt: p.CreatedAt}
}
