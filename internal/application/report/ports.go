package report

import "github.com/jhoicas/lagerverwaltung-api/internal/application/dto"

// ProjectPDFGenerator genera el PDF del resumen de un proyecto.
type ProjectPDFGenerator interface {
	ProjectOverview(overview *dto.ProjectOverviewResponse) ([]byte, error)
}
