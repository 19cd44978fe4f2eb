package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
)

// ProjectHandler proyectos de clientes; el detalle es la vista de ventas del proyecto.
type ProjectHandler struct {
	uc      *usecase.ProjectUseCase
	reports *report.UseCase
}

func NewProjectHandler(uc *usecase.ProjectUseCase, reports *report.UseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc, reports: reports}
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Overview godoc
// @Summary      Detalle de proyecto con sus ventas
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectOverviewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Overview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.reports.ProjectOverview(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
