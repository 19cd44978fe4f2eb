package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
)

// ReportHandler reportes de solo lectura.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary      Reporte de stock
// @Description  Resumen por artículo; con detailed=true, un registro por lote con cantidad > 0.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        detailed  query  bool  false  "un registro por lote"
// @Success      200  {object}  dto.ListResponse[dto.StockSummaryItem]
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	if c.QueryBool("detailed", false) {
		items, err := h.uc.StockDetail(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.NewList(items))
	}
	items, err := h.uc.StockSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// Projects GET /api/reports/projects
func (h *ReportHandler) Projects(c *fiber.Ctx) error {
	items, err := h.uc.ProjectsOverview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// Profit godoc
// @Summary      Análisis de rentabilidad
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query  int     false  "restringe a un proyecto"
// @Param        basis       query  string  false  "average (default) o fifo"
// @Success      200  {object}  dto.ProfitAnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return badRequest(c, "VALIDATION", "project_id inválido")
		}
		projectID = &id
	}
	out, err := h.uc.ProfitAnalysis(c.Context(), projectID, c.Query("basis"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Turnover GET /api/reports/turnover
func (h *ReportHandler) Turnover(c *fiber.Ctx) error {
	items, err := h.uc.Turnover(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// BelowMinimum GET /api/reports/below-minimum
func (h *ReportHandler) BelowMinimum(c *fiber.Ctx) error {
	items, err := h.uc.BelowMinimum(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// ProjectPDF godoc
// @Summary      Detalle de proyecto en PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  int  true  "ID del proyecto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/projects/{id}/pdf [get]
func (h *ReportHandler) ProjectPDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	pdf, filename, err := h.uc.ProjectOverviewPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
