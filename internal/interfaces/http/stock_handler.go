package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
)

// StockHandler recepciones de mercancía y consulta de lotes.
type StockHandler struct {
	ledger  *inventory.LedgerUseCase
	reports *report.UseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(ledger *inventory.LedgerUseCase, reports *report.UseCase) *StockHandler {
	return &StockHandler{ledger: ledger, reports: reports}
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Description  Crea un lote nuevo con cantidad y precio de compra. receipt_date vacío = hoy.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ReceiptRequest  true  "article_code, quantity, unit_price, receipt_date"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/receipts [post]
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	lot, err := h.ledger.ReceiveFromRequest(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// Summary godoc
// @Summary      Resumen de stock por artículo
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListResponse[dto.StockSummaryItem]
// @Router       /api/stock [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	items, err := h.reports.StockSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(items))
}

// Lots godoc
// @Summary      Lotes de un artículo en orden FIFO
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        code          path   string  true   "Código del artículo"
// @Param        include_zero  query  bool    false  "incluir lotes agotados"
// @Success      200  {object}  dto.ListResponse[dto.LotResponse]
// @Router       /api/stock/{code} [get]
func (h *StockHandler) Lots(c *fiber.Ctx) error {
	lots, err := h.ledger.LotsForArticle(c.Context(), c.Params("code"), c.QueryBool("include_zero", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(lots))
}
