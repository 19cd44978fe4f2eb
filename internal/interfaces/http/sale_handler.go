package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
)

// SaleHandler ventas a proyectos (consumo FIFO).
type SaleHandler struct {
	ledger *inventory.LedgerUseCase
}

func NewSaleHandler(ledger *inventory.LedgerUseCase) *SaleHandler {
	return &SaleHandler{ledger: ledger}
}

// Sell godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de los lotes más antiguos primero. Si no alcanza, no se modifica nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SaleRequest  true  "project_id, article_code, quantity, unit_price, sale_date"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Sell(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	sale, err := h.ledger.SellFromRequest(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}
