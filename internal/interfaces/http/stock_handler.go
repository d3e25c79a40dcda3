package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
)

// StockHandler rollup de existencias por instalación (protegido, solo lectura).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// FacilityStock godoc
// @Summary      Existencias de una instalación
// @Description  Conteos por (producto, lote, vencimiento, estado) más el
//
//	total de cajas. Actores no-admin solo consultan su propia instalación.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        facility_id  path  string  true  "ID de la instalación"
// @Success      200  {object}  dto.StockResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/facility/{facility_id} [get]
func (h *StockHandler) FacilityStock(c *fiber.Ctx) error {
	out, err := h.uc.FacilityStock(c.Context(), GetActor(c), c.Params("facility_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
