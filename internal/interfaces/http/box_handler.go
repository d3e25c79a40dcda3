package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/boxes"
)

// BoxHandler consulta de cajas y su historial (protegido).
type BoxHandler struct {
	uc *boxes.UseCase
}

// NewBoxHandler construye el handler.
func NewBoxHandler(uc *boxes.UseCase) *BoxHandler {
	return &BoxHandler{uc: uc}
}

// GetByUID godoc
// @Summary      Consultar una caja y sus últimos eventos
// @Tags         boxes
// @Security     Bearer
// @Produce      json
// @Param        box_uid  path  string  true  "UID de la caja"
// @Success      200  {object}  dto.BoxDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{box_uid} [get]
func (h *BoxHandler) GetByUID(c *fiber.Ctx) error {
	out, err := h.uc.GetByUID(c.Context(), c.Params("box_uid"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
