package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/transfer"
)

// TransferHandler maneja las peticiones HTTP del motor de transferencias (protegido).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// GenerateBoxes godoc
// @Summary      Generar cajas para una orden
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBoxesRequest  true  "order_number, product_code, batch_no, expiry_date (YYYY-MM-DD), quantity"
// @Success      201   {object}  dto.GenerateBoxesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/transfers/generate [post]
func (h *TransferHandler) GenerateBoxes(c *fiber.Ctx) error {
	var in dto.GenerateBoxesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.GenerateBoxes(c.Context(), GetActor(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "cajas generadas",
		"order_number": out.OrderNumber,
		"box_uids":     out.BoxUIDs,
	})
}

// WarehouseReceive godoc
// @Summary      Recibir cajas en bodega
// @Description  Cajas ya recibidas en la misma bodega se reportan en skipped
//
//	(reintento de escaneo benigno), sin evento duplicado.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseReceiveRequest  true  "box_uids, note opcional"
// @Success      200   {object}  dto.TransferResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers/warehouse-receive [post]
func (h *TransferHandler) WarehouseReceive(c *fiber.Ctx) error {
	var in dto.WarehouseReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.WarehouseReceive(c.Context(), GetActor(c), in.BoxUIDs, in.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "recepción en bodega registrada",
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
}

// Dispatch godoc
// @Summary      Despachar cajas hacia una instalación
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispatchRequest  true  "box_uids, to_facility_code, note opcional"
// @Success      200   {object}  dto.TransferResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Dispatch(c.Context(), GetActor(c), in.BoxUIDs, in.ToFacilityCode, in.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "despacho registrado",
		"updated": result.Updated,
	})
}

// FacilityReceive godoc
// @Summary      Recibir cajas en la instalación
// @Description  Para actores no-admin el último DISPATCH de cada caja debe
//
//	nombrar esta instalación como destino.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FacilityReceiveRequest  true  "box_uids, note opcional"
// @Success      200   {object}  dto.TransferResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers/facility-receive [post]
func (h *TransferHandler) FacilityReceive(c *fiber.Ctx) error {
	var in dto.FacilityReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.FacilityReceive(c.Context(), GetActor(c), in.BoxUIDs, in.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "recepción en instalación registrada",
		"updated": result.Updated,
	})
}

// Dispense godoc
// @Summary      Dispensar una caja a un beneficiario
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispenseRequest  true  "box_uid, note opcional"
// @Success      200   {object}  dto.TransferResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers/dispense [post]
func (h *TransferHandler) Dispense(c *fiber.Ctx) error {
	var in dto.DispenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Dispense(c.Context(), GetActor(c), in.BoxUID, in.Note)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "caja dispensada",
		"updated": result.Updated,
	})
}

// VoidBox godoc
// @Summary      Anular una caja (ajuste administrativo)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        box_uid  path  string  true  "UID de la caja"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/boxes/{box_uid}/void [post]
func (h *TransferHandler) VoidBox(c *fiber.Ctx) error {
	var in struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&in) // body opcional
	if err := h.uc.VoidBox(c.Context(), GetActor(c), c.Params("box_uid"), in.Note); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "caja anulada"})
}

// PurgeOrder godoc
// @Summary      Purgar las cajas y eventos de una orden (reset administrativo)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        order_number  path  string  true  "número de la orden"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{order_number}/boxes [delete]
func (h *TransferHandler) PurgeOrder(c *fiber.Ctx) error {
	purged, err := h.uc.PurgeOrder(c.Context(), GetActor(c), c.Params("order_number"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "orden purgada",
		"purged":  purged,
	})
}
