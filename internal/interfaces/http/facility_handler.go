package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/facility"
)

// FacilityHandler administración del directorio de instalaciones (admin).
type FacilityHandler struct {
	uc *facility.UseCase
}

// NewFacilityHandler construye el handler.
func NewFacilityHandler(uc *facility.UseCase) *FacilityHandler {
	return &FacilityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear una instalación
// @Tags         facilities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFacilityRequest  true  "code, name, type (WAREHOUSE|FACILITY), warehouse_code opcional"
// @Success      201   {object}  dto.FacilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/facilities [post]
func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFacilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar instalaciones
// @Tags         facilities
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite de página"
// @Param        offset  query  int  false  "offset de página"
// @Success      200  {object}  dto.FacilityListResponse
// @Router       /api/facilities [get]
func (h *FacilityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByIDOrCode godoc
// @Summary      Consultar una instalación por ID o código
// @Tags         facilities
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID o código"
// @Success      200  {object}  dto.FacilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facilities/{id} [get]
func (h *FacilityHandler) GetByIDOrCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByIDOrCode(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListOfWarehouse godoc
// @Summary      Listar las instalaciones surtidas por una bodega
// @Tags         facilities
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID o código de la bodega"
// @Success      200  {object}  dto.FacilityListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facilities/{id}/facilities [get]
func (h *FacilityHandler) ListOfWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.ListOfWarehouse(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// LinkWarehouse godoc
// @Summary      Vincular una instalación con su bodega dueña
// @Tags         facilities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID o código de la instalación"
// @Param        body  body  dto.LinkWarehouseRequest  true  "warehouse_code"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facilities/{id}/warehouse [put]
func (h *FacilityHandler) LinkWarehouse(c *fiber.Ctx) error {
	var in dto.LinkWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.LinkWarehouse(c.Params("id"), in.WarehouseCode); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "instalación vinculada"})
}

// BulkLinkWarehouse godoc
// @Summary      Vincular varias instalaciones (por código) a una bodega
// @Tags         facilities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkLinkWarehouseRequest  true  "warehouse_code, facility_codes"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facilities/link-warehouse [put]
func (h *FacilityHandler) BulkLinkWarehouse(c *fiber.Ctx) error {
	var in dto.BulkLinkWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	linked, err := h.uc.BulkLinkWarehouse(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "instalaciones vinculadas",
		"linked":  linked,
	})
}
