package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

// domainError traduce los errores de dominio al envoltorio HTTP común.
// Los fallos masivos llevan sus listas estructuradas en details; nunca
// indican éxito parcial.
func domainError(c *fiber.Ctx, err error) error {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		resp := dto.ErrorResponse{Code: "NOT_FOUND", Message: nf.Error()}
		if len(nf.Missing) > 0 {
			resp.Details = &dto.ErrorDetails{Missing: nf.Missing}
		}
		return c.Status(fiber.StatusNotFound).JSON(resp)
	}
	var pre *domain.PreconditionError
	if errors.As(err, &pre) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "PRECONDITION",
			Message: pre.Error(),
			Details: &dto.ErrorDetails{Invalid: pre.Invalid, WrongDestination: pre.WrongDestination},
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
