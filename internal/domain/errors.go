package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPrecondition       = errors.New("la caja no está en el estado requerido")
)

// NotFoundError lleva la lista de identificadores que no resolvieron en una
// operación masiva. Envuelve ErrNotFound para que errors.Is siga funcionando.
type NotFoundError struct {
	Resource string   // "caja", "bodega", "orden", ...
	Missing  []string // identificadores no encontrados
}

func (e *NotFoundError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s no encontrado", e.Resource)
	}
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, strings.Join(e.Missing, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PreconditionError indica que una o más cajas existen pero no están en el
// estado/ubicación/destino requerido para la transición. Envuelve ErrPrecondition.
type PreconditionError struct {
	Reason           string
	Invalid          []string // box UIDs en estado u ubicación incorrectos
	WrongDestination []string // box UIDs cuyo último despacho apunta a otra instalación
}

func (e *PreconditionError) Error() string {
	ids := append(append([]string{}, e.Invalid...), e.WrongDestination...)
	if len(ids) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(ids, ", "))
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
