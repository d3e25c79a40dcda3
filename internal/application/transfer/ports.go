package transfer

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad todo-o-nada del motor
// de transferencias: ningún evento ni cambio de estado de un lote sobrevive
// si cualquier caja del lote falla su precondición.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Actor identidad autenticada inyectada por el middleware: id, rol e
// instalación asignada.
type Actor struct {
	UserID     string
	FacilityID string
	Role       string
}
