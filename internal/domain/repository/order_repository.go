package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	// UpsertByNumber crea la orden si no existe y la devuelve (clave natural).
	UpsertByNumber(orderNumber string) (*entity.Order, error)
	GetByNumber(orderNumber string) (*entity.Order, error)
	GetByID(id string) (*entity.Order, error)
	// ReserveSequence incrementa atómicamente el contador de la orden en n y
	// devuelve el primer número reservado (UPDATE ... RETURNING). Elimina la
	// carrera del patrón contar-e-insertar entre generaciones concurrentes.
	ReserveSequence(orderID string, n int) (first int, err error)
}
