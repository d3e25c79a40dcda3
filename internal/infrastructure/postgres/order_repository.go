package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, next_seq, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.NextSeq, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// UpsertByNumber crea la orden si no existe (clave natural) y la devuelve.
// next_seq arranca en 1: el primer BoxUID de la orden es {orderNumber}-1.
func (r *OrderRepo) UpsertByNumber(orderNumber string) (*entity.Order, error) {
	query := `
		INSERT INTO orders (id, order_number, next_seq, created_at, updated_at)
		VALUES ($1, $2, 1, now(), now())
		ON CONFLICT (order_number) DO UPDATE SET updated_at = now()
		RETURNING ` + orderColumns
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, uuid.New().String(), orderNumber))
	if err != nil {
		return nil, fmt.Errorf("upsert order: %w", err)
	}
	return o, nil
}

// GetByNumber obtiene una orden por su número.
func (r *OrderRepo) GetByNumber(orderNumber string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, orderNumber))
	if err != nil {
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ReserveSequence incrementa atómicamente el contador de la orden en n y
// devuelve el primer número reservado. El UPDATE bloquea la fila, así que
// generaciones concurrentes sobre la misma orden jamás solapan rangos.
func (r *OrderRepo) ReserveSequence(orderID string, n int) (int, error) {
	query := `
		UPDATE orders SET next_seq = next_seq + $2, updated_at = now()
		WHERE id = $1
		RETURNING next_seq - $2`
	var first int
	err := r.q.QueryRow(context.Background(), query, orderID, n).Scan(&first)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("reserve sequence: orden %s no existe", orderID)
		}
		return 0, fmt.Errorf("reserve sequence: %w", err)
	}
	return first, nil
}
