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

var _ repository.BoxEventRepository = (*BoxEventRepo)(nil)

// BoxEventRepo implementación del libro de eventos sobre PostgreSQL.
// box_events.seq es BIGSERIAL: el orden del libro lo asigna la base de datos,
// no el reloj de la aplicación.
type BoxEventRepo struct {
	q Querier
}

// NewBoxEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBoxEventRepository(q Querier) *BoxEventRepo {
	return &BoxEventRepo{q: q}
}

const eventColumns = `id, seq, box_id, type, performed_by_user_id, from_facility_id, to_facility_id, note, created_at`

// Append persiste un evento.
func (r *BoxEventRepo) Append(event *entity.BoxEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO box_events (id, box_id, type, performed_by_user_id, from_facility_id, to_facility_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	note := (*string)(nil)
	if event.Note != "" {
		note = &event.Note
	}
	err := r.q.QueryRow(context.Background(), query,
		event.ID, event.BoxID, event.Type, event.PerformedByUserID,
		event.FromFacilityID, event.ToFacilityID, note, event.CreatedAt,
	).Scan(&event.Seq)
	if err != nil {
		return fmt.Errorf("append box event: %w", err)
	}
	return nil
}

// AppendBatch persiste los eventos de un lote, en orden.
func (r *BoxEventRepo) AppendBatch(events []*entity.BoxEvent) error {
	for _, ev := range events {
		if err := r.Append(ev); err != nil {
			return err
		}
	}
	return nil
}

// LatestByType devuelve el evento más reciente del tipo para la caja (por seq
// descendente). nil si no existe.
func (r *BoxEventRepo) LatestByType(boxID, eventType string) (*entity.BoxEvent, error) {
	query := `
		SELECT ` + eventColumns + ` FROM box_events
		WHERE box_id = $1 AND type = $2
		ORDER BY seq DESC LIMIT 1`
	ev, err := scanEvent(r.q.QueryRow(context.Background(), query, boxID, eventType))
	if err != nil {
		return nil, fmt.Errorf("latest box event: %w", err)
	}
	return ev, nil
}

// LatestByTypeForBoxes resuelve el último evento del tipo para varias cajas
// en una sola consulta (DISTINCT ON por caja, seq descendente).
func (r *BoxEventRepo) LatestByTypeForBoxes(boxIDs []string, eventType string) (map[string]*entity.BoxEvent, error) {
	out := make(map[string]*entity.BoxEvent, len(boxIDs))
	if len(boxIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT DISTINCT ON (box_id) ` + eventColumns + ` FROM box_events
		WHERE box_id = ANY($1) AND type = $2
		ORDER BY box_id, seq DESC`
	rows, err := r.q.Query(context.Background(), query, boxIDs, eventType)
	if err != nil {
		return nil, fmt.Errorf("latest box events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		ev, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		out[ev.BoxID] = ev
	}
	return out, rows.Err()
}

// ListByBox devuelve los últimos limit eventos de la caja, más recientes primero.
func (r *BoxEventRepo) ListByBox(boxID string, limit int) ([]*entity.BoxEvent, error) {
	query := `
		SELECT ` + eventColumns + ` FROM box_events
		WHERE box_id = $1
		ORDER BY seq DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, boxID, limit)
	if err != nil {
		return nil, fmt.Errorf("list box events: %w", err)
	}
	defer rows.Close()

	var out []*entity.BoxEvent
	for rows.Next() {
		ev, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// DeleteByOrder purga los eventos de las cajas de una orden (reset administrativo).
func (r *BoxEventRepo) DeleteByOrder(orderID string) (int, error) {
	query := `
		DELETE FROM box_events
		WHERE box_id IN (SELECT id FROM boxes WHERE order_id = $1)`
	tag, err := r.q.Exec(context.Background(), query, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete box events by order: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanEvent(row pgx.Row) (*entity.BoxEvent, error) {
	var ev entity.BoxEvent
	var note *string
	err := row.Scan(
		&ev.ID, &ev.Seq, &ev.BoxID, &ev.Type, &ev.PerformedByUserID,
		&ev.FromFacilityID, &ev.ToFacilityID, &note, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if note != nil {
		ev.Note = *note
	}
	return &ev, nil
}

func scanEventRow(rows pgx.Rows) (*entity.BoxEvent, error) {
	var ev entity.BoxEvent
	var note *string
	if err := rows.Scan(
		&ev.ID, &ev.Seq, &ev.BoxID, &ev.Type, &ev.PerformedByUserID,
		&ev.FromFacilityID, &ev.ToFacilityID, &note, &ev.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan box event: %w", err)
	}
	if note != nil {
		ev.Note = *note
	}
	return &ev, nil
}
