package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.BoxRepository = (*BoxRepo)(nil)

// BoxRepo implementación de BoxRepository sobre PostgreSQL (usable con pool o tx).
type BoxRepo struct {
	q Querier
}

// NewBoxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBoxRepository(q Querier) *BoxRepo {
	return &BoxRepo{q: q}
}

const boxColumns = `id, box_uid, order_id, product_id, batch_no, expiry_date, status, current_facility_id, created_at, updated_at`

func scanBoxRows(rows pgx.Rows) ([]*entity.Box, error) {
	defer rows.Close()
	var out []*entity.Box
	for rows.Next() {
		var b entity.Box
		if err := rows.Scan(
			&b.ID, &b.BoxUID, &b.OrderID, &b.ProductID, &b.BatchNo,
			&b.ExpiryDate, &b.Status, &b.CurrentFacilityID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan box: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// CreateBatch inserta las cajas del lote de generación.
func (r *BoxRepo) CreateBatch(boxes []*entity.Box) error {
	query := `
		INSERT INTO boxes (id, box_uid, order_id, product_id, batch_no, expiry_date, status, current_facility_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, b := range boxes {
		_, err := r.q.Exec(context.Background(), query,
			b.ID, b.BoxUID, b.OrderID, b.ProductID, b.BatchNo,
			b.ExpiryDate, b.Status, b.CurrentFacilityID, b.CreatedAt, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create box %s: %w", b.BoxUID, err)
		}
	}
	return nil
}

// GetByUID obtiene una caja por su UID.
func (r *BoxRepo) GetByUID(boxUID string) (*entity.Box, error) {
	query := `SELECT ` + boxColumns + ` FROM boxes WHERE box_uid = $1`
	var b entity.Box
	err := r.q.QueryRow(context.Background(), query, boxUID).Scan(
		&b.ID, &b.BoxUID, &b.OrderID, &b.ProductID, &b.BatchNo,
		&b.ExpiryDate, &b.Status, &b.CurrentFacilityID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get box: %w", err)
	}
	return &b, nil
}

// GetByUIDs resuelve todas las cajas del lote en una sola consulta.
func (r *BoxRepo) GetByUIDs(boxUIDs []string) ([]*entity.Box, error) {
	query := `SELECT ` + boxColumns + ` FROM boxes WHERE box_uid = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, boxUIDs)
	if err != nil {
		return nil, fmt.Errorf("get boxes: %w", err)
	}
	return scanBoxRows(rows)
}

// GetByUIDsForUpdate resuelve y bloquea las filas del lote (SELECT FOR UPDATE)
// para que operaciones concurrentes sobre las mismas cajas se serialicen.
func (r *BoxRepo) GetByUIDsForUpdate(boxUIDs []string) ([]*entity.Box, error) {
	query := `SELECT ` + boxColumns + ` FROM boxes WHERE box_uid = ANY($1) FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, boxUIDs)
	if err != nil {
		return nil, fmt.Errorf("get boxes for update: %w", err)
	}
	return scanBoxRows(rows)
}

// UpdateStatus actualiza estado y ubicación actual de varias cajas.
func (r *BoxRepo) UpdateStatus(boxIDs []string, status string, currentFacilityID *string) error {
	if len(boxIDs) == 0 {
		return nil
	}
	query := `
		UPDATE boxes SET status = $2, current_facility_id = $3, updated_at = now()
		WHERE id = ANY($1)`
	_, err := r.q.Exec(context.Background(), query, boxIDs, status, currentFacilityID)
	if err != nil {
		return fmt.Errorf("update box status: %w", err)
	}
	return nil
}

// StockByFacility agrupa las cajas de la instalación por producto, lote,
// vencimiento y estado. El producto se hidrata en el caso de uso, no aquí.
func (r *BoxRepo) StockByFacility(facilityID string) ([]repository.StockRow, error) {
	query := `
		SELECT product_id, batch_no, to_char(expiry_date, 'YYYY-MM-DD') AS expiry, status, COUNT(*) AS total
		FROM boxes
		WHERE current_facility_id = $1
		GROUP BY product_id, batch_no, expiry, status
		ORDER BY product_id, batch_no, expiry, status`
	rows, err := r.q.Query(context.Background(), query, facilityID)
	if err != nil {
		return nil, fmt.Errorf("stock by facility: %w", err)
	}
	defer rows.Close()

	var out []repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(&row.ProductID, &row.BatchNo, &row.ExpiryDate, &row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("stock by facility scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteByOrder purga las cajas de una orden (utilidad administrativa).
func (r *BoxRepo) DeleteByOrder(orderID string) (int, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM boxes WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete boxes by order: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
