package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.FacilityRepository = (*FacilityRepo)(nil)

// FacilityRepo implementación de FacilityRepository sobre PostgreSQL.
type FacilityRepo struct {
	q Querier
}

// NewFacilityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacilityRepository(q Querier) *FacilityRepo {
	return &FacilityRepo{q: q}
}

const facilityColumns = `id, code, name, type, warehouse_id, created_at, updated_at`

func scanFacility(row pgx.Row) (*entity.Facility, error) {
	var f entity.Facility
	err := row.Scan(&f.ID, &f.Code, &f.Name, &f.Type, &f.WarehouseID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// Create persiste una instalación. Devuelve ErrDuplicate si el código ya existe.
func (r *FacilityRepo) Create(facility *entity.Facility) error {
	query := `
		INSERT INTO facilities (id, code, name, type, warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		facility.ID, facility.Code, facility.Name, facility.Type,
		facility.WarehouseID, facility.CreatedAt, facility.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create facility: %w", err)
	}
	return nil
}

// GetByID obtiene una instalación por ID.
func (r *FacilityRepo) GetByID(id string) (*entity.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1`
	f, err := scanFacility(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get facility: %w", err)
	}
	return f, nil
}

// GetByCode obtiene una instalación por código.
func (r *FacilityRepo) GetByCode(code string) (*entity.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE code = $1`
	f, err := scanFacility(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		return nil, fmt.Errorf("get facility by code: %w", err)
	}
	return f, nil
}

// GetByIDOrCode intenta primero por ID (UUID) y luego por código.
func (r *FacilityRepo) GetByIDOrCode(idOrCode string) (*entity.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id::text = $1 OR code = $1`
	f, err := scanFacility(r.q.QueryRow(context.Background(), query, idOrCode))
	if err != nil {
		return nil, fmt.Errorf("get facility by id or code: %w", err)
	}
	return f, nil
}

// List lista instalaciones paginadas por código.
func (r *FacilityRepo) List(limit, offset int) ([]*entity.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var out []*entity.Facility
	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Type, &f.WarehouseID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list facilities scan: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

// ListByWarehouse devuelve las instalaciones surtidas por la bodega.
func (r *FacilityRepo) ListByWarehouse(warehouseID string) ([]*entity.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE warehouse_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list facilities by warehouse: %w", err)
	}
	defer rows.Close()

	var out []*entity.Facility
	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Type, &f.WarehouseID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list facilities by warehouse scan: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

// LinkWarehouse actualiza la bodega dueña de una instalación tipo FACILITY.
func (r *FacilityRepo) LinkWarehouse(facilityID, warehouseID string) error {
	query := `
		UPDATE facilities SET warehouse_id = $2, updated_at = now()
		WHERE id = $1 AND type = 'FACILITY'`
	tag, err := r.q.Exec(context.Background(), query, facilityID, warehouseID)
	if err != nil {
		return fmt.Errorf("link warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByIDs resuelve varias instalaciones en una sola consulta.
func (r *FacilityRepo) GetByIDs(ids []string) (map[string]*entity.Facility, error) {
	out := make(map[string]*entity.Facility, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get facilities by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f entity.Facility
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Type, &f.WarehouseID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("get facilities by ids scan: %w", err)
		}
		out[f.ID] = &f
	}
	return out, rows.Err()
}
