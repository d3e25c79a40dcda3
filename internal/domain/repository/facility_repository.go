package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// FacilityRepository define el puerto de persistencia para Facility (DIP).
// El tipo de instalación es inmutable; el único campo de jerarquía mutable
// es WarehouseID en filas de tipo FACILITY.
type FacilityRepository interface {
	Create(facility *entity.Facility) error
	GetByID(id string) (*entity.Facility, error)
	GetByCode(code string) (*entity.Facility, error)
	// GetByIDOrCode intenta por ID y luego por código.
	GetByIDOrCode(idOrCode string) (*entity.Facility, error)
	List(limit, offset int) ([]*entity.Facility, error)
	// ListByWarehouse devuelve las instalaciones surtidas por la bodega.
	ListByWarehouse(warehouseID string) ([]*entity.Facility, error)
	// LinkWarehouse actualiza la bodega dueña de una instalación tipo FACILITY.
	LinkWarehouse(facilityID, warehouseID string) error
	// GetByIDs resuelve varias instalaciones de una vez (hidratación de eventos).
	GetByIDs(ids []string) (map[string]*entity.Facility, error)
}
