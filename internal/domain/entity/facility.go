package entity

import "time"

// Tipos de instalación.
const (
	FacilityTypeWarehouse = "WAREHOUSE" // bodega central, despacha
	FacilityTypeFacility  = "FACILITY"  // punto de atención, recibe y dispensa
)

// Facility representa un nodo de la cadena: bodega central o punto de atención.
// WarehouseID solo aplica a tipo FACILITY y nombra la bodega que la surte;
// una WAREHOUSE nunca lo lleva. El tipo es inmutable después de crear.
type Facility struct {
	ID          string
	Code        string // código único legible, ej. "BOD-CALI", "PA-NORTE"
	Name        string
	Type        string  // WAREHOUSE | FACILITY
	WarehouseID *string // bodega dueña (solo FACILITY; puede ser nil hasta vincular)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsWarehouse indica si la instalación es una bodega central.
func (f *Facility) IsWarehouse() bool { return f.Type == FacilityTypeWarehouse }
