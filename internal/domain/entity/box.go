package entity

import "time"

// Estados del ciclo de vida de una caja. El avance es estrictamente hacia
// adelante: CREATED → IN_WAREHOUSE → IN_TRANSIT → IN_FACILITY → DISPENSED.
// VOID es terminal y solo se alcanza por ajuste administrativo.
const (
	BoxStatusCreated     = "CREATED"
	BoxStatusInWarehouse = "IN_WAREHOUSE"
	BoxStatusInTransit   = "IN_TRANSIT"
	BoxStatusInFacility  = "IN_FACILITY"
	BoxStatusDispensed   = "DISPENSED"
	BoxStatusVoid        = "VOID"
)

// Box es una unidad física rastreable de producto nutricional/médico.
// BoxUID se deriva como {orderNumber}-{secuencia} y es único global.
// CurrentFacilityID es nil exactamente cuando la caja está IN_TRANSIT
// (o CREATED sin recibir).
type Box struct {
	ID                string
	BoxUID            string
	OrderID           string
	ProductID         string
	BatchNo           string
	ExpiryDate        time.Time
	Status            string
	CurrentFacilityID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
