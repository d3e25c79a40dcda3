package entity

import "time"

// Tipos de evento del libro de cajas.
const (
	EventTypeQRCreated        = "QR_CREATED"
	EventTypeWarehouseReceive = "WAREHOUSE_RECEIVE"
	EventTypeDispatch         = "DISPATCH"
	EventTypeFacilityReceive  = "FACILITY_RECEIVE"
	EventTypeDispense         = "DISPENSE"
	EventTypeAdjustment       = "ADJUSTMENT"
)

// BoxEvent es un registro inmutable del libro de eventos: toda transición de
// estado de una caja produce exactamente uno. Seq es un secuencial monotónico
// asignado por la base de datos; el "último despacho" de una caja se resuelve
// por Seq y no por timestamp, que puede empatar bajo resolución gruesa.
type BoxEvent struct {
	ID                string
	Seq               int64
	BoxID             string
	Type              string
	PerformedByUserID string
	FromFacilityID    *string
	ToFacilityID      *string
	Note              string
	CreatedAt         time.Time
}
