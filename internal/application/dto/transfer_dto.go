package dto

import "github.com/shopspring/decimal"

// GenerateBoxesRequest body para POST /api/transfers/generate.
// ExpiryDate en formato YYYY-MM-DD.
type GenerateBoxesRequest struct {
	OrderNumber  string           `json:"order_number" validate:"required"`
	ProductCode  string           `json:"product_code" validate:"required"`
	ProductName  string           `json:"product_name"`
	UnitWeightKg *decimal.Decimal `json:"unit_weight_kg,omitempty"`
	BatchNo      string           `json:"batch_no" validate:"required"`
	ExpiryDate   string           `json:"expiry_date" validate:"required"`
	Quantity     int              `json:"quantity" validate:"required,min=1"`
}

// GenerateBoxesResponse UIDs generados, en orden de secuencia.
type GenerateBoxesResponse struct {
	OrderNumber string   `json:"order_number"`
	BoxUIDs     []string `json:"box_uids"`
}

// WarehouseReceiveRequest body para POST /api/transfers/warehouse-receive.
type WarehouseReceiveRequest struct {
	BoxUIDs []string `json:"box_uids" validate:"required,min=1"`
	Note    string   `json:"note"`
}

// DispatchRequest body para POST /api/transfers/dispatch.
type DispatchRequest struct {
	BoxUIDs        []string `json:"box_uids" validate:"required,min=1"`
	ToFacilityCode string   `json:"to_facility_code" validate:"required"`
	Note           string   `json:"note"`
}

// FacilityReceiveRequest body para POST /api/transfers/facility-receive.
type FacilityReceiveRequest struct {
	BoxUIDs []string `json:"box_uids" validate:"required,min=1"`
	Note    string   `json:"note"`
}

// DispenseRequest body para POST /api/transfers/dispense. Una sola caja por
// llamada: dispensar es un acto clínico por beneficiario.
type DispenseRequest struct {
	BoxUID string `json:"box_uid" validate:"required"`
	Note   string `json:"note"`
}

// TransferResult resultado de una operación masiva: cajas actualizadas y,
// en recepciones de bodega, cajas omitidas por idempotencia (ya recibidas
// en la misma instalación — reintentos de escaneo benignos).
type TransferResult struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}
