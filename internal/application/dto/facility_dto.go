package dto

import "time"

// CreateFacilityRequest entrada para crear una instalación.
// WarehouseCode solo aplica a tipo FACILITY (vincula la bodega dueña).
type CreateFacilityRequest struct {
	Code          string `json:"code" validate:"required,min=1,max=50"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Type          string `json:"type" validate:"required,oneof=WAREHOUSE FACILITY"`
	WarehouseCode string `json:"warehouse_code"`
}

// LinkWarehouseRequest vincula una instalación con su bodega dueña.
type LinkWarehouseRequest struct {
	WarehouseCode string `json:"warehouse_code" validate:"required"`
}

// BulkLinkWarehouseRequest vincula varias instalaciones (por código) a una bodega.
type BulkLinkWarehouseRequest struct {
	WarehouseCode string   `json:"warehouse_code" validate:"required"`
	FacilityCodes []string `json:"facility_codes" validate:"required,min=1"`
}

// FacilityResponse salida de una instalación.
type FacilityResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	WarehouseID *string   `json:"warehouse_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FacilityListResponse lista paginada de instalaciones.
type FacilityListResponse struct {
	Items []FacilityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
