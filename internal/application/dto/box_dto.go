package dto

import "time"

// BoxResponse salida de una caja.
type BoxResponse struct {
	BoxUID              string    `json:"box_uid"`
	OrderNumber         string    `json:"order_number"`
	ProductCode         string    `json:"product_code"`
	ProductName         string    `json:"product_name"`
	BatchNo             string    `json:"batch_no"`
	ExpiryDate          string    `json:"expiry_date"`
	Status              string    `json:"status"`
	CurrentFacilityCode string    `json:"current_facility_code,omitempty"`
	// DestinationFacilityCode solo para cajas IN_TRANSIT: destino declarado
	// por el último despacho.
	DestinationFacilityCode string    `json:"destination_facility_code,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// BoxEventDTO un evento del historial, con actor e instalaciones hidratados.
type BoxEventDTO struct {
	Type             string    `json:"type"`
	PerformedBy      string    `json:"performed_by"`
	FromFacilityCode string    `json:"from_facility_code,omitempty"`
	ToFacilityCode   string    `json:"to_facility_code,omitempty"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// BoxDetailResponse caja más sus últimos eventos (más recientes primero).
type BoxDetailResponse struct {
	Box    BoxResponse   `json:"box"`
	Events []BoxEventDTO `json:"events"`
}
