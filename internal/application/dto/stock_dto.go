package dto

import "github.com/shopspring/decimal"

// StockRowDTO una fila del rollup de existencias de una instalación.
type StockRowDTO struct {
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	BatchNo       string          `json:"batch_no"`
	ExpiryDate    string          `json:"expiry_date"`
	Status        string          `json:"status"`
	Count         int             `json:"count"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
}

// StockResponse rollup completo más el total de cajas.
type StockResponse struct {
	FacilityID string        `json:"facility_id"`
	Total      int           `json:"total"`
	Rows       []StockRowDTO `json:"rows"`
}
