package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un ítem de catálogo de referencia (fórmula terapéutica,
// micronutriente, insumo médico). Se hace upsert por Code antes de generar
// cajas. UnitWeightKg alimenta el rollup de peso estimado en stock.
type Product struct {
	ID           string
	Code         string // clave natural, ej. "RUTF-92"
	Name         string
	UnitWeightKg decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
