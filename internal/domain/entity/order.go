package entity

import "time"

// Order es una orden de compra de referencia: las cajas se generan contra
// ella y heredan su número en el BoxUID. NextSeq es el contador atómico de
// secuencia por orden (se incrementa vía UPDATE ... RETURNING dentro de la
// misma transacción de generación, nunca contando cajas existentes).
type Order struct {
	ID          string
	OrderNumber string // clave natural, ej. "ORD-2026-014"
	NextSeq     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
