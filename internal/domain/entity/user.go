package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleBodeguero   = "bodeguero"   // opera bodegas: recibe y despacha
	RoleDispensador = "dispensador" // opera puntos de atención: recibe y dispensa
)

// User representa un actor del sistema, siempre asignado a una instalación.
type User struct {
	ID           string
	FacilityID   string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, dispensador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
