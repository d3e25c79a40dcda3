package transfer

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// Operaciones del motor de transferencias.
const (
	OpGenerate         = "GENERATE"
	OpWarehouseReceive = "WAREHOUSE_RECEIVE"
	OpDispatch         = "DISPATCH"
	OpFacilityReceive  = "FACILITY_RECEIVE"
	OpDispense         = "DISPENSE"
	OpAdjust           = "ADJUSTMENT"
)

// Rule describe la autorización declarativa de una operación: roles
// permitidos, tipo requerido de la instalación del actor y tipo requerido de
// la instalación destino. Se evalúa una sola vez antes de cualquier mutación,
// en lugar de comparaciones ad hoc repartidas por cada operación.
type Rule struct {
	Roles              []string
	ActorFacilityType  string // "" = cualquier tipo
	TargetFacilityType string // "" = la operación no tiene destino
	// OwnedDestinationOnly restringe a actores no-admin a destinos cuya
	// bodega dueña sea la instalación del actor.
	OwnedDestinationOnly bool
	// StrictDestination exige (solo a no-admin) que el último DISPATCH de la
	// caja apunte a la instalación del actor — el "soft check" contra el libro.
	StrictDestination bool
}

// Transition estado requerido y estado resultante de cada operación estándar.
type Transition struct {
	From string
	To   string
}

var rules = map[string]Rule{
	OpGenerate: {
		Roles:             []string{entity.RoleBodeguero},
		ActorFacilityType: entity.FacilityTypeWarehouse,
	},
	OpWarehouseReceive: {
		Roles:             []string{entity.RoleBodeguero},
		ActorFacilityType: entity.FacilityTypeWarehouse,
	},
	OpDispatch: {
		Roles:                []string{entity.RoleBodeguero},
		ActorFacilityType:    entity.FacilityTypeWarehouse,
		TargetFacilityType:   entity.FacilityTypeFacility,
		OwnedDestinationOnly: true,
	},
	OpFacilityReceive: {
		Roles:             []string{entity.RoleDispensador},
		ActorFacilityType: entity.FacilityTypeFacility,
		StrictDestination: true,
	},
	OpDispense: {
		Roles:             []string{entity.RoleDispensador},
		ActorFacilityType: entity.FacilityTypeFacility,
	},
	OpAdjust: {
		Roles: []string{}, // solo admin
	},
}

var transitions = map[string]Transition{
	OpWarehouseReceive: {From: entity.BoxStatusCreated, To: entity.BoxStatusInWarehouse},
	OpDispatch:         {From: entity.BoxStatusInWarehouse, To: entity.BoxStatusInTransit},
	OpFacilityReceive:  {From: entity.BoxStatusInTransit, To: entity.BoxStatusInFacility},
	OpDispense:         {From: entity.BoxStatusInFacility, To: entity.BoxStatusDispensed},
}

// RuleFor devuelve la regla de autorización de la operación.
func RuleFor(op string) (Rule, bool) {
	r, ok := rules[op]
	return r, ok
}

// TransitionFor devuelve la transición de estado de la operación estándar.
func TransitionFor(op string) (Transition, bool) {
	t, ok := transitions[op]
	return t, ok
}

// Allowed evalúa rol y tipo de instalación del actor contra la regla.
// admin pasa siempre; los demás deben estar en la lista de roles y operar
// desde una instalación del tipo requerido.
func Allowed(op, role, actorFacilityType string) bool {
	if role == entity.RoleAdmin {
		return true
	}
	r, ok := rules[op]
	if !ok {
		return false
	}
	found := false
	for _, allowed := range r.Roles {
		if allowed == role {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	return r.ActorFacilityType == "" || r.ActorFacilityType == actorFacilityType
}

// DestinationChecks devuelve qué validaciones de destino aplican al actor:
// el admin salta tanto la restricción de jerarquía como el soft check del
// libro, pero nunca las precondiciones de estado.
func DestinationChecks(op, role string) (ownedOnly, strict bool) {
	r, ok := rules[op]
	if !ok {
		return false, false
	}
	if role == entity.RoleAdmin {
		return false, false
	}
	return r.OwnedDestinationOnly, r.StrictDestination
}
