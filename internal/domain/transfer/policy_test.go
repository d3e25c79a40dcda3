package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/transfer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la tabla de políticas — autorización declarativa por operación
// ──────────────────────────────────────────────────────────────────────────────

// El admin pasa cualquier operación sin importar el tipo de su instalación.
func TestAllowed_AdminPasaSiempre(t *testing.T) {
	ops := []string{
		transfer.OpGenerate,
		transfer.OpWarehouseReceive,
		transfer.OpDispatch,
		transfer.OpFacilityReceive,
		transfer.OpDispense,
		transfer.OpAdjust,
	}
	for _, op := range ops {
		assert.True(t, transfer.Allowed(op, entity.RoleAdmin, entity.FacilityTypeWarehouse),
			"admin debe poder ejecutar %s desde bodega", op)
		assert.True(t, transfer.Allowed(op, entity.RoleAdmin, entity.FacilityTypeFacility),
			"admin debe poder ejecutar %s desde punto de atención", op)
	}
}

// El bodeguero opera bodegas: genera, recibe y despacha — solo desde WAREHOUSE.
func TestAllowed_BodegueroSoloDesdeBodega(t *testing.T) {
	for _, op := range []string{transfer.OpGenerate, transfer.OpWarehouseReceive, transfer.OpDispatch} {
		assert.True(t, transfer.Allowed(op, entity.RoleBodeguero, entity.FacilityTypeWarehouse),
			"bodeguero en bodega debe poder %s", op)
		assert.False(t, transfer.Allowed(op, entity.RoleBodeguero, entity.FacilityTypeFacility),
			"bodeguero asignado a punto de atención no debe poder %s", op)
	}
}

// El dispensador opera puntos de atención: recibe y dispensa — nunca despacha.
func TestAllowed_DispensadorSoloDesdePuntoDeAtencion(t *testing.T) {
	for _, op := range []string{transfer.OpFacilityReceive, transfer.OpDispense} {
		assert.True(t, transfer.Allowed(op, entity.RoleDispensador, entity.FacilityTypeFacility),
			"dispensador en punto de atención debe poder %s", op)
		assert.False(t, transfer.Allowed(op, entity.RoleDispensador, entity.FacilityTypeWarehouse),
			"dispensador en bodega no debe poder %s", op)
	}

	assert.False(t, transfer.Allowed(transfer.OpDispatch, entity.RoleDispensador, entity.FacilityTypeFacility),
		"dispensador nunca despacha")
	assert.False(t, transfer.Allowed(transfer.OpWarehouseReceive, entity.RoleDispensador, entity.FacilityTypeWarehouse),
		"dispensador nunca recibe en bodega")
}

// OpAdjust no tiene roles listados: solo el bypass de admin lo habilita.
func TestAllowed_AjusteSoloAdmin(t *testing.T) {
	assert.False(t, transfer.Allowed(transfer.OpAdjust, entity.RoleBodeguero, entity.FacilityTypeWarehouse))
	assert.False(t, transfer.Allowed(transfer.OpAdjust, entity.RoleDispensador, entity.FacilityTypeFacility))
	assert.True(t, transfer.Allowed(transfer.OpAdjust, entity.RoleAdmin, ""))
}

// Operación desconocida: nadie pasa salvo admin (que pasa todo).
func TestAllowed_OperacionDesconocida(t *testing.T) {
	assert.False(t, transfer.Allowed("FUMIGATE", entity.RoleBodeguero, entity.FacilityTypeWarehouse))
	assert.True(t, transfer.Allowed("FUMIGATE", entity.RoleAdmin, ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DestinationChecks — el admin salta jerarquía y soft check, nunca estados
// ──────────────────────────────────────────────────────────────────────────────

func TestDestinationChecks_DespachoRestringidoANoAdmin(t *testing.T) {
	ownedOnly, strict := transfer.DestinationChecks(transfer.OpDispatch, entity.RoleBodeguero)
	assert.True(t, ownedOnly, "el bodeguero solo despacha a instalaciones de su bodega")
	assert.False(t, strict)

	ownedOnly, strict = transfer.DestinationChecks(transfer.OpDispatch, entity.RoleAdmin)
	assert.False(t, ownedOnly, "admin salta la restricción de jerarquía")
	assert.False(t, strict)
}

func TestDestinationChecks_RecepcionEstrictaParaDispensador(t *testing.T) {
	_, strict := transfer.DestinationChecks(transfer.OpFacilityReceive, entity.RoleDispensador)
	assert.True(t, strict, "el dispensador solo recibe cajas despachadas a su instalación")

	_, strict = transfer.DestinationChecks(transfer.OpFacilityReceive, entity.RoleAdmin)
	assert.False(t, strict, "admin salta el soft check contra el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de transiciones — una operación estándar, una transición
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionFor_CicloCompleto(t *testing.T) {
	cases := []struct {
		op       string
		from, to string
	}{
		{transfer.OpWarehouseReceive, entity.BoxStatusCreated, entity.BoxStatusInWarehouse},
		{transfer.OpDispatch, entity.BoxStatusInWarehouse, entity.BoxStatusInTransit},
		{transfer.OpFacilityReceive, entity.BoxStatusInTransit, entity.BoxStatusInFacility},
		{transfer.OpDispense, entity.BoxStatusInFacility, entity.BoxStatusDispensed},
	}
	for _, tc := range cases {
		tr, ok := transfer.TransitionFor(tc.op)
		require.True(t, ok, "debe existir transición para %s", tc.op)
		assert.Equal(t, tc.from, tr.From)
		assert.Equal(t, tc.to, tr.To)
	}
}

// GENERATE y ADJUSTMENT no son transiciones estándar del ciclo.
func TestTransitionFor_SinTransicionParaGenerarNiAjustar(t *testing.T) {
	_, ok := transfer.TransitionFor(transfer.OpGenerate)
	assert.False(t, ok)
	_, ok = transfer.TransitionFor(transfer.OpAdjust)
	assert.False(t, ok)
}

func TestRuleFor_DespachoExigeDestinoTipoFacility(t *testing.T) {
	rule, ok := transfer.RuleFor(transfer.OpDispatch)
	require.True(t, ok)
	assert.Equal(t, entity.FacilityTypeFacility, rule.TargetFacilityType)
	assert.True(t, rule.OwnedDestinationOnly)
}
