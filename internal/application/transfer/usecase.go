package transfer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	policy "github.com/jhoicas/Trazabilidad-api/internal/domain/transfer"
)

// UseCase orquesta las transiciones validadas del ciclo de vida de las cajas
// (recepción en bodega, despacho, recepción en instalación, dispensación).
// Cada operación corre en una sola transacción que abarca lectura con
// bloqueo de fila, re-chequeo de precondiciones, cambio de estado y append
// al libro de eventos.
type UseCase struct {
	txRunner     TxRunner
	facilityRepo repository.FacilityRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el motor de transferencias.
func NewUseCase(txRunner TxRunner, facilityRepo repository.FacilityRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, facilityRepo: facilityRepo, productRepo: productRepo}
}

// normalizeUIDs recorta espacios y deduplica conservando el orden de entrada.
func normalizeUIDs(boxUIDs []string) []string {
	seen := make(map[string]struct{}, len(boxUIDs))
	out := make([]string, 0, len(boxUIDs))
	for _, uid := range boxUIDs {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		out = append(out, uid)
	}
	return out
}

// actorFacility resuelve y autoriza la instalación del actor para la operación.
func (uc *UseCase) actorFacility(op string, actor Actor) (*entity.Facility, error) {
	facility, err := uc.facilityRepo.GetByID(actor.FacilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, &domain.NotFoundError{Resource: "instalación del actor"}
	}
	if !policy.Allowed(op, actor.Role, facility.Type) {
		return nil, domain.ErrForbidden
	}
	return facility, nil
}

// resolveBatch resuelve (y bloquea) todas las cajas del lote; si falta
// cualquier identificador la operación completa falla enumerándolos.
func resolveBatch(boxRepo repository.BoxRepository, boxUIDs []string) ([]*entity.Box, error) {
	boxes, err := boxRepo.GetByUIDsForUpdate(boxUIDs)
	if err != nil {
		return nil, err
	}
	if len(boxes) != len(boxUIDs) {
		found := make(map[string]struct{}, len(boxes))
		for _, b := range boxes {
			found[b.BoxUID] = struct{}{}
		}
		var missing []string
		for _, uid := range boxUIDs {
			if _, ok := found[uid]; !ok {
				missing = append(missing, uid)
			}
		}
		return nil, &domain.NotFoundError{Resource: "caja", Missing: missing}
	}
	return boxes, nil
}

// WarehouseReceive recibe cajas CREATED en la bodega del actor. Cajas ya
// IN_WAREHOUSE en la misma bodega se omiten sin evento (reintento de escaneo
// benigno); cualquier otro estado invalida el lote completo.
func (uc *UseCase) WarehouseReceive(ctx context.Context, actor Actor, boxUIDs []string, note string) (*dto.TransferResult, error) {
	uids := normalizeUIDs(boxUIDs)
	if len(uids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.actorFacility(policy.OpWarehouseReceive, actor)
	if err != nil {
		return nil, err
	}

	result := &dto.TransferResult{}
	err = uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		_ repository.OrderRepository,
	) error {
		boxes, err := resolveBatch(boxRepo, uids)
		if err != nil {
			return err
		}

		now := time.Now()
		var toUpdate []string
		var invalid []string
		var events []*entity.BoxEvent
		for _, box := range boxes {
			switch {
			case box.Status == entity.BoxStatusCreated:
				toUpdate = append(toUpdate, box.ID)
				result.Updated = append(result.Updated, box.BoxUID)
				events = append(events, &entity.BoxEvent{
					ID:                uuid.New().String(),
					BoxID:             box.ID,
					Type:              entity.EventTypeWarehouseReceive,
					PerformedByUserID: actor.UserID,
					ToFacilityID:      &facility.ID,
					Note:              note,
					CreatedAt:         now,
				})
			case box.Status == entity.BoxStatusInWarehouse &&
				box.CurrentFacilityID != nil && *box.CurrentFacilityID == facility.ID:
				// Idempotencia: ya recibida aquí, se reporta como omitida.
				result.Skipped = append(result.Skipped, box.BoxUID)
			default:
				invalid = append(invalid, box.BoxUID)
			}
		}
		if len(invalid) > 0 {
			return &domain.PreconditionError{Reason: "la caja no está disponible para recepción en bodega", Invalid: invalid}
		}
		if len(toUpdate) == 0 {
			return nil // todo el lote fue idempotente
		}
		if err := boxRepo.UpdateStatus(toUpdate, entity.BoxStatusInWarehouse, &facility.ID); err != nil {
			return err
		}
		return eventRepo.AppendBatch(events)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Dispatch despacha cajas IN_WAREHOUSE de la bodega del actor hacia una
// instalación destino. Actores no-admin solo pueden despachar a instalaciones
// cuya bodega dueña sea la suya.
func (uc *UseCase) Dispatch(ctx context.Context, actor Actor, boxUIDs []string, toFacilityCode, note string) (*dto.TransferResult, error) {
	uids := normalizeUIDs(boxUIDs)
	if len(uids) == 0 || strings.TrimSpace(toFacilityCode) == "" {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.actorFacility(policy.OpDispatch, actor)
	if err != nil {
		return nil, err
	}
	dest, err := uc.facilityRepo.GetByCode(strings.TrimSpace(toFacilityCode))
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, &domain.NotFoundError{Resource: "instalación destino", Missing: []string{toFacilityCode}}
	}
	rule, _ := policy.RuleFor(policy.OpDispatch)
	if dest.Type != rule.TargetFacilityType {
		return nil, domain.ErrInvalidInput
	}
	ownedOnly, _ := policy.DestinationChecks(policy.OpDispatch, actor.Role)
	if ownedOnly && (dest.WarehouseID == nil || *dest.WarehouseID != facility.ID) {
		return nil, domain.ErrForbidden
	}

	result := &dto.TransferResult{}
	err = uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		_ repository.OrderRepository,
	) error {
		boxes, err := resolveBatch(boxRepo, uids)
		if err != nil {
			return err
		}

		now := time.Now()
		var invalid []string
		ids := make([]string, 0, len(boxes))
		events := make([]*entity.BoxEvent, 0, len(boxes))
		for _, box := range boxes {
			if box.Status != entity.BoxStatusInWarehouse ||
				box.CurrentFacilityID == nil || *box.CurrentFacilityID != facility.ID {
				invalid = append(invalid, box.BoxUID)
				continue
			}
			ids = append(ids, box.ID)
			result.Updated = append(result.Updated, box.BoxUID)
			events = append(events, &entity.BoxEvent{
				ID:                uuid.New().String(),
				BoxID:             box.ID,
				Type:              entity.EventTypeDispatch,
				PerformedByUserID: actor.UserID,
				FromFacilityID:    &facility.ID,
				ToFacilityID:      &dest.ID,
				Note:              note,
				CreatedAt:         now,
			})
		}
		if len(invalid) > 0 {
			return &domain.PreconditionError{Reason: "la caja no está en esta bodega", Invalid: invalid}
		}
		// En tránsito la caja no tiene ubicación actual.
		if err := boxRepo.UpdateStatus(ids, entity.BoxStatusInTransit, nil); err != nil {
			return err
		}
		return eventRepo.AppendBatch(events)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FacilityReceive recibe cajas IN_TRANSIT en la instalación del actor. Para
// actores no-admin se valida contra el libro que el último DISPATCH de cada
// caja nombre esta instalación como destino (soft check contra el historial).
func (uc *UseCase) FacilityReceive(ctx context.Context, actor Actor, boxUIDs []string, note string) (*dto.TransferResult, error) {
	uids := normalizeUIDs(boxUIDs)
	if len(uids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.actorFacility(policy.OpFacilityReceive, actor)
	if err != nil {
		return nil, err
	}
	_, strict := policy.DestinationChecks(policy.OpFacilityReceive, actor.Role)

	result := &dto.TransferResult{}
	err = uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		_ repository.OrderRepository,
	) error {
		boxes, err := resolveBatch(boxRepo, uids)
		if err != nil {
			return err
		}

		var invalid []string
		boxIDs := make([]string, 0, len(boxes))
		for _, box := range boxes {
			if box.Status != entity.BoxStatusInTransit {
				invalid = append(invalid, box.BoxUID)
				continue
			}
			boxIDs = append(boxIDs, box.ID)
		}
		if len(invalid) > 0 {
			return &domain.PreconditionError{Reason: "la caja no está en tránsito", Invalid: invalid}
		}

		dispatches, err := eventRepo.LatestByTypeForBoxes(boxIDs, entity.EventTypeDispatch)
		if err != nil {
			return err
		}
		if strict {
			var wrongDest []string
			for _, box := range boxes {
				last := dispatches[box.ID]
				if last == nil || last.ToFacilityID == nil || *last.ToFacilityID != facility.ID {
					wrongDest = append(wrongDest, box.BoxUID)
				}
			}
			if len(wrongDest) > 0 {
				return &domain.PreconditionError{Reason: "la caja fue despachada a otra instalación", WrongDestination: wrongDest}
			}
		}

		now := time.Now()
		events := make([]*entity.BoxEvent, 0, len(boxes))
		for _, box := range boxes {
			result.Updated = append(result.Updated, box.BoxUID)
			var from *string
			if last := dispatches[box.ID]; last != nil {
				from = last.FromFacilityID
			}
			events = append(events, &entity.BoxEvent{
				ID:                uuid.New().String(),
				BoxID:             box.ID,
				Type:              entity.EventTypeFacilityReceive,
				PerformedByUserID: actor.UserID,
				FromFacilityID:    from,
				ToFacilityID:      &facility.ID,
				Note:              note,
				CreatedAt:         now,
			})
		}
		if err := boxRepo.UpdateStatus(boxIDs, entity.BoxStatusInFacility, &facility.ID); err != nil {
			return err
		}
		return eventRepo.AppendBatch(events)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Dispense dispensa una caja IN_FACILITY de la instalación del actor a un
// beneficiario. Una sola caja por llamada: es un acto clínico individual.
func (uc *UseCase) Dispense(ctx context.Context, actor Actor, boxUID, note string) (*dto.TransferResult, error) {
	boxUID = strings.TrimSpace(boxUID)
	if boxUID == "" {
		return nil, domain.ErrInvalidInput
	}
	facility, err := uc.actorFacility(policy.OpDispense, actor)
	if err != nil {
		return nil, err
	}

	result := &dto.TransferResult{}
	err = uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		_ repository.OrderRepository,
	) error {
		boxes, err := resolveBatch(boxRepo, []string{boxUID})
		if err != nil {
			return err
		}
		box := boxes[0]
		if box.Status != entity.BoxStatusInFacility ||
			box.CurrentFacilityID == nil || *box.CurrentFacilityID != facility.ID {
			return &domain.PreconditionError{Reason: "la caja no está disponible para dispensar", Invalid: []string{box.BoxUID}}
		}
		// La caja dispensada conserva su última ubicación para el rollup.
		if err := boxRepo.UpdateStatus([]string{box.ID}, entity.BoxStatusDispensed, &facility.ID); err != nil {
			return err
		}
		result.Updated = append(result.Updated, box.BoxUID)
		return eventRepo.Append(&entity.BoxEvent{
			ID:                uuid.New().String(),
			BoxID:             box.ID,
			Type:              entity.EventTypeDispense,
			PerformedByUserID: actor.UserID,
			FromFacilityID:    &facility.ID,
			Note:              note,
			CreatedAt:         time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
