package transfer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	policy "github.com/jhoicas/Trazabilidad-api/internal/domain/transfer"
)

// VoidBox marca una caja como VOID mediante un evento ADJUSTMENT. Es la única
// vía al estado terminal VOID; las cuatro operaciones estándar nunca lo
// producen. Solo admin.
func (uc *UseCase) VoidBox(ctx context.Context, actor Actor, boxUID, note string) error {
	boxUID = strings.TrimSpace(boxUID)
	if boxUID == "" {
		return domain.ErrInvalidInput
	}
	if !policy.Allowed(policy.OpAdjust, actor.Role, "") {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		_ repository.OrderRepository,
	) error {
		boxes, err := resolveBatch(boxRepo, []string{boxUID})
		if err != nil {
			return err
		}
		box := boxes[0]
		if box.Status == entity.BoxStatusVoid {
			return &domain.PreconditionError{Reason: "la caja ya está anulada", Invalid: []string{box.BoxUID}}
		}
		if err := boxRepo.UpdateStatus([]string{box.ID}, entity.BoxStatusVoid, box.CurrentFacilityID); err != nil {
			return err
		}
		return eventRepo.Append(&entity.BoxEvent{
			ID:                uuid.New().String(),
			BoxID:             box.ID,
			Type:              entity.EventTypeAdjustment,
			PerformedByUserID: actor.UserID,
			Note:              note,
			CreatedAt:         time.Now(),
		})
	})
}

// PurgeOrder elimina las cajas de una orden y todos sus eventos en una sola
// transacción (utilidad administrativa de reset; fuera de esto nada borra
// cajas ni eventos). Devuelve cuántas cajas se purgaron. Solo admin.
func (uc *UseCase) PurgeOrder(ctx context.Context, actor Actor, orderNumber string) (int, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return 0, domain.ErrInvalidInput
	}
	if actor.Role != entity.RoleAdmin {
		return 0, domain.ErrForbidden
	}
	purged := 0
	err := uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByNumber(orderNumber)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden", Missing: []string{orderNumber}}
		}
		if _, err := eventRepo.DeleteByOrder(order.ID); err != nil {
			return err
		}
		n, err := boxRepo.DeleteByOrder(order.ID)
		if err != nil {
			return err
		}
		purged = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}
