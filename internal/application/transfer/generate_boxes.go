package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	policy "github.com/jhoicas/Trazabilidad-api/internal/domain/transfer"
)

const expiryDateLayout = "2006-01-02"

// GenerateBoxes crea quantity cajas para una orden, con UIDs secuenciales
// {orderNumber}-{seq} que continúan el contador atómico de la orden. Variante
// centrada en bodega: las cajas nacen IN_WAREHOUSE en la bodega del actor,
// con el par sintético QR_CREATED + WAREHOUSE_RECEIVE en el libro.
func (uc *UseCase) GenerateBoxes(ctx context.Context, actor Actor, in dto.GenerateBoxesRequest) (*dto.GenerateBoxesResponse, error) {
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	in.ProductCode = strings.TrimSpace(in.ProductCode)
	in.BatchNo = strings.TrimSpace(in.BatchNo)
	if in.OrderNumber == "" || in.ProductCode == "" || in.BatchNo == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	expiry, err := time.Parse(expiryDateLayout, in.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	facility, err := uc.actorFacility(policy.OpGenerate, actor)
	if err != nil {
		return nil, err
	}

	// Upsert del producto por clave natural antes de generar.
	weight := decimal.Zero
	if in.UnitWeightKg != nil {
		weight = *in.UnitWeightKg
	}
	product, err := uc.productRepo.UpsertByCode(&entity.Product{
		Code:         in.ProductCode,
		Name:         in.ProductName,
		UnitWeightKg: weight,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerateBoxesResponse{OrderNumber: in.OrderNumber}
	err = uc.txRunner.Run(ctx, func(
		boxRepo repository.BoxRepository,
		eventRepo repository.BoxEventRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.UpsertByNumber(in.OrderNumber)
		if err != nil {
			return err
		}
		// Reserva atómica del rango de secuencia dentro de la misma tx:
		// generaciones concurrentes sobre la misma orden no se solapan.
		first, err := orderRepo.ReserveSequence(order.ID, in.Quantity)
		if err != nil {
			return err
		}

		now := time.Now()
		boxes := make([]*entity.Box, 0, in.Quantity)
		events := make([]*entity.BoxEvent, 0, in.Quantity*2)
		for i := 0; i < in.Quantity; i++ {
			boxUID := fmt.Sprintf("%s-%d", in.OrderNumber, first+i)
			box := &entity.Box{
				ID:                uuid.New().String(),
				BoxUID:            boxUID,
				OrderID:           order.ID,
				ProductID:         product.ID,
				BatchNo:           in.BatchNo,
				ExpiryDate:        expiry,
				Status:            entity.BoxStatusInWarehouse,
				CurrentFacilityID: &facility.ID,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			boxes = append(boxes, box)
			resp.BoxUIDs = append(resp.BoxUIDs, boxUID)
			events = append(events,
				&entity.BoxEvent{
					ID:                uuid.New().String(),
					BoxID:             box.ID,
					Type:              entity.EventTypeQRCreated,
					PerformedByUserID: actor.UserID,
					CreatedAt:         now,
				},
				&entity.BoxEvent{
					ID:                uuid.New().String(),
					BoxID:             box.ID,
					Type:              entity.EventTypeWarehouseReceive,
					PerformedByUserID: actor.UserID,
					ToFacilityID:      &facility.ID,
					CreatedAt:         now,
				},
			)
		}
		if err := boxRepo.CreateBatch(boxes); err != nil {
			return err
		}
		return eventRepo.AppendBatch(events)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
