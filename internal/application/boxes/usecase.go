package boxes

import (
	"context"
	"strings"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// historyLimit últimos eventos devueltos en la consulta de una caja.
const historyLimit = 20

// UseCase consulta de cajas: caja + historial con actor e instalaciones
// hidratados. Solo lectura, sin aislamiento transaccional.
type UseCase struct {
	boxRepo      repository.BoxRepository
	eventRepo    repository.BoxEventRepository
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	facilityRepo repository.FacilityRepository
	userRepo     repository.UserRepository
}

// NewUseCase construye la consulta de cajas.
func NewUseCase(
	boxRepo repository.BoxRepository,
	eventRepo repository.BoxEventRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	facilityRepo repository.FacilityRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		boxRepo:      boxRepo,
		eventRepo:    eventRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		facilityRepo: facilityRepo,
		userRepo:     userRepo,
	}
}

// GetByUID devuelve la caja y sus últimos eventos (más recientes primero).
func (uc *UseCase) GetByUID(ctx context.Context, boxUID string) (*dto.BoxDetailResponse, error) {
	boxUID = strings.TrimSpace(boxUID)
	if boxUID == "" {
		return nil, domain.ErrInvalidInput
	}
	box, err := uc.boxRepo.GetByUID(boxUID)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, &domain.NotFoundError{Resource: "caja", Missing: []string{boxUID}}
	}

	events, err := uc.eventRepo.ListByBox(box.ID, historyLimit)
	if err != nil {
		return nil, err
	}

	// Caja en tránsito: el destino declarado vive en el libro, no en la
	// proyección. Se resuelve por el último DISPATCH (seq, no timestamp).
	var lastDispatch *entity.BoxEvent
	if box.Status == entity.BoxStatusInTransit {
		lastDispatch, err = uc.eventRepo.LatestByType(box.ID, entity.EventTypeDispatch)
		if err != nil {
			return nil, err
		}
	}

	// Hidratación en lote: instalaciones y actores referenciados por la caja
	// y sus eventos, resueltos en una consulta cada uno.
	facilityIDs := make([]string, 0, len(events)*2+1)
	userIDs := make([]string, 0, len(events))
	if box.CurrentFacilityID != nil {
		facilityIDs = append(facilityIDs, *box.CurrentFacilityID)
	}
	if lastDispatch != nil && lastDispatch.ToFacilityID != nil {
		facilityIDs = append(facilityIDs, *lastDispatch.ToFacilityID)
	}
	for _, ev := range events {
		if ev.FromFacilityID != nil {
			facilityIDs = append(facilityIDs, *ev.FromFacilityID)
		}
		if ev.ToFacilityID != nil {
			facilityIDs = append(facilityIDs, *ev.ToFacilityID)
		}
		if ev.PerformedByUserID != "" {
			userIDs = append(userIDs, ev.PerformedByUserID)
		}
	}
	facilities, err := uc.facilityRepo.GetByIDs(facilityIDs)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	resp := &dto.BoxDetailResponse{
		Box: dto.BoxResponse{
			BoxUID:     box.BoxUID,
			BatchNo:    box.BatchNo,
			ExpiryDate: box.ExpiryDate.Format("2006-01-02"),
			Status:     box.Status,
			CreatedAt:  box.CreatedAt,
		},
	}
	if order, err := uc.orderRepo.GetByID(box.OrderID); err == nil && order != nil {
		resp.Box.OrderNumber = order.OrderNumber
	}
	if product, err := uc.productRepo.GetByID(box.ProductID); err == nil && product != nil {
		resp.Box.ProductCode = product.Code
		resp.Box.ProductName = product.Name
	}
	if box.CurrentFacilityID != nil {
		if f := facilities[*box.CurrentFacilityID]; f != nil {
			resp.Box.CurrentFacilityCode = f.Code
		}
	}
	if lastDispatch != nil && lastDispatch.ToFacilityID != nil {
		if f := facilities[*lastDispatch.ToFacilityID]; f != nil {
			resp.Box.DestinationFacilityCode = f.Code
		}
	}

	facilityCode := func(id *string) string {
		if id == nil {
			return ""
		}
		if f := facilities[*id]; f != nil {
			return f.Code
		}
		return ""
	}
	for _, ev := range events {
		out := dto.BoxEventDTO{
			Type:             ev.Type,
			FromFacilityCode: facilityCode(ev.FromFacilityID),
			ToFacilityCode:   facilityCode(ev.ToFacilityID),
			Note:             ev.Note,
			CreatedAt:        ev.CreatedAt,
		}
		if u := users[ev.PerformedByUserID]; u != nil {
			out.PerformedBy = u.Name
		}
		resp.Events = append(resp.Events, out)
	}
	return resp, nil
}
