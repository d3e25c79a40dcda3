package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/transfer"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// UseCase rollup de existencias por instalación: conteos agrupados por
// (producto, lote, vencimiento, estado) sobre la proyección de cajas, nunca
// sobre el libro de eventos. Solo lectura.
type UseCase struct {
	boxRepo      repository.BoxRepository
	productRepo  repository.ProductRepository
	facilityRepo repository.FacilityRepository
}

// NewUseCase construye el agregador de stock.
func NewUseCase(boxRepo repository.BoxRepository, productRepo repository.ProductRepository, facilityRepo repository.FacilityRepository) *UseCase {
	return &UseCase{boxRepo: boxRepo, productRepo: productRepo, facilityRepo: facilityRepo}
}

// FacilityStock devuelve el rollup de la instalación. Actores no-admin solo
// pueden consultar su propia instalación. Los productos se hidratan en una
// segunda pasada (agrupar y luego resolver, no join fila a fila).
func (uc *UseCase) FacilityStock(ctx context.Context, actor transfer.Actor, facilityID string) (*dto.StockResponse, error) {
	if actor.Role != entity.RoleAdmin && actor.FacilityID != facilityID {
		return nil, domain.ErrForbidden
	}
	facility, err := uc.facilityRepo.GetByID(facilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, &domain.NotFoundError{Resource: "instalación", Missing: []string{facilityID}}
	}

	rows, err := uc.boxRepo.StockByFacility(facilityID)
	if err != nil {
		return nil, err
	}

	// Segunda pasada: hidratar código/nombre/peso de los productos del rollup.
	productIDs := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ProductID]; ok {
			continue
		}
		seen[row.ProductID] = struct{}{}
		productIDs = append(productIDs, row.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}

	resp := &dto.StockResponse{FacilityID: facilityID, Rows: make([]dto.StockRowDTO, 0, len(rows))}
	for _, row := range rows {
		out := dto.StockRowDTO{
			BatchNo:       row.BatchNo,
			ExpiryDate:    row.ExpiryDate,
			Status:        row.Status,
			Count:         row.Count,
			TotalWeightKg: decimal.Zero,
		}
		if p := products[row.ProductID]; p != nil {
			out.ProductCode = p.Code
			out.ProductName = p.Name
			out.TotalWeightKg = p.UnitWeightKg.Mul(decimal.NewFromInt(int64(row.Count)))
		}
		resp.Total += row.Count
		resp.Rows = append(resp.Rows, out)
	}
	return resp, nil
}
