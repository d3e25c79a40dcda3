package facility

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// UseCase administración del directorio de instalaciones: alta, consulta y
// vínculo instalación → bodega dueña. El tipo es fijo al crear; el único
// campo de jerarquía mutable es la bodega dueña de una FACILITY.
type UseCase struct {
	repo repository.FacilityRepository
}

// NewUseCase construye el caso de uso del directorio.
func NewUseCase(repo repository.FacilityRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create da de alta una instalación. Una WAREHOUSE nunca lleva bodega dueña;
// una FACILITY puede nacer vinculada por código o quedar sin vincular.
func (uc *UseCase) Create(in dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.FacilityTypeWarehouse && in.Type != entity.FacilityTypeFacility {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.FacilityTypeWarehouse && in.WarehouseCode != "" {
		return nil, domain.ErrInvalidInput
	}

	var warehouseID *string
	if in.WarehouseCode != "" {
		wh, err := uc.repo.GetByCode(strings.TrimSpace(in.WarehouseCode))
		if err != nil {
			return nil, err
		}
		if wh == nil || !wh.IsWarehouse() {
			return nil, &domain.NotFoundError{Resource: "bodega", Missing: []string{in.WarehouseCode}}
		}
		warehouseID = &wh.ID
	}

	now := time.Now()
	f := &entity.Facility{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Type:        in.Type,
		WarehouseID: warehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(f); err != nil {
		return nil, err
	}
	return toResponse(f), nil
}

// GetByIDOrCode resuelve una instalación por ID o por código.
func (uc *UseCase) GetByIDOrCode(idOrCode string) (*dto.FacilityResponse, error) {
	f, err := uc.repo.GetByIDOrCode(strings.TrimSpace(idOrCode))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, &domain.NotFoundError{Resource: "instalación", Missing: []string{idOrCode}}
	}
	return toResponse(f), nil
}

// List lista instalaciones paginadas.
func (uc *UseCase) List(page dto.PageRequest) (*dto.FacilityListResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.FacilityListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, f := range items {
		resp.Items = append(resp.Items, *toResponse(f))
	}
	return resp, nil
}

// ListOfWarehouse devuelve las instalaciones surtidas por una bodega.
func (uc *UseCase) ListOfWarehouse(idOrCode string) (*dto.FacilityListResponse, error) {
	wh, err := uc.repo.GetByIDOrCode(strings.TrimSpace(idOrCode))
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, &domain.NotFoundError{Resource: "bodega", Missing: []string{idOrCode}}
	}
	if !wh.IsWarehouse() {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.repo.ListByWarehouse(wh.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.FacilityListResponse{}
	for _, f := range items {
		resp.Items = append(resp.Items, *toResponse(f))
	}
	return resp, nil
}

// LinkWarehouse vincula una FACILITY con su bodega dueña.
func (uc *UseCase) LinkWarehouse(facilityIDOrCode, warehouseCode string) error {
	f, err := uc.repo.GetByIDOrCode(strings.TrimSpace(facilityIDOrCode))
	if err != nil {
		return err
	}
	if f == nil {
		return &domain.NotFoundError{Resource: "instalación", Missing: []string{facilityIDOrCode}}
	}
	if f.IsWarehouse() {
		return domain.ErrInvalidInput
	}
	wh, err := uc.repo.GetByCode(strings.TrimSpace(warehouseCode))
	if err != nil {
		return err
	}
	if wh == nil || !wh.IsWarehouse() {
		return &domain.NotFoundError{Resource: "bodega", Missing: []string{warehouseCode}}
	}
	return uc.repo.LinkWarehouse(f.ID, wh.ID)
}

// BulkLinkWarehouse vincula varias instalaciones (por código) a una bodega.
// Valida todos los códigos antes de aplicar: si alguno no resuelve a una
// FACILITY, falla enumerando los faltantes sin haber tocado ningún vínculo.
// Los vínculos se aplican uno a uno; un error de persistencia a mitad de
// camino deja aplicados los anteriores (re-vincular es idempotente, basta
// reintentar la operación completa).
func (uc *UseCase) BulkLinkWarehouse(in dto.BulkLinkWarehouseRequest) (int, error) {
	wh, err := uc.repo.GetByCode(strings.TrimSpace(in.WarehouseCode))
	if err != nil {
		return 0, err
	}
	if wh == nil || !wh.IsWarehouse() {
		return 0, &domain.NotFoundError{Resource: "bodega", Missing: []string{in.WarehouseCode}}
	}

	facilities := make([]*entity.Facility, 0, len(in.FacilityCodes))
	var missing []string
	for _, code := range in.FacilityCodes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		f, err := uc.repo.GetByCode(code)
		if err != nil {
			return 0, err
		}
		if f == nil || f.IsWarehouse() {
			missing = append(missing, code)
			continue
		}
		facilities = append(facilities, f)
	}
	if len(missing) > 0 {
		return 0, &domain.NotFoundError{Resource: "instalación", Missing: missing}
	}
	for _, f := range facilities {
		if err := uc.repo.LinkWarehouse(f.ID, wh.ID); err != nil {
			return 0, err
		}
	}
	return len(facilities), nil
}

func toResponse(f *entity.Facility) *dto.FacilityResponse {
	return &dto.FacilityResponse{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		Type:        f.Type,
		WarehouseID: f.WarehouseID,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
