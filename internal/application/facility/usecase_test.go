package facility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/facility"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// fakeRepo directorio en memoria que registra cada vínculo aplicado,
// para poder afirmar cuántos LinkWarehouse ocurrieron (o que ninguno).
type fakeRepo struct {
	byCode  map[string]*entity.Facility
	created []*entity.Facility
	links   [][2]string // pares (facilityID, warehouseID) en orden de aplicación
	linkErr error
}

func (r *fakeRepo) Create(f *entity.Facility) error {
	r.created = append(r.created, f)
	r.byCode[f.Code] = f
	return nil
}

func (r *fakeRepo) GetByID(id string) (*entity.Facility, error) {
	for _, f := range r.byCode {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByCode(code string) (*entity.Facility, error) {
	return r.byCode[code], nil
}

func (r *fakeRepo) GetByIDOrCode(idOrCode string) (*entity.Facility, error) {
	if f, _ := r.GetByID(idOrCode); f != nil {
		return f, nil
	}
	return r.GetByCode(idOrCode)
}

func (r *fakeRepo) List(limit, offset int) ([]*entity.Facility, error) { return nil, nil }

func (r *fakeRepo) ListByWarehouse(warehouseID string) ([]*entity.Facility, error) {
	var out []*entity.Facility
	for _, f := range r.byCode {
		if f.WarehouseID != nil && *f.WarehouseID == warehouseID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeRepo) LinkWarehouse(facilityID, warehouseID string) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	r.links = append(r.links, [2]string{facilityID, warehouseID})
	if f, _ := r.GetByID(facilityID); f != nil {
		wh := warehouseID
		f.WarehouseID = &wh
	}
	return nil
}

func (r *fakeRepo) GetByIDs(ids []string) (map[string]*entity.Facility, error) {
	out := map[string]*entity.Facility{}
	for _, id := range ids {
		if f, _ := r.GetByID(id); f != nil {
			out[id] = f
		}
	}
	return out, nil
}

func newDirHarness() (*facility.UseCase, *fakeRepo) {
	repo := &fakeRepo{byCode: map[string]*entity.Facility{
		"BOD-CALI": {ID: "fac-w1", Code: "BOD-CALI", Type: entity.FacilityTypeWarehouse},
		"PA-NORTE": {ID: "fac-pa1", Code: "PA-NORTE", Type: entity.FacilityTypeFacility},
		"PA-SUR":   {ID: "fac-pa2", Code: "PA-SUR", Type: entity.FacilityTypeFacility},
	}}
	return facility.NewUseCase(repo), repo
}

func TestCreate_BodegaNoLlevaBodegaDuena(t *testing.T) {
	uc, _ := newDirHarness()
	_, err := uc.Create(dto.CreateFacilityRequest{
		Code: "BOD-MED", Name: "Bodega Medellín",
		Type: entity.FacilityTypeWarehouse, WarehouseCode: "BOD-CALI",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FacilityNaceVinculada(t *testing.T) {
	uc, repo := newDirHarness()
	resp, err := uc.Create(dto.CreateFacilityRequest{
		Code: "PA-ESTE", Name: "Punto Este",
		Type: entity.FacilityTypeFacility, WarehouseCode: "BOD-CALI",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.WarehouseID)
	assert.Equal(t, "fac-w1", *resp.WarehouseID)
	require.Len(t, repo.created, 1)
}

func TestBulkLinkWarehouse_AplicaTodos(t *testing.T) {
	uc, repo := newDirHarness()
	n, err := uc.BulkLinkWarehouse(dto.BulkLinkWarehouseRequest{
		WarehouseCode: "BOD-CALI",
		FacilityCodes: []string{"PA-NORTE", "PA-SUR"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.links, 2)
	for _, link := range repo.links {
		assert.Equal(t, "fac-w1", link[1])
	}
}

func TestBulkLinkWarehouse_CodigoFaltanteNoAplicaNada(t *testing.T) {
	uc, repo := newDirHarness()
	n, err := uc.BulkLinkWarehouse(dto.BulkLinkWarehouseRequest{
		WarehouseCode: "BOD-CALI",
		FacilityCodes: []string{"PA-NORTE", "PA-NOPE", "BOD-CALI"},
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	// Una bodega tampoco es vinculable, así que aparece como faltante.
	assert.ElementsMatch(t, []string{"PA-NOPE", "BOD-CALI"}, nf.Missing)
	assert.Zero(t, n)

	// La validación corre completa antes del primer vínculo.
	assert.Empty(t, repo.links, "ningún vínculo debe aplicarse si la validación falla")
}

func TestBulkLinkWarehouse_BodegaInexistente(t *testing.T) {
	uc, repo := newDirHarness()
	_, err := uc.BulkLinkWarehouse(dto.BulkLinkWarehouseRequest{
		WarehouseCode: "BOD-NOPE",
		FacilityCodes: []string{"PA-NORTE"},
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"BOD-NOPE"}, nf.Missing)
	assert.Empty(t, repo.links)
}

func TestLinkWarehouse_RechazaVincularBodega(t *testing.T) {
	uc, _ := newDirHarness()
	err := uc.LinkWarehouse("BOD-CALI", "BOD-CALI")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListOfWarehouse_SoloBodegas(t *testing.T) {
	uc, repo := newDirHarness()
	whID := "fac-w1"
	repo.byCode["PA-NORTE"].WarehouseID = &whID

	resp, err := uc.ListOfWarehouse("BOD-CALI")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "PA-NORTE", resp.Items[0].Code)

	_, err = uc.ListOfWarehouse("PA-NORTE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
