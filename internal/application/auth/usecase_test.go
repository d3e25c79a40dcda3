package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// ─── fakes en memoria ───────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail   map[string]*entity.User
	findErr   error
	created   []*entity.User
	createErr error
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, u)
	if r.byEmail == nil {
		r.byEmail = map[string]*entity.User{}
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByIDs(ids []string) (map[string]*entity.User, error) {
	out := map[string]*entity.User{}
	for _, id := range ids {
		if u, err := r.GetByID(id); err == nil && u != nil {
			out[id] = u
		}
	}
	return out, nil
}

type fakeFacilityRepo struct {
	byID map[string]*entity.Facility
}

func (r *fakeFacilityRepo) Create(*entity.Facility) error { return nil }
func (r *fakeFacilityRepo) GetByID(id string) (*entity.Facility, error) {
	return r.byID[id], nil
}
func (r *fakeFacilityRepo) GetByCode(string) (*entity.Facility, error)       { return nil, nil }
func (r *fakeFacilityRepo) GetByIDOrCode(string) (*entity.Facility, error)   { return nil, nil }
func (r *fakeFacilityRepo) List(int, int) ([]*entity.Facility, error)        { return nil, nil }
func (r *fakeFacilityRepo) ListByWarehouse(string) ([]*entity.Facility, error) {
	return nil, nil
}
func (r *fakeFacilityRepo) LinkWarehouse(string, string) error { return nil }
func (r *fakeFacilityRepo) GetByIDs([]string) (map[string]*entity.Facility, error) {
	return nil, nil
}

func newAuthHarness() (*auth.UseCase, *fakeUserRepo, *fakeFacilityRepo) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	facilities := &fakeFacilityRepo{byID: map[string]*entity.Facility{
		"fac-w1": {ID: "fac-w1", Code: "BOD-CALI", Type: entity.FacilityTypeWarehouse},
		"fac-pa1": {ID: "fac-pa1", Code: "PA-NORTE", Type: entity.FacilityTypeFacility},
	}}
	uc := auth.NewUseCase(users, facilities, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "trazabilidad-test",
	})
	return uc, users, facilities
}

// ─── registro ───────────────────────────────────────────────────────────────

func TestRegisterUser_RolPorDefectoSegunInstalacion(t *testing.T) {
	uc, users, _ := newAuthHarness()

	// En bodega el rol por defecto es bodeguero.
	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:      "bod@example.com",
		Password:   "secreto-largo",
		FacilityID: "fac-w1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, resp.Role)
	assert.Equal(t, "active", resp.Status)

	// En punto de atención, dispensador.
	resp, err = uc.RegisterUser(dto.RegisterRequest{
		Email:      "disp@example.com",
		Password:   "secreto-largo",
		FacilityID: "fac-pa1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDispensador, resp.Role)

	// El hash persistido nunca es el password plano.
	require.Len(t, users.created, 2)
	assert.NotEqual(t, "secreto-largo", users.created[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.created[0].PasswordHash), []byte("secreto-largo")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, users, _ := newAuthHarness()
	users.byEmail["bod@example.com"] = &entity.User{ID: "user-1", Email: "bod@example.com"}

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:      "bod@example.com",
		Password:   "secreto-largo",
		FacilityID: "fac-w1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, users.created)
}

func TestRegisterUser_ErrorDeBusquedaSePropaga(t *testing.T) {
	uc, users, _ := newAuthHarness()
	boom := errors.New("conexión perdida")
	users.findErr = boom

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:      "bod@example.com",
		Password:   "secreto-largo",
		FacilityID: "fac-w1",
	})
	// Un fallo de infraestructura no puede confundirse con "email libre".
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, users.created, "no debe crearse usuario cuando la búsqueda falla")
}

func TestRegisterUser_InstalacionInexistente(t *testing.T) {
	uc, _, _ := newAuthHarness()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:      "bod@example.com",
		Password:   "secreto-largo",
		FacilityID: "fac-nope",
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"fac-nope"}, nf.Missing)
}

// ─── login ──────────────────────────────────────────────────────────────────

func seedActiveUser(t *testing.T, users *fakeUserRepo, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "user-1",
		FacilityID:   "fac-w1",
		Email:        "bod@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleBodeguero,
		Status:       "active",
	}
	users.byEmail[u.Email] = u
	return u
}

func TestLogin_OK(t *testing.T) {
	uc, users, _ := newAuthHarness()
	seedActiveUser(t, users, "secreto-largo")

	resp, err := uc.Login(dto.LoginRequest{Email: "bod@example.com", Password: "secreto-largo"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, entity.RoleBodeguero, resp.User.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, users, _ := newAuthHarness()
	seedActiveUser(t, users, "secreto-largo")

	_, err := uc.Login(dto.LoginRequest{Email: "bod@example.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newAuthHarness()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _ := newAuthHarness()
	u := seedActiveUser(t, users, "secreto-largo")
	u.Status = "suspended"

	_, err := uc.Login(dto.LoginRequest{Email: "bod@example.com", Password: "secreto-largo"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
