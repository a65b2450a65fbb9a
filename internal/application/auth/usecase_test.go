package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users       map[string]*entity.User
	findByEmail error // error inyectado en FindByEmail
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.findByEmail != nil {
		return nil, r.findByEmail
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

var cfgTest = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "pos-api-test"}

func TestRegisterUser_Exitoso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, cfgTest)

	user, err := uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Name:     "Vendedor",
		Email:    "vendedor@store.com",
		Password: "secreto123",
		Role:     entity.RoleSales,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleSales, user.Role)
	assert.True(t, user.Active)

	stored, _ := repo.FindByEmail(context.Background(), "vendedor@store.com")
	require.NotNil(t, stored)
	// El password se guarda hasheado, nunca en claro.
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, cfgTest)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Email: "admin@store.com", Password: "x12345", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Email: "admin@store.com", Password: "otro456", Role: entity.RoleViewer,
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_FallaLecturaNoSeTragaElError(t *testing.T) {
	// Un fallo transitorio del repo al verificar el email no debe leerse
	// como "email libre": el error se propaga y no se crea nada.
	repo := newFakeUserRepo()
	repo.findByEmail = errors.New("conexión perdida")
	uc := auth.NewUseCase(repo, cfgTest)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Email: "nuevo@store.com", Password: "x12345",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.users)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), cfgTest)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Email: "x@store.com", Password: "x12345", Role: "superadmin",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesYEstado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, cfgTest)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterUserRequest{
		Name: "Admin", Email: "admin@store.com", Password: "clave789", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@store.com", Password: "clave789"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Admin", resp.User.Name)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "admin@store.com", Password: "mala"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@store.com", Password: "clave789"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	// Usuario desactivado: credenciales correctas pero acceso prohibido.
	_, err = uc.ToggleActive(context.Background(), resp.User.ID)
	require.NoError(t, err)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "admin@store.com", Password: "clave789"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
