package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianrc/panaderia-api/internal/application/auth"
	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/pkg/jwt"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthFixture() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "panaderia-api-test",
	})
	return uc, repo
}

func TestAuthUseCase_RegisterEmiteTokenValido(t *testing.T) {
	uc, repo := newAuthFixture()

	out, err := uc.Register(dto.RegisterRequest{
		Email:    "Ana@Panaderia.CO",
		Password: "secreto-fuerte",
		Name:     "Ana",
		Role:     entity.RolePanadero,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@panaderia.co", out.User.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RolePanadero, out.User.Role)
	require.NotEmpty(t, out.Token)

	// El token lleva userID y rol recuperables
	userID, role, err := jwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RolePanadero, role)

	// El hash nunca es el password en claro
	require.Len(t, repo.users, 1)
	assert.NotEqual(t, "secreto-fuerte", repo.users[0].PasswordHash)
}

func TestAuthUseCase_RegisterEmailDuplicadoFalla(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@panaderia.co", Password: "12345678", Name: "Ana"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ANA@panaderia.co", Password: "otraclave", Name: "Ana 2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuthUseCase_RegisterSinRolAsignaVendedor(t *testing.T) {
	uc, _ := newAuthFixture()

	out, err := uc.Register(dto.RegisterRequest{Email: "ana@panaderia.co", Password: "12345678", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, out.User.Role)
}

func TestAuthUseCase_LoginCredencialesCorrectas(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@panaderia.co", Password: "12345678", Name: "Ana"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@panaderia.co", Password: "12345678"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestAuthUseCase_LoginPasswordIncorrectoFalla(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@panaderia.co", Password: "12345678", Name: "Ana"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@panaderia.co", Password: "incorrecto"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthUseCase_LoginUsuarioInexistenteFalla(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@panaderia.co", Password: "12345678"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthUseCase_LoginUsuarioInactivoEsForbidden(t *testing.T) {
	uc, repo := newAuthFixture()

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@panaderia.co", Password: "12345678", Name: "Ana"})
	require.NoError(t, err)
	repo.users[0].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@panaderia.co", Password: "12345678"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
