package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/auth"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/dto"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/jwt"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Delete(context.Context, string) error { return nil }

const secret = "secreto-de-prueba"

func newUseCase(users *memUsers) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterYLogin(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Holding.cl", Password: "clave-segura", Role: entity.RoleAnalista})
	require.NoError(t, err)
	assert.Equal(t, "ana@holding.cl", out.Email)
	assert.Equal(t, entity.RoleAnalista, out.Role)
	assert.NotEqual(t, "clave-segura", users.byEmail["ana@holding.cl"].PasswordHash)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@holding.cl", Password: "clave-segura"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, out.ID, userID)
	assert.Equal(t, entity.RoleAnalista, role)
}

func TestRegister_RolPorDefectoCorredor(t *testing.T) {
	uc := newUseCase(newMemUsers())

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "c@h.cl", Password: "12345678"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCorredor, out.Role)
}

func TestRegister_Errores(t *testing.T) {
	uc := newUseCase(newMemUsers())
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@h.cl", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@h.cl", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@h.cl", Password: "12345678", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Errores(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@h.cl", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@h.cl", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@h.cl", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users.byEmail["a@h.cl"].Status = entity.UserInactive
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@h.cl", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
