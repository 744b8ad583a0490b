package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/testutil"
	pkgjwt "github.com/Mamba1099/milk-farm-sub002/pkg/jwt"
)

const testSecret = "test-secret"

func newUC(t *testing.T) (*auth.AuthUseCase, *testutil.UserRepo) {
	t.Helper()
	repo := testutil.NewUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:          testSecret,
		ExpMinutes:      5,
		RefreshExpHours: 1,
		Issuer:          "milk-farm-test",
	})
	return uc, repo
}

func register(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "user", Email: email, Password: "password123", Role: role,
	})
	require.NoError(t, err)
	return u
}

func TestRegister_NormalizaEmailYRolPorDefecto(t *testing.T) {
	uc, _ := newUC(t)
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: " Ana ", Email: "  Ana@Farm.Test ", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@farm.test", u.Email)
	assert.Equal(t, "Ana", u.Username)
	assert.Equal(t, entity.RoleEmployee, u.Role)
	assert.Equal(t, entity.UserStatusActive, u.Status)
}

func TestRegister_SoloUnFarmManager(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	exists, err := uc.FarmManagerExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	register(t, uc, "boss@farm.test", entity.RoleFarmManager)

	exists, err = uc.FarmManagerExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: "otro", Email: "other@farm.test", Password: "password123", Role: entity.RoleFarmManager,
	})
	assert.ErrorIs(t, err, domain.ErrFarmManagerExists)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUC(t)
	register(t, uc, "a@farm.test", "")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "b", Email: "A@farm.test", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newUC(t)
	cases := []dto.RegisterRequest{
		{Username: "", Email: "a@farm.test", Password: "password123"},
		{Username: "a", Email: "no-es-email", Password: "password123"},
		{Username: "a", Email: "a@farm.test", Password: "corta"},
		{Username: "a", Email: "a@farm.test", Password: "password123", Role: "admin"},
	}
	for _, in := range cases {
		_, err := uc.RegisterUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v", in)
	}
}

func TestLogin_EmiteTokens(t *testing.T) {
	uc, _ := newUC(t)
	u := register(t, uc, "boss@farm.test", entity.RoleFarmManager)

	pair, err := uc.Login(context.Background(), dto.LoginRequest{Email: "BOSS@farm.test", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, pair.User.ID)

	userID, role, err := pkgjwt.Parse(testSecret, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleFarmManager, role)

	refreshUser, err := pkgjwt.ParseRefresh(testSecret, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, refreshUser)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newUC(t)
	ctx := context.Background()
	u := register(t, uc, "emp@farm.test", "")

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@farm.test", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "emp@farm.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, _ := repo.GetByID(ctx, u.ID)
	stored.Status = entity.UserStatusInactive
	require.NoError(t, repo.Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "emp@farm.test", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRefresh_RotaTokens(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()
	register(t, uc, "emp@farm.test", "")
	pair, err := uc.Login(ctx, dto.LoginRequest{Email: "emp@farm.test", Password: "password123"})
	require.NoError(t, err)

	next, err := uc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)
	assert.Equal(t, pair.User.ID, next.User.ID)

	_, err = uc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un access token no sirve como refresh")

	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc, _ := newUC(t)
	u := register(t, uc, "emp@farm.test", "")

	got, err := uc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = uc.Me(context.Background(), "desconocido")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
