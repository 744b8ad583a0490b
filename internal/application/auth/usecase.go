package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
	"github.com/Mamba1099/milk-farm-sub002/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	RefreshSecret   string
	ExpMinutes      int
	RefreshExpHours int
	Issuer          string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresco y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.RefreshSecret == "" {
		jwtCfg.RefreshSecret = jwtCfg.Secret
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con password hasheado (bcrypt).
// Solo puede existir un farm manager: un segundo registro con ese rol devuelve ErrFarmManagerExists.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if username == "" || !ValidEmail(email) || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	if role == entity.RoleFarmManager {
		exists, err := uc.userRepo.ExistsWithRole(ctx, entity.RoleFarmManager)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrFarmManagerExists
		}
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// FarmManagerExists indica si ya hay un farm manager registrado.
func (uc *AuthUseCase) FarmManagerExists(ctx context.Context) (bool, error) {
	return uc.userRepo.ExistsWithRole(ctx, entity.RoleFarmManager)
}

// Login verifica email/password y emite access + refresh token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenPair, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

// Refresh valida el refresh token (cookie), relee el usuario y rota ambos tokens.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, err := jwt.ParseRefresh(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// RefreshTTL duración del refresh token (para el Max-Age de la cookie).
func (uc *AuthUseCase) RefreshTTL() time.Duration {
	return time.Duration(uc.jwtCfg.RefreshExpHours) * time.Hour
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.TokenPair, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.RefreshSecret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *ToUserResponse(user),
	}, nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail validación básica de formato.
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ToUserResponse mapea la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		ImageURL:  u.ImageURL,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
