package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// Actor usuario autenticado que ejecuta la operación (tomado del JWT).
type Actor struct {
	UserID string
	Role   string
}

// IsManager indica si el actor es el farm manager.
func (a Actor) IsManager() bool { return a.Role == entity.RoleFarmManager }

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario. Un employee solo puede verse a sí mismo.
func (uc *UserUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.UserResponse, error) {
	if !actor.IsManager() && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Update actualiza un usuario. El propio usuario edita su perfil; rol y estado solo los cambia el farm manager.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsManager() && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	if !actor.IsManager() && (in.Role != nil || in.Status != nil) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Username = name
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if !auth.ValidEmail(email) {
			return nil, domain.ErrInvalidInput
		}
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Password != nil {
		if len(*in.Password) < auth.MinPasswordLength {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil && *in.Role != user.Role {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		if *in.Role == entity.RoleFarmManager {
			exists, err := uc.repo.ExistsWithRole(ctx, entity.RoleFarmManager)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrFarmManagerExists
			}
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		user.Status = *in.Status
	}
	if in.ImageURL != nil {
		user.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario. El farm manager no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsManager() {
		return domain.ErrForbidden
	}
	if actor.UserID == id {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
