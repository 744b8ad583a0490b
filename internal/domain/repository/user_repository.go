package repository

import (
	"context"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// ExistsWithRole usado para la verificación de farm manager único.
	ExistsWithRole(ctx context.Context, role string) (bool, error)
}
