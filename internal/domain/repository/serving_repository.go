package repository

import (
	"context"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// ServingRepository define el puerto de persistencia para Serving (DIP).
type ServingRepository interface {
	Create(ctx context.Context, s *entity.Serving) error
	GetByID(ctx context.Context, id string) (*entity.Serving, error)
	Update(ctx context.Context, s *entity.Serving) error
	Delete(ctx context.Context, id string) error
	// List filtra por hembra si femaleID no está vacío.
	List(ctx context.Context, femaleID string, limit, offset int) ([]*entity.Serving, error)
}
