package repository

import (
	"context"
	"time"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, s *entity.Sale) error
	Delete(ctx context.Context, id string) error
	ListBetween(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
}
