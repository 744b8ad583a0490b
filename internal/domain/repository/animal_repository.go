package repository

import (
	"context"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// AnimalFilter filtros opcionales del listado.
type AnimalFilter struct {
	Type   string
	Gender string
}

// AnimalRepository define el puerto de persistencia para Animal (DIP).
type AnimalRepository interface {
	Create(ctx context.Context, animal *entity.Animal) error
	GetByID(ctx context.Context, id string) (*entity.Animal, error)
	GetByTag(ctx context.Context, tag string) (*entity.Animal, error)
	Update(ctx context.Context, animal *entity.Animal) error
	List(ctx context.Context, filter AnimalFilter, limit, offset int) ([]*entity.Animal, error)
	Delete(ctx context.Context, id string) error
	CountByType(ctx context.Context) (map[string]int, error)
}
