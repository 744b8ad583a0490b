package repository

import (
	"context"
	"time"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// ProductionRepository define el puerto de persistencia para ProductionRecord (DIP).
type ProductionRepository interface {
	Create(ctx context.Context, rec *entity.ProductionRecord) error
	GetByID(ctx context.Context, id string) (*entity.ProductionRecord, error)
	Update(ctx context.Context, rec *entity.ProductionRecord) error
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date time.Time) ([]*entity.ProductionRecord, error)
	// ListBetween registros con fecha en [from, to], ordenados por fecha.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductionRecord, error)
}

// DailySummaryRepository define el puerto de persistencia para los cierres diarios del libro.
type DailySummaryRepository interface {
	Upsert(ctx context.Context, s *entity.DailySummary) error
	GetByDate(ctx context.Context, date time.Time) (*entity.DailySummary, error)
	// LastBefore último cierre con fecha estrictamente anterior a date (nil si no hay).
	LastBefore(ctx context.Context, date time.Time) (*entity.DailySummary, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.DailySummary, error)
}
