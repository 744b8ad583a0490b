// Package analytics contiene el resumen del dashboard de la granja.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: DashboardRepository (consultas read-only) más los conteos
// del hato y el último cierre del libro.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	animalRepo    repository.AnimalRepository
	summaryRepo   repository.DailySummaryRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	dashboardRepo repository.DashboardRepository,
	animalRepo repository.AnimalRepository,
	summaryRepo repository.DailySummaryRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		dashboardRepo: dashboardRepo,
		animalRepo:    animalRepo,
		summaryRepo:   summaryRepo,
	}
}

// GetSummary resumen a la fecha actual (UTC).
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	return uc.GetSummaryAt(ctx, time.Now())
}

// GetSummaryAt construye el DashboardSummaryDTO para el día de now.
//
// Cinco consultas en paralelo:
//  1. ProductionTotals(hoy)        → TodayMorning + TodayEvening
//  2. LastBefore(mañana)           → último cierre del libro
//  3. SalesTotals(mes)             → MonthSalesLiters + MonthSalesAmount
//  4. CountByType                  → AnimalsByType
//  5. CountPendingServings         → PendingServings
func (uc *DashboardUseCase) GetSummaryAt(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	today := dto.Truncate(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		am, pm          decimal.Decimal
		last            *entity.DailySummary
		liters, amount  decimal.Decimal
		byType          map[string]int
		pendingServings int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		am, pm, err = uc.dashboardRepo.ProductionTotals(gctx, today)
		if err != nil {
			return fmt.Errorf("dashboard: producción de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		last, err = uc.summaryRepo.LastBefore(gctx, today.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("dashboard: último cierre: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		liters, amount, err = uc.dashboardRepo.SalesTotals(gctx, monthStart, today)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		byType, err = uc.animalRepo.CountByType(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: conteo de animales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pendingServings, err = uc.dashboardRepo.CountPendingServings(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: servicios pendientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		Date:             dto.FormatDate(today),
		TodayMorning:     am,
		TodayEvening:     pm,
		MonthSalesLiters: liters,
		MonthSalesAmount: amount.Round(2),
		AnimalsByType:    byType,
		PendingServings:  pendingServings,
		MonthLabel:       monthLabel(today),
	}
	if out.AnimalsByType == nil {
		out.AnimalsByType = map[string]int{}
	}
	if last != nil {
		d := dto.FormatDate(last.Date)
		out.LastClosedDate = &d
		out.LastClosedBalance = last.BalanceEvening
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
