package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// ProductionTotals litros netos de la fecha: cantidad menos la porción de terneras, por sesión.
func (r *DashboardRepo) ProductionTotals(ctx context.Context, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity_am - COALESCE(calf_quantity_am, 0)), 0) AS net_am,
	    COALESCE(SUM(quantity_pm - COALESCE(calf_quantity_pm, 0)), 0) AS net_pm
	FROM production_records
	WHERE date = $1`
	var am, pm decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, date).Scan(&am, &pm); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("dashboard.ProductionTotals: %w", err)
	}
	return am, pm, nil
}

// SalesTotals litros vendidos y monto total en [from, to].
func (r *DashboardRepo) SalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(total_amount), 0)
	FROM sales
	WHERE date BETWEEN $1 AND $2`
	var liters, amount decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&liters, &amount); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("dashboard.SalesTotals: %w", err)
	}
	return liters, amount, nil
}

// CountPendingServings servicios sin resultado.
func (r *DashboardRepo) CountPendingServings(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM servings WHERE outcome = $1`, entity.OutcomePending).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountPendingServings: %w", err)
	}
	return n, nil
}
