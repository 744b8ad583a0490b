package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas read-only agregadas para el dashboard.
type DashboardRepository interface {
	// ProductionTotals litros netos de mañana y tarde en la fecha.
	ProductionTotals(ctx context.Context, date time.Time) (am, pm decimal.Decimal, err error)
	// SalesTotals litros vendidos y monto en [from, to].
	SalesTotals(ctx context.Context, from, to time.Time) (liters, amount decimal.Decimal, err error)
	// CountPendingServings servicios con resultado pendiente.
	CountPendingServings(ctx context.Context) (int, error)
}
