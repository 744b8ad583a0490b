package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var _ repository.DailySummaryRepository = (*DailySummaryRepo)(nil)

const summaryColumns = `date, total_morning, total_evening, deduction_am, deduction_pm, carried_in,
	balance_morning, balance_evening, closed_by, created_at, updated_at`

// DailySummaryRepo cierres diarios del libro de leche (usable con pool o tx).
type DailySummaryRepo struct {
	q Querier
}

// NewDailySummaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDailySummaryRepository(q Querier) *DailySummaryRepo {
	return &DailySummaryRepo{q: q}
}

// Upsert inserta o reemplaza el cierre de la fecha (conserva created_at).
func (r *DailySummaryRepo) Upsert(ctx context.Context, s *entity.DailySummary) error {
	query := `
		INSERT INTO daily_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (date) DO UPDATE SET
			total_morning   = EXCLUDED.total_morning,
			total_evening   = EXCLUDED.total_evening,
			deduction_am    = EXCLUDED.deduction_am,
			deduction_pm    = EXCLUDED.deduction_pm,
			carried_in      = EXCLUDED.carried_in,
			balance_morning = EXCLUDED.balance_morning,
			balance_evening = EXCLUDED.balance_evening,
			closed_by       = EXCLUDED.closed_by,
			updated_at      = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.Date, s.TotalMorning, s.TotalEvening, s.DeductionAM, s.DeductionPM, s.CarriedIn,
		s.BalanceMorning, s.BalanceEvening, nullIfEmpty(s.ClosedBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert daily summary: %w", err)
	}
	return nil
}

// GetByDate cierre de la fecha (nil si el día no está cerrado).
func (r *DailySummaryRepo) GetByDate(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	s, err := scanSummary(r.q.QueryRow(ctx, `SELECT `+summaryColumns+` FROM daily_summaries WHERE date = $1`, date))
	if err != nil {
		return nil, fmt.Errorf("get daily summary: %w", err)
	}
	return s, nil
}

// LastBefore último cierre estrictamente anterior a date.
func (r *DailySummaryRepo) LastBefore(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM daily_summaries WHERE date < $1 ORDER BY date DESC LIMIT 1`
	s, err := scanSummary(r.q.QueryRow(ctx, query, date))
	if err != nil {
		return nil, fmt.Errorf("last daily summary: %w", err)
	}
	return s, nil
}

// ListBetween cierres con fecha en [from, to] ordenados por fecha.
func (r *DailySummaryRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.DailySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM daily_summaries WHERE date BETWEEN $1 AND $2 ORDER BY date`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily summaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSummary(row pgx.Row) (*entity.DailySummary, error) {
	var (
		s        entity.DailySummary
		closedBy *string
	)
	err := row.Scan(
		&s.Date, &s.TotalMorning, &s.TotalEvening, &s.DeductionAM, &s.DeductionPM, &s.CarriedIn,
		&s.BalanceMorning, &s.BalanceEvening, &closedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.ClosedBy = deref(closedBy)
	return &s, nil
}
