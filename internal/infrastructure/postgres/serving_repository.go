package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var _ repository.ServingRepository = (*ServingRepo)(nil)

const servingColumns = `id, female_id, served_at, serving_type, bull_id, bull_name, outcome,
	expected_calving_date, notes, recorded_by, created_at, updated_at`

// ServingRepo implementación de ServingRepository sobre PostgreSQL.
type ServingRepo struct {
	q Querier
}

// NewServingRepository construye el adaptador.
func NewServingRepository(q Querier) *ServingRepo {
	return &ServingRepo{q: q}
}

func (r *ServingRepo) Create(ctx context.Context, s *entity.Serving) error {
	query := `
		INSERT INTO servings (` + servingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.FemaleID, s.ServedAt, s.ServingType, s.BullID, s.BullName, s.Outcome,
		s.ExpectedCalvingDate, s.Notes, nullIfEmpty(s.RecordedBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert serving: %w", err)
	}
	return nil
}

func (r *ServingRepo) GetByID(ctx context.Context, id string) (*entity.Serving, error) {
	s, err := scanServing(r.q.QueryRow(ctx, `SELECT `+servingColumns+` FROM servings WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get serving: %w", err)
	}
	return s, nil
}

func (r *ServingRepo) Update(ctx context.Context, s *entity.Serving) error {
	query := `
		UPDATE servings SET served_at = $2, serving_type = $3, bull_name = $4, outcome = $5,
			expected_calving_date = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ServedAt, s.ServingType, s.BullName, s.Outcome, s.ExpectedCalvingDate, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update serving: %w", err)
	}
	return nil
}

func (r *ServingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM servings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete serving: %w", err)
	}
	return nil
}

// List servicios más recientes primero; femaleID vacío lista todos.
func (r *ServingRepo) List(ctx context.Context, femaleID string, limit, offset int) ([]*entity.Serving, error) {
	query := `SELECT ` + servingColumns + ` FROM servings
		WHERE ($1 = '' OR female_id::text = $1)
		ORDER BY served_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, femaleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list servings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Serving
	for rows.Next() {
		s, err := scanServing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan serving: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanServing(row pgx.Row) (*entity.Serving, error) {
	var (
		s          entity.Serving
		recordedBy *string
	)
	err := row.Scan(
		&s.ID, &s.FemaleID, &s.ServedAt, &s.ServingType, &s.BullID, &s.BullName, &s.Outcome,
		&s.ExpectedCalvingDate, &s.Notes, &recordedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.RecordedBy = deref(recordedBy)
	return &s, nil
}
