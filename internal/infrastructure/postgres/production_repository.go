package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

const productionColumns = `id, animal_id, date, quantity_am, quantity_pm, calf_quantity_am, calf_quantity_pm,
	recorded_by, created_at, updated_at`

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL (usable con pool o tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create persiste un registro. Animal y fecha repetidos → domain.ErrDuplicate.
func (r *ProductionRepo) Create(ctx context.Context, p *entity.ProductionRecord) error {
	query := `
		INSERT INTO production_records (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AnimalID, p.Date, p.QuantityAM, p.QuantityPM, p.CalfQuantityAM, p.CalfQuantityPM,
		nullIfEmpty(p.RecordedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert production record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.ProductionRecord, error) {
	p, err := scanProduction(r.q.QueryRow(ctx, `SELECT `+productionColumns+` FROM production_records WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get production record: %w", err)
	}
	return p, nil
}

// Update actualiza las cantidades del registro.
func (r *ProductionRepo) Update(ctx context.Context, p *entity.ProductionRecord) error {
	query := `
		UPDATE production_records SET quantity_am = $2, quantity_pm = $3, calf_quantity_am = $4,
			calf_quantity_pm = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.QuantityAM, p.QuantityPM, p.CalfQuantityAM, p.CalfQuantityPM, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update production record: %w", err)
	}
	return nil
}

// Delete elimina un registro por ID.
func (r *ProductionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM production_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete production record: %w", err)
	}
	return nil
}

// ListByDate registros de una fecha.
func (r *ProductionRepo) ListByDate(ctx context.Context, date time.Time) ([]*entity.ProductionRecord, error) {
	return r.ListBetween(ctx, date, date)
}

// ListBetween registros con fecha en [from, to] ordenados por fecha.
func (r *ProductionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductionRecord, error) {
	query := `SELECT ` + productionColumns + ` FROM production_records
		WHERE date BETWEEN $1 AND $2 ORDER BY date, animal_id`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list production records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionRecord
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production record: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduction(row pgx.Row) (*entity.ProductionRecord, error) {
	var (
		p          entity.ProductionRecord
		recordedBy *string
	)
	err := row.Scan(
		&p.ID, &p.AnimalID, &p.Date, &p.QuantityAM, &p.QuantityPM, &p.CalfQuantityAM, &p.CalfQuantityPM,
		&recordedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.RecordedBy = deref(recordedBy)
	return &p, nil
}
