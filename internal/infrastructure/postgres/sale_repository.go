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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, date, session, quantity, price_per_liter, total_amount, buyer_name, buyer_phone,
	sold_by, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.Session, s.Quantity, s.PricePerLiter, s.TotalAmount, s.BuyerName, s.BuyerPhone,
		nullIfEmpty(s.SoldBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET date = $2, session = $3, quantity = $4, price_per_liter = $5, total_amount = $6,
			buyer_name = $7, buyer_phone = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.Session, s.Quantity, s.PricePerLiter, s.TotalAmount, s.BuyerName, s.BuyerPhone, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListBetween ventas con fecha en [from, to]; limit <= 0 devuelve todas.
func (r *SaleRepo) ListBetween(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE date BETWEEN $1 AND $2
		ORDER BY date, created_at LIMIT NULLIF($3, 0) OFFSET $4`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.q.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s      entity.Sale
		soldBy *string
	)
	err := row.Scan(
		&s.ID, &s.Date, &s.Session, &s.Quantity, &s.PricePerLiter, &s.TotalAmount, &s.BuyerName, &s.BuyerPhone,
		&soldBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.SoldBy = deref(soldBy)
	return &s, nil
}
