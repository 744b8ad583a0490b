package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

var _ repository.AnimalRepository = (*AnimalRepo)(nil)

const animalColumns = `id, tag_number, name, type, gender, breed, birth_date, weight, health_status,
	image_url, mother_id, father_id, notes, created_at, updated_at`

// AnimalRepo implementación de AnimalRepository sobre PostgreSQL.
type AnimalRepo struct {
	q Querier
}

// NewAnimalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnimalRepository(q Querier) *AnimalRepo {
	return &AnimalRepo{q: q}
}

// Create persiste un animal. Arete duplicado → domain.ErrDuplicate.
func (r *AnimalRepo) Create(ctx context.Context, a *entity.Animal) error {
	query := `
		INSERT INTO animals (` + animalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TagNumber, a.Name, a.Type, a.Gender, a.Breed, a.BirthDate, a.Weight, a.HealthStatus,
		a.ImageURL, a.MotherID, a.FatherID, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

// GetByID obtiene un animal por ID.
func (r *AnimalRepo) GetByID(ctx context.Context, id string) (*entity.Animal, error) {
	a, err := scanAnimal(r.q.QueryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get animal by id: %w", err)
	}
	return a, nil
}

// GetByTag obtiene un animal por su arete.
func (r *AnimalRepo) GetByTag(ctx context.Context, tag string) (*entity.Animal, error) {
	a, err := scanAnimal(r.q.QueryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE tag_number = $1`, tag))
	if err != nil {
		return nil, fmt.Errorf("get animal by tag: %w", err)
	}
	return a, nil
}

// Update actualiza los datos del animal (el arete y el sexo no cambian).
func (r *AnimalRepo) Update(ctx context.Context, a *entity.Animal) error {
	query := `
		UPDATE animals SET name = $2, type = $3, breed = $4, birth_date = $5, weight = $6,
			health_status = $7, image_url = $8, mother_id = $9, father_id = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Type, a.Breed, a.BirthDate, a.Weight,
		a.HealthStatus, a.ImageURL, a.MotherID, a.FatherID, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update animal: %w", err)
	}
	return nil
}

// List lista animales con filtros opcionales, ordenados por arete.
func (r *AnimalRepo) List(ctx context.Context, filter repository.AnimalFilter, limit, offset int) ([]*entity.Animal, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	query := `SELECT ` + animalColumns + ` FROM animals`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY tag_number LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina un animal por ID.
func (r *AnimalRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete animal: %w", err)
	}
	return nil
}

// CountByType número de animales por tipo.
func (r *AnimalRepo) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT type, COUNT(*) FROM animals GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("count animals by type: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[t] = n
	}
	return out, rows.Err()
}

func scanAnimal(row pgx.Row) (*entity.Animal, error) {
	var a entity.Animal
	err := row.Scan(
		&a.ID, &a.TagNumber, &a.Name, &a.Type, &a.Gender, &a.Breed, &a.BirthDate, &a.Weight, &a.HealthStatus,
		&a.ImageURL, &a.MotherID, &a.FatherID, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
