package csvimport

import (
	"context"
	"errors"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// RowError fallo al cargar una línea concreta.
type RowError struct {
	Line int
	Tag  string
	Err  error
}

// Result resumen de la importación.
type Result struct {
	Imported int
	Skipped  int // ya existía un registro para ese animal y fecha
	Errors   []RowError
}

// Importer crea registros de producción a partir de filas leídas con Read.
type Importer struct {
	animals repository.AnimalRepository
	records *production.RecordUseCase
}

// NewImporter construye el importador.
func NewImporter(animals repository.AnimalRepository, records *production.RecordUseCase) *Importer {
	return &Importer{animals: animals, records: records}
}

// Import carga cada fila con las mismas reglas que la API. Las filas que fallan
// se reportan y no detienen el resto; solo un error de infraestructura corta la carga.
func (im *Importer) Import(ctx context.Context, userID string, rows []Row) (*Result, error) {
	res := &Result{}
	ids := map[string]string{}
	for _, row := range rows {
		animalID, ok := ids[row.Tag]
		if !ok {
			a, err := im.animals.GetByTag(ctx, row.Tag)
			if err != nil {
				return res, err
			}
			if a != nil {
				animalID = a.ID
			}
			ids[row.Tag] = animalID
		}
		if animalID == "" {
			res.Errors = append(res.Errors, RowError{Line: row.Line, Tag: row.Tag, Err: domain.ErrNotFound})
			continue
		}

		_, err := im.records.Create(ctx, userID, dto.CreateProductionRequest{
			AnimalID:   animalID,
			Date:       dto.FormatDate(row.Date),
			QuantityAM: row.AM,
			QuantityPM: row.PM,
		})
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped++
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
			res.Errors = append(res.Errors, RowError{Line: row.Line, Tag: row.Tag, Err: err})
		default:
			return res, err
		}
	}
	return res, nil
}
