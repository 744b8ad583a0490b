// Package production contiene los casos de uso de registros de ordeño y del
// libro de leche diario (cierre, rango, vista previa y PDF).
package production

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// RecordUseCase CRUD de registros de producción por animal y fecha. Las escrituras
// van en la transacción del libro y recalculan los cierres desde la fecha tocada.
type RecordUseCase struct {
	txRunner TxRunner
	repo     repository.ProductionRepository
	animals  repository.AnimalRepository
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(txRunner TxRunner, repo repository.ProductionRepository, animals repository.AnimalRepository) *RecordUseCase {
	return &RecordUseCase{txRunner: txRunner, repo: repo, animals: animals}
}

// Create registra la producción de un animal en una fecha.
// Solo hembras no terneras; un registro por animal y fecha (ErrDuplicate).
func (uc *RecordUseCase) Create(ctx context.Context, userID string, in dto.CreateProductionRequest) (*dto.ProductionResponse, error) {
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityAM == nil && in.QuantityPM == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := validateSession(in.QuantityAM, in.CalfQuantityAM); err != nil {
		return nil, err
	}
	if err := validateSession(in.QuantityPM, in.CalfQuantityPM); err != nil {
		return nil, err
	}
	animal, err := uc.animals.GetByID(ctx, strings.TrimSpace(in.AnimalID))
	if err != nil {
		return nil, err
	}
	if animal == nil {
		return nil, domain.ErrNotFound
	}
	if !animal.CanProduceMilk() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	rec := &entity.ProductionRecord{
		ID:             uuid.New().String(),
		AnimalID:       animal.ID,
		Date:           date,
		QuantityAM:     in.QuantityAM,
		QuantityPM:     in.QuantityPM,
		CalfQuantityAM: in.CalfQuantityAM,
		CalfQuantityPM: in.CalfQuantityPM,
		RecordedBy:     userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = uc.txRunner.RunLedger(ctx, func(
		prodRepo repository.ProductionRepository,
		summaryRepo repository.DailySummaryRepository,
	) error {
		if err := prodRepo.Create(ctx, rec); err != nil {
			return err
		}
		return rechainAfterEdit(ctx, prodRepo, summaryRepo, rec.Date)
	})
	if err != nil {
		return nil, err
	}
	return ToProductionResponse(rec), nil
}

// GetByID obtiene un registro (nil si no existe).
func (uc *RecordUseCase) GetByID(ctx context.Context, id string) (*dto.ProductionResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return ToProductionResponse(rec), nil
}

// Update reemplaza las cantidades indicadas y revalida cada sesión.
func (uc *RecordUseCase) Update(ctx context.Context, id string, in dto.UpdateProductionRequest) (*dto.ProductionResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	if in.QuantityAM != nil {
		rec.QuantityAM = in.QuantityAM
	}
	if in.QuantityPM != nil {
		rec.QuantityPM = in.QuantityPM
	}
	if in.CalfQuantityAM != nil {
		rec.CalfQuantityAM = in.CalfQuantityAM
	}
	if in.CalfQuantityPM != nil {
		rec.CalfQuantityPM = in.CalfQuantityPM
	}
	if err := validateSession(rec.QuantityAM, rec.CalfQuantityAM); err != nil {
		return nil, err
	}
	if err := validateSession(rec.QuantityPM, rec.CalfQuantityPM); err != nil {
		return nil, err
	}
	rec.UpdatedAt = time.Now()
	err = uc.txRunner.RunLedger(ctx, func(
		prodRepo repository.ProductionRepository,
		summaryRepo repository.DailySummaryRepository,
	) error {
		if err := prodRepo.Update(ctx, rec); err != nil {
			return err
		}
		return rechainAfterEdit(ctx, prodRepo, summaryRepo, rec.Date)
	})
	if err != nil {
		return nil, err
	}
	return ToProductionResponse(rec), nil
}

// Delete elimina un registro.
func (uc *RecordUseCase) Delete(ctx context.Context, id string) error {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunLedger(ctx, func(
		prodRepo repository.ProductionRepository,
		summaryRepo repository.DailySummaryRepository,
	) error {
		if err := prodRepo.Delete(ctx, id); err != nil {
			return err
		}
		return rechainAfterEdit(ctx, prodRepo, summaryRepo, rec.Date)
	})
}

// ListByDate registros de un día.
func (uc *RecordUseCase) ListByDate(ctx context.Context, date time.Time) (*dto.ProductionListResponse, error) {
	list, err := uc.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *ToProductionResponse(rec))
	}
	return &dto.ProductionListResponse{Date: dto.FormatDate(date), Items: items}, nil
}

// validateSession cantidades no negativas y con dos decimales como máximo; la porción
// de terneras requiere cantidad y no la supera.
func validateSession(qty, calf *decimal.Decimal) error {
	if qty == nil {
		if calf != nil {
			return domain.ErrInvalidInput
		}
		return nil
	}
	if qty.IsNegative() || !dto.FitsScale(*qty, dto.AmountScale) {
		return domain.ErrInvalidInput
	}
	if calf != nil && (calf.IsNegative() || calf.GreaterThan(*qty) || !dto.FitsScale(*calf, dto.AmountScale)) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ToProductionResponse mapea la entidad a DTO con los netos por sesión.
func ToProductionResponse(rec *entity.ProductionRecord) *dto.ProductionResponse {
	return &dto.ProductionResponse{
		ID:             rec.ID,
		AnimalID:       rec.AnimalID,
		Date:           dto.FormatDate(rec.Date),
		QuantityAM:     rec.QuantityAM,
		QuantityPM:     rec.QuantityPM,
		CalfQuantityAM: rec.CalfQuantityAM,
		CalfQuantityPM: rec.CalfQuantityPM,
		BalanceAM:      rec.NetAM(),
		BalancePM:      rec.NetPM(),
		RecordedBy:     rec.RecordedBy,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
