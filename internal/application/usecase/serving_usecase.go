package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/repository"
)

// ServingUseCase registro de montas e inseminaciones.
type ServingUseCase struct {
	repo    repository.ServingRepository
	animals repository.AnimalRepository
}

// NewServingUseCase construye el caso de uso.
func NewServingUseCase(repo repository.ServingRepository, animals repository.AnimalRepository) *ServingUseCase {
	return &ServingUseCase{repo: repo, animals: animals}
}

// Create registra un servicio; la fecha de parto esperada es ServedAt + 283 días.
func (uc *ServingUseCase) Create(ctx context.Context, actor Actor, in dto.CreateServingRequest) (*dto.ServingResponse, error) {
	servedAt, err := dto.ParseDate(in.ServedAt)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	servingType := in.ServingType
	if servingType == "" {
		servingType = entity.ServingNatural
	}
	if !entity.IsValidServingType(servingType) {
		return nil, domain.ErrInvalidInput
	}
	female, err := uc.animals.GetByID(ctx, strings.TrimSpace(in.FemaleID))
	if err != nil {
		return nil, err
	}
	if female == nil {
		return nil, domain.ErrNotFound
	}
	if !female.CanProduceMilk() {
		return nil, domain.ErrInvalidInput
	}
	bullID := nonEmpty(in.BullID)
	bullName := strings.TrimSpace(in.BullName)
	if bullID != nil {
		bull, err := uc.animals.GetByID(ctx, *bullID)
		if err != nil {
			return nil, err
		}
		if bull == nil {
			return nil, domain.ErrNotFound
		}
		if bull.Gender != entity.GenderMale {
			return nil, domain.ErrInvalidInput
		}
		if bullName == "" {
			bullName = bull.Name
		}
	}

	now := time.Now()
	s := &entity.Serving{
		ID:                  uuid.New().String(),
		FemaleID:            female.ID,
		ServedAt:            servedAt,
		ServingType:         servingType,
		BullID:              bullID,
		BullName:            bullName,
		Outcome:             entity.OutcomePending,
		ExpectedCalvingDate: entity.ExpectedCalving(servedAt),
		Notes:               in.Notes,
		RecordedBy:          actor.UserID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return ToServingResponse(s), nil
}

// GetByID obtiene un servicio (nil si no existe).
func (uc *ServingUseCase) GetByID(ctx context.Context, id string) (*dto.ServingResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return ToServingResponse(s), nil
}

// Update actualiza fecha, tipo, toro, resultado o notas.
func (uc *ServingUseCase) Update(ctx context.Context, id string, in dto.UpdateServingRequest) (*dto.ServingResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	if in.ServedAt != nil {
		servedAt, err := dto.ParseDate(*in.ServedAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		s.ServedAt = servedAt
		s.ExpectedCalvingDate = entity.ExpectedCalving(servedAt)
	}
	if in.ServingType != nil {
		if !entity.IsValidServingType(*in.ServingType) {
			return nil, domain.ErrInvalidInput
		}
		s.ServingType = *in.ServingType
	}
	if in.BullName != nil {
		s.BullName = strings.TrimSpace(*in.BullName)
	}
	if in.Outcome != nil {
		if !entity.IsValidOutcome(*in.Outcome) {
			return nil, domain.ErrInvalidInput
		}
		s.Outcome = *in.Outcome
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return ToServingResponse(s), nil
}

// List lista servicios, opcionalmente de una hembra.
func (uc *ServingUseCase) List(ctx context.Context, femaleID string, limit, offset int) (*dto.ServingListResponse, error) {
	list, err := uc.repo.List(ctx, femaleID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServingResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToServingResponse(s))
	}
	return &dto.ServingListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un servicio.
func (uc *ServingUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// ToServingResponse mapea la entidad a DTO.
func ToServingResponse(s *entity.Serving) *dto.ServingResponse {
	return &dto.ServingResponse{
		ID:                  s.ID,
		FemaleID:            s.FemaleID,
		ServedAt:            dto.FormatDate(s.ServedAt),
		ServingType:         s.ServingType,
		BullID:              s.BullID,
		BullName:            s.BullName,
		Outcome:             s.Outcome,
		ExpectedCalvingDate: dto.FormatDate(s.ExpectedCalvingDate),
		Notes:               s.Notes,
		RecordedBy:          s.RecordedBy,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
