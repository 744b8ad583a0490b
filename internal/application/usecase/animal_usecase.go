package usecase

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

// AnimalUseCase casos de uso CRUD para el hato.
type AnimalUseCase struct {
	repo repository.AnimalRepository
}

// NewAnimalUseCase construye el caso de uso.
func NewAnimalUseCase(repo repository.AnimalRepository) *AnimalUseCase {
	return &AnimalUseCase{repo: repo}
}

// Create registra un animal. El arete se guarda en mayúsculas y debe ser único.
func (uc *AnimalUseCase) Create(ctx context.Context, in dto.CreateAnimalRequest) (*dto.AnimalResponse, error) {
	tag := strings.ToUpper(strings.TrimSpace(in.TagNumber))
	if tag == "" || !entity.IsValidAnimalType(in.Type) || !entity.IsValidGender(in.Gender) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.AnimalTypeCow && in.Gender != entity.GenderFemale ||
		in.Type == entity.AnimalTypeBull && in.Gender != entity.GenderMale {
		return nil, domain.ErrInvalidInput
	}
	health := in.HealthStatus
	if health == "" {
		health = entity.HealthHealthy
	}
	if !entity.IsValidHealthStatus(health) {
		return nil, domain.ErrInvalidInput
	}
	if in.Weight != nil && in.Weight.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	birth, err := optionalDate(in.BirthDate)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkParents(ctx, "", in.MotherID, in.FatherID); err != nil {
		return nil, err
	}

	now := time.Now()
	animal := &entity.Animal{
		ID:           uuid.New().String(),
		TagNumber:    tag,
		Name:         strings.TrimSpace(in.Name),
		Type:         in.Type,
		Gender:       in.Gender,
		Breed:        strings.TrimSpace(in.Breed),
		BirthDate:    birth,
		Weight:       in.Weight,
		HealthStatus: health,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		MotherID:     nonEmpty(in.MotherID),
		FatherID:     nonEmpty(in.FatherID),
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, animal); err != nil {
		return nil, err
	}
	return ToAnimalResponse(animal), nil
}

// GetByID obtiene un animal por ID (nil si no existe).
func (uc *AnimalUseCase) GetByID(ctx context.Context, id string) (*dto.AnimalResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	return ToAnimalResponse(a), nil
}

// Update actualiza un animal. El arete y el sexo no se modifican.
func (uc *AnimalUseCase) Update(ctx context.Context, id string, in dto.UpdateAnimalRequest) (*dto.AnimalResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		if !entity.IsValidAnimalType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		if *in.Type == entity.AnimalTypeCow && a.Gender != entity.GenderFemale ||
			*in.Type == entity.AnimalTypeBull && a.Gender != entity.GenderMale {
			return nil, domain.ErrInvalidInput
		}
		a.Type = *in.Type
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.BirthDate != nil {
		birth, err := optionalDate(*in.BirthDate)
		if err != nil {
			return nil, err
		}
		a.BirthDate = birth
	}
	if in.Weight != nil {
		if in.Weight.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		a.Weight = in.Weight
	}
	if in.HealthStatus != nil {
		if !entity.IsValidHealthStatus(*in.HealthStatus) {
			return nil, domain.ErrInvalidInput
		}
		a.HealthStatus = *in.HealthStatus
	}
	if in.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.MotherID != nil || in.FatherID != nil {
		if err := uc.checkParents(ctx, a.ID, in.MotherID, in.FatherID); err != nil {
			return nil, err
		}
		if in.MotherID != nil {
			a.MotherID = nonEmpty(in.MotherID)
		}
		if in.FatherID != nil {
			a.FatherID = nonEmpty(in.FatherID)
		}
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return ToAnimalResponse(a), nil
}

// List lista animales con filtro opcional por tipo y sexo.
func (uc *AnimalUseCase) List(ctx context.Context, filter repository.AnimalFilter, limit, offset int) (*dto.AnimalListResponse, error) {
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AnimalResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAnimalResponse(a))
	}
	return &dto.AnimalListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina un animal (solo farm manager).
func (uc *AnimalUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsManager() {
		return domain.ErrForbidden
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// checkParents verifica que la madre exista y sea hembra, y el padre exista y sea macho.
func (uc *AnimalUseCase) checkParents(ctx context.Context, selfID string, motherID, fatherID *string) error {
	if id := nonEmpty(motherID); id != nil {
		if *id == selfID {
			return domain.ErrInvalidInput
		}
		m, err := uc.repo.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Gender != entity.GenderFemale {
			return domain.ErrInvalidInput
		}
	}
	if id := nonEmpty(fatherID); id != nil {
		if *id == selfID {
			return domain.ErrInvalidInput
		}
		f, err := uc.repo.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		if f == nil {
			return domain.ErrNotFound
		}
		if f.Gender != entity.GenderMale {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// ToAnimalResponse mapea la entidad a DTO.
func ToAnimalResponse(a *entity.Animal) *dto.AnimalResponse {
	if a == nil {
		return nil
	}
	var birth *string
	if a.BirthDate != nil {
		s := dto.FormatDate(*a.BirthDate)
		birth = &s
	}
	return &dto.AnimalResponse{
		ID:           a.ID,
		TagNumber:    a.TagNumber,
		Name:         a.Name,
		Type:         a.Type,
		Gender:       a.Gender,
		Breed:        a.Breed,
		BirthDate:    birth,
		Weight:       a.Weight,
		HealthStatus: a.HealthStatus,
		ImageURL:     a.ImageURL,
		MotherID:     a.MotherID,
		FatherID:     a.FatherID,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
