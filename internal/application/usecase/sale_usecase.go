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

// SaleUseCase ventas de leche.
type SaleUseCase struct {
	repo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

// Create registra una venta. Cantidad y precio deben ser positivos; el total se calcula.
func (uc *SaleUseCase) Create(ctx context.Context, actor Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidSession(in.Session) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || !in.PricePerLiter.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !dto.FitsScale(in.Quantity, dto.AmountScale) || !dto.FitsScale(in.PricePerLiter, dto.PriceScale) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Sale{
		ID:            uuid.New().String(),
		Date:          date,
		Session:       in.Session,
		Quantity:      in.Quantity,
		PricePerLiter: in.PricePerLiter,
		BuyerName:     strings.TrimSpace(in.BuyerName),
		BuyerPhone:    strings.TrimSpace(in.BuyerPhone),
		SoldBy:        actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.ComputeTotal()
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// GetByID obtiene una venta (nil si no existe).
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// Update actualiza la venta y recalcula el total.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	if in.Date != nil {
		date, err := dto.ParseDate(*in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		s.Date = date
	}
	if in.Session != nil {
		if !entity.IsValidSession(*in.Session) {
			return nil, domain.ErrInvalidInput
		}
		s.Session = *in.Session
	}
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) || !dto.FitsScale(*in.Quantity, dto.AmountScale) {
			return nil, domain.ErrInvalidInput
		}
		s.Quantity = *in.Quantity
	}
	if in.PricePerLiter != nil {
		if !in.PricePerLiter.GreaterThan(decimal.Zero) || !dto.FitsScale(*in.PricePerLiter, dto.PriceScale) {
			return nil, domain.ErrInvalidInput
		}
		s.PricePerLiter = *in.PricePerLiter
	}
	if in.BuyerName != nil {
		s.BuyerName = strings.TrimSpace(*in.BuyerName)
	}
	if in.BuyerPhone != nil {
		s.BuyerPhone = strings.TrimSpace(*in.BuyerPhone)
	}
	s.ComputeTotal()
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// List ventas con fecha en [from, to].
func (uc *SaleUseCase) List(ctx context.Context, from, to time.Time, limit, offset int) (*dto.SaleListResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListBetween(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una venta.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// ToSaleResponse mapea la entidad a DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		Date:          dto.FormatDate(s.Date),
		Session:       s.Session,
		Quantity:      s.Quantity,
		PricePerLiter: s.PricePerLiter,
		TotalAmount:   s.TotalAmount,
		BuyerName:     s.BuyerName,
		BuyerPhone:    s.BuyerPhone,
		SoldBy:        s.SoldBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
