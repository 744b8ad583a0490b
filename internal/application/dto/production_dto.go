package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionRequest litros de un animal en una fecha.
type CreateProductionRequest struct {
	AnimalID       string           `json:"animal_id"`
	Date           string           `json:"date"` // YYYY-MM-DD
	QuantityAM     *decimal.Decimal `json:"quantity_am"`
	QuantityPM     *decimal.Decimal `json:"quantity_pm"`
	CalfQuantityAM *decimal.Decimal `json:"calf_quantity_am"`
	CalfQuantityPM *decimal.Decimal `json:"calf_quantity_pm"`
}

// UpdateProductionRequest actualización parcial de cantidades.
type UpdateProductionRequest struct {
	QuantityAM     *decimal.Decimal `json:"quantity_am"`
	QuantityPM     *decimal.Decimal `json:"quantity_pm"`
	CalfQuantityAM *decimal.Decimal `json:"calf_quantity_am"`
	CalfQuantityPM *decimal.Decimal `json:"calf_quantity_pm"`
}

// ProductionResponse salida de un registro con los netos por sesión.
type ProductionResponse struct {
	ID             string           `json:"id"`
	AnimalID       string           `json:"animal_id"`
	Date           string           `json:"date"`
	QuantityAM     *decimal.Decimal `json:"quantity_am"`
	QuantityPM     *decimal.Decimal `json:"quantity_pm"`
	CalfQuantityAM *decimal.Decimal `json:"calf_quantity_am"`
	CalfQuantityPM *decimal.Decimal `json:"calf_quantity_pm"`
	BalanceAM      *decimal.Decimal `json:"balance_am"`
	BalancePM      *decimal.Decimal `json:"balance_pm"`
	RecordedBy     string           `json:"recorded_by"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductionListResponse registros de un día.
type ProductionListResponse struct {
	Date  string               `json:"date"`
	Items []ProductionResponse `json:"items"`
}
