package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta de leche.
type CreateSaleRequest struct {
	Date          string          `json:"date"` // YYYY-MM-DD
	Session       string          `json:"session"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerLiter decimal.Decimal `json:"price_per_liter"`
	BuyerName     string          `json:"buyer_name"`
	BuyerPhone    string          `json:"buyer_phone"`
}

// UpdateSaleRequest actualización parcial; el total se recalcula.
type UpdateSaleRequest struct {
	Date          *string          `json:"date"`
	Session       *string          `json:"session"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PricePerLiter *decimal.Decimal `json:"price_per_liter"`
	BuyerName     *string          `json:"buyer_name"`
	BuyerPhone    *string          `json:"buyer_phone"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Session       string          `json:"session"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerLiter decimal.Decimal `json:"price_per_liter"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	BuyerName     string          `json:"buyer_name"`
	BuyerPhone    string          `json:"buyer_phone"`
	SoldBy        string          `json:"sold_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
