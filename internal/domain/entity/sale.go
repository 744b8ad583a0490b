package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sesiones de ordeño.
const (
	SessionMorning = "morning"
	SessionEvening = "evening"
)

// Sale venta de leche a un comprador.
type Sale struct {
	ID            string
	Date          time.Time
	Session       string
	Quantity      decimal.Decimal // litros
	PricePerLiter decimal.Decimal
	TotalAmount   decimal.Decimal
	BuyerName     string
	BuyerPhone    string
	SoldBy        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeTotal Quantity × PricePerLiter redondeado a 2 decimales.
func (s *Sale) ComputeTotal() {
	s.TotalAmount = s.Quantity.Mul(s.PricePerLiter).Round(2)
}

// IsValidSession valida la sesión.
func IsValidSession(s string) bool {
	return s == SessionMorning || s == SessionEvening
}
