package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionRecord litros ordeñados de un animal en una fecha, por sesión.
// Un puntero nil indica que la sesión no se ordeñó. CalfQuantity* es la porción
// destinada a las terneras y no entra al balance.
type ProductionRecord struct {
	ID             string
	AnimalID       string
	Date           time.Time // solo fecha (00:00 UTC)
	QuantityAM     *decimal.Decimal
	QuantityPM     *decimal.Decimal
	CalfQuantityAM *decimal.Decimal
	CalfQuantityPM *decimal.Decimal
	RecordedBy     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NetAM litros netos de la mañana (cantidad - porción de terneras). nil si no hubo ordeño.
func (p *ProductionRecord) NetAM() *decimal.Decimal {
	return net(p.QuantityAM, p.CalfQuantityAM)
}

// NetPM litros netos de la tarde. nil si no hubo ordeño.
func (p *ProductionRecord) NetPM() *decimal.Decimal {
	return net(p.QuantityPM, p.CalfQuantityPM)
}

func net(qty, calf *decimal.Decimal) *decimal.Decimal {
	if qty == nil {
		return nil
	}
	v := *qty
	if calf != nil {
		v = v.Sub(*calf)
	}
	return &v
}

// DailySummary cierre del libro de leche de un día: totales por sesión, posho y balances.
type DailySummary struct {
	Date           time.Time
	TotalMorning   decimal.Decimal
	TotalEvening   decimal.Decimal
	DeductionAM    decimal.Decimal // posho de la mañana
	DeductionPM    decimal.Decimal // posho de la tarde
	CarriedIn      decimal.Decimal // balance de la tarde del día anterior
	BalanceMorning decimal.Decimal
	BalanceEvening decimal.Decimal
	ClosedBy       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
