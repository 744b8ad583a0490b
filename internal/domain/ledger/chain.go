package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySessions entradas y posho de un día.
type DaySessions struct {
	Date        time.Time
	Entries     []ProductionEntry
	DeductionAM decimal.Decimal
	DeductionPM decimal.Decimal
}

// DayBalance resultado del día dentro de la cadena.
type DayBalance struct {
	Date           time.Time
	TotalMorning   decimal.Decimal
	TotalEvening   decimal.Decimal
	DeductionAM    decimal.Decimal
	DeductionPM    decimal.Decimal
	CarriedIn      decimal.Decimal
	BalanceMorning decimal.Decimal
	BalanceEvening decimal.Decimal
}

// Close calcula mañana y tarde de un solo día a partir del balance arrastrado.
func Close(day DaySessions, carriedIn decimal.Decimal) DayBalance {
	totalAM := SumMorning(day.Entries)
	totalPM := SumEvening(day.Entries)
	morning := BalanceForMorning(totalAM, carriedIn, day.DeductionAM)
	evening := BalanceForEvening(totalPM, morning, day.DeductionPM)
	return DayBalance{
		Date:           day.Date,
		TotalMorning:   totalAM,
		TotalEvening:   totalPM,
		DeductionAM:    day.DeductionAM,
		DeductionPM:    day.DeductionPM,
		CarriedIn:      carriedIn,
		BalanceMorning: morning,
		BalanceEvening: evening,
	}
}

// Chain recorre los días en el orden recibido: el balance de la tarde de cada día
// es el arrastre de la mañana siguiente. opening es el arrastre del primer día.
func Chain(opening decimal.Decimal, days []DaySessions) []DayBalance {
	out := make([]DayBalance, 0, len(days))
	carry := opening
	for _, d := range days {
		b := Close(d, carry)
		out = append(out, b)
		carry = b.BalanceEvening
	}
	return out
}
