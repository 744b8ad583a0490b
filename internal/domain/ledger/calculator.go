// Package ledger calcula el libro de leche por sesión (mañana / tarde).
//
// Balance de la sesión = Total de la sesión + Balance arrastrado − Deducción (posho).
// La cadena es estrictamente secuencial: la tarde del día N-1 alimenta la mañana
// del día N, y la mañana del día N alimenta su tarde.
//
// Son funciones puras: sin estado, sin I/O, seguras para llamadas concurrentes.
// No se validan las deducciones; un posho negativo o mayor que el total produce
// el balance aritmético correspondiente (posiblemente negativo).
package ledger

import "github.com/shopspring/decimal"

// ProductionEntry aporte de un animal a cada sesión. nil cuenta como 0.
type ProductionEntry struct {
	BalanceAM *decimal.Decimal `json:"balance_am,omitempty"`
	BalancePM *decimal.Decimal `json:"balance_pm,omitempty"`
}

// BalanceForMorning = totalMorning + carriedFromYesterday − deductionAM.
func BalanceForMorning(totalMorning, carriedFromYesterday, deductionAM decimal.Decimal) decimal.Decimal {
	return totalMorning.Add(carriedFromYesterday).Sub(deductionAM)
}

// BalanceForEvening = totalEvening + balanceFromMorning − deductionPM.
func BalanceForEvening(totalEvening, balanceFromMorning, deductionPM decimal.Decimal) decimal.Decimal {
	return totalEvening.Add(balanceFromMorning).Sub(deductionPM)
}

// TotalForMorning suma el aporte de la mañana de cada entrada y aplica BalanceForMorning.
// Para omitir el arrastre o la deducción basta con pasar decimal.Zero.
func TotalForMorning(entries []ProductionEntry, carriedFromYesterday, deductionAM decimal.Decimal) decimal.Decimal {
	return BalanceForMorning(SumMorning(entries), carriedFromYesterday, deductionAM)
}

// TotalForEvening suma el aporte de la tarde de cada entrada y aplica BalanceForEvening.
func TotalForEvening(entries []ProductionEntry, balanceFromMorning, deductionPM decimal.Decimal) decimal.Decimal {
	return BalanceForEvening(SumEvening(entries), balanceFromMorning, deductionPM)
}

// SumMorning total bruto de la mañana.
func SumMorning(entries []ProductionEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.BalanceAM != nil {
			total = total.Add(*e.BalanceAM)
		}
	}
	return total
}

// SumEvening total bruto de la tarde.
func SumEvening(entries []ProductionEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.BalancePM != nil {
			total = total.Add(*e.BalancePM)
		}
	}
	return total
}
